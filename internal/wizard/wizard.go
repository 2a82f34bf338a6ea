// Package wizard drives the survey step by step: it gates progression on
// the current question's validity, accumulates answers, and hands the
// finished submission to a Submitter. Rendering is left to the caller.
package wizard

import (
	"context"

	"github.com/alper-collab/tasarim-anketi/internal/survey"
)

// View is the screen the wizard is currently showing.
type View int

const (
	ViewWelcome View = iota
	ViewInProgress
	ViewSubmitted
)

// Submitter posts one finished submission. internal/client implements it
// over HTTP; tests swap in fakes.
type Submitter interface {
	Submit(ctx context.Context, sub survey.Submission) error
}

// Wizard is a linear, single-threaded question walker. It is not safe for
// concurrent use; the UI serializes input events.
type Wizard struct {
	questions  []survey.Question
	answers    *survey.AnswerSet
	submitter  Submitter
	step       int
	view       View
	submitting bool
	lastError  string
}

// Option customizes a Wizard at construction.
type Option func(*Wizard)

// WithRespondentEmail seeds the email answer with an address already known
// from the hosting page, so returning customers skip retyping it.
func WithRespondentEmail(email string) Option {
	return func(w *Wizard) {
		if email != "" {
			w.answers.SetText("email", email)
		}
	}
}

// New returns a wizard on the welcome screen.
func New(questions []survey.Question, submitter Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		questions: questions,
		answers:   survey.NewAnswerSet(),
		submitter: submitter,
		view:      ViewWelcome,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start moves from the welcome screen to the first question.
func (w *Wizard) Start() {
	if w.view == ViewWelcome {
		w.view = ViewInProgress
	}
}

// View returns the current screen.
func (w *Wizard) View() View {
	return w.view
}

// Step returns the 1-based current step and the total, for progress display.
func (w *Wizard) Step() (current, total int) {
	return w.step + 1, len(w.questions)
}

// Current returns the question being shown.
func (w *Wizard) Current() survey.Question {
	return w.questions[w.step]
}

// Answers exposes the mutable answer set for input handlers.
func (w *Wizard) Answers() *survey.AnswerSet {
	return w.answers
}

// Submitting reports whether a submission is in flight; the UI disables
// navigation while true.
func (w *Wizard) Submitting() bool {
	return w.submitting
}

// LastError returns the message of the most recent failed submission.
func (w *Wizard) LastError() string {
	return w.lastError
}

// CanAdvance reports whether the current answer satisfies the current
// question. Mirrors the disabled state of the next button.
func (w *Wizard) CanAdvance() bool {
	if w.view != ViewInProgress || w.submitting {
		return false
	}
	return w.answers.Satisfies(w.Current())
}

// Advance moves to the next question, or submits when on the last one.
// No-op outside the in-progress view or when the current answer is invalid.
func (w *Wizard) Advance(ctx context.Context) {
	if !w.CanAdvance() {
		return
	}
	if w.step < len(w.questions)-1 {
		w.step++
		return
	}
	w.submit(ctx)
}

// Retreat moves back one question. Previously entered answers are kept.
func (w *Wizard) Retreat() {
	if w.view != ViewInProgress || w.submitting {
		return
	}
	if w.step > 0 {
		w.step--
	}
}

func (w *Wizard) submit(ctx context.Context) {
	w.submitting = true
	w.lastError = ""
	defer func() { w.submitting = false }()

	sub := survey.BuildSubmission(w.questions, w.answers)
	if err := w.submitter.Submit(ctx, sub); err != nil {
		w.lastError = "Gönderim başarısız oldu: " + err.Error() +
			". Lütfen ağ bağlantınızı kontrol edin ve tekrar deneyin. Sorun devam ederse, site yöneticisiyle iletişime geçin."
		return
	}
	w.view = ViewSubmitted
}
