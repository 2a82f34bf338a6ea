package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alper-collab/tasarim-anketi/internal/survey"
)

// SubmissionBody renders the operator email: subject heading, respondent
// line, then one block per answer in wire order, blocks separated by
// horizontal rules. Empty answers render as the NotAnswered placeholder so
// no question is silently dropped. Image attachments are referenced by cid
// at the end so they render inside the body.
func SubmissionBody(subject, replyTo string, answers survey.OrderedAnswers, attachments []Attachment) string {
	var b strings.Builder
	b.WriteString("<h1>" + esc(subject) + "</h1>")
	b.WriteString("<p><b>Yanıtlayan:</b> " + esc(replyTo) + "</p><hr>")

	for _, qa := range answers {
		value := qa.Value
		if strings.TrimSpace(value) == "" {
			value = survey.NotAnswered
		}
		b.WriteString("<p><b>" + esc(qa.Question) + ":</b></p>")
		b.WriteString("<p>" + strings.ReplaceAll(esc(value), "\n", "<br>") + "</p><hr>")
	}

	for i, a := range attachments {
		if !a.Inline() {
			continue
		}
		b.WriteString("<p><b>" + esc(a.Filename) + ":</b></p>")
		b.WriteString(fmt.Sprintf(`<p><img src="cid:%s" alt="%s" style="max-width:600px"></p><hr>`,
			InlineCID(i, a), esc(a.Filename)))
	}

	return b.String()
}

// ConfirmationBody renders the thank-you email sent back to the
// respondent, including the submission reference code.
func ConfirmationBody(reference string) string {
	var b strings.Builder
	b.WriteString("<h1>Teşekkür ederiz!</h1>")
	b.WriteString("<p>Tasarım yolculuğunuza bizimle başladığınız için heyecanlıyız. En kısa sürede sizinle iletişime geçeceğiz.</p>")
	b.WriteString("<p><b>Başvuru kodunuz:</b> " + esc(reference) + "</p>")
	return b.String()
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
