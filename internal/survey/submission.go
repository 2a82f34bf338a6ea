package survey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// User-facing strings baked into the emailed answers.
const (
	NotAnswered      = "Cevaplanmadı"
	NoSelection      = "Seçim yapılmadı."
	NoFilesUploaded  = "Dosya yüklenmedi."
	NoEmailProvided  = "E-posta belirtilmedi"
	subjectPrefix    = "Yeni Tasarım Keşif Anketi: "
	filesAttachedFmt = "%d dosya eklendi (e-postaya eklenmiştir)."
)

// QA is one formatted question/answer pair, keyed by question text.
type QA struct {
	Question string
	Value    string
}

// OrderedAnswers is the answers mapping of the wire payload. It marshals
// as a JSON object whose keys keep slice order, so the emailed body lists
// answers in question order instead of Go map order.
type OrderedAnswers []QA

// MarshalJSON writes the pairs as an object in slice order.
func (a OrderedAnswers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, qa := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(qa.Question)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(qa.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string values, preserving key order.
func (a *OrderedAnswers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("answers bir JSON nesnesi olmalı")
	}

	out := OrderedAnswers{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("answers anahtarı metin olmalı")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%q cevabı metin olmalı: %w", key, err)
		}
		out = append(out, QA{Question: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

// Lookup returns the value recorded under question text.
func (a OrderedAnswers) Lookup(question string) (string, bool) {
	for _, qa := range a {
		if qa.Question == question {
			return qa.Value, true
		}
	}
	return "", false
}

// Submission is the canonical payload, independent of wire encoding. It is
// built once at submit time and discarded after the request.
type Submission struct {
	Subject string
	ReplyTo string
	Answers OrderedAnswers
	Files   []UploadedFile
}

// BuildSubmission formats the answer set against the question catalogue.
// Every catalogue question appears exactly once, unanswered ones as the
// NotAnswered placeholder; uploads are collected in catalogue order.
func BuildSubmission(questions []Question, answers *AnswerSet) Submission {
	replyTo := strings.TrimSpace(answers.Text("email"))
	if replyTo == "" {
		replyTo = NoEmailProvided
	}

	sub := Submission{
		Subject: subjectPrefix + replyTo,
		ReplyTo: replyTo,
		Answers: make(OrderedAnswers, 0, len(questions)),
	}

	for _, q := range questions {
		if q.Type == TypeFile {
			files := answers.Files(q.ID)
			value := NoFilesUploaded
			if len(files) > 0 {
				value = fmt.Sprintf(filesAttachedFmt, len(files))
				sub.Files = append(sub.Files, files...)
			}
			sub.Answers = append(sub.Answers, QA{Question: q.Text, Value: value})
			continue
		}
		sub.Answers = append(sub.Answers, QA{Question: q.Text, Value: formatAnswer(q, answers)})
	}

	return sub
}

// formatAnswer renders one non-file answer as the string that will appear
// in the operator email.
func formatAnswer(q Question, answers *AnswerSet) string {
	value, ok := answers.Get(q.ID)
	if !ok {
		return NotAnswered
	}

	switch a := value.(type) {
	case TextAnswer:
		if strings.TrimSpace(a.Text) == "" {
			return NotAnswered
		}
		return a.Text

	case ChoiceAnswer:
		if a.Option == "" {
			return NotAnswered
		}
		if a.Option == OtherOption && strings.TrimSpace(a.Other) != "" {
			return fmt.Sprintf("%s (%s: %s)", a.Option, OtherOption, a.Other)
		}
		return a.Option

	case MultiChoiceAnswer:
		if len(a.Selected) == 0 {
			return NoSelection
		}
		formatted := strings.Join(a.Selected, ", ")
		if contains(a.Selected, OtherOption) && strings.TrimSpace(a.Other) != "" {
			formatted += fmt.Sprintf(" (%s: %s)", OtherOption, a.Other)
		}
		return formatted
	}

	return NotAnswered
}
