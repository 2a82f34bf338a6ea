package survey

import (
	"regexp"
	"strings"
)

// Matches localpart@domain.tld: exactly one @, at least one dot after it.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Answer is the closed set of value shapes an answer slot can hold.
type Answer interface {
	isAnswer()
}

// TextAnswer holds free text for email, text and textarea questions.
type TextAnswer struct {
	Text string
}

// ChoiceAnswer holds a single selected option. Other carries the
// auxiliary free text when the selected option is OtherOption.
type ChoiceAnswer struct {
	Option string
	Other  string
}

// MultiChoiceAnswer keeps selected options in selection order so the
// formatted answer is deterministic.
type MultiChoiceAnswer struct {
	Selected []string
	Other    string
}

// UploadedFile is an in-memory upload: original name, original MIME type,
// original bytes. Field records which question produced it.
type UploadedFile struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// FileListAnswer holds the uploads attached to one file question.
type FileListAnswer struct {
	Files []UploadedFile
}

func (TextAnswer) isAnswer()        {}
func (ChoiceAnswer) isAnswer()      {}
func (MultiChoiceAnswer) isAnswer() {}
func (FileListAnswer) isAnswer()    {}

// AnswerSet maps question IDs to their current answers. It is
// append/overwrite-only: retreating in the wizard never clears entries.
type AnswerSet struct {
	values map[string]Answer
}

// NewAnswerSet returns an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{values: make(map[string]Answer)}
}

// Get returns the answer stored for id, if any.
func (s *AnswerSet) Get(id string) (Answer, bool) {
	a, ok := s.values[id]
	return a, ok
}

// SetText overwrites the free-text answer for id.
func (s *AnswerSet) SetText(id, text string) {
	s.values[id] = TextAnswer{Text: text}
}

// Text returns the free-text answer for id, or "" when absent.
func (s *AnswerSet) Text(id string) string {
	if a, ok := s.values[id].(TextAnswer); ok {
		return a.Text
	}
	return ""
}

// SetChoice selects option for a radio question. Picking anything other
// than OtherOption discards a previously entered auxiliary text.
func (s *AnswerSet) SetChoice(id, option string) {
	prev, _ := s.values[id].(ChoiceAnswer)
	next := ChoiceAnswer{Option: option, Other: prev.Other}
	if option != OtherOption {
		next.Other = ""
	}
	s.values[id] = next
}

// SetChoiceOther records the auxiliary text of a radio question.
func (s *AnswerSet) SetChoiceOther(id, text string) {
	prev, _ := s.values[id].(ChoiceAnswer)
	prev.Other = text
	s.values[id] = prev
}

// ToggleOption flips one checkbox option, preserving selection order.
// Unticking OtherOption discards the auxiliary text.
func (s *AnswerSet) ToggleOption(id, option string) {
	prev, _ := s.values[id].(MultiChoiceAnswer)
	kept := make([]string, 0, len(prev.Selected)+1)
	removed := false
	for _, sel := range prev.Selected {
		if sel == option {
			removed = true
			continue
		}
		kept = append(kept, sel)
	}
	if !removed {
		kept = append(kept, option)
	}
	next := MultiChoiceAnswer{Selected: kept, Other: prev.Other}
	if removed && option == OtherOption {
		next.Other = ""
	}
	s.values[id] = next
}

// SetMultiOther records the auxiliary text of a checkbox question.
func (s *AnswerSet) SetMultiOther(id, text string) {
	prev, _ := s.values[id].(MultiChoiceAnswer)
	prev.Other = text
	s.values[id] = prev
}

// AddFile appends an upload to a file question. Single-file questions
// replace the previous upload instead.
func (s *AnswerSet) AddFile(id string, f UploadedFile, multiple bool) {
	f.Field = id
	prev, _ := s.values[id].(FileListAnswer)
	if !multiple {
		prev.Files = nil
	}
	prev.Files = append(prev.Files, f)
	s.values[id] = prev
}

// RemoveFile drops the upload at index from a file question.
func (s *AnswerSet) RemoveFile(id string, index int) {
	prev, ok := s.values[id].(FileListAnswer)
	if !ok || index < 0 || index >= len(prev.Files) {
		return
	}
	prev.Files = append(prev.Files[:index:index], prev.Files[index+1:]...)
	s.values[id] = prev
}

// Files returns the uploads stored for id.
func (s *AnswerSet) Files(id string) []UploadedFile {
	a, _ := s.values[id].(FileListAnswer)
	return a.Files
}

// Satisfies reports whether the stored answer lets the wizard advance past
// q. Optional questions pass unless a dangling "Diğer" selection is missing
// its free text; required ones are additionally checked per type.
func (s *AnswerSet) Satisfies(q Question) bool {
	if !s.otherSpecified(q) {
		return false
	}
	if !q.Required {
		return true
	}

	switch q.Type {
	case TypeEmail:
		a, ok := s.values[q.ID].(TextAnswer)
		return ok && emailPattern.MatchString(a.Text)

	case TypeFile:
		a, ok := s.values[q.ID].(FileListAnswer)
		return ok && len(a.Files) > 0

	case TypeText, TypeTextarea:
		a, ok := s.values[q.ID].(TextAnswer)
		return ok && strings.TrimSpace(a.Text) != ""

	case TypeRadio:
		a, ok := s.values[q.ID].(ChoiceAnswer)
		return ok && a.Option != ""

	case TypeCheckbox:
		a, ok := s.values[q.ID].(MultiChoiceAnswer)
		return ok && len(a.Selected) > 0
	}

	return false
}

// otherSpecified checks the "Diğer" constraint: once the sentinel choice is
// selected, the auxiliary text must be non-empty regardless of anything else.
func (s *AnswerSet) otherSpecified(q Question) bool {
	if !q.HasOtherSpecify {
		return true
	}
	switch a := s.values[q.ID].(type) {
	case ChoiceAnswer:
		if a.Option == OtherOption {
			return strings.TrimSpace(a.Other) != ""
		}
	case MultiChoiceAnswer:
		if contains(a.Selected, OtherOption) {
			return strings.TrimSpace(a.Other) != ""
		}
	}
	return true
}

func contains(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}
