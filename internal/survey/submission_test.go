package survey

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSubmission_EveryQuestionAppears(t *testing.T) {
	questions := DefaultQuestions()
	answers := NewAnswerSet()
	answers.SetText("email", "musteri@example.com")
	answers.SetText("atmosphere", "sakin ve aydınlık")

	sub := BuildSubmission(questions, answers)

	if len(sub.Answers) != len(questions) {
		t.Fatalf("answers = %d entries, want one per question (%d)", len(sub.Answers), len(questions))
	}
	for i, q := range questions {
		if sub.Answers[i].Question != q.Text {
			t.Fatalf("answers[%d] keyed %q, want %q", i, sub.Answers[i].Question, q.Text)
		}
	}

	if got, _ := sub.Answers.Lookup("Mekanında nasıl bir atmosfer hayal ediyorsun?"); got != "sakin ve aydınlık" {
		t.Errorf("answered question = %q, want the recorded text", got)
	}
	if got, _ := sub.Answers.Lookup("Bu mekanı kimler kullanacak?"); got != NotAnswered {
		t.Errorf("skipped question = %q, want %q", got, NotAnswered)
	}
}

func TestBuildSubmission_SubjectAndReplyTo(t *testing.T) {
	questions := DefaultQuestions()

	answers := NewAnswerSet()
	answers.SetText("email", "musteri@example.com")
	sub := BuildSubmission(questions, answers)
	if sub.ReplyTo != "musteri@example.com" {
		t.Errorf("ReplyTo = %q", sub.ReplyTo)
	}
	if sub.Subject != "Yeni Tasarım Keşif Anketi: musteri@example.com" {
		t.Errorf("Subject = %q", sub.Subject)
	}

	sub = BuildSubmission(questions, NewAnswerSet())
	if sub.ReplyTo != NoEmailProvided {
		t.Errorf("ReplyTo without email = %q, want %q", sub.ReplyTo, NoEmailProvided)
	}
}

func TestBuildSubmission_ChoiceFormatting(t *testing.T) {
	questions := []Question{
		{ID: "style", Text: "Tarz", Type: TypeRadio, Options: []string{"Modern", OtherOption}, HasOtherSpecify: true},
		{ID: "colors", Text: "Renkler", Type: TypeCheckbox, Options: []string{"Gri Tonları", OtherOption}, HasOtherSpecify: true},
		{ID: "budget", Text: "Bütçe", Type: TypeCheckbox, Options: []string{"70.000 TL - 90.000 TL"}},
	}

	answers := NewAnswerSet()
	answers.SetChoice("style", OtherOption)
	answers.SetChoiceOther("style", "Japandi")
	answers.ToggleOption("colors", "Gri Tonları")
	answers.ToggleOption("colors", OtherOption)
	answers.SetMultiOther("colors", "zümrüt yeşili")
	answers.ToggleOption("budget", "70.000 TL - 90.000 TL")
	answers.ToggleOption("budget", "70.000 TL - 90.000 TL")

	sub := BuildSubmission(questions, answers)

	if got, _ := sub.Answers.Lookup("Tarz"); got != "Diğer (Diğer: Japandi)" {
		t.Errorf("radio with Diğer = %q", got)
	}
	if got, _ := sub.Answers.Lookup("Renkler"); got != "Gri Tonları, Diğer (Diğer: zümrüt yeşili)" {
		t.Errorf("checkbox with Diğer = %q", got)
	}
	if got, _ := sub.Answers.Lookup("Bütçe"); got != NoSelection {
		t.Errorf("checkbox toggled back to empty = %q, want %q", got, NoSelection)
	}
}

func TestBuildSubmission_FileNotes(t *testing.T) {
	questions := []Question{
		{ID: "space_photos", Text: "Fotoğraflar", Type: TypeFile, Multiple: true},
		{ID: "floor_plan", Text: "Plan", Type: TypeFile},
	}

	answers := NewAnswerSet()
	answers.AddFile("space_photos", UploadedFile{Name: "salon.jpg", ContentType: "image/jpeg", Data: []byte{1}}, true)
	answers.AddFile("space_photos", UploadedFile{Name: "mutfak.jpg", ContentType: "image/jpeg", Data: []byte{2}}, true)

	sub := BuildSubmission(questions, answers)

	if got, _ := sub.Answers.Lookup("Fotoğraflar"); got != "2 dosya eklendi (e-postaya eklenmiştir)." {
		t.Errorf("file note = %q", got)
	}
	if got, _ := sub.Answers.Lookup("Plan"); got != NoFilesUploaded {
		t.Errorf("empty file note = %q, want %q", got, NoFilesUploaded)
	}
	if len(sub.Files) != 2 {
		t.Fatalf("Files = %d entries, want 2", len(sub.Files))
	}
	if sub.Files[0].Field != "space_photos" {
		t.Errorf("Files[0].Field = %q", sub.Files[0].Field)
	}
}

func TestOrderedAnswers_JSONKeepsOrder(t *testing.T) {
	in := OrderedAnswers{
		{Question: "Zeta", Value: "1"},
		{Question: "Alfa", Value: "2"},
		{Question: "Orta", Value: "satır1\nsatır2"},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"Zeta":"1","Alfa":"2"`) {
		t.Fatalf("marshal lost key order: %s", data)
	}

	var out OrderedAnswers
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip lost entries: %v", out)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("entry %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestOrderedAnswers_RejectsNonStringValues(t *testing.T) {
	var out OrderedAnswers
	if err := json.Unmarshal([]byte(`{"soru": 42}`), &out); err == nil {
		t.Error("numeric answer value should fail to decode")
	}
	if err := json.Unmarshal([]byte(`["soru"]`), &out); err == nil {
		t.Error("array should fail to decode")
	}
}
