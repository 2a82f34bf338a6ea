package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/alper-collab/tasarim-anketi/internal/config"
	"github.com/alper-collab/tasarim-anketi/internal/mail"
)

const testOperator = "atolye@dekorla.co"

// fakeSender records outbound messages and fails per recipient.
type fakeSender struct {
	sent   []mail.Message
	failTo map[string]error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if err, ok := f.failTo[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestServer(sender mail.Sender) *Server {
	return New(config.Config{
		OperatorAddress: testOperator,
		AllowedOrigins:  []string{"https://dekorla.co", ".myshopify.com"},
		ServerLog:       log.New(io.Discard, "", 0),
	}, sender)
}

func postJSON(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestSubmit_JSONHappyPath(t *testing.T) {
	sender := &fakeSender{}
	rec := postJSON(t, newTestServer(sender).Handler(),
		`{"subject":"Test","replyTo":"a@b.com","answers":{"Q1":"yes"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["message"] != "Anket başarıyla gönderildi." {
		t.Errorf("body = %v", body)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want operator + confirmation", len(sender.sent))
	}
	operator := sender.sent[0]
	if operator.To != testOperator {
		t.Errorf("operator To = %q", operator.To)
	}
	if operator.Subject != "Test" || operator.ReplyTo != "a@b.com" {
		t.Errorf("operator subject/replyTo = %q/%q", operator.Subject, operator.ReplyTo)
	}
	if !strings.Contains(operator.HTML, "Q1") || !strings.Contains(operator.HTML, "yes") {
		t.Errorf("operator body missing answer: %s", operator.HTML)
	}
	if confirmation := sender.sent[1]; confirmation.To != "a@b.com" {
		t.Errorf("confirmation To = %q", confirmation.To)
	}
}

func TestSubmit_ValidationRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"answers missing", `{"subject":"Test","replyTo":"a@b.com"}`},
		{"answers empty", `{"subject":"Test","replyTo":"a@b.com","answers":{}}`},
		{"subject missing", `{"replyTo":"a@b.com","answers":{"Q1":"yes"}}`},
		{"subject blank", `{"subject":"  ","answers":{"Q1":"yes"}}`},
		{"not json", `subject=Test`},
		{"answers not an object", `{"subject":"Test","answers":["Q1"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{}
			rec := postJSON(t, newTestServer(sender).Handler(), tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["error"] == "" {
				t.Error("missing error message")
			}
			if len(sender.sent) != 0 {
				t.Error("rejected payload must not trigger a send")
			}
		})
	}
}

func TestSubmit_OperatorFailureIsFatal(t *testing.T) {
	sender := &fakeSender{failTo: map[string]error{testOperator: errors.New("relay kapalı")}}
	rec := postJSON(t, newTestServer(sender).Handler(),
		`{"subject":"Test","replyTo":"a@b.com","answers":{"Q1":"yes"}}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if msg, _ := body["error"].(string); !strings.Contains(msg, "relay kapalı") {
		t.Errorf("error = %v, want underlying cause for operator debugging", body["error"])
	}
	if len(sender.sent) != 0 {
		t.Error("confirmation must not go out when the operator send failed")
	}
}

func TestSubmit_ConfirmationFailureIsBestEffort(t *testing.T) {
	sender := &fakeSender{failTo: map[string]error{"a@b.com": errors.New("posta kutusu dolu")}}
	rec := postJSON(t, newTestServer(sender).Handler(),
		`{"subject":"Test","replyTo":"a@b.com","answers":{"Q1":"yes"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite confirmation failure", rec.Code)
	}
	if len(sender.sent) != 1 || sender.sent[0].To != testOperator {
		t.Errorf("operator send should still have gone out: %+v", sender.sent)
	}
}

func TestSubmit_InvalidReplyToSkipsConfirmation(t *testing.T) {
	sender := &fakeSender{}
	rec := postJSON(t, newTestServer(sender).Handler(),
		`{"subject":"Test","replyTo":"E-posta belirtilmedi","answers":{"Q1":"yes"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d messages, want operator only", len(sender.sent))
	}
}

func TestSubmit_MultipartWithFiles(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("submission",
		`{"subject":"Test","replyTo":"a@b.com","answers":{"Plan":"1 dosya eklendi (e-postaya eklenmiştir)."}}`)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="space_photos"; filename="salon.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, _ := writer.CreatePart(header)
	_, _ = part.Write([]byte{0xFF, 0xD8, 0xFF})
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	sender := &fakeSender{}
	newTestServer(sender).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	operator := sender.sent[0]
	if len(operator.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(operator.Attachments))
	}
	att := operator.Attachments[0]
	if att.Filename != "salon.jpg" || att.ContentType != "image/jpeg" {
		t.Errorf("attachment = %q %q", att.Filename, att.ContentType)
	}
	if !bytes.Equal(att.Content, []byte{0xFF, 0xD8, 0xFF}) {
		t.Error("attachment bytes altered")
	}
	if !strings.Contains(operator.HTML, "cid:ek-1.jpg") {
		t.Errorf("image not referenced inline: %s", operator.HTML)
	}
}

func TestSubmit_MultipartWithoutSubmissionField(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("baska_alan", "deger")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestServer(&fakeSender{}).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
