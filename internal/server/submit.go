package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	netmail "net/mail"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/alper-collab/tasarim-anketi/internal/mail"
	"github.com/alper-collab/tasarim-anketi/internal/survey"
	"github.com/alper-collab/tasarim-anketi/pkg/fault"
)

const (
	maxJSONBody     = 1 << 20
	maxUploadMemory = 32 << 20

	invalidPayloadMessage = "Eksik veya hatalı veri yapısı."
	successMessage        = "Anket başarıyla gönderildi."
	confirmationSubject   = "Anketiniz bize ulaştı"
)

type submissionPayload struct {
	Subject string                `json:"subject"`
	ReplyTo string                `json:"replyTo"`
	Answers survey.OrderedAnswers `json:"answers"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// submitHandler accepts one POST, relays it as email and responds. The
// operator send is fatal for the request; the confirmation send is
// best-effort and only ever logged.
func (s *Server) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := decodeSubmission(r)
		if err != nil {
			status := http.StatusInternalServerError
			if fault.IsClient(err) {
				status = http.StatusBadRequest
			}
			s.logger.Printf("gönderim reddedildi: %v", err)
			s.writeJSON(w, status, errorResponse{Error: fault.Message(err)})
			return
		}

		reference := uuid.NewString()
		attachments := toAttachments(sub.Files)

		operatorMsg := mail.Message{
			To:          s.operator,
			ReplyTo:     sub.ReplyTo,
			Subject:     sub.Subject,
			HTML:        mail.SubmissionBody(sub.Subject, sub.ReplyTo, sub.Answers, attachments),
			Attachments: attachments,
		}
		if err := s.sender.Send(r.Context(), operatorMsg); err != nil {
			s.logger.Printf("operatör e-postası gönderilemedi (başvuru=%s): %v", reference, err)
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error: "Sunucuda beklenmedik bir hata oluştu: " + err.Error(),
			})
			return
		}

		// The respondent already has their success once the operator copy
		// is out; a failed thank-you must not change the response.
		if addr, err := netmail.ParseAddress(sub.ReplyTo); err == nil {
			confirmation := mail.Message{
				To:      addr.Address,
				Subject: confirmationSubject,
				HTML:    mail.ConfirmationBody(reference),
			}
			if err := s.sender.Send(r.Context(), confirmation); err != nil {
				s.logger.Printf("teşekkür e-postası gönderilemedi (başvuru=%s): %v", reference, err)
			}
		}

		s.logger.Printf("anket iletildi: başvuru=%s yanıtlayan=%s ek=%d", reference, sub.ReplyTo, len(attachments))
		s.writeJSON(w, http.StatusOK, successResponse{Success: true, Message: successMessage})
	}
}

// decodeSubmission normalizes the two wire encodings into one canonical
// Submission before any business logic runs: plain JSON, or multipart with
// the same JSON in a "submission" field plus file parts.
func decodeSubmission(r *http.Request) (survey.Submission, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return survey.Submission{}, fault.NewClient(invalidPayloadMessage, err)
	}

	switch mediaType {
	case "application/json":
		var p submissionPayload
		if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&p); err != nil {
			return survey.Submission{}, fault.NewClient(invalidPayloadMessage, err)
		}
		return validated(survey.Submission{Subject: p.Subject, ReplyTo: p.ReplyTo, Answers: p.Answers})

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return survey.Submission{}, fault.NewClient(invalidPayloadMessage, err)
		}
		raw := r.FormValue("submission")
		if raw == "" {
			return survey.Submission{}, fault.NewClient(invalidPayloadMessage, errors.New("submission alanı yok"))
		}
		var p submissionPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return survey.Submission{}, fault.NewClient(invalidPayloadMessage, err)
		}
		files, err := collectFiles(r)
		if err != nil {
			return survey.Submission{}, err
		}
		return validated(survey.Submission{Subject: p.Subject, ReplyTo: p.ReplyTo, Answers: p.Answers, Files: files})
	}

	return survey.Submission{}, fault.NewClient(invalidPayloadMessage, errors.New("desteklenmeyen içerik türü: "+mediaType))
}

func validated(sub survey.Submission) (survey.Submission, error) {
	if strings.TrimSpace(sub.Subject) == "" || len(sub.Answers) == 0 {
		return survey.Submission{}, fault.NewClient(invalidPayloadMessage, errors.New("subject veya answers eksik"))
	}
	return sub, nil
}

// collectFiles reads every uploaded part into memory. Fields are walked in
// sorted order so attachment numbering is deterministic.
func collectFiles(r *http.Request) ([]survey.UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	fields := make([]string, 0, len(r.MultipartForm.File))
	for field := range r.MultipartForm.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []survey.UploadedFile
	for _, field := range fields {
		for _, header := range r.MultipartForm.File[field] {
			f, err := header.Open()
			if err != nil {
				return nil, fault.NewInternal("Dosya okunamadı.", err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fault.NewInternal("Dosya okunamadı.", err)
			}
			files = append(files, survey.UploadedFile{
				Field:       field,
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return files, nil
}

func toAttachments(files []survey.UploadedFile) []mail.Attachment {
	if len(files) == 0 {
		return nil
	}
	attachments := make([]mail.Attachment, 0, len(files))
	for _, f := range files {
		attachments = append(attachments, mail.Attachment{
			Filename:    f.Name,
			ContentType: f.ContentType,
			Content:     f.Data,
		})
	}
	return attachments
}
