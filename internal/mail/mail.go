// Package mail models outbound email and sends it through an SMTP relay.
// Messages are transient: they exist for the duration of one send call.
package mail

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Attachment is a file carried verbatim on an email: original name,
// original MIME type, original bytes.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Inline reports whether the attachment should additionally be embedded
// into the HTML body. Only images render inline in mail clients.
func (a Attachment) Inline() bool {
	return strings.HasPrefix(strings.ToLower(a.ContentType), "image/")
}

// InlineCID returns the content-id under which attachment i is embedded.
// The index keeps duplicate filenames from colliding.
func InlineCID(i int, a Attachment) string {
	return fmt.Sprintf("ek-%d%s", i+1, strings.ToLower(path.Ext(a.Filename)))
}

// Message is one outbound email.
type Message struct {
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers a single message. The SMTP implementation lives in this
// package; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
