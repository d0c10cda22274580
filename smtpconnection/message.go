// SPDX-License-Identifier: GPL-3.0-or-later
package smtpconnection

import (
	"fmt"
	"os"
	"strings"

	"github.com/CrawX/go-imap-replier/domain"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

const mailer = "go-imap-replier"

// RFC 3834 header marking the message as an automatic reply
const headerAutoSubmitted mail.Header = "Auto-Submitted"

// BuildMessage composes the outgoing mail. Every attachment path must point to an existing
// file; the returned error wraps domain.ErrContent otherwise.
func BuildMessage(from string, out *domain.Outgoing) (*mail.Msg, error) {
	msg := mail.NewMsg()

	err := msg.From(from)
	if err != nil {
		return nil, fmt.Errorf("could not set sender %q: %w: %w", from, domain.ErrContent, err)
	}

	err = msg.To(out.To)
	if err != nil {
		return nil, fmt.Errorf("could not set recipient %q: %w: %w", out.To, domain.ErrContent, err)
	}

	msg.Subject(out.Subject)
	msg.SetDate()
	msg.SetMessageIDWithValue(messageId(from))
	msg.SetGenHeader(mail.HeaderXMailer, mailer)
	msg.SetGenHeader(headerAutoSubmitted, "auto-replied")

	if len(out.InReplyTo) > 0 {
		ref := fmt.Sprintf("<%s>", strings.Trim(out.InReplyTo, "<>"))
		msg.SetGenHeader(mail.HeaderInReplyTo, ref)
		msg.SetGenHeader(mail.HeaderReferences, ref)
	}

	msg.SetBodyString(mail.TypeTextPlain, out.Body)

	for _, attachment := range out.Attachments {
		info, err := os.Stat(attachment)
		if err != nil {
			return nil, fmt.Errorf("could not attach %s: %w: %w", attachment, domain.ErrContent, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("could not attach %s: %w: is a directory", attachment, domain.ErrContent)
		}

		msg.AttachFile(attachment)
	}

	return msg, nil
}

func messageId(from string) string {
	host := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		host = strings.Trim(from[at+1:], "> ")
	}

	return fmt.Sprintf("%s@%s", uuid.NewString(), host)
}
