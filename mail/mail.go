// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrawX/go-imap-replier/domain"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// ParseEmail turns a raw RFC 5322 message into an Email. A message without a From header
// yields an empty sender and a message without a text/plain part yields an empty body;
// anything the MIME reader cannot make sense of is an error.
func ParseEmail(uid uint32, rawMail []byte) (*domain.Email, error) {
	mr, err := mail.CreateReader(bytes.NewReader(rawMail))
	if err != nil {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}
	defer mr.Close()

	from, err := mr.Header.AddressList("From")
	if err != nil {
		return nil, fmt.Errorf("could not parse from header: %w", err)
	}

	subject, err := mr.Header.Subject()
	if err != nil {
		return nil, fmt.Errorf("could not decode subject header: %w", err)
	}

	var date time.Time
	if len(mr.Header.Get("Date")) > 0 {
		date, err = mr.Header.Date()
		if err != nil {
			return nil, fmt.Errorf("could not parse date header: %w", err)
		}
	}

	// Malformed ids are common in the wild and only used for threading
	messageId, _ := mr.Header.MessageID()

	email := &domain.Email{
		Uid:         uid,
		MessageId:   messageId,
		MailIdHash:  mailIdHash(&mr.Header, rawMail),
		Subject:     subject,
		Date:        date,
		Attachments: []domain.Attachment{},
		Automated:   isAutomated(&mr.Header),
		Raw:         rawMail,
	}
	if len(from) > 0 {
		email.From = from[0].Address
	}

	bodyFound := false
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read mail part: %w", err)
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			if bodyFound || !isPlainText(h) {
				continue
			}

			body, err := io.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read text part: %w", err)
			}
			email.Body = string(body)
			bodyFound = true
		case *mail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil {
				return nil, fmt.Errorf("could not decode attachment filename: %w", err)
			}
			contentType, _, _ := h.ContentType()

			n, err := io.Copy(io.Discard, p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read attachment: %w", err)
			}

			email.Attachments = append(email.Attachments, domain.Attachment{
				Filename:    filename,
				ContentType: contentType,
				Size:        int(n),
			})
		}
	}

	return email, nil
}

// isAutomated follows RFC 3834: anything auto-submitted, bulk or list mail and bounces
// with an empty return path.
func isAutomated(h *mail.Header) bool {
	autoSubmitted := strings.ToLower(strings.TrimSpace(h.Get("Auto-Submitted")))
	if len(autoSubmitted) > 0 && !strings.HasPrefix(autoSubmitted, "no") {
		return true
	}

	switch strings.ToLower(strings.TrimSpace(h.Get("Precedence"))) {
	case "bulk", "list", "junk", "auto_reply":
		return true
	}

	if len(h.Get("List-Id")) > 0 {
		return true
	}

	if strings.TrimSpace(h.Get("Return-Path")) == "<>" {
		return true
	}

	return false
}

func isPlainText(h *mail.InlineHeader) bool {
	// RFC 2045: no Content-Type means text/plain
	if len(h.Get("Content-Type")) == 0 {
		return true
	}

	contentType, _, err := h.ContentType()
	if err != nil {
		return false
	}

	return contentType == "text/plain"
}

// ReplySubject prefixes subject with "Re: " unless it already is a reply.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(subject)), "re:") {
		return subject
	}
	return "Re: " + subject
}

const shortSubjectLength = 30

// ShortSubject cuts subject to 30 characters for log output.
func ShortSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) > shortSubjectLength {
		return string(runes[:shortSubjectLength]) + "..."
	}
	return subject
}

// mailIdHash identifies a mail independent of its uid. Mails without any id headers are
// identified by their content.
func mailIdHash(h *mail.Header, rawMail []byte) string {
	messageIds := h.Values("Message-Id")
	received := h.Values("Received")
	if len(messageIds) == 0 && len(received) == 0 {
		return hash([][]string{{string(rawMail)}})
	}

	return hash([][]string{messageIds, received})
}

func hash(input [][]string) string {
	sha := sha256.New()
	for _, i := range input {
		for _, ii := range i {
			// hash.Hash never returns an error
			_, _ = sha.Write([]byte(ii))
		}
	}

	return fmt.Sprintf("%x", sha.Sum(nil))
}
