// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mailgateway.go -package=mocks . MailGateway
type Attachment struct {
	Filename    string
	ContentType string
	Size        int
}

// Email is a snapshot of an unread mail at fetch time.
type Email struct {
	Uid         uint32
	MessageId   string
	MailIdHash  string
	From        string
	Subject     string
	Body        string
	Date        time.Time
	Attachments []Attachment
	// Automated is set for auto-replies, bounces and list or bulk mail, which must not be answered.
	Automated bool
	Raw       []byte
}

type Outgoing struct {
	To          string
	Subject     string
	Body        string
	Attachments []string
	InReplyTo   string
}

type MailGateway interface {
	Connect(ctx context.Context) error
	Unread(ctx context.Context) ([]*Email, error)
	Send(ctx context.Context, msg *Outgoing) error
	MarkSeen(ctx context.Context, uids []uint32) error
	Move(ctx context.Context, uids []uint32, folder string) error
	Close() error
}
