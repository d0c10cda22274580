// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/journal.go -package=mocks . Journal
type JournalEntry struct {
	RunId      string
	Uid        uint32
	MailIdHash string
	Sender     string
	Subject    string
	Body       string
	Received   time.Time
	Intent     *Intent
	IsSpam     bool
	Reply      string
	Sent       bool
}

// Journal is the caller-owned record of processed mails. It supplies the conversation
// history handed to the reply engine and prevents answering a mail twice.
type Journal interface {
	Replied(mailIdHash string) (bool, error)
	History(sender string, limit int) ([]HistoryEntry, error)
	Record(entry JournalEntry) error
	Close() error
}
