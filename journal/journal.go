// SPDX-License-Identifier: GPL-3.0-or-later
package journal

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-replier/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Journal records every processed mail in sqlite. It answers whether a mail was already
// replied to and provides the per-sender history used when drafting replies.
type Journal struct {
	db  *sqlx.DB
	now func() time.Time
	l   *logrus.Logger
}

func NewJournal(datasource string, l *logrus.Logger) (*Journal, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l.WithField("file", datasource).Info("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	migrationSource := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations",
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Journal{
		db:  db,
		now: time.Now,
		l:   l,
	}, nil
}

func (j *Journal) Close() error {
	err := j.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	j.l.Info("Disconnected")
	return nil
}

// Replied reports whether a reply to the mail identified by mailIdHash was sent before.
func (j *Journal) Replied(mailIdHash string) (bool, error) {
	count := 0
	err := j.db.Get(
		&count,
		"SELECT COUNT(*) FROM replies WHERE mailidhash = ? AND sent = 1",
		mailIdHash,
	)
	if err != nil {
		return false, fmt.Errorf("could not query db: %w", err)
	}

	return count > 0, nil
}

// History returns up to limit of the most recent non-spam exchanges with sender, oldest first.
func (j *Journal) History(sender string, limit int) ([]domain.HistoryEntry, error) {
	dbEntries := []struct {
		Received time.Time
		Created  time.Time
		Body     string
		Reply    string
		Sent     bool
	}{}

	err := j.db.Select(
		&dbEntries,
		`SELECT received, created, body, reply, sent FROM replies
		 WHERE sender = ? AND isspam = 0
		 ORDER BY created DESC, id DESC LIMIT ?`,
		sender,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	history := make([]domain.HistoryEntry, 0, len(dbEntries))
	for i := len(dbEntries) - 1; i >= 0; i-- {
		e := dbEntries[i]

		date := e.Received
		if date.IsZero() {
			date = e.Created
		}

		body := strings.TrimSpace(e.Body)
		if e.Sent && len(e.Reply) > 0 {
			body = fmt.Sprintf("%s\nReply: %s", body, strings.TrimSpace(e.Reply))
		}

		history = append(history, domain.HistoryEntry{
			Date: date,
			Body: body,
		})
	}

	return history, nil
}

func (j *Journal) Record(entry domain.JournalEntry) error {
	intent := entry.Intent
	if intent == nil {
		intent = &domain.Intent{KeyInfo: []string{}}
	}

	keyInfo, err := json.Marshal(intent.KeyInfo)
	if err != nil {
		return fmt.Errorf("could not encode key info: %w", err)
	}

	_, err = j.db.Exec(
		`INSERT INTO replies
		 (runid, uid, mailidhash, sender, subject, body, received, intent, sentiment, urgency, keyinfo, isspam, reply, sent, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunId, entry.Uid, entry.MailIdHash, entry.Sender, entry.Subject, entry.Body, entry.Received.UTC(),
		intent.Intent, intent.Sentiment, intent.Urgency, string(keyInfo),
		entry.IsSpam, entry.Reply, entry.Sent, j.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not save journal entry: %w", err)
	}

	j.l.WithFields(logrus.Fields{"uid": entry.Uid, "sender": entry.Sender, "sent": entry.Sent}).Debug("Recorded mail")
	return nil
}
