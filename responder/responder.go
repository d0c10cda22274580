// SPDX-License-Identifier: GPL-3.0-or-later
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-replier/domain"
	"github.com/CrawX/go-imap-replier/mail"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HistoryLimit = 3

// Summary counts what happened to the unread mails of one run.
type Summary struct {
	Unread  int
	Replied int
	Failed  int
	Skipped int
	Spam    int
}

// Responder answers unread mail, one mail at a time.
type Responder struct {
	gateway domain.MailGateway
	engine  domain.ReplyEngine

	configuration *configuration

	l *logrus.Logger
}

func NewResponder(gateway domain.MailGateway, engine domain.ReplyEngine, l *logrus.Logger, configFunc ...ConfigFunc) (*Responder, error) {
	config := &configuration{}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Responder{
		gateway:       gateway,
		engine:        engine,
		configuration: config,
		l:             l,
	}, nil
}

// Run processes all unread mails once. Failures of single mails are counted in the summary;
// only a failure to reach or list the mailbox is returned as error. The caller owns the
// gateway and closes it.
func (r *Responder) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	runId := uuid.NewString()
	l := r.l.WithField("run", runId)

	err := r.gateway.Connect(ctx)
	if err != nil {
		return summary, fmt.Errorf("could not connect to mailbox: %w", err)
	}

	emails, err := r.gateway.Unread(ctx)
	if err != nil {
		return summary, fmt.Errorf("could not list unread mails: %w", err)
	}

	summary.Unread = len(emails)
	if len(emails) == 0 {
		l.Info("No unread mails")
		return summary, nil
	}
	l.WithField("count", len(emails)).Info("Found unread mails")

	for _, email := range emails {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run interrupted: %w", err)
		}

		r.process(ctx, runId, email, summary)
	}

	l.WithFields(logrus.Fields{
		"unread":  summary.Unread,
		"replied": summary.Replied,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
		"spam":    summary.Spam,
	}).Info("Finished run")
	return summary, nil
}

func (r *Responder) process(ctx context.Context, runId string, email *domain.Email, summary *Summary) {
	l := r.l.WithFields(logrus.Fields{
		"run":     runId,
		"uid":     email.Uid,
		"subject": mail.ShortSubject(email.Subject),
	})

	if len(email.From) == 0 {
		l.Warn("Mail has no sender, skipping")
		summary.Skipped++
		return
	}
	l = l.WithField("from", email.From)

	if r.ownAddress(email.From) {
		l.Info("Mail was sent from own address, skipping")
		summary.Skipped++
		r.postProcess(ctx, email, l)
		return
	}

	if email.Automated {
		l.Info("Mail is an automated message, skipping")
		summary.Skipped++
		r.postProcess(ctx, email, l)
		return
	}

	entry := domain.JournalEntry{
		RunId:      runId,
		Uid:        email.Uid,
		MailIdHash: email.MailIdHash,
		Sender:     email.From,
		Subject:    email.Subject,
		Body:       email.Body,
		Received:   email.Date,
	}

	if r.alreadyReplied(email, l) {
		l.Info("Mail was already replied to, skipping")
		summary.Skipped++
		r.postProcess(ctx, email, l)
		return
	}

	if r.isSpam(email, l) {
		summary.Spam++
		entry.IsSpam = true
		r.postProcess(ctx, email, l)
		r.record(entry, l)
		return
	}

	intent, err := r.engine.Classify(ctx, email.Body)
	if err != nil {
		l.WithError(err).Warn("Could not classify mail, using fallback")
	}
	if intent == nil {
		intent = domain.UnknownIntent()
	}
	entry.Intent = intent

	reply, err := r.engine.Reply(ctx, email.Body, intent, r.history(email.From, l))
	if err != nil {
		l.WithError(err).Warn("Could not generate reply, sending apology")
	}
	entry.Reply = reply

	if r.configuration.DryRun {
		l.WithField("reply", reply).Info("Dry run, not sending reply")
		summary.Replied++
		r.record(entry, l)
		return
	}

	err = r.gateway.Send(ctx, &domain.Outgoing{
		To:        email.From,
		Subject:   mail.ReplySubject(email.Subject),
		Body:      reply,
		InReplyTo: email.MessageId,
	})
	if err != nil {
		l.WithError(err).Error("Could not send reply")
		summary.Failed++
		r.record(entry, l)
		return
	}

	entry.Sent = true
	summary.Replied++
	l.WithField("intent", intent.Intent).Info("Replied to mail")

	r.postProcess(ctx, email, l)
	r.record(entry, l)
}

func (r *Responder) ownAddress(from string) bool {
	for _, address := range r.configuration.OwnAddresses {
		if strings.EqualFold(address, from) {
			return true
		}
	}

	return false
}

func (r *Responder) alreadyReplied(email *domain.Email, l *logrus.Entry) bool {
	if r.configuration.Journal == nil || len(email.MailIdHash) == 0 {
		return false
	}

	replied, err := r.configuration.Journal.Replied(email.MailIdHash)
	if err != nil {
		l.WithError(err).Warn("Could not look up mail in journal")
		return false
	}

	return replied
}

func (r *Responder) isSpam(email *domain.Email, l *logrus.Entry) bool {
	if r.configuration.SpamClassifier == nil {
		return false
	}

	result := r.configuration.SpamClassifier.Check(email.Raw)
	if result.Error != nil {
		l.WithError(result.Error).Warn("Could not check mail for spam, treating as ham")
		return false
	}

	if result.IsSpam {
		l.WithField("score", result.Score).Info("Mail is spam, not replying")
	}
	return result.IsSpam
}

func (r *Responder) history(sender string, l *logrus.Entry) []domain.HistoryEntry {
	if r.configuration.Journal == nil {
		return nil
	}

	history, err := r.configuration.Journal.History(sender, HistoryLimit)
	if err != nil {
		l.WithError(err).Warn("Could not load conversation history")
		return nil
	}

	return history
}

func (r *Responder) postProcess(ctx context.Context, email *domain.Email, l *logrus.Entry) {
	if r.configuration.DryRun {
		return
	}

	uids := []uint32{email.Uid}
	if r.configuration.MarkSeen {
		err := r.gateway.MarkSeen(ctx, uids)
		if err != nil {
			l.WithError(err).Warn("Could not mark mail as seen")
		}
	}

	if r.configuration.MoveProcessed {
		err := r.gateway.Move(ctx, uids, r.configuration.ProcessedFolder)
		if err != nil {
			l.WithError(err).Warn("Could not move mail")
		} else {
			l.WithField("folder", r.configuration.ProcessedFolder).Debug("Moved mail to processed folder")
		}
	}
}

func (r *Responder) record(entry domain.JournalEntry, l *logrus.Entry) {
	if r.configuration.Journal == nil {
		return
	}

	err := r.configuration.Journal.Record(entry)
	if err != nil {
		l.WithError(err).Warn("Could not record mail in journal")
	}
}
