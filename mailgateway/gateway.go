// SPDX-License-Identifier: GPL-3.0-or-later
package mailgateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/CrawX/go-imap-replier/config"
	"github.com/CrawX/go-imap-replier/domain"
	"github.com/CrawX/go-imap-replier/imapconnection"
	"github.com/CrawX/go-imap-replier/log"
	"github.com/CrawX/go-imap-replier/mail"
	"github.com/CrawX/go-imap-replier/smtpconnection"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
)

type smtpConnector interface {
	Send(msg *gomail.Msg) error
	Close() error
}

type imapDialer func(conf config.MailConfig) (domain.ImapConnector, error)
type smtpDialer func(ctx context.Context, conf config.MailConfig) (smtpConnector, error)

// Gateway owns at most one IMAP and one SMTP session. Both are opened on first use and
// reused until Close. A Gateway must not be used from multiple goroutines.
type Gateway struct {
	conf config.MailConfig

	dialImap imapDialer
	dialSmtp smtpDialer

	imap     domain.ImapConnector
	selected bool
	smtp     smtpConnector

	l *logrus.Logger
}

func NewGateway(conf config.MailConfig, loggers *log.Loggers) *Gateway {
	imapLogger := loggers.Logger(log.LOG_IMAP)
	smtpLogger := loggers.Logger(log.LOG_SMTP)

	return newGateway(
		conf,
		func(conf config.MailConfig) (domain.ImapConnector, error) {
			return imapconnection.NewImapConnection(conf, imapLogger)
		},
		func(ctx context.Context, conf config.MailConfig) (smtpConnector, error) {
			return smtpconnection.NewSmtpConnection(ctx, conf, smtpLogger)
		},
		loggers.Logger(log.LOG_GATEWAY),
	)
}

func newGateway(conf config.MailConfig, dialImap imapDialer, dialSmtp smtpDialer, l *logrus.Logger) *Gateway {
	return &Gateway{
		conf:     conf,
		dialImap: dialImap,
		dialSmtp: dialSmtp,
		l:        l,
	}
}

// Connect opens the inbound session unless it is already open.
func (g *Gateway) Connect(ctx context.Context) error {
	if g.imap != nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("could not connect to imap: %w: %w", domain.ErrTransport, err)
	}

	conn, err := g.dialImap(g.conf)
	if err != nil {
		g.l.WithError(err).WithField("server", g.conf.ImapAddress()).Error("Could not connect to imap")
		return fmt.Errorf("could not connect to imap: %w: %w", domain.ErrTransport, err)
	}

	g.l.WithField("server", g.conf.ImapAddress()).Info("Connected to imap")
	g.imap = conn
	g.selected = false
	return nil
}

func (g *Gateway) selectFolder() error {
	if g.selected {
		return nil
	}

	_, err := g.imap.Select(g.conf.Folder)
	if err != nil {
		return err
	}

	g.selected = true
	return nil
}

// Unread returns the unread mails of the configured folder without marking them as seen.
// On any failure the result is an empty slice together with a categorized error; a single
// unparseable mail fails the whole listing.
func (g *Gateway) Unread(ctx context.Context) ([]*domain.Email, error) {
	empty := []*domain.Email{}

	err := g.Connect(ctx)
	if err != nil {
		return empty, err
	}

	err = g.selectFolder()
	if err != nil {
		return empty, g.imapFailure("could not select folder", err)
	}

	uids, err := g.imap.UnreadUids()
	if err != nil {
		return empty, g.imapFailure("could not list unread mails", err)
	}

	if len(uids) == 0 {
		g.l.WithField("folder", g.conf.Folder).Debug("No unread mails")
		return empty, nil
	}

	rawMails, err := g.imap.FetchMails(uids)
	if err != nil {
		return empty, g.imapFailure("could not fetch unread mails", err)
	}

	emails := make([]*domain.Email, 0, len(rawMails))
	for _, rawMail := range rawMails {
		email, err := mail.ParseEmail(rawMail.Uid, rawMail.RawMail)
		if err != nil {
			g.l.WithError(err).WithField("uid", rawMail.Uid).Error("Could not parse mail")
			return empty, fmt.Errorf("could not parse mail %d: %w: %w", rawMail.Uid, domain.ErrContent, err)
		}
		emails = append(emails, email)
	}

	g.l.WithFields(logrus.Fields{"folder": g.conf.Folder, "count": len(emails)}).Info("Fetched unread mails")
	return emails, nil
}

// Send delivers a mail through the outbound session, opening it on first use. A session
// that failed to send is dropped so the next call opens a fresh one.
func (g *Gateway) Send(ctx context.Context, out *domain.Outgoing) error {
	msg, err := smtpconnection.BuildMessage(g.conf.Sender(), out)
	if err != nil {
		g.l.WithError(err).WithField("to", out.To).Error("Could not build mail")
		return err
	}

	if g.smtp == nil {
		conn, err := g.dialSmtp(ctx, g.conf)
		if err != nil {
			g.l.WithError(err).WithField("server", g.conf.SmtpServer).Error("Could not connect to smtp")
			return fmt.Errorf("could not connect to smtp: %w: %w", domain.ErrTransport, err)
		}
		g.smtp = conn
	}

	err = g.smtp.Send(msg)
	if err != nil {
		g.l.WithError(err).WithField("to", out.To).Error("Could not send mail")
		_ = g.smtp.Close()
		g.smtp = nil
		return fmt.Errorf("could not send mail: %w: %w", domain.ErrTransport, err)
	}

	g.l.WithFields(logrus.Fields{"to": out.To, "subject": mail.ShortSubject(out.Subject)}).Info("Sent mail")
	return nil
}

func (g *Gateway) MarkSeen(ctx context.Context, uids []uint32) error {
	err := g.Connect(ctx)
	if err != nil {
		return err
	}

	err = g.selectFolder()
	if err != nil {
		return g.imapFailure("could not select folder", err)
	}

	err = g.imap.MarkSeen(uids)
	if err != nil {
		return g.imapFailure("could not mark mails as seen", err)
	}

	return nil
}

func (g *Gateway) Move(ctx context.Context, uids []uint32, folder string) error {
	err := g.Connect(ctx)
	if err != nil {
		return err
	}

	err = g.selectFolder()
	if err != nil {
		return g.imapFailure("could not select folder", err)
	}

	notReadyReason, err := g.imap.MoveReady()
	if err != nil {
		return g.imapFailure("could not check move readiness", err)
	}
	if notReadyReason != nil {
		return fmt.Errorf("folder %s not ready for move: %w: %w", g.conf.Folder, domain.ErrTransport, notReadyReason)
	}

	err = g.imap.Move(uids, folder)
	if err != nil {
		return g.imapFailure("could not move mails", err)
	}

	g.l.WithFields(logrus.Fields{"count": len(uids), "folder": folder}).Debug("Moved mails")
	return nil
}

// imapFailure drops the inbound session after a failed command so the next call starts over.
func (g *Gateway) imapFailure(msg string, err error) error {
	g.l.WithError(err).Error(msg)
	_ = g.imap.Close()
	g.imap = nil
	g.selected = false
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrTransport, err)
}

// Close releases both sessions. It is safe to call repeatedly and before anything was opened.
func (g *Gateway) Close() error {
	var errs []error

	if g.imap != nil {
		err := g.imap.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("could not close imap: %w", err))
		}
		g.imap = nil
		g.selected = false
		g.l.Debug("Closed imap session")
	}

	if g.smtp != nil {
		err := g.smtp.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("could not close smtp: %w", err))
		}
		g.smtp = nil
		g.l.Debug("Closed smtp session")
	}

	if len(errs) > 0 {
		g.l.WithError(errors.Join(errs...)).Warn("Could not close sessions cleanly")
		return fmt.Errorf("%w: %w", domain.ErrTransport, errors.Join(errs...))
	}

	return nil
}
