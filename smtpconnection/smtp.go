// SPDX-License-Identifier: GPL-3.0-or-later
package smtpconnection

import (
	"context"
	"fmt"

	"github.com/CrawX/go-imap-replier/config"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type SmtpConnection struct {
	client *mail.Client
	server string

	l *logrus.Logger
}

func clientOptions(conf config.MailConfig) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(conf.SmtpPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(conf.Username),
		mail.WithPassword(conf.Password),
	}

	if conf.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	return opts
}

// NewSmtpConnection dials and authenticates against the configured submission server. The
// session stays open until Close is called.
func NewSmtpConnection(ctx context.Context, conf config.MailConfig, l *logrus.Logger) (*SmtpConnection, error) {
	client, err := mail.NewClient(conf.SmtpServer, clientOptions(conf)...)
	if err != nil {
		return nil, fmt.Errorf("could not create smtp client: %w", err)
	}

	err = client.DialWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not dial to smtp: %w", err)
	}

	server := fmt.Sprintf("%s:%d", conf.SmtpServer, conf.SmtpPort)
	l.WithFields(logrus.Fields{"server": server, "ssl": conf.UseSSL}).Debug("Connected to smtp server")

	return &SmtpConnection{
		client: client,
		server: server,
		l:      l,
	}, nil
}

func (sc *SmtpConnection) Send(msg *mail.Msg) error {
	err := sc.client.Send(msg)
	if err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}

	return nil
}

func (sc *SmtpConnection) Close() error {
	err := sc.client.Close()
	if err != nil {
		return fmt.Errorf("could not close smtp connection: %w", err)
	}

	sc.l.WithField("server", sc.server).Debug("Closed smtp connection")
	return nil
}
