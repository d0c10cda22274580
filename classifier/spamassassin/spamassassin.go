// SPDX-License-Identifier: GPL-3.0-or-later
package spamassassin

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/CrawX/go-imap-replier/domain"

	"github.com/sirupsen/logrus"
	"github.com/teamwork/spamc"
)

const SpamAssassinTimeout = 20 * time.Second

type SpamAssassin struct {
	client *spamc.Client
	l      *logrus.Logger
}

func NewSpamassassin(ctx context.Context, host string, l *logrus.Logger) (*SpamAssassin, error) {
	client := spamc.New(host, &net.Dialer{
		Timeout: SpamAssassinTimeout,
	})
	err := client.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not ping SpamAssassin: %w", err)
	}

	l.WithField("host", host).Debug("Connected to SpamAssassin")
	return &SpamAssassin{client: client, l: l}, nil
}

func (sa *SpamAssassin) Check(rawMail []byte) *domain.SpamResult {
	ctx, cancel := context.WithTimeout(context.Background(), SpamAssassinTimeout)
	defer cancel()

	out, err := sa.client.Process(ctx, bytes.NewReader(rawMail), nil)
	if err != nil {
		return errResult(fmt.Errorf("could not check SpamAssassin: %w", err))
	}

	// Only the verdict is needed, not the rewritten message
	err = out.Message.Close()
	if err != nil {
		return errResult(fmt.Errorf("could not close response: %w", err))
	}

	sa.l.WithFields(logrus.Fields{"spam": out.IsSpam, "score": out.Score}).Debug("Checked mail")
	return &domain.SpamResult{
		IsSpam: out.IsSpam,
		Score:  out.Score,
	}
}

func errResult(err error) *domain.SpamResult {
	return &domain.SpamResult{Error: err}
}
