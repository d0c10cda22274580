// SPDX-License-Identifier: GPL-3.0-or-later
package mailgateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/CrawX/go-imap-replier/config"
	"github.com/CrawX/go-imap-replier/domain"
	"github.com/CrawX/go-imap-replier/domain/mocks"
	"github.com/CrawX/go-imap-replier/imapconnection"
	"github.com/CrawX/go-imap-replier/log"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

type fakeSmtp struct {
	sent    []*gomail.Msg
	sendErr error
	closed  int
}

func (f *fakeSmtp) Send(msg *gomail.Msg) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSmtp) Close() error {
	f.closed++
	return nil
}

type smtpDials struct {
	count int
	conns []*fakeSmtp
	err   error
	next  func() *fakeSmtp
}

func (d *smtpDials) dial(_ context.Context, _ config.MailConfig) (smtpConnector, error) {
	d.count++
	if d.err != nil {
		return nil, d.err
	}
	conn := &fakeSmtp{}
	if d.next != nil {
		conn = d.next()
	}
	d.conns = append(d.conns, conn)
	return conn, nil
}

func testConfig() config.MailConfig {
	return config.MailConfig{
		ImapServer: "imap.example.com",
		ImapPort:   993,
		SmtpServer: "smtp.example.com",
		SmtpPort:   465,
		Username:   "support@example.com",
		Password:   "secret",
		UseSSL:     true,
		Folder:     "INBOX",
	}
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func imapDialerFor(conn domain.ImapConnector, dials *int) imapDialer {
	return func(config.MailConfig) (domain.ImapConnector, error) {
		*dials++
		return conn, nil
	}
}

func failingImapDialer(config.MailConfig) (domain.ImapConnector, error) {
	return nil, errors.New("connection refused")
}

func outgoing() *domain.Outgoing {
	return &domain.Outgoing{
		To:      "alice@example.net",
		Subject: "Re: Order",
		Body:    "Your order is on its way.",
	}
}

const testMail = "From: alice@example.net\r\n" +
	"Subject: Order\r\n" +
	"Message-Id: <order@example.net>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"Where is my order #123456?\r\n"

func TestNewGateway(t *testing.T) {
	g := NewGateway(testConfig(), log.Discard())
	assert.NotNil(t, g.dialImap)
	assert.NotNil(t, g.dialSmtp)
	assert.NoError(t, g.Close())
}

func TestGateway_ConnectFailure(t *testing.T) {
	dials := &smtpDials{}
	g := newGateway(testConfig(), failingImapDialer, dials.dial, testLogger())

	err := g.Connect(context.Background())
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Nil(t, g.imap)
}

func TestGateway_ConnectIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	require.NoError(t, g.Connect(context.Background()))
	require.NoError(t, g.Connect(context.Background()))
	assert.Equal(t, 1, imapDials)
}

func TestGateway_ConnectCanceled(t *testing.T) {
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(nil, &imapDials), (&smtpDials{}).dial, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Connect(ctx)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, imapDials)
}

func TestGateway_UnreadConnectFailure(t *testing.T) {
	g := newGateway(testConfig(), failingImapDialer, (&smtpDials{}).dial, testLogger())

	emails, err := g.Unread(context.Background())
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestGateway_UnreadEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	imap.EXPECT().Select("INBOX").Return(uint32(1), nil)
	imap.EXPECT().UnreadUids().Return([]uint32{}, nil)

	emails, err := g.Unread(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
}

func TestGateway_Unread(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	gomock.InOrder(
		imap.EXPECT().Select("INBOX").Return(uint32(1), nil),
		imap.EXPECT().UnreadUids().Return([]uint32{3, 5}, nil),
		imap.EXPECT().FetchMails([]uint32{3, 5}).Return([]*domain.RawImapMail{
			{Uid: 3, RawMail: []byte(testMail)},
			{Uid: 5, RawMail: []byte("Subject: No sender\r\n\r\nbody\r\n")},
		}, nil),
		imap.EXPECT().UnreadUids().Return([]uint32{}, nil),
	)

	emails, err := g.Unread(context.Background())
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, uint32(3), emails[0].Uid)
	assert.Equal(t, "alice@example.net", emails[0].From)
	assert.Equal(t, "Order", emails[0].Subject)
	assert.Contains(t, emails[0].Body, "#123456")
	assert.Equal(t, uint32(5), emails[1].Uid)
	assert.Empty(t, emails[1].From)

	// Second listing reuses the session and the selected folder
	emails, err = g.Unread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, emails)
	assert.Equal(t, 1, imapDials)
}

func TestGateway_UnreadMalformedFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	malformed := "Subject: Broken\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"!!!! not base64 !!!!\r\n"

	imap.EXPECT().Select("INBOX").Return(uint32(1), nil)
	imap.EXPECT().UnreadUids().Return([]uint32{1, 2}, nil)
	imap.EXPECT().FetchMails([]uint32{1, 2}).Return([]*domain.RawImapMail{
		{Uid: 1, RawMail: []byte(testMail)},
		{Uid: 2, RawMail: []byte(malformed)},
	}, nil)

	emails, err := g.Unread(context.Background())
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
	assert.True(t, errors.Is(err, domain.ErrContent))
}

func TestGateway_UnreadFetchFailureDropsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	imap.EXPECT().Select("INBOX").Return(uint32(1), nil).Times(2)
	imap.EXPECT().UnreadUids().Return([]uint32{1}, nil)
	imap.EXPECT().FetchMails([]uint32{1}).Return(nil, errors.New("connection reset"))
	imap.EXPECT().Close().Return(nil)
	imap.EXPECT().UnreadUids().Return([]uint32{}, nil)

	emails, err := g.Unread(context.Background())
	assert.Empty(t, emails)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Nil(t, g.imap)

	emails, err = g.Unread(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, emails)
	assert.Equal(t, 2, imapDials)
}

func TestGateway_SendReusesSession(t *testing.T) {
	dials := &smtpDials{}
	g := newGateway(testConfig(), failingImapDialer, dials.dial, testLogger())

	for i := 0; i < 5; i++ {
		require.NoError(t, g.Send(context.Background(), outgoing()))
	}

	assert.Equal(t, 1, dials.count)
	require.Len(t, dials.conns, 1)
	assert.Len(t, dials.conns[0].sent, 5)
	assert.Equal(t, []string{"<support@example.com>"}, dials.conns[0].sent[0].GetFromString())
}

func TestGateway_SendDialFailure(t *testing.T) {
	dials := &smtpDials{err: errors.New("tls handshake failed")}
	g := newGateway(testConfig(), failingImapDialer, dials.dial, testLogger())

	err := g.Send(context.Background(), outgoing())
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Nil(t, g.smtp)
}

func TestGateway_SendFailureDropsSession(t *testing.T) {
	first := true
	dials := &smtpDials{next: func() *fakeSmtp {
		if first {
			first = false
			return &fakeSmtp{sendErr: errors.New("connection reset")}
		}
		return &fakeSmtp{}
	}}
	g := newGateway(testConfig(), failingImapDialer, dials.dial, testLogger())

	err := g.Send(context.Background(), outgoing())
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Equal(t, 1, dials.conns[0].closed)

	require.NoError(t, g.Send(context.Background(), outgoing()))
	assert.Equal(t, 2, dials.count)
	assert.Len(t, dials.conns[1].sent, 1)
}

func TestGateway_SendMissingAttachment(t *testing.T) {
	dials := &smtpDials{}
	g := newGateway(testConfig(), failingImapDialer, dials.dial, testLogger())

	out := outgoing()
	out.Attachments = []string{"/nonexistent/invoice.pdf"}
	err := g.Send(context.Background(), out)
	assert.True(t, errors.Is(err, domain.ErrContent))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 0, dials.count)
}

func TestGateway_MarkSeenAndMove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	gomock.InOrder(
		imap.EXPECT().Select("INBOX").Return(uint32(1), nil),
		imap.EXPECT().MarkSeen([]uint32{4}).Return(nil),
		imap.EXPECT().MoveReady().Return(nil, nil),
		imap.EXPECT().Move([]uint32{4}, "Answered").Return(nil),
	)

	require.NoError(t, g.MarkSeen(context.Background(), []uint32{4}))
	require.NoError(t, g.Move(context.Background(), []uint32{4}, "Answered"))
}

func TestGateway_MoveNotReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())

	notReady := fmt.Errorf("%w: %w", imapconnection.ErrFolderNotReady, imapconnection.ErrItemsWithDeletedFlagPresent)
	imap.EXPECT().Select("INBOX").Return(uint32(1), nil)
	imap.EXPECT().MoveReady().Return(notReady, nil)

	err := g.Move(context.Background(), []uint32{4}, "Answered")
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.True(t, errors.Is(err, imapconnection.ErrFolderNotReady))
	assert.EqualError(t, err, "folder INBOX not ready for move: transport failure: folder not ready for move: folder has previous items with delete flag set")
}

func TestGateway_CloseIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Never opened
	g := newGateway(testConfig(), failingImapDialer, (&smtpDials{}).dial, testLogger())
	assert.NoError(t, g.Close())
	assert.NoError(t, g.Close())

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	dials := &smtpDials{}
	g = newGateway(testConfig(), imapDialerFor(imap, &imapDials), dials.dial, testLogger())
	require.NoError(t, g.Connect(context.Background()))
	require.NoError(t, g.Send(context.Background(), outgoing()))

	imap.EXPECT().Close().Return(nil).Times(1)
	assert.NoError(t, g.Close())
	assert.NoError(t, g.Close())
	assert.Equal(t, 1, dials.conns[0].closed)
}

func TestGateway_CloseReportsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	imap := mocks.NewMockImapConnector(ctrl)
	imapDials := 0
	g := newGateway(testConfig(), imapDialerFor(imap, &imapDials), (&smtpDials{}).dial, testLogger())
	require.NoError(t, g.Connect(context.Background()))

	imap.EXPECT().Close().Return(errors.New("logout failed"))
	err := g.Close()
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Nil(t, g.imap)
	assert.NoError(t, g.Close())
}
