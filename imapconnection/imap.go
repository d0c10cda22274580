// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io"
	"sort"

	"github.com/CrawX/go-imap-replier/config"
	"github.com/CrawX/go-imap-replier/domain"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	move "github.com/emersion/go-imap-move"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

type ImapConnection struct {
	connection    *client.Client
	uidPlusClient *uidplus.Client
	mailDeleter   deleter
	mailMover     mover

	selectedFolder string

	l *logrus.Logger
}

func dial(conf config.MailConfig) (*client.Client, error) {
	if conf.UseSSL {
		return client.DialTLS(conf.ImapAddress(), nil)
	}
	return client.Dial(conf.ImapAddress())
}

// NewImapConnection dials and logs in to the configured server and checks the extensions
// used to move mails. The connection is ready for Select afterwards.
func NewImapConnection(conf config.MailConfig, l *logrus.Logger) (*ImapConnection, error) {
	imapClient, err := dial(conf)
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w", err)
	}

	err = imapClient.Login(conf.Username, conf.Password)
	if err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("could not login to imap: %w", err)
	}

	baseLogger := l.WithFields(logrus.Fields{"server": conf.ImapAddress()})
	baseLogger.Debug("Logged in to server")

	if conf.Compress {
		err = enableCompression(imapClient, baseLogger)
		if err != nil {
			_ = imapClient.Logout()
			return nil, err
		}
	}

	uidPlusClient := uidplus.NewClient(imapClient)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("could not check for UIDPLUS support: %w", err)
	}

	moveClient := move.NewClient(imapClient)
	moveSupported, err := moveClient.SupportMove()
	if err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("could not check for MOVE support: %w", err)
	}

	conn := &ImapConnection{
		connection:    imapClient,
		uidPlusClient: uidPlusClient,
		l:             l,
	}

	if uidPlusSupported {
		baseLogger.Debug("UIDPLUS supported on server, using UID delete")
		conn.mailDeleter = &uidPlusDeleter{
			imapConn: conn,
		}
	} else {
		baseLogger.Debug("UIDPLUS not supported on server, falling back to flag&expunge")
		conn.mailDeleter = &compatibilityDeleter{
			imapConn: conn,
		}
	}

	if moveSupported {
		baseLogger.Debug("MOVE supported on server")
		conn.mailMover = &serverMover{
			client: moveClient,
		}
	} else {
		baseLogger.Debug("MOVE not supported on server, falling back to copy&delete")
		conn.mailMover = &copyMover{
			client: conn,
		}
	}

	return conn, nil
}

func enableCompression(imapClient *client.Client, l *logrus.Entry) error {
	compressClient := compress.NewClient(imapClient)
	supported, err := compressClient.SupportCompress(compress.Deflate)
	if err != nil {
		return fmt.Errorf("could not check for COMPRESS support: %w", err)
	}

	if !supported {
		l.Info("COMPRESS=DEFLATE not supported on server, continuing uncompressed")
		return nil
	}

	err = compressClient.Compress(compress.Deflate)
	if err != nil {
		return fmt.Errorf("could not enable compression: %w", err)
	}
	l.Debug("Enabled COMPRESS=DEFLATE")

	return nil
}

func (ic *ImapConnection) Select(folder string) (uint32, error) {
	m, err := ic.connection.Select(folder, false)
	if err != nil {
		return 0, fmt.Errorf("could not select folder: %w", err)
	}

	ic.selectedFolder = folder
	return m.UidValidity, nil
}

// UnreadUids lists the uids in the selected folder that do not carry the \Seen flag.
func (ic *ImapConnection) UnreadUids() ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := ic.connection.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search unread mails: %w", err)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// FetchMails fetches the complete mails without setting the \Seen flag.
func (ic *ImapConnection) FetchMails(uids []uint32) ([]*domain.RawImapMail, error) {
	if len(uids) == 0 {
		return []*domain.RawImapMail{}, nil
	}

	seqset := uidSet(uids)

	messages := make(chan *imap.Message, 10)
	fullBodySection := &imap.BodySectionName{
		Peek: true,
	}

	fetchItems := []imap.FetchItem{imap.FetchUid, fullBodySection.FetchItem()}
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.UidFetch(seqset, fetchItems, messages)
	}()

	mails := []*domain.RawImapMail{}
	var readErr error
	for msg := range messages {
		if readErr != nil {
			// Drain so UidFetch can finish
			continue
		}

		r := msg.GetBody(fullBodySection)
		if r == nil {
			readErr = fmt.Errorf("server returned no body for uid %d", msg.Uid)
			continue
		}

		rawBody, err := io.ReadAll(r)
		if err != nil {
			readErr = fmt.Errorf("could not read mail body: %w", err)
			continue
		}

		mails = append(
			mails,
			&domain.RawImapMail{
				Uid:     msg.Uid,
				RawMail: rawBody,
			},
		)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch mails: %w", err)
	}
	if readErr != nil {
		return nil, readErr
	}

	return mails, nil
}

func (ic *ImapConnection) MarkSeen(uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}

	err := ic.connection.UidStore(uidSet(uids), imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.SeenFlag}, nil)
	if err != nil {
		return fmt.Errorf("could not set seen flag: %w", err)
	}

	return nil
}

func (ic *ImapConnection) Close() error {
	return ic.connection.Logout()
}

// MoveReady reports through the first return value, wrapping ErrFolderNotReady, when mails
// cannot be moved out of the selected folder right now.
func (ic *ImapConnection) MoveReady() (error, error) {
	return ic.mailMover.moveReady()
}

// Move moves processed mails from the selected folder to folder.
func (ic *ImapConnection) Move(uids []uint32, folder string) error {
	if len(uids) == 0 {
		return nil
	}
	if len(folder) == 0 {
		return fmt.Errorf("no target folder to move %d mails to", len(uids))
	}

	err := ic.mailMover.move(uids, folder)
	if err != nil {
		return err
	}

	ic.l.WithFields(logrus.Fields{
		"uids": uids,
		"from": ic.selectedFolder,
		"to":   folder,
	}).Debug("Moved mails")
	return nil
}

func (ic *ImapConnection) delete(uids []uint32) error {
	return ic.mailDeleter.delete(uids)
}

func (ic *ImapConnection) deleteReady() (error, error) {
	return ic.mailDeleter.deleteReady()
}

func (ic *ImapConnection) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	seqset := uidSet(uids)
	err := ic.connection.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("could set delete flag: %w", err)
	}

	return seqset, nil
}

// The methods below expose the raw client commands the deleters and movers build on.

func (ic *ImapConnection) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return ic.connection.UidSearch(criteria)
}

func (ic *ImapConnection) UidCopy(seqset *imap.SeqSet, dest string) error {
	return ic.connection.UidCopy(seqset, dest)
}

func (ic *ImapConnection) Expunge(ch chan uint32) error {
	return ic.connection.Expunge(ch)
}

func (ic *ImapConnection) UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error {
	return ic.uidPlusClient.UidExpunge(seqSet, ch)
}
