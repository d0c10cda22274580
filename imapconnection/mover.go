// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

//go:generate mockgen -destination=mover_mocks_test.go -package=imapconnection -source mover.go
import (
	"errors"
	"fmt"

	"github.com/emersion/go-imap"
)

// ErrFolderNotReady is returned as the not-ready reason when processed mail cannot be moved
// out of the selected folder without side effects on other mails.
var ErrFolderNotReady = errors.New("folder not ready for move")

type mover interface {
	move(uids []uint32, folder string) error
	moveReady() (error, error)
}

type moveCommandClient interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

// serverMover relies on the MOVE extension.
type serverMover struct {
	client moveCommandClient
}

func (s *serverMover) move(uids []uint32, folder string) error {
	err := s.client.UidMove(uidSet(uids), folder)
	if err != nil {
		return fmt.Errorf("could not move mails to %s: %w", folder, err)
	}

	return nil
}

func (s *serverMover) moveReady() (error, error) {
	return nil, nil
}

type copyDeleteClient interface {
	UidCopy(seqset *imap.SeqSet, dest string) error
	delete(uids []uint32) error
	deleteReady() (error, error)
}

// copyMover copies to the target folder and deletes the originals. If the delete fails
// the mails remain in both folders.
type copyMover struct {
	client copyDeleteClient
}

func (c *copyMover) move(uids []uint32, folder string) error {
	notReadyReason, err := c.moveReady()
	if err != nil {
		return fmt.Errorf("could not check move readiness: %w", err)
	}
	if notReadyReason != nil {
		return notReadyReason
	}

	err = c.client.UidCopy(uidSet(uids), folder)
	if err != nil {
		return fmt.Errorf("could not copy mails to %s: %w", folder, err)
	}

	err = c.client.delete(uids)
	if err != nil {
		return fmt.Errorf("copied mails to %s but could not delete originals: %w", folder, err)
	}

	return nil
}

func (c *copyMover) moveReady() (error, error) {
	reason, err := c.client.deleteReady()
	if err != nil || reason == nil {
		return nil, err
	}

	return fmt.Errorf("%w: %w", ErrFolderNotReady, reason), nil
}

func uidSet(uids []uint32) *imap.SeqSet {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	return seqset
}
