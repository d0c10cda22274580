// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector
type RawImapMail struct {
	Uid     uint32
	RawMail []byte
}

type ImapConnector interface {
	Select(folder string) (uint32, error)
	UnreadUids() ([]uint32, error)
	FetchMails(uids []uint32) ([]*RawImapMail, error)
	MarkSeen(uids []uint32) error
	MoveReady() (error, error)
	Move(uids []uint32, folder string) error

	Close() error
}
