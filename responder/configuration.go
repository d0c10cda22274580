// SPDX-License-Identifier: GPL-3.0-or-later
package responder

import (
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-replier/domain"
)

type ConfigFunc func(c *configuration) error

// DryRun drafts replies without sending them or touching the mailbox.
func DryRun() ConfigFunc {
	return func(c *configuration) error {
		c.DryRun = true

		return nil
	}
}

func MarkSeen() ConfigFunc {
	return func(c *configuration) error {
		c.MarkSeen = true

		return nil
	}
}

func MoveProcessed(processedFolder string) ConfigFunc {
	return func(c *configuration) error {
		if len(processedFolder) == 0 {
			return fmt.Errorf("ProcessedFolder cannot be null")
		}

		c.MoveProcessed = true
		c.ProcessedFolder = processedFolder
		return nil
	}
}

func UseJournal(journal domain.Journal) ConfigFunc {
	return func(c *configuration) error {
		if journal == nil {
			return fmt.Errorf("Journal cannot be null")
		}

		c.Journal = journal
		return nil
	}
}

func FilterSpam(classifier domain.SpamClassifier) ConfigFunc {
	return func(c *configuration) error {
		if classifier == nil {
			return fmt.Errorf("SpamClassifier cannot be null")
		}

		c.SpamClassifier = classifier
		return nil
	}
}

// OwnAddresses lists the addresses the responder sends from. Mail from them is never answered.
func OwnAddresses(addresses ...string) ConfigFunc {
	return func(c *configuration) error {
		for _, address := range addresses {
			address = strings.TrimSpace(address)
			if len(address) == 0 {
				return fmt.Errorf("OwnAddress cannot be null")
			}

			c.OwnAddresses = append(c.OwnAddresses, address)
		}

		return nil
	}
}

type configuration struct {
	DryRun bool

	MarkSeen        bool
	MoveProcessed   bool
	ProcessedFolder string

	OwnAddresses []string

	Journal        domain.Journal
	SpamClassifier domain.SpamClassifier
}
