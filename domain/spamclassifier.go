// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/spamclassifier.go -package=mocks . SpamClassifier
package domain

type SpamResult struct {
	IsSpam bool
	Score  float64
	Error  error
}

type SpamClassifier interface {
	Check(rawMail []byte) *SpamResult
}
