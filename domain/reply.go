// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/replyengine.go -package=mocks . ReplyEngine
type Intent struct {
	Intent    string   `json:"intent"`
	Sentiment string   `json:"sentiment"`
	Urgency   string   `json:"urgency"`
	KeyInfo   []string `json:"key_info"`
}

const (
	FallbackIntent    = "unknown"
	FallbackSentiment = "neutral"
	FallbackUrgency   = "medium"
)

// UnknownIntent is the classification used whenever the model could not be asked or its
// answer could not be understood.
func UnknownIntent() *Intent {
	return &Intent{
		Intent:    FallbackIntent,
		Sentiment: FallbackSentiment,
		Urgency:   FallbackUrgency,
		KeyInfo:   []string{},
	}
}

type HistoryEntry struct {
	Date time.Time
	Body string
}

type ReplyEngine interface {
	Classify(ctx context.Context, body string) (*Intent, error)
	Reply(ctx context.Context, body string, intent *Intent, history []HistoryEntry) (string, error)
}
