// SPDX-License-Identifier: GPL-3.0-or-later
package replyengine

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/CrawX/go-imap-replier/config"
	"github.com/CrawX/go-imap-replier/domain"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Apology is sent in place of a generated reply whenever generation fails.
const Apology = "Sorry, I am unable to generate a reply right now. Please try again later."

const historyLimit = 3

var htmlTag = regexp.MustCompile(`(?i)</?(p|br|hr|div|span|b|strong|i|em|u|ul|ol|li|a|h[1-6]|html|head|body|table|tr|td|th|blockquote|pre|code|script|style)(\s[^>]*)?/?>`)

const classificationSystemPrompt = "You are a professional email analysis assistant responsible for identifying the intent and key information of emails."

const classificationPrompt = `Analyze the following email and determine:
1. The main intent (for example inquiry, complaint, suggestion)
2. The sentiment (positive, negative, neutral)
3. The urgency (high, medium, low)
4. The key information it contains

Email:
%s

Answer with a JSON object only, using the keys "intent", "sentiment", "urgency" and "key_info" (a list of strings).`

const replyPrompt = `Write a professional reply email based on the following information:

%s

The reply must:
1. Fit the intent and sentiment of the email
2. Respond specifically to the key information
3. Stay professional, friendly and empathetic
4. Use natural, fluent language
5. Avoid templated phrases

Return only the reply text without any other information.`

// Engine talks to an OpenAI compatible chat completion API. It keeps no state between
// calls apart from the API client.
type Engine struct {
	client    *openai.Client
	conf      config.LLMConfig
	sanitizer *bluemonday.Policy

	l *logrus.Logger
}

func NewEngine(conf config.LLMConfig, l *logrus.Logger) *Engine {
	clientConfig := openai.DefaultConfig(conf.ApiKey)
	if len(strings.TrimSpace(conf.BaseURL)) > 0 {
		clientConfig.BaseURL = strings.TrimRight(conf.BaseURL, "/")
	}

	return &Engine{
		client:    openai.NewClientWithConfig(clientConfig),
		conf:      conf,
		sanitizer: bluemonday.StrictPolicy(),
		l:         l,
	}
}

func (e *Engine) complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	response, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.conf.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature(e.conf.Temperature),
		MaxTokens:   e.conf.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("could not create chat completion: %w: %w", domain.ErrCompletion, err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat completion without choices: %w", domain.ErrMalformed)
	}

	return response.Choices[0].Message.Content, nil
}

// temperature keeps a configured 0 in the request, the client omits zero values.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// Classify asks the model for the intent of an email. The result is never nil: when the
// model cannot be reached or its answer is not understood the unknown intent is returned
// together with the error.
func (e *Engine) Classify(ctx context.Context, body string) (*domain.Intent, error) {
	content, err := e.complete(ctx, classificationSystemPrompt, fmt.Sprintf(classificationPrompt, body))
	if err != nil {
		e.l.WithError(err).Error("Could not classify mail")
		return domain.UnknownIntent(), err
	}

	intent, err := parseIntent(content)
	if err != nil {
		e.l.WithError(err).WithField("content", content).Warn("Could not parse classification")
		return domain.UnknownIntent(), err
	}

	e.l.WithFields(logrus.Fields{
		"intent":    intent.Intent,
		"sentiment": intent.Sentiment,
		"urgency":   intent.Urgency,
	}).Info("Classified mail")
	return intent, nil
}

func parseIntent(content string) (*domain.Intent, error) {
	content = strings.TrimSpace(content)

	// Models like to wrap JSON in a markdown code fence
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in classification: %w", domain.ErrMalformed)
	}

	intent := &domain.Intent{}
	err := json.Unmarshal([]byte(content[start:end+1]), intent)
	if err != nil {
		return nil, fmt.Errorf("could not decode classification: %w: %w", domain.ErrMalformed, err)
	}

	if len(strings.TrimSpace(intent.Intent)) == 0 {
		intent.Intent = domain.FallbackIntent
	}
	if len(strings.TrimSpace(intent.Sentiment)) == 0 {
		intent.Sentiment = domain.FallbackSentiment
	}
	if len(strings.TrimSpace(intent.Urgency)) == 0 {
		intent.Urgency = domain.FallbackUrgency
	}
	if intent.KeyInfo == nil {
		intent.KeyInfo = []string{}
	}

	return intent, nil
}

// Reply drafts an answer to body. On failure the Apology is returned together with the error.
func (e *Engine) Reply(ctx context.Context, body string, intent *domain.Intent, history []domain.HistoryEntry) (string, error) {
	if intent == nil {
		intent = domain.UnknownIntent()
	}

	content, err := e.complete(ctx, e.conf.SystemPrompt, fmt.Sprintf(replyPrompt, replyContext(body, intent, history)))
	if err != nil {
		e.l.WithError(err).Error("Could not generate reply")
		return Apology, err
	}

	reply := strings.TrimSpace(e.plainText(content))
	if len(reply) == 0 {
		err = fmt.Errorf("empty reply: %w", domain.ErrMalformed)
		e.l.WithError(err).Error("Could not generate reply")
		return Apology, err
	}

	e.l.WithField("length", len(reply)).Info("Generated reply")
	return reply, nil
}

// plainText strips markup when the model answered in HTML. Plain text is left alone so
// angle-bracketed addresses like <billing@example.com> survive.
func (e *Engine) plainText(content string) string {
	if !htmlTag.MatchString(content) {
		return content
	}

	return html.UnescapeString(e.sanitizer.Sanitize(content))
}

func replyContext(body string, intent *domain.Intent, history []domain.HistoryEntry) string {
	sb := &strings.Builder{}
	sb.WriteString("Intent analysis:\n")
	fmt.Fprintf(sb, "- Intent: %s\n", intent.Intent)
	fmt.Fprintf(sb, "- Sentiment: %s\n", intent.Sentiment)
	fmt.Fprintf(sb, "- Urgency: %s\n", intent.Urgency)
	fmt.Fprintf(sb, "- Key information: %s\n", strings.Join(intent.KeyInfo, "; "))
	sb.WriteString("\nOriginal email:\n")
	sb.WriteString(body)

	if len(history) > 0 {
		if len(history) > historyLimit {
			history = history[len(history)-historyLimit:]
		}

		sb.WriteString("\n\nConversation history:")
		for _, entry := range history {
			fmt.Fprintf(sb, "\n- %s: %s", entry.Date.Format("2006-01-02 15:04"), entry.Body)
		}
	}

	return sb.String()
}

// Ping sends a minimal completion to verify credentials and model.
func (e *Engine) Ping(ctx context.Context) error {
	content, err := e.complete(ctx, "You are a connectivity check.", "Reply with OK.")
	if err != nil {
		return err
	}

	e.l.WithField("content", content).Debug("Completion API reachable")
	return nil
}
