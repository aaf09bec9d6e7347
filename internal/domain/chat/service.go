// internal/domain/chat/service.go
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/pkg/validation"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Request is one user message
type Request struct {
	Message        string `json:"message" validate:"required,max=2000"`
	ConversationID string `json:"conversation_id"`
}

// Reply is the assistant text
type Reply struct {
	Message string `json:"message"`
}

// Response is the assistant's answer to one message
type Response struct {
	Response        Reply            `json:"response"`
	Suggestions     []string         `json:"suggestions"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Topic           string           `json:"topic"`
	ConversationID  string           `json:"conversation_id"`
}

// Upstream produces free-form replies
type Upstream interface {
	Reply(ctx context.Context, req *Request) (string, error)
}

// Service answers chat messages. Replies come from the upstream service when
// one is configured; a recognised topic replaces the reply text and picks the
// suggestion chips.
type Service struct {
	upstream Upstream
	logger   *logrus.Logger
}

// NewService creates a chat service. upstream may be nil.
func NewService(upstream Upstream, logger *logrus.Logger) *Service {
	return &Service{upstream: upstream, logger: logger}
}

// Respond answers req
func (s *Service) Respond(ctx context.Context, req *Request) (*Response, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := validation.Struct(req, "Message is required"); err != nil {
		return nil, err
	}
	if req.ConversationID == "" {
		req.ConversationID = "anonymous"
	}

	text := ""
	var upstreamErr error
	if s.upstream != nil {
		text, upstreamErr = s.upstream.Reply(ctx, req)
		if upstreamErr != nil {
			s.logger.WithError(upstreamErr).WithField("conversation_id", req.ConversationID).Warn("Chat upstream failed")
		}
	}

	resp := &Response{ConversationID: req.ConversationID, Suggestions: []string{}}
	if t, ok := match(req.Message); ok {
		resp.Response.Message = t.reply
		resp.Suggestions = append(resp.Suggestions, t.suggestions...)
		resp.Recommendations = t.recommendations
		resp.Topic = t.name
		return resp, nil
	}

	switch {
	case upstreamErr != nil:
		resp.Response.Message = errorReply
		resp.Suggestions = append(resp.Suggestions, errorSuggestions...)
		resp.Topic = TopicError
	case strings.TrimSpace(text) != "":
		resp.Response.Message = text
		resp.Topic = TopicGeneral
	default:
		resp.Response.Message = defaultReply
		resp.Topic = TopicGeneral
	}
	return resp, nil
}

// QuickAction is a canned prompt shown before the first message
type QuickAction struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Greeting is the opening message of a conversation
type Greeting struct {
	Message      string        `json:"message"`
	Suggestions  []string      `json:"suggestions"`
	QuickActions []QuickAction `json:"quick_actions"`
}

// Greet returns the opening message
func (s *Service) Greet() Greeting {
	return Greeting{
		Message: "Hi there! I'm Ayu, your wellness companion! ✨ I can help you find a healer, discover wellness products, " +
			"or just chat about your wellness journey. What would you like to explore today?",
		Suggestions: []string{"🌿 Find a Healer", "🛍️ Shop Products", "✨ Wellness Tips", "How are you feeling today? 😊"},
		QuickActions: []QuickAction{
			{Text: "🌿 Find a Healer", Action: "I'm looking for a healer to help with my wellness journey"},
			{Text: "🛍️ Shop Products", Action: "Show me wellness products I can buy"},
			{Text: "✨ Wellness Tips", Action: "Give me some wellness tips for today"},
			{Text: "How are you feeling? 😊", Action: "I'd like to chat about how I'm feeling today"},
		},
	}
}

// HTTPUpstream calls a remote chat endpoint that answers
// {"response":{"message":...}}
type HTTPUpstream struct {
	client *resty.Client
	url    string
}

// NewHTTPUpstream creates an upstream client. It reports false when no URL
// is configured.
func NewHTTPUpstream(cfg config.ChatConfig) (*HTTPUpstream, bool) {
	if cfg.URL == "" {
		return nil, false
	}
	client := resty.New().
		SetTimeout(orDefault(cfg.Timeout, 8*time.Second)).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPUpstream{client: client, url: cfg.URL}, true
}

// Reply implements Upstream
func (u *HTTPUpstream) Reply(ctx context.Context, req *Request) (string, error) {
	var out struct {
		Response Reply `json:"response"`
	}
	resp, err := u.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(u.url)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat upstream returned status %d", resp.StatusCode())
	}
	return out.Response.Message, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
