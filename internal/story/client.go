// Package story asks an OpenAI-compatible completion endpoint for a short
// narrative about a memory group. Calls are best-effort: failures map to
// sentinel errors and the timeline renders without a narrative.
package story

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"photovault/internal/apperr"
	"photovault/internal/models"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	cb   *gobreaker.CircuitBreaker
	log  *zap.SugaredLogger
}

func NewClient(cfg Config, log *zap.SugaredLogger) *Client {
	st := gobreaker.Settings{
		Name:     "story-upstream",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Infow("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		cb:   gobreaker.NewCircuitBreaker(st),
		log:  log,
	}
}

// Enabled reports whether an upstream key is configured.
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate returns a short narrative for the memory, optionally steered by
// a caller-supplied prompt. No retries: a failure simply leaves the group
// without a narrative.
func (c *Client) Generate(ctx context.Context, prompt string, mem models.Memory) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("%w: story generation not configured", apperr.ErrUpstream)
	}
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.call(ctx, buildPrompt(prompt, mem))
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("%w: story upstream unavailable", apperr.ErrUpstream)
		}
		return "", err
	}
	return out.(string), nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write warm, two-sentence captions for personal photo memories."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 120,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: invalid api key", apperr.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: upstream quota exceeded", apperr.ErrRateLimited)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: upstream rejected request (%d)", apperr.ErrBadRequest, resp.StatusCode)
	default:
		return "", fmt.Errorf("%w: upstream status %d", apperr.ErrUpstream, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode upstream response: %v", apperr.ErrUpstream, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty upstream response", apperr.ErrUpstream)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildPrompt(prompt string, mem models.Memory) string {
	var b strings.Builder
	if prompt != "" {
		b.WriteString(prompt)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Write a short narrative for a photo memory titled %q from %s, containing %d photos",
		mem.Title, mem.Date, mem.PhotoCount)
	if mem.DominantCategory != "" {
		fmt.Fprintf(&b, ", mostly about %s", mem.DominantCategory)
	}
	b.WriteString(".")
	return b.String()
}
