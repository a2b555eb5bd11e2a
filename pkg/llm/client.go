package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// ClaudeModel is the model used when none is configured.
	ClaudeModel = "claude-sonnet-4-20250514"
	// DefaultMaxTokens caps the length of a generated roadmap.
	DefaultMaxTokens = 4096
	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 120 * time.Second
)

// Client generates roadmap narratives with the Claude API. Requests are made
// exactly once; retries are disabled.
type Client struct {
	sdk       anthropic.Client
	model     string
	maxTokens int64
	logger    *logrus.Logger
}

// ClientOption customises a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	endpoint  string
	timeout   time.Duration
	maxTokens int64
	logger    *logrus.Logger
}

// WithEndpoint points the client at a different API base URL.
func WithEndpoint(endpoint string) (opt ClientOption) {
	opt = func(o *clientOptions) { o.endpoint = endpoint }
	return opt
}

// WithTimeout sets the HTTP timeout for a request.
func WithTimeout(timeout time.Duration) (opt ClientOption) {
	opt = func(o *clientOptions) { o.timeout = timeout }
	return opt
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(maxTokens int64) (opt ClientOption) {
	opt = func(o *clientOptions) { o.maxTokens = maxTokens }
	return opt
}

// WithLogger sets the logger. The logrus standard logger is used otherwise.
func WithLogger(logger *logrus.Logger) (opt ClientOption) {
	opt = func(o *clientOptions) { o.logger = logger }
	return opt
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string, opts ...ClientOption) (client *Client) {
	if model == "" {
		model = ClaudeModel
	}

	o := clientOptions{
		timeout:   DefaultTimeout,
		maxTokens: DefaultMaxTokens,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: o.timeout}),
	}
	if o.endpoint != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(o.endpoint))
	}

	client = &Client{
		sdk:       anthropic.NewClient(sdkOpts...),
		model:     model,
		maxTokens: o.maxTokens,
		logger:    o.logger,
	}
	return client
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() (model string) {
	model = c.model
	return model
}

// Generate sends prompt as a single user message and returns the reply text.
// Every failure is reported as a *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (text string, err error) {
	c.logger.WithFields(logrus.Fields{
		"model":        c.model,
		"prompt_chars": len(prompt),
	}).Debug("sending generation request")

	start := time.Now()

	var msg *anthropic.Message
	msg, err = c.sdk.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		err = &GenerationError{Model: c.model, Err: errors.Wrap(err, "Claude API request failed")}
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text = strings.TrimSpace(stripCodeFence(sb.String()))
	if text == "" {
		err = &GenerationError{Model: c.model, Err: errors.New("no text content in Claude response")}
		return text, err
	}

	c.logger.WithFields(logrus.Fields{
		"model":         c.model,
		"elapsed":       time.Since(start).Round(time.Millisecond),
		"input_tokens":  msg.Usage.InputTokens,
		"output_tokens": msg.Usage.OutputTokens,
	}).Debug("generation complete")

	return text, err
}

// stripCodeFence removes a fence wrapped around the whole reply, e.g.
// "```markdown\n...\n```". Replies without a leading fence are returned as is.
func stripCodeFence(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		cleaned = text
		return cleaned
	}

	// Drop the opening fence line, language tag included
	start := strings.IndexByte(cleaned, '\n')
	if start == -1 {
		cleaned = text
		return cleaned
	}

	cleaned = strings.TrimRight(cleaned[start+1:len(cleaned)-3], " \r\n")
	return cleaned
}
