package chatgpt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/page-summarizer/pkg/metrics"
)

const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

// ErrMissingAPIKey is returned before any network traffic when no key is set.
var ErrMissingAPIKey = errors.New("chatgpt api key cannot be empty")

// Message mirrors the OpenAI chat message structure.
type Message struct {
	Role    string
	Content string
}

// ChatCompletionRequest is one chat completion call. APIKey belongs to the
// caller and is only ever placed in the Authorization header.
type ChatCompletionRequest struct {
	APIKey      string
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Choice is a single completion alternative.
type Choice struct {
	Message      Message
	FinishReason string
}

// ChatCompletionResponse captures the fields the service consumes.
type ChatCompletionResponse struct {
	Choices []Choice
	Usage   metrics.TokenUsage
}

// Client performs chat completion calls with a per-request API key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client. An empty baseURL uses the SDK default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateChatCompletion triggers a sync chat completion call.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return ChatCompletionResponse{}, ErrMissingAPIKey
	}

	resp, err := c.sdk(req.APIKey).CreateChatCompletion(ctx, toSDKRequest(req))
	if err != nil {
		return ChatCompletionResponse{}, err
	}

	out := ChatCompletionResponse{
		Choices: make([]Choice, 0, len(resp.Choices)),
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Message:      Message{Role: choice.Message.Role, Content: choice.Message.Content},
			FinishReason: string(choice.FinishReason),
		})
	}
	return out, nil
}

func (c *Client) sdk(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(cfg)
}

func toSDKRequest(req ChatCompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}
