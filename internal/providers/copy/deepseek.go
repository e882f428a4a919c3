package copy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"draftflow/internal/domain"
)

// DeepSeekOptions configures the DeepSeek-backed enhancer. The API key is an
// explicit dependency injected here; there is no process-wide key state.
type DeepSeekOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Enhancer
	OnFallback func(reason string, err error)
}

// DeepSeekEnhancer calls the DeepSeek chat-completions API (OpenAI-compatible)
// for product copy. Every failure routes through the fallback with an
// observable reason.
type DeepSeekEnhancer struct {
	apiKey     string
	model      string
	baseURL    string
	client     *http.Client
	fallback   Enhancer
	onFallback func(reason string, err error)
}

const (
	deepSeekDefaultTimeout = 15 * time.Second
	deepSeekDefaultModel   = "deepseek-chat"
	deepSeekDefaultBaseURL = "https://api.deepseek.com"
)

type deepSeekChatRequest struct {
	Model       string            `json:"model"`
	Messages    []deepSeekMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
}

type deepSeekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepSeekChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewDeepSeekEnhancer(opts DeepSeekOptions) (*DeepSeekEnhancer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("deepseek api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = deepSeekDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = deepSeekDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: deepSeekDefaultTimeout}
	}
	return &DeepSeekEnhancer{
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		baseURL:    baseURL,
		client:     client,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (d *DeepSeekEnhancer) Enhance(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	payload := deepSeekChatRequest{
		Model:       d.model,
		Temperature: 0.7,
		MaxTokens:   300,
		Messages: []deepSeekMessage{
			{Role: "user", Content: buildCopyPrompt(req)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return d.useFallback(ctx, req, "encode_request", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", d.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return d.useFallback(ctx, req, "build_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return d.useFallback(ctx, req, "http_request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return d.useFallback(ctx, req, fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("deepseek status %d", resp.StatusCode))
	}
	var out deepSeekChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return d.useFallback(ctx, req, "decode_response", err)
	}
	if len(out.Choices) == 0 {
		return d.useFallback(ctx, req, "empty_choices", errors.New("no choices"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return d.useFallback(ctx, req, "empty_response", errors.New("empty response"))
	}
	parsed, err := parseModelPayload(text)
	if err != nil {
		return d.useFallback(ctx, req, "parse_payload", err)
	}
	title := strings.TrimSpace(parsed.Title)
	points := normalizePoints(parsed.SellingPoints)
	if title == "" || len(points) == 0 {
		return d.useFallback(ctx, req, "incomplete_payload", errors.New("missing title or selling points"))
	}
	return &CopyResult{
		Title:         title,
		SellingPoints: points,
		Metadata:      map[string]string{"locale": req.Locale},
		Provider:      deepSeekProviderName,
	}, nil
}

func (d *DeepSeekEnhancer) useFallback(ctx context.Context, req CopyRequest, reason string, cause error) (*CopyResult, error) {
	if d.onFallback != nil {
		d.onFallback(reason, cause)
	}
	if d.fallback == nil {
		if cause != nil {
			return nil, fmt.Errorf("%w: deepseek %s: %v", domain.ErrProviderFailure, reason, cause)
		}
		return nil, fmt.Errorf("%w: deepseek %s", domain.ErrProviderFailure, reason)
	}
	res, err := d.fallback.Enhance(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.Metadata == nil {
		res.Metadata = map[string]string{}
	}
	res.Metadata["fallback_reason"] = reason
	return res, nil
}

var _ Enhancer = (*DeepSeekEnhancer)(nil)
