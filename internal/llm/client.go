package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the Gemini SDK behind a strict-JSON completion contract.
// Services depend on the Completer interface below so tests can stub it.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

type Completer interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// CompleteJSON sends the prompt and unmarshals the single JSON object the
// model returns into out. A non-JSON or schema-mismatched response is an
// error; the caller decides whether to persist a failure.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, out any) error {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("llm call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fmt.Errorf("no response from LLM")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			if err := json.Unmarshal([]byte(txt), out); err != nil {
				return fmt.Errorf("failed to parse LLM JSON: %w", err)
			}
			return nil
		}
	}

	return fmt.Errorf("no text content in response")
}

func (c *Client) Close() {
	c.client.Close()
}

// IsQuotaError reports whether err looks like a quota/billing failure from
// the provider. These get a specific user-facing message instead of the raw
// error text.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "billing") ||
		strings.Contains(msg, "429")
}
