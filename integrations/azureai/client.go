package azureai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIVersion  = "2024-08-01-preview"
	defaultDeployment  = "gpt-4o"
	defaultHTTPTimeout = 60 * time.Second

	chatTemperature = 0.7
	chatMaxTokens   = 500
)

// Client calls an Azure OpenAI chat-completions deployment. Generation of
// structured documents goes through GenerateObject, which constrains the
// model with a strict JSON schema; the advisor chat uses Chat.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	http       *http.Client
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("AZURE_OPENAI_API_KEY missing")
	}
	endpoint := strings.TrimRight(os.Getenv("AZURE_OPENAI_ENDPOINT"), "/")
	if endpoint == "" {
		return nil, errors.New("AZURE_OPENAI_ENDPOINT missing")
	}
	deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")
	if deployment == "" {
		deployment = defaultDeployment
	}
	apiVersion := os.Getenv("AZURE_OPENAI_API_VERSION")
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}

	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: deployment,
		apiVersion: apiVersion,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// GenerateObject runs one schema-constrained completion and decodes the
// returned document into out. The schema must be a strict JSON schema; the
// model either conforms or the call fails.
func (c *Client) GenerateObject(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error {
	if schemaName == "" || schema == nil {
		return errors.New("schema required")
	}

	payload := chatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   schemaName,
				Strict: true,
				Schema: schema,
			},
		},
	}

	content, err := c.complete(ctx, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode model JSON: %w", err)
	}
	return nil
}

// Chat runs a plain conversational completion over the given history.
func (c *Client) Chat(ctx context.Context, system string, messages []ChatMessage) (string, error) {
	payload := chatCompletionRequest{
		Messages:    append([]ChatMessage{{Role: "system", Content: system}}, messages...),
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}
	return c.complete(ctx, payload)
}

func (c *Client) complete(ctx context.Context, payload chatCompletionRequest) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("azure openai status %d: %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 {
		if out.Error != nil {
			return "", fmt.Errorf("azure openai status %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("azure openai status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty azure openai response")
	}
	choice := out.Choices[0]
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", errors.New("empty azure openai message content")
	}
	return choice.Message.Content, nil
}
