package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofriends/rights-engine/pkg/rights/render"
)

// Client calls an OpenAI-compatible endpoint for chat completions and
// embeddings. It is entirely optional: the assistant answers from the
// knowledge base alone when no client is configured.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	EmbedModel string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enabled reports whether the client is configured for chat.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != "" && c.Model != ""
}

// Summarize restates a rendered response in plainer language. The prompt
// restricts the model to the rendered content; it must not add advice of
// its own.
func (c *Client) Summarize(ctx context.Context, query string, resp render.Response) (string, error) {
	system := "You are a helpful assistant for migrant workers in Singapore. " +
		"Restate the provided guidance in simple, friendly language. " +
		"Use ONLY the provided text. Keep every phone number. " +
		"Do not give legal advice and keep the closing disclaimer."
	user := fmt.Sprintf("Question: %s\n\nGuidance:\n%s\n", query, resp.Text)
	return c.Chat(ctx, system, user)
}

// Chat sends one system+user exchange and returns the completion text.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.send(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for text, for the embedding retriever.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c == nil || c.BaseURL == "" || c.EmbedModel == "" {
		return nil, fmt.Errorf("llm: base URL and embed model required")
	}
	reqBody, err := json.Marshal(embedRequest{Model: c.EmbedModel, Input: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("llm: empty embedding response")
	}
	return payload.Data[0].Embedding, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	return &payload, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
