// Package openai is a minimal client for the two OpenAI capabilities the
// service consumes: vision chat completions constrained to JSON output, and
// DALL-E image generation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	textModel  = "gpt-4o"
	imageModel = "dall-e-3"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateJSON sends one instruction block plus the given images to the chat
// model and returns the raw response text, which the caller is expected to
// parse and validate as JSON.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, imageURLs []string, maxTokens int) (string, error) {
	content := make([]contentPart, 0, len(imageURLs)+1)
	content = append(content, contentPart{Type: "text", Text: prompt})
	for _, u := range imageURLs {
		content = append(content, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: u, Detail: "high"},
		})
	}

	reqBody := chatRequest{
		Model:          textModel,
		Messages:       []chatMessage{{Role: "user", Content: content}},
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      maxTokens,
	}

	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one 1024x1024 image for the prompt and returns its
// ephemeral URL. Vivid rendering is used for the Trendy tone, natural for the
// rest.
func (c *Client) GenerateImage(ctx context.Context, prompt string, vivid bool) (string, error) {
	style := "natural"
	if vivid {
		style = "vivid"
	}

	reqBody := imageRequest{
		Model:   imageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "hd",
		Style:   style,
	}

	var resp imageResponse
	if err := c.post(ctx, "/images/generations", reqBody, &resp); err != nil {
		return "", err
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no url")
	}

	return resp.Data[0].URL, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai %s: status %d, body: %s", path, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	return nil
}
