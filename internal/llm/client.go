// Package llm wraps an OpenAI-compatible chat completions endpoint used to
// generate grounded answers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
)

const collaboratorName = "answer generator"

// systemPrompt directs the model to decline rather than fabricate when the
// retrieved context is insufficient.
const systemPrompt = "You are a question-answering assistant for a single uploaded document. " +
	"Answer using only the provided context excerpts. " +
	"If the context does not contain the answer, say you cannot answer from this document. " +
	"Do not invent information."

// Client generates answers through the /chat/completions API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Generate answers the question from the retrieved context excerpts.
func (c *Client) Generate(ctx context.Context, question string, contexts []string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Context:\n")
	for i, text := range contexts {
		fmt.Fprintf(&prompt, "[%d] %s\n\n", i+1, text)
	}
	prompt.WriteString("Question: ")
	prompt.WriteString(question)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.String()},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errs.CollaboratorError{Collaborator: collaboratorName, Unreachable: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errs.CollaboratorError{Collaborator: collaboratorName, Unreachable: true, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("empty completion"),
		}
	}

	return chatResp.Choices[0].Message.Content, nil
}
