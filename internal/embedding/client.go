// Package embedding wraps an OpenAI-compatible embeddings endpoint.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
)

const collaboratorName = "embedding provider"

// Client generates embeddings through the /embeddings API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, model string, dimensions int) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	if dimensions == 0 {
		dimensions = 1536
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		dimensions: dimensions,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type embeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed generates an embedding for a single text.
func (c *Client) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request. The
// returned slice is index-aligned with the input.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := embeddingRequest{
		Input:      texts,
		Model:      c.model,
		Dimensions: c.dimensions,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.CollaboratorError{Collaborator: collaboratorName, Unreachable: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.CollaboratorError{Collaborator: collaboratorName, Unreachable: true, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(embResp.Data) != len(texts) {
		return nil, &errs.CollaboratorError{
			Collaborator: collaboratorName,
			Err:          fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Data)),
		}
	}

	vectors := make([]pgvector.Vector, len(texts))
	for _, data := range embResp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, &errs.CollaboratorError{
				Collaborator: collaboratorName,
				Err:          fmt.Errorf("embedding index %d out of range", data.Index),
			}
		}
		vectors[data.Index] = pgvector.NewVector(data.Embedding)
	}

	return vectors, nil
}

// Dimensions returns the configured embedding dimensions.
func (c *Client) Dimensions() int {
	return c.dimensions
}
