package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultModel     = "text-embedding-3-small"
	defaultDimension = 1536
	defaultTimeout   = 30 * time.Second
	maxRetries       = 3
)

// OpenAIClient is an OpenAI-compatible embeddings client. It retries
// transient failures with exponential backoff, honoring Retry-After.
type OpenAIClient struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// OpenAIConfig configures the embeddings client.
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// NewOpenAIClient creates an embeddings client from the given configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = defaultDimension
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &OpenAIClient{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Dimension returns the dimensionality of the produced vectors.
func (c *OpenAIClient) Dimension() int { return c.dimension }

type embedRequest struct {
	Input      string `json:"input"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns an embedding vector for the given text. Failures surface as
// *Error so callers can tell the embedding stage apart from vector search.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embedRequest{
		Input:      text,
		Model:      c.model,
		Dimensions: c.dimension,
	})
	if err != nil {
		return nil, &Error{Message: "failed to encode request", Cause: err}
	}

	url := c.baseURL + "/embeddings"
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := waitRetry(ctx, retryDelay(attempt-1)); err != nil {
				return nil, &Error{Message: "request canceled", Cause: err}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, &Error{Message: "failed to build request", Cause: err}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		vector, retryable, err := c.decodeResponse(resp)
		if err == nil {
			return vector, nil
		}
		lastErr = err
		if !retryable {
			return nil, &Error{Message: "provider rejected request", Cause: err}
		}
	}
	return nil, &Error{Message: fmt.Sprintf("provider unavailable after %d attempts", maxRetries+1), Cause: lastErr}
}

// decodeResponse reads one HTTP response. The bool reports whether the
// failure is worth retrying (429 and 5xx are, 4xx is not).
func (c *OpenAIClient) decodeResponse(resp *http.Response) ([]float32, bool, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				time.Sleep(time.Duration(secs) * time.Second)
			}
		}
		return nil, true, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	var out embedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, false, fmt.Errorf("failed to parse embeddings response: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, false, fmt.Errorf("no embedding returned")
	}

	vector := out.Data[0].Embedding
	if len(vector) != c.dimension {
		return nil, false, fmt.Errorf("provider returned %d dimensions, expected %d", len(vector), c.dimension)
	}
	return vector, false, nil
}

func retryDelay(attempt int) time.Duration {
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func waitRetry(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
