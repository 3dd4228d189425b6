package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"rcm-workflow/internal/model"
)

// RetryConfig defines backoff behavior for idempotent read calls.
type RetryConfig struct {
	MaxAttempts       int           `json:"max_attempts"`
	InitialDelay      time.Duration `json:"initial_delay"`
	MaxDelay          time.Duration `json:"max_delay"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`
	Jitter            bool          `json:"jitter"`
}

// DefaultRetryConfig matches the ingestion-side defaults: three attempts,
// doubling delay, jittered.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:       3,
	InitialDelay:      1 * time.Second,
	MaxDelay:          30 * time.Second,
	BackoffMultiplier: 2.0,
	Jitter:            true,
}

// Client talks to the claim processing backend. Write calls (Submit) are
// attempted exactly once; only idempotent reads retry with backoff.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Retry      RetryConfig
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Retry:      DefaultRetryConfig,
	}
}

// Submit posts an accepted payload array to a stage's processing endpoint.
// Submissions are not idempotent, so there is no retry: a failure is
// reported back for the user to decide.
func (c *Client) Submit(ctx context.Context, stage model.StageID, records []model.CanonicalRecord) (*model.SubmissionResult, error) {
	body, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/stages/%s/process", c.BaseURL, stage)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit to %s: %w", stage, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &model.SubmissionResult{
		Stage:       stage,
		StatusCode:  resp.StatusCode,
		SubmittedAt: time.Now().UTC(),
	}
	if len(respBody) > 0 {
		var parsed interface{}
		if err := json.Unmarshal(respBody, &parsed); err == nil {
			result.Body = parsed
		} else {
			result.Body = string(respBody)
		}
	}
	return result, nil
}

// Get performs an idempotent read with exponential backoff, decoding the
// JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.Retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoffDelay(attempt)):
			}
		}

		err := c.getOnce(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("GET %s failed after %d attempts: %w", path, c.Retry.MaxAttempts, lastErr)
}

func (c *Client) getOnce(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// backoffDelay computes the delay before the given (1-based) retry attempt.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := time.Duration(float64(c.Retry.InitialDelay) * math.Pow(c.Retry.BackoffMultiplier, float64(attempt-1)))
	if delay > c.Retry.MaxDelay {
		delay = c.Retry.MaxDelay
	}
	if c.Retry.Jitter {
		delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))
	}
	return delay
}
