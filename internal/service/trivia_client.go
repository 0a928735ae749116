package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"
)

// DefaultOpenTDBURL fetches 50 multiple-choice computer science questions
const DefaultOpenTDBURL = "https://opentdb.com/api.php?amount=50&category=18&type=multiple"

// Open Trivia DB response codes
const (
	openTDBSuccess   = 0
	openTDBNoResults = 1
	openTDBRateLimit = 5
)

// TriviaClient wraps the Open Trivia DB API
type TriviaClient struct {
	url        string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewTriviaClient creates a client for the given API URL
func NewTriviaClient(url string) *TriviaClient {
	if url == "" {
		url = DefaultOpenTDBURL
	}
	return &TriviaClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// TriviaResponse is the API envelope
type TriviaResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []TriviaQuestion `json:"results"`
}

// TriviaQuestion is one HTML-escaped question from the API
type TriviaQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch downloads one batch of questions, retrying on rate limits
func (c *TriviaClient) Fetch(ctx context.Context) ([]TriviaQuestion, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(math.Pow(2, float64(attempt-1))) * c.backoff
			log.Printf("[Trivia] retry %d/%d in %v: %v", attempt, c.maxRetries, wait, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, status, err := c.get(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited")
			continue
		}
		if status >= 400 {
			return nil, fmt.Errorf("trivia API error %d: %s", status, string(body))
		}

		var resp TriviaResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse trivia response: %w", err)
		}
		switch resp.ResponseCode {
		case openTDBSuccess:
			return resp.Results, nil
		case openTDBNoResults:
			return nil, nil
		case openTDBRateLimit:
			lastErr = fmt.Errorf("rate limited")
			continue
		default:
			return nil, fmt.Errorf("trivia API response code %d", resp.ResponseCode)
		}
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *TriviaClient) get(ctx context.Context) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
