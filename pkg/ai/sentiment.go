package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere-ai/pkg/config"
)

// SentimentLabel is a hosted-classifier label
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
)

// SentimentResult is one label/score pair from the classifier
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// SentimentClient calls a hosted binary sentiment model (SST-2 style)
type SentimentClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSentimentClient creates a sentiment classifier client
func NewSentimentClient(cfg *config.HuggingFaceConfig) *SentimentClient {
	var apiKey, endpoint string
	if cfg != nil {
		apiKey = cfg.APIKey
		endpoint = cfg.SentimentURL
	}
	return &SentimentClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client can be called
func (s *SentimentClient) Configured() bool {
	return s != nil && s.apiKey != "" && s.endpoint != ""
}

// Classify sends raw text to the hosted classifier and returns the
// higher-scoring label. Callers truncate the input; the pipeline caps at
// 8000 characters.
func (s *SentimentClient) Classify(ctx context.Context, text string) (*SentimentResult, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("sentiment client not configured")
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sentiment model returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	results, err := parseSentimentResponse(raw)
	if err != nil {
		return nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return &best, nil
}

// UnifiedScore maps a label/score pair onto a single [0,1] axis:
// POSITIVE keeps its score, NEGATIVE is inverted.
func (r *SentimentResult) UnifiedScore() float64 {
	if r.Label == SentimentNegative {
		return 1 - r.Score
	}
	return r.Score
}

// parseSentimentResponse accepts both the nested [[{label,score}]] shape
// the inference API normally returns and a flat [{label,score}] list.
func parseSentimentResponse(raw []byte) ([]SentimentResult, error) {
	var nested [][]SentimentResult
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []SentimentResult
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("malformed sentiment response: %s", truncateForError(raw))
}

func truncateForError(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
