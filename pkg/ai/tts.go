package ai

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/collabsphere/collabsphere-ai/pkg/config"
)

// SynthesizedAudio is the audio payload returned by the hosted voice model
type SynthesizedAudio struct {
	Data        []byte
	ContentType string
}

// ErrTTSQuotaExceeded marks a quota-exhaustion response from the hosted
// voice provider. Detected by substring match on the error body.
type ErrTTSQuotaExceeded struct {
	Body string
}

func (e *ErrTTSQuotaExceeded) Error() string {
	return "tts quota exceeded"
}

// TTSClient calls a hosted neural text-to-speech endpoint
type TTSClient struct {
	apiKey   string
	endpoint string
	client   *http.Client

	// retryDelay is the wait before the single 503 ("model loading") retry
	retryDelay time.Duration
}

// NewTTSClient creates a neural TTS client
func NewTTSClient(cfg *config.HuggingFaceConfig) *TTSClient {
	var apiKey, endpoint string
	if cfg != nil {
		apiKey = cfg.APIKey
		endpoint = cfg.TTSURL
	}
	return &TTSClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 30 * time.Second},
		retryDelay: 1200 * time.Millisecond,
	}
}

// Configured reports whether the client can be called
func (t *TTSClient) Configured() bool {
	return t != nil && t.apiKey != "" && t.endpoint != ""
}

// Synthesize sends a text phrase and returns audio bytes. A 503 response
// (model loading) is retried once after a short delay; a 200 with a
// non-audio content type is treated as failure.
func (t *TTSClient) Synthesize(ctx context.Context, text string) (*SynthesizedAudio, error) {
	if !t.Configured() {
		return nil, fmt.Errorf("tts client not configured")
	}

	var audio *SynthesizedAudio

	attempt := func() error {
		a, err := t.synthesizeOnce(ctx, text)
		if err != nil {
			return err
		}
		audio = a
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(t.retryDelay), 1), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return nil, err
	}
	return audio, nil
}

func (t *TTSClient) synthesizeOnce(ctx context.Context, text string) (*SynthesizedAudio, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		// Model loading; retryable once
		return nil, fmt.Errorf("tts model loading (status 503)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isQuotaExceededBody(string(raw)) {
			return nil, backoff.Permanent(&ErrTTSQuotaExceeded{Body: string(raw)})
		}
		return nil, backoff.Permanent(fmt.Errorf("tts returned status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isQuotaExceededBody(string(raw)) {
			return nil, backoff.Permanent(&ErrTTSQuotaExceeded{Body: string(raw)})
		}
		return nil, backoff.Permanent(fmt.Errorf("tts returned non-audio content type %q", contentType))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	if len(data) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("tts returned empty audio"))
	}

	return &SynthesizedAudio{Data: data, ContentType: contentType}, nil
}

// isQuotaExceededBody matches the known quota-exhaustion error substrings
func isQuotaExceededBody(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "exceeded your monthly")
}

// IsQuotaExceeded reports whether err marks provider quota exhaustion
func IsQuotaExceeded(err error) bool {
	var q *ErrTTSQuotaExceeded
	return stderrors.As(err, &q)
}
