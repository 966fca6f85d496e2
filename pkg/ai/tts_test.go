package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/collabsphere/collabsphere-ai/pkg/config"
)

func newTestTTSClient(url string) *TTSClient {
	client := NewTTSClient(&config.HuggingFaceConfig{APIKey: "k", TTSURL: url})
	client.retryDelay = time.Millisecond
	return client
}

func TestSynthesize_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/flac")
		w.Write([]byte("fake-audio-bytes"))
	}))
	defer ts.Close()

	audio, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if string(audio.Data) != "fake-audio-bytes" {
		t.Fatalf("unexpected audio data %q", audio.Data)
	}
	if audio.ContentType != "audio/flac" {
		t.Fatalf("unexpected content type %q", audio.ContentType)
	}
}

func TestSynthesize_RetriesOnceOn503(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "audio/flac")
		w.Write([]byte("audio"))
	}))
	defer ts.Close()

	audio, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize failed after retry: %v", err)
	}
	if len(audio.Data) == 0 {
		t.Fatal("expected audio after retry")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestSynthesize_GivesUpAfterSecond503(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	if _, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error after repeated 503")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", got)
	}
}

func TestSynthesize_NonAudioContentType(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"something went wrong"}`))
	}))
	defer ts.Close()

	if _, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-audio content type")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("non-audio response should not retry, got %d calls", got)
	}
}

func TestSynthesize_QuotaExceeded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"you have exceeded your monthly included credits"}`))
	}))
	defer ts.Close()

	_, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected quota error")
	}
	if !IsQuotaExceeded(err) {
		t.Fatalf("expected IsQuotaExceeded to match, got %v", err)
	}
}

func TestSynthesize_EmptyAudio(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/flac")
	}))
	defer ts.Close()

	if _, err := newTestTTSClient(ts.URL).Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty audio body")
	}
}
