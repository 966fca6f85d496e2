package speech

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabsphere/collabsphere-ai/pkg/ai"
)

type fakeSynth struct {
	mu         sync.Mutex
	configured bool
	calls      int
	failAfter  int // fail calls numbered > failAfter; 0 means never fail
	err        error
}

func (f *fakeSynth) Configured() bool { return f.configured }

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (*ai.SynthesizedAudio, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.err != nil && (f.failAfter == 0 || n > f.failAfter) {
		return nil, f.err
	}
	return &ai.SynthesizedAudio{Data: []byte(text), ContentType: "audio/flac"}, nil
}

type fakePlayer struct {
	mu      sync.Mutex
	starts  int
	played  []string
	spoken  []string
	cancels int

	blockFirst bool
	blocked    chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{blocked: make(chan struct{})}
}

func (f *fakePlayer) record(target *[]string, ctx context.Context, text string) error {
	f.mu.Lock()
	f.starts++
	first := f.starts == 1
	f.mu.Unlock()

	if f.blockFirst && first {
		close(f.blocked)
		<-ctx.Done()
		return ctx.Err()
	}

	f.mu.Lock()
	*target = append(*target, text)
	f.mu.Unlock()
	return nil
}

func (f *fakePlayer) PlayAudio(ctx context.Context, seg Segment, audio *ai.SynthesizedAudio) error {
	return f.record(&f.played, ctx, seg.Text)
}

func (f *fakePlayer) SpeakText(ctx context.Context, seg Segment) error {
	return f.record(&f.spoken, ctx, seg.Text)
}

func (f *fakePlayer) CancelPlayback() {
	f.mu.Lock()
	f.cancels++
	f.mu.Unlock()
}

func (f *fakePlayer) playedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

func (f *fakePlayer) spokenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}

type fakeRec struct {
	mu      sync.Mutex
	active  bool
	pauses  int
	resumes int
}

func (f *fakeRec) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeRec) Pause() {
	f.mu.Lock()
	f.pauses++
	f.active = false
	f.mu.Unlock()
}

func (f *fakeRec) Resume() {
	f.mu.Lock()
	f.resumes++
	f.active = true
	f.mu.Unlock()
}

func (f *fakeRec) resumeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumes
}

type fakeNoticer struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNoticer) Notice(message string) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
}

func TestSpeak_NeuralModeLocksAndPlays(t *testing.T) {
	synth := &fakeSynth{configured: true}
	player := newFakePlayer()
	rec := &fakeRec{active: true}
	engine := NewEngine(synth, player, rec, &fakeNoticer{}, nil)

	engine.Speak(context.Background(), "First we plan, then we ship.")

	assert.Equal(t, ModeNeural, engine.Mode())
	assert.Equal(t, 2, player.playedCount())
	assert.Zero(t, player.spokenCount(), "neural mode never uses the browser voice")
	assert.Equal(t, 1, rec.pauses)
	assert.Equal(t, 1, rec.resumeCount(), "recognizer resumes after the queue drains")
}

func TestSpeak_ProbeFailureLocksBrowserForSession(t *testing.T) {
	synth := &fakeSynth{configured: true, err: fmt.Errorf("boom")}
	player := newFakePlayer()
	rec := &fakeRec{active: true}
	engine := NewEngine(synth, player, rec, &fakeNoticer{}, nil)

	engine.Speak(context.Background(), "First response.")
	assert.Equal(t, ModeBrowser, engine.Mode())
	assert.Equal(t, 1, player.spokenCount())

	// The synthesizer recovering later must not flip the locked mode
	synth.err = nil
	engine.Speak(context.Background(), "Second response.")
	assert.Equal(t, ModeBrowser, engine.Mode())
	assert.Equal(t, 2, player.spokenCount())
	assert.Zero(t, player.playedCount())
}

func TestSpeak_PhraseFailureSkipsWithoutFallback(t *testing.T) {
	// Probe and first phrase succeed, everything after fails
	synth := &fakeSynth{configured: true, failAfter: 2, err: fmt.Errorf("flaky")}
	player := newFakePlayer()
	rec := &fakeRec{active: true}
	engine := NewEngine(synth, player, rec, &fakeNoticer{}, nil)

	engine.Speak(context.Background(), "One, two, three.")

	assert.Equal(t, ModeNeural, engine.Mode())
	assert.Equal(t, 1, player.playedCount(), "only the first phrase played")
	assert.Zero(t, player.spokenCount(), "failing phrases are skipped, never spoken by the browser voice")
}

func TestStop_UserMuteBlocksRecognizerResume(t *testing.T) {
	player := newFakePlayer()
	player.blockFirst = true
	rec := &fakeRec{active: true}
	engine := NewEngine(&fakeSynth{}, player, rec, &fakeNoticer{}, nil)

	done := make(chan struct{})
	go func() {
		engine.Speak(context.Background(), "A long first sentence. And a second one.")
		close(done)
	}()

	select {
	case <-player.blocked:
	case <-time.After(2 * time.Second):
		t.Fatal("playback never started")
	}

	engine.Stop(StopUserMute)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("speak did not stop")
	}

	assert.Zero(t, rec.resumeCount(), "recognizer must stay paused after a user mute")
	assert.GreaterOrEqual(t, player.cancels, len(cancelBurst))
	assert.Zero(t, player.spokenCount(), "no further segments after cancellation")
	assert.False(t, engine.Speaking())
}

func TestSpeak_NewResponseCancelsCurrent(t *testing.T) {
	player := newFakePlayer()
	player.blockFirst = true
	rec := &fakeRec{active: true}
	engine := NewEngine(&fakeSynth{}, player, rec, &fakeNoticer{}, nil)

	firstDone := make(chan struct{})
	go func() {
		engine.Speak(context.Background(), "Old response still going. It has two sentences.")
		close(firstDone)
	}()

	select {
	case <-player.blocked:
	case <-time.After(2 * time.Second):
		t.Fatal("first playback never started")
	}

	engine.Speak(context.Background(), "New response wins.")

	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first speak did not yield")
	}

	player.mu.Lock()
	spoken := append([]string(nil), player.spoken...)
	player.mu.Unlock()
	require.Len(t, spoken, 1)
	assert.Equal(t, "New response wins.", spoken[0])
}

func TestSpeak_EmptyTextDoesNothing(t *testing.T) {
	player := newFakePlayer()
	rec := &fakeRec{active: true}
	engine := NewEngine(&fakeSynth{}, player, rec, &fakeNoticer{}, nil)

	engine.Speak(context.Background(), "   ")

	assert.False(t, engine.Speaking())
	assert.Zero(t, rec.pauses)
	assert.Zero(t, player.spokenCount())
}

func TestQuotaNotice_OncePerSession(t *testing.T) {
	noticer := &fakeNoticer{}
	engine := NewEngine(&fakeSynth{}, newFakePlayer(), &fakeRec{}, noticer, nil)

	quotaErr := &ai.ErrTTSQuotaExceeded{Body: "quota"}
	engine.noteSynthFailure(quotaErr)
	engine.noteSynthFailure(quotaErr)
	engine.noteSynthFailure(fmt.Errorf("unrelated"))

	noticer.mu.Lock()
	defer noticer.mu.Unlock()
	assert.Len(t, noticer.messages, 1)
}

func TestToken_CancelIdempotent(t *testing.T) {
	token := newToken()
	assert.False(t, token.Cancelled())
	token.Cancel()
	token.Cancel()
	assert.True(t, token.Cancelled())
}
