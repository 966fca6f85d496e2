package speech

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/pkg/ai"
	"github.com/collabsphere/collabsphere-ai/pkg/metrics"
)

// Mode is the per-session output mode. It starts unset and locks to the
// first mode that succeeds; it never flips back for the rest of the session.
type Mode int

const (
	ModeUnset Mode = iota
	ModeNeural
	ModeBrowser
)

func (m Mode) String() string {
	switch m {
	case ModeNeural:
		return "neural"
	case ModeBrowser:
		return "browser"
	default:
		return "unset"
	}
}

// StopReason tells the engine why playback is being cancelled. After a
// user mute the recognizer must not be restarted.
type StopReason int

const (
	StopRetrigger StopReason = iota
	StopUserMute
	StopUserLeft
	StopPageHidden
	StopShutdown
)

// Synthesizer produces audio for one phrase of text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*ai.SynthesizedAudio, error)
	Configured() bool
}

// Player delivers segments to the listener and blocks until the segment
// finished playing or the context is cancelled.
type Player interface {
	PlayAudio(ctx context.Context, seg Segment, audio *ai.SynthesizedAudio) error
	SpeakText(ctx context.Context, seg Segment) error
	// CancelPlayback interrupts whatever is currently playing. It is
	// issued several times in a burst because playback runs on a remote
	// client that may race the first cancel.
	CancelPlayback()
}

// Recognizer is the speech-input side the engine pauses while the AI
// voice is playing so the AI does not transcribe itself.
type Recognizer interface {
	Active() bool
	Pause()
	Resume()
}

// Noticer receives one-shot user-facing advisories from the engine.
type Noticer interface {
	Notice(message string)
}

// repeated cancel delays; a single cancel can race remote playback start
var cancelBurst = []time.Duration{0, 50 * time.Millisecond, 150 * time.Millisecond, 300 * time.Millisecond}

const retriggerSettle = 100 * time.Millisecond

// Token is an explicit cancellation handle for one playback run. Every
// loop iteration and pause checks it, so a stop takes effect at the next
// segment boundary at the latest.
type Token struct {
	done chan struct{}
	once sync.Once
}

func newToken() *Token {
	return &Token{done: make(chan struct{})}
}

func (t *Token) Cancel() {
	t.once.Do(func() { close(t.done) })
}

func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Token) Done() <-chan struct{} { return t.done }

// Engine sequences AI speech output for one session: chunking, neural
// synthesis with browser-voice fallback at mode-selection time, ordered
// playback with natural pauses, and recognizer pause/resume.
type Engine struct {
	synth    Synthesizer
	player   Player
	rec      Recognizer
	noticer  Noticer
	logger   *zap.Logger

	mu            sync.Mutex
	mode          Mode
	speaking      bool
	current       *Token
	pausedRec     bool
	micEnabled    bool
	aiListening   bool
	resumeBlocked bool
	quotaNotified bool
}

func NewEngine(synth Synthesizer, player Player, rec Recognizer, noticer Noticer, logger *zap.Logger) *Engine {
	return &Engine{
		synth:       synth,
		player:      player,
		rec:         rec,
		noticer:     noticer,
		logger:      logger,
		micEnabled:  true,
		aiListening: true,
	}
}

// Mode reports the locked output mode for this session.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Speaking reports whether a playback run is in progress.
func (e *Engine) Speaking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speaking
}

// SetMicEnabled records the listener's mic state. Playback itself is not
// affected; the flag gates recognizer resume after the queue drains.
func (e *Engine) SetMicEnabled(enabled bool) {
	e.mu.Lock()
	e.micEnabled = enabled
	e.mu.Unlock()
}

// SetAIListening gates whether the recognizer may be resumed at all.
func (e *Engine) SetAIListening(enabled bool) {
	e.mu.Lock()
	e.aiListening = enabled
	e.mu.Unlock()
}

// Speak plays one AI response. If a previous response is still playing it
// is cancelled first; the newest response always wins and responses are
// never queued behind each other. Blocks until playback finishes or is
// cancelled. Synthesis failures skip the affected phrase and are not
// returned as errors.
func (e *Engine) Speak(ctx context.Context, text string) {
	segments := PrepareSegments(text)
	if len(segments) == 0 {
		return
	}

	token := e.begin()
	if token == nil {
		return
	}
	defer e.finish(token)

	e.pauseRecognizer()

	mode := e.selectMode(ctx, segments[0], token)
	if mode == ModeNeural {
		segments = capForNeural(segments)
	}

	for i, seg := range segments {
		if token.Cancelled() || ctx.Err() != nil {
			return
		}
		e.playSegment(ctx, mode, seg, token)
		if i < len(segments)-1 {
			if !sleepUnlessCancelled(ctx, token, pauseAfter(seg)) {
				return
			}
		}
	}
}

// Stop cancels the current playback run, if any. Safe to call at any
// time from any goroutine.
func (e *Engine) Stop(reason StopReason) {
	e.mu.Lock()
	token := e.current
	if reason == StopUserMute {
		e.resumeBlocked = true
	}
	e.mu.Unlock()

	if token != nil {
		token.Cancel()
	}
	for i, delay := range cancelBurst {
		if i > 0 {
			time.Sleep(delay - cancelBurst[i-1])
		}
		e.player.CancelPlayback()
	}
}

// begin replaces any in-flight run with a fresh token. Returns nil when
// a concurrent Speak won the race while this one waited to settle.
func (e *Engine) begin() *Token {
	e.mu.Lock()
	wasSpeaking := e.speaking
	if e.current != nil {
		e.current.Cancel()
	}
	token := newToken()
	e.current = token
	e.speaking = true
	e.resumeBlocked = false
	e.mu.Unlock()

	if wasSpeaking {
		e.player.CancelPlayback()
		// let the remote player acknowledge the cancel before new audio
		time.Sleep(retriggerSettle)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != token {
		return nil
	}
	return token
}

func (e *Engine) finish(token *Token) {
	e.mu.Lock()
	if e.current == token {
		e.speaking = false
		e.current = nil
	}
	stillMine := !e.speaking
	canResume := stillMine && e.pausedRec && e.micEnabled && e.aiListening && !e.resumeBlocked
	if stillMine {
		e.pausedRec = false
	}
	e.mu.Unlock()

	if canResume {
		e.rec.Resume()
	}
}

func (e *Engine) pauseRecognizer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pausedRec {
		return
	}
	if e.rec.Active() {
		e.rec.Pause()
		e.pausedRec = true
	}
}

// selectMode probes neural synthesis on the first segment when the mode
// is still unset. Whichever path succeeds first becomes the session mode.
func (e *Engine) selectMode(ctx context.Context, first Segment, token *Token) Mode {
	e.mu.Lock()
	mode := e.mode
	e.mu.Unlock()
	if mode != ModeUnset {
		return mode
	}

	if e.synth.Configured() && !token.Cancelled() {
		if _, err := e.synth.Synthesize(ctx, probeText(first)); err == nil {
			return e.lockMode(ModeNeural)
		} else {
			e.noteSynthFailure(err)
			if e.logger != nil {
				e.logger.Info("neural voice unavailable, locking browser voice", zap.Error(err))
			}
		}
	}
	return e.lockMode(ModeBrowser)
}

func (e *Engine) lockMode(mode Mode) Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeUnset {
		e.mode = mode
	}
	return e.mode
}

// probeText keeps the mode probe cheap on long opening phrases
func probeText(seg Segment) string {
	if len(seg.Text) > 60 {
		return seg.Text[:60]
	}
	return seg.Text
}

func (e *Engine) playSegment(ctx context.Context, mode Mode, seg Segment, token *Token) {
	segCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-token.Done():
			cancel()
		case <-segCtx.Done():
		}
	}()

	if mode == ModeNeural {
		audio, err := e.synth.Synthesize(segCtx, seg.Text)
		if err != nil {
			// a failing phrase is skipped; the session does not fall
			// back to the browser voice mid-response
			e.noteSynthFailure(err)
			metrics.SpeechSegments.WithLabelValues("synthesis_failed").Inc()
			if e.logger != nil {
				e.logger.Warn("phrase synthesis failed, skipping", zap.Error(err))
			}
			return
		}
		if err := e.player.PlayAudio(segCtx, seg, audio); err != nil {
			metrics.SpeechSegments.WithLabelValues("playback_failed").Inc()
			return
		}
		metrics.SpeechSegments.WithLabelValues("played").Inc()
		return
	}

	if err := e.player.SpeakText(segCtx, seg); err != nil {
		metrics.SpeechSegments.WithLabelValues("playback_failed").Inc()
		return
	}
	metrics.SpeechSegments.WithLabelValues("played").Inc()
}

// noteSynthFailure surfaces a quota advisory at most once per session
func (e *Engine) noteSynthFailure(err error) {
	if !ai.IsQuotaExceeded(err) {
		return
	}
	e.mu.Lock()
	seen := e.quotaNotified
	e.quotaNotified = true
	e.mu.Unlock()
	if !seen && e.noticer != nil {
		e.noticer.Notice("The neural voice ran out of monthly quota. Playback continues with reduced quality.")
	}
}

func sleepUnlessCancelled(ctx context.Context, token *Token, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-token.Done():
		return false
	case <-ctx.Done():
		return false
	}
}
