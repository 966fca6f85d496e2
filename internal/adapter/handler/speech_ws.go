package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/storage"
	"github.com/collabsphere/collabsphere-ai/internal/usecase/speech"
	"github.com/collabsphere/collabsphere-ai/pkg/ai"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	// a client that never acks a segment must not wedge the queue
	segmentAckTimeout = 45 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// origin checks happen at the auth middleware; tokens gate the upgrade
		return true
	},
}

// speechMessage is the wire format in both directions
type speechMessage struct {
	Type      string  `json:"type"`
	SegmentID int64   `json:"segment_id,omitempty"`
	Text      string  `json:"text,omitempty"`
	AudioURL  string  `json:"audio_url,omitempty"`
	AudioB64  string  `json:"audio_b64,omitempty"`
	MimeType  string  `json:"mime_type,omitempty"`
	Rate      float64 `json:"rate,omitempty"`
	Pitch     float64 `json:"pitch,omitempty"`
	Message   string  `json:"message,omitempty"`
	Action    string  `json:"action,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

// speechSession is one client connection. It implements the engine's
// Player, Recognizer, and Noticer over the websocket: segments are
// pushed to the client and playback completion comes back as "ended"
// acks, which keeps the sequential-playback contract across the network.
type speechSession struct {
	meetingID uuid.UUID
	userID    uuid.UUID
	conn      *websocket.Conn
	engine    *speech.Engine
	store     *storage.MinIOClient
	logger    *zap.Logger

	writeMu sync.Mutex

	ackMu     sync.Mutex
	acks      map[int64]chan struct{}
	nextSegID int64

	recMu     sync.Mutex
	recActive bool
}

func newSpeechSession(meetingID, userID uuid.UUID, conn *websocket.Conn, store *storage.MinIOClient, logger *zap.Logger) *speechSession {
	return &speechSession{
		meetingID: meetingID,
		userID:    userID,
		conn:      conn,
		store:     store,
		logger:    logger,
		acks:      make(map[int64]chan struct{}),
		recActive: true,
	}
}

func (s *speechSession) write(msg speechMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteJSON(msg)
}

func (s *speechSession) reserveAck() (int64, chan struct{}) {
	s.ackMu.Lock()
	defer s.ackMu.Unlock()
	s.nextSegID++
	ch := make(chan struct{})
	s.acks[s.nextSegID] = ch
	return s.nextSegID, ch
}

func (s *speechSession) settleAck(id int64) {
	s.ackMu.Lock()
	defer s.ackMu.Unlock()
	if ch, ok := s.acks[id]; ok {
		close(ch)
		delete(s.acks, id)
	}
}

func (s *speechSession) dropAck(id int64) {
	s.ackMu.Lock()
	defer s.ackMu.Unlock()
	delete(s.acks, id)
}

// awaitAck blocks until the client reports the segment ended
func (s *speechSession) awaitAck(ctx context.Context, id int64, ch chan struct{}) error {
	timer := time.NewTimer(segmentAckTimeout)
	defer timer.Stop()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		s.dropAck(id)
		return ctx.Err()
	case <-timer.C:
		s.dropAck(id)
		return context.DeadlineExceeded
	}
}

// PlayAudio ships one synthesized phrase to the client and waits for its
// "ended" ack. Audio goes out as a cache URL when object storage is
// wired, inline base64 otherwise.
func (s *speechSession) PlayAudio(ctx context.Context, seg speech.Segment, audio *ai.SynthesizedAudio) error {
	id, ch := s.reserveAck()
	msg := speechMessage{
		Type:      "speak_audio",
		SegmentID: id,
		MimeType:  audio.ContentType,
	}

	if s.store != nil {
		if obj, err := s.store.StoreAudio(ctx, seg.Text, audio.Data, audio.ContentType); err == nil {
			if url, err := s.store.GetFileURL(ctx, obj, time.Hour); err == nil {
				msg.AudioURL = url
			}
		}
	}
	if msg.AudioURL == "" {
		msg.AudioB64 = base64.StdEncoding.EncodeToString(audio.Data)
	}

	if err := s.write(msg); err != nil {
		s.dropAck(id)
		return err
	}
	return s.awaitAck(ctx, id, ch)
}

// SpeakText asks the client to play one phrase with its built-in voice
func (s *speechSession) SpeakText(ctx context.Context, seg speech.Segment) error {
	id, ch := s.reserveAck()
	msg := speechMessage{
		Type:      "speak_text",
		SegmentID: id,
		Text:      seg.Text,
		Rate:      seg.Rate,
		Pitch:     seg.Pitch,
	}
	if err := s.write(msg); err != nil {
		s.dropAck(id)
		return err
	}
	return s.awaitAck(ctx, id, ch)
}

// CancelPlayback tells the client to halt whatever is playing now
func (s *speechSession) CancelPlayback() {
	_ = s.write(speechMessage{Type: "cancel"})
}

// Active reports the client-side recognizer state
func (s *speechSession) Active() bool {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	return s.recActive
}

// Pause tells the client to pause speech recognition
func (s *speechSession) Pause() {
	s.recMu.Lock()
	s.recActive = false
	s.recMu.Unlock()
	_ = s.write(speechMessage{Type: "recognizer", Action: "pause"})
}

// Resume tells the client to resume speech recognition
func (s *speechSession) Resume() {
	s.recMu.Lock()
	s.recActive = true
	s.recMu.Unlock()
	_ = s.write(speechMessage{Type: "recognizer", Action: "resume"})
}

// Notice forwards a one-shot advisory to the client
func (s *speechSession) Notice(message string) {
	_ = s.write(speechMessage{Type: "notice", Message: message})
}

// Speech handles the speech-output websocket
type Speech struct {
	synth  speech.Synthesizer
	store  *storage.MinIOClient
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*speechSession
}

// NewSpeech creates the speech websocket handler. store may be nil; audio
// then travels inline instead of via cache URLs.
func NewSpeech(synth speech.Synthesizer, store *storage.MinIOClient, logger *zap.Logger) *Speech {
	return &Speech{
		synth:    synth,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*speechSession),
	}
}

func sessionKey(meetingID, userID uuid.UUID) string {
	return meetingID.String() + ":" + userID.String()
}

// Connect upgrades the request and runs the session read loop
// @Summary AI speech output channel
// @Description Websocket carrying AI speech segments and playback control
// @Tags speech
// @Param id path string true "Meeting ID"
// @Router /api/v1/meetings/{id}/speech [get]
func (h *Speech) Connect(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "meeting ID must be a valid UUID")
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}

	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	session := newSpeechSession(meetingID, userID, conn, h.store, h.logger)
	session.engine = speech.NewEngine(h.synth, session, session, session, h.logger)

	key := sessionKey(meetingID, userID)
	h.mu.Lock()
	if old, exists := h.sessions[key]; exists {
		old.engine.Stop(speech.StopUserLeft)
		old.conn.Close()
	}
	h.sessions[key] = session
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Info("speech session opened",
			zap.String("meeting_id", meetingID.String()),
			zap.String("user_id", userID.String()),
		)
	}

	h.readLoop(c.Request().Context(), session)

	h.mu.Lock()
	if h.sessions[key] == session {
		delete(h.sessions, key)
	}
	h.mu.Unlock()

	session.engine.Stop(speech.StopUserLeft)
	conn.Close()
	return nil
}

func (h *Speech) readLoop(ctx context.Context, s *speechSession) {
	s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.writeMu.Lock()
				s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				err := s.conn.WriteMessage(websocket.PingMessage, nil)
				s.writeMu.Unlock()
				if err != nil {
					return
				}
			case <-stopPing:
				return
			}
		}
	}()

	for {
		var msg speechMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(ctx, s, msg)
	}
}

func (h *Speech) dispatch(ctx context.Context, s *speechSession, msg speechMessage) {
	switch msg.Type {
	case "speak":
		// newest response wins; the engine cancels any in-flight run
		go s.engine.Speak(ctx, msg.Text)
	case "ended":
		s.settleAck(msg.SegmentID)
	case "stop":
		s.engine.Stop(stopReason(msg.Reason))
	case "mic":
		if msg.Enabled != nil {
			s.engine.SetMicEnabled(*msg.Enabled)
			if !*msg.Enabled {
				s.engine.Stop(speech.StopUserMute)
			}
		}
	case "ai_listening":
		if msg.Enabled != nil {
			s.engine.SetAIListening(*msg.Enabled)
		}
	case "page_hidden":
		s.engine.Stop(speech.StopPageHidden)
	default:
		if h.logger != nil {
			h.logger.Debug("unknown speech message type", zap.String("type", msg.Type))
		}
	}
}

func stopReason(reason string) speech.StopReason {
	switch reason {
	case "mute":
		return speech.StopUserMute
	case "left":
		return speech.StopUserLeft
	case "hidden":
		return speech.StopPageHidden
	default:
		return speech.StopRetrigger
	}
}

// StopMeeting cancels playback on every session of a meeting, used when
// the meeting completes
func (h *Speech) StopMeeting(meetingID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if s.meetingID == meetingID {
			s.engine.Stop(speech.StopShutdown)
		}
	}
}
