package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/errors"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/cache"
)

// Service records conversation chunks and serves joined transcripts.
// Chunks are persisted per meeting; the joined transcript of recently
// active meetings is additionally cached in Redis with a short TTL so
// insight and plan generation do not rebuild it on every call. The
// database is the source of truth; a cache miss rebuilds from rows.
type Service struct {
	chunks     repositories.ConversationRepository
	transcript *cache.TranscriptCache
	logger     *zap.Logger
}

// NewService creates a conversation service. transcript may be nil when
// Redis is not configured; every transcript read then hits the database.
func NewService(chunks repositories.ConversationRepository, transcript *cache.TranscriptCache, logger *zap.Logger) *Service {
	return &Service{chunks: chunks, transcript: transcript, logger: logger}
}

// AppendInput is one captured utterance
type AppendInput struct {
	MeetingID uuid.UUID
	Speaker   entities.Speaker
	UserID    *uuid.UUID
	UserName  *string
	Text      string
	Timestamp time.Time
}

// Append stores one conversation chunk and extends the cached transcript
func (s *Service) Append(ctx context.Context, input AppendInput) (*entities.ConversationChunk, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.ErrInvalidArgument("chunk text must not be empty")
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	chunk := &entities.ConversationChunk{
		MeetingID: input.MeetingID,
		Speaker:   input.Speaker,
		UserID:    input.UserID,
		UserName:  input.UserName,
		Text:      text,
		Timestamp: ts,
	}

	if err := s.chunks.Append(ctx, chunk); err != nil {
		return nil, errors.ErrDBQuery(err)
	}

	if s.transcript != nil {
		line := chunk.SpeakerLabel() + ": " + text
		if err := s.transcript.Append(ctx, input.MeetingID, line); err != nil && s.logger != nil {
			// transcript cache is best effort; the rows are already stored
			s.logger.Warn("transcript cache append failed",
				zap.String("meeting_id", input.MeetingID.String()),
				zap.Error(err),
			)
		}
	}

	return chunk, nil
}

// List returns all chunks of a meeting in timestamp order
func (s *Service) List(ctx context.Context, meetingID uuid.UUID) ([]*entities.ConversationChunk, error) {
	chunks, err := s.chunks.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return chunks, nil
}

// Transcript returns the joined "Speaker: text" transcript of a meeting,
// served from cache when warm
func (s *Service) Transcript(ctx context.Context, meetingID uuid.UUID) (string, error) {
	if s.transcript != nil {
		if cached, ok, err := s.transcript.Get(ctx, meetingID); err == nil && ok {
			return cached, nil
		}
	}

	chunks, err := s.chunks.ListByMeeting(ctx, meetingID)
	if err != nil {
		return "", errors.ErrDBQuery(err)
	}
	joined := entities.JoinTranscript(chunks)

	if s.transcript != nil && joined != "" {
		if err := s.transcript.Set(ctx, meetingID, joined); err != nil && s.logger != nil {
			s.logger.Warn("transcript cache set failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}
	return joined, nil
}

// Clear removes all chunks of a meeting and drops the cached transcript
func (s *Service) Clear(ctx context.Context, meetingID uuid.UUID) error {
	if err := s.chunks.DeleteByMeeting(ctx, meetingID); err != nil {
		return errors.ErrDBQuery(err)
	}
	if s.transcript != nil {
		if err := s.transcript.Invalidate(ctx, meetingID); err != nil && s.logger != nil {
			s.logger.Warn("transcript cache invalidate failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
