package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	stdErrors "errors"

	"github.com/collabsphere/collabsphere-ai/errors"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/external/livekit"
	"github.com/collabsphere/collabsphere-ai/internal/usecase/insight"
)

// TranscriptSource serves the joined transcript of a meeting
type TranscriptSource interface {
	Transcript(ctx context.Context, meetingID uuid.UUID) (string, error)
}

// Service handles meeting business logic: lifecycle, participants,
// LiveKit access, and completion with AI summary generation.
type Service struct {
	meetings     repositories.MeetingRepository
	participants repositories.ParticipantRepository
	transcripts  TranscriptSource
	insights     *insight.Service
	livekit      livekit.Client
	livekitURL   string
	logger       *zap.Logger
}

// NewService creates a meeting service
func NewService(
	meetings repositories.MeetingRepository,
	participants repositories.ParticipantRepository,
	transcripts TranscriptSource,
	insights *insight.Service,
	lk livekit.Client,
	livekitURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetings:     meetings,
		participants: participants,
		transcripts:  transcripts,
		insights:     insights,
		livekit:      lk,
		livekitURL:   livekitURL,
		logger:       logger,
	}
}

// CreateInput represents input for creating a meeting
type CreateInput struct {
	Name               string
	Description        *string
	HostID             uuid.UUID
	AgentID            *uuid.UUID
	ScheduledStartTime *time.Time
	Settings           []byte
}

// Create creates a new meeting together with its LiveKit room name
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Meeting, error) {
	if input.Name == "" {
		return nil, errors.ErrInvalidArgument("meeting name must not be empty")
	}

	meeting := &entities.Meeting{
		Name:               input.Name,
		Description:        input.Description,
		HostID:             input.HostID,
		AgentID:            input.AgentID,
		Status:             entities.MeetingStatusScheduled,
		LivekitRoomName:    fmt.Sprintf("meeting-%s", uuid.New().String()),
		ScheduledStartTime: input.ScheduledStartTime,
	}
	if len(input.Settings) > 0 {
		meeting.Settings = input.Settings
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, errors.ErrDBQuery(err)
	}

	return meeting, nil
}

// Get retrieves a meeting by ID
func (s *Service) Get(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMeetingNotFound(meetingID.String())
		}
		return nil, errors.ErrDBQuery(err)
	}
	return meeting, nil
}

// List retrieves meetings with filters
func (s *Service) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.meetings.List(ctx, filters)
	if err != nil {
		return nil, 0, errors.ErrDBQuery(err)
	}
	return meetings, total, nil
}

// Update updates meeting metadata (host only)
func (s *Service) Update(ctx context.Context, meetingID, userID uuid.UUID, name string, description *string) (*entities.Meeting, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.HostID != userID {
		return nil, errors.ErrPermissionDenied("update meeting")
	}
	if meeting.IsEnded() {
		return nil, errors.ErrMeetingEnded(meetingID.String())
	}

	if name != "" {
		meeting.Name = name
	}
	if description != nil {
		meeting.Description = description
	}
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return meeting, nil
}

// Delete removes a meeting and its dependent rows (host only).
// Conversation chunks, participants and plans cascade at the database level.
func (s *Service) Delete(ctx context.Context, meetingID, userID uuid.UUID) error {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return err
	}
	if meeting.HostID != userID {
		return errors.ErrPermissionDenied("delete meeting")
	}
	if meeting.IsActive() {
		return errors.ErrMeetingInvalidState(meetingID.String(), string(meeting.Status), "scheduled or ended")
	}

	if err := s.meetings.Delete(ctx, meetingID); err != nil {
		return errors.ErrDBQuery(err)
	}
	return nil
}

// Start moves a scheduled meeting to active and creates the LiveKit room
func (s *Service) Start(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.HostID != userID {
		return nil, errors.ErrPermissionDenied("start meeting")
	}
	if meeting.Status != entities.MeetingStatusScheduled {
		return nil, errors.ErrMeetingInvalidState(meetingID.String(), string(meeting.Status), string(entities.MeetingStatusScheduled))
	}

	if _, err := s.livekit.CreateRoom(ctx, meeting.LivekitRoomName, nil); err != nil {
		return nil, errors.ErrLiveKitFailed(err)
	}

	meeting.Start()
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return meeting, nil
}

// Join registers a user as a participant and returns a LiveKit access token
func (s *Service) Join(ctx context.Context, meetingID, userID uuid.UUID, displayName string) (*entities.Participant, string, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, "", err
	}
	if !meeting.IsActive() {
		return nil, "", errors.ErrMeetingInvalidState(meetingID.String(), string(meeting.Status), string(entities.MeetingStatusActive))
	}

	participant, err := s.participants.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.ErrDBQuery(err)
		}
		participant = &entities.Participant{
			MeetingID:   meetingID,
			UserID:      &userID,
			Role:        entities.ParticipantRoleParticipant,
			DisplayName: displayName,
		}
		if meeting.HostID == userID {
			participant.Role = entities.ParticipantRoleHost
		}
		if err := s.participants.Create(ctx, participant); err != nil {
			return nil, "", errors.ErrDBQuery(err)
		}
	}

	participant.Join()
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, "", errors.ErrDBQuery(err)
	}

	token, err := s.livekit.GenerateToken(userID.String(), meeting.LivekitRoomName, displayName, nil)
	if err != nil {
		return nil, "", errors.ErrLiveKitFailed(err)
	}
	return participant, token, nil
}

// Leave marks a participant as left
func (s *Service) Leave(ctx context.Context, meetingID, userID uuid.UUID) error {
	participant, err := s.participants.FindByMeetingAndUser(ctx, meetingID, userID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrParticipantNotFound(meetingID.String())
		}
		return errors.ErrDBQuery(err)
	}

	participant.Leave()
	if err := s.participants.Update(ctx, participant); err != nil {
		return errors.ErrDBQuery(err)
	}
	return nil
}

// Participants lists all participants of a meeting
func (s *Service) Participants(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	list, err := s.participants.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return list, nil
}

// Complete ends a meeting and runs the insight pipeline over its
// transcript. Summary generation never fails the completion: the meeting
// ends and whatever summary the pipeline produced (possibly the
// heuristic fallback) is stored alongside it.
func (s *Service) Complete(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Meeting, *entities.SummaryDocument, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}
	if meeting.HostID != userID {
		return nil, nil, errors.ErrPermissionDenied("complete meeting")
	}
	if meeting.IsEnded() {
		return nil, nil, errors.ErrMeetingEnded(meetingID.String())
	}

	transcript, err := s.transcripts.Transcript(ctx, meetingID)
	if err != nil {
		// an unreadable transcript degrades to the empty-conversation path
		if s.logger != nil {
			s.logger.Warn("transcript unavailable for completion",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		transcript = ""
	}

	names, err := s.participantNames(ctx, meetingID)
	if err != nil {
		names = nil
	}

	result := s.insights.Generate(ctx, transcript, names)
	doc := &entities.SummaryDocument{
		SummaryText: result.SummaryText,
		Insights:    result.Insights,
	}

	encoded, err := doc.Encode()
	if err != nil {
		return nil, nil, errors.ErrInternal(err)
	}

	meeting.End()
	meeting.Summary = &encoded
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, nil, errors.ErrDBQuery(err)
	}

	if err := s.livekit.DeleteRoom(ctx, meeting.LivekitRoomName); err != nil && s.logger != nil {
		s.logger.Warn("livekit room cleanup failed",
			zap.String("room", meeting.LivekitRoomName),
			zap.Error(err),
		)
	}

	return meeting, doc, nil
}

// Summary returns the stored summary document of an ended meeting,
// accepting both the JSON document format and legacy plain-text summaries
func (s *Service) Summary(ctx context.Context, meetingID uuid.UUID) (*entities.SummaryDocument, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.Summary == nil {
		return nil, errors.ErrNotFound("summary")
	}
	return entities.ParseSummaryDocument(*meeting.Summary), nil
}

// LivekitURL returns the LiveKit server URL clients should connect to
func (s *Service) LivekitURL() string {
	return s.livekitURL
}

func (s *Service) participantNames(ctx context.Context, meetingID uuid.UUID) ([]string, error) {
	list, err := s.participants.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, p := range list {
		if p.DisplayName != "" {
			names = append(names, p.DisplayName)
		}
	}
	return names, nil
}
