package meeting

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	"github.com/collabsphere/collabsphere-ai/internal/infrastructure/external/livekit"
	"github.com/collabsphere/collabsphere-ai/internal/usecase/insight"
)

type memMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
}

func newMemMeetingRepo() *memMeetingRepo {
	return &memMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (m *memMeetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	copied := *meeting
	m.meetings[meeting.ID] = &copied
	return nil
}

func (m *memMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *meeting
	return &copied, nil
}

func (m *memMeetingRepo) FindByLivekitName(ctx context.Context, livekitName string) (*entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, meeting := range m.meetings {
		if meeting.LivekitRoomName == livekitName {
			copied := *meeting
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memMeetingRepo) Update(ctx context.Context, meeting *entities.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.meetings[meeting.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *meeting
	m.meetings[meeting.ID] = &copied
	return nil
}

func (m *memMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.meetings, id)
	return nil
}

func (m *memMeetingRepo) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(m.meetings))
	for _, meeting := range m.meetings {
		copied := *meeting
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (m *memMeetingRepo) FindByHostID(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memMeetingRepo) FindActive(ctx context.Context) ([]*entities.Meeting, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memMeetingRepo) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[meetingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	meeting.Status = status
	return nil
}

func (m *memMeetingRepo) UpdateSummary(ctx context.Context, meetingID uuid.UUID, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[meetingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	meeting.Summary = &summary
	return nil
}

func (m *memMeetingRepo) EndMeeting(ctx context.Context, meetingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[meetingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	meeting.End()
	return nil
}

type memParticipantRepo struct {
	mu           sync.Mutex
	participants map[uuid.UUID]*entities.Participant
}

func newMemParticipantRepo() *memParticipantRepo {
	return &memParticipantRepo{participants: make(map[uuid.UUID]*entities.Participant)}
}

func (m *memParticipantRepo) Create(ctx context.Context, p *entities.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	m.participants[p.ID] = &copied
	return nil
}

func (m *memParticipantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memParticipantRepo) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants {
		if p.MeetingID == meetingID && p.UserID != nil && *p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memParticipantRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Participant, 0)
	for _, p := range m.participants {
		if p.MeetingID == meetingID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memParticipantRepo) Update(ctx context.Context, p *entities.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.participants[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *p
	m.participants[p.ID] = &copied
	return nil
}

func (m *memParticipantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.participants, id)
	return nil
}

type stubTranscripts struct {
	transcript string
	err        error
}

func (s *stubTranscripts) Transcript(ctx context.Context, meetingID uuid.UUID) (string, error) {
	return s.transcript, s.err
}

func newTestService(transcripts TranscriptSource) (*Service, *memMeetingRepo, *memParticipantRepo) {
	meetings := newMemMeetingRepo()
	participants := newMemParticipantRepo()
	insights := insight.NewService(nil, nil, nil)
	lk := livekit.NewClient("ws://localhost:7880", "devkey", "devsecret", true)
	svc := NewService(meetings, participants, transcripts, insights, lk, "ws://localhost:7880", nil)
	return svc, meetings, participants
}

func TestCreate_GeneratesRoomName(t *testing.T) {
	svc, _, _ := newTestService(&stubTranscripts{})
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	assert.Equal(t, entities.MeetingStatusScheduled, meeting.Status)
	assert.Contains(t, meeting.LivekitRoomName, "meeting-")
	assert.Equal(t, hostID, meeting.HostID)
}

func TestStart_HostOnly(t *testing.T) {
	svc, _, _ := newTestService(&stubTranscripts{})
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), meeting.ID, uuid.New())
	require.Error(t, err, "non-host cannot start")

	started, err := svc.Start(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)
	assert.True(t, started.IsActive())

	_, err = svc.Start(context.Background(), meeting.ID, hostID)
	require.Error(t, err, "active meeting cannot be started twice")
}

func TestJoin_CreatesParticipantAndToken(t *testing.T) {
	svc, _, participants := newTestService(&stubTranscripts{})
	hostID := uuid.New()
	guestID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	_, _, err = svc.Join(context.Background(), meeting.ID, guestID, "Guest")
	require.Error(t, err, "cannot join a meeting that has not started")

	_, err = svc.Start(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)

	p, token, err := svc.Join(context.Background(), meeting.ID, guestID, "Guest")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entities.ParticipantStatusJoined, p.Status)
	assert.Equal(t, entities.ParticipantRoleParticipant, p.Role)

	hostP, _, err := svc.Join(context.Background(), meeting.ID, hostID, "Host")
	require.NoError(t, err)
	assert.Equal(t, entities.ParticipantRoleHost, hostP.Role)

	// Rejoining reuses the existing participant row
	again, _, err := svc.Join(context.Background(), meeting.ID, guestID, "Guest")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)

	list, err := participants.ListByMeeting(context.Background(), meeting.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestComplete_StoresSummaryAndEndsMeeting(t *testing.T) {
	transcripts := &stubTranscripts{transcript: "Alice: I'm good at React\nBob: great progress"}
	svc, _, _ := newTestService(transcripts)
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)

	ended, doc, err := svc.Complete(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)

	assert.True(t, ended.IsEnded())
	require.NotNil(t, ended.Summary)
	require.NotNil(t, doc.Insights)
	assert.Contains(t, doc.Insights.ExpertiseDetection, "Alice")

	stored, err := svc.Summary(context.Background(), meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.SummaryText, stored.SummaryText)

	_, _, err = svc.Complete(context.Background(), meeting.ID, hostID)
	require.Error(t, err, "ended meetings cannot be completed again")
}

func TestComplete_TranscriptFailureDegrades(t *testing.T) {
	transcripts := &stubTranscripts{err: fmt.Errorf("cache down")}
	svc, _, _ := newTestService(transcripts)
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)

	_, doc, err := svc.Complete(context.Background(), meeting.ID, hostID)
	require.NoError(t, err, "transcript failure must not fail completion")
	assert.Equal(t, "No conversation captured.", doc.SummaryText)
}

func TestComplete_HostOnly(t *testing.T) {
	svc, _, _ := newTestService(&stubTranscripts{})
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	_, _, err = svc.Complete(context.Background(), meeting.ID, uuid.New())
	require.Error(t, err)
}

func TestDelete_HostOnlyAndNotActive(t *testing.T) {
	svc, meetings, _ := newTestService(&stubTranscripts{})
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	require.Error(t, svc.Delete(context.Background(), meeting.ID, uuid.New()), "non-host cannot delete")

	_, err = svc.Start(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)
	require.Error(t, svc.Delete(context.Background(), meeting.ID, hostID), "active meeting cannot be deleted")

	_, _, err = svc.Complete(context.Background(), meeting.ID, hostID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), meeting.ID, hostID))

	_, err = meetings.FindByID(context.Background(), meeting.ID)
	assert.Error(t, err)
}

func TestSummary_LegacyPlainText(t *testing.T) {
	svc, meetings, _ := newTestService(&stubTranscripts{})
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), CreateInput{Name: "Standup", HostID: hostID})
	require.NoError(t, err)

	legacy := "Plain old summary text."
	require.NoError(t, meetings.UpdateSummary(context.Background(), meeting.ID, legacy))

	doc, err := svc.Summary(context.Background(), meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, legacy, doc.SummaryText)
	assert.Nil(t, doc.Insights)
}
