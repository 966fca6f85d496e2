package conversation

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

type memChunkRepo struct {
	mu     sync.Mutex
	chunks []*entities.ConversationChunk
}

func (m *memChunkRepo) Append(ctx context.Context, chunk *entities.ConversationChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if chunk.ID == uuid.Nil {
		chunk.ID = uuid.New()
	}
	copied := *chunk
	m.chunks = append(m.chunks, &copied)
	return nil
}

func (m *memChunkRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ConversationChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.ConversationChunk, 0)
	for _, c := range m.chunks {
		if c.MeetingID == meetingID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memChunkRepo) CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	list, _ := m.ListByMeeting(ctx, meetingID)
	return int64(len(list)), nil
}

func (m *memChunkRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.chunks[:0]
	for _, c := range m.chunks {
		if c.MeetingID != meetingID {
			kept = append(kept, c)
		}
	}
	m.chunks = kept
	return nil
}

func TestAppend_TrimsAndDefaultsTimestamp(t *testing.T) {
	repo := &memChunkRepo{}
	svc := NewService(repo, nil, nil)
	meetingID := uuid.New()
	alice := "Alice"

	chunk, err := svc.Append(context.Background(), AppendInput{
		MeetingID: meetingID,
		Speaker:   entities.SpeakerUser,
		UserName:  &alice,
		Text:      "  hello world  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", chunk.Text)
	assert.False(t, chunk.Timestamp.IsZero())
}

func TestAppend_RejectsEmptyText(t *testing.T) {
	svc := NewService(&memChunkRepo{}, nil, nil)

	_, err := svc.Append(context.Background(), AppendInput{
		MeetingID: uuid.New(),
		Speaker:   entities.SpeakerUser,
		Text:      "   ",
	})
	require.Error(t, err)
}

func TestTranscript_JoinsInTimestampOrder(t *testing.T) {
	repo := &memChunkRepo{}
	svc := NewService(repo, nil, nil)
	meetingID := uuid.New()
	alice := "Alice"

	base := time.Now().UTC()
	_, err := svc.Append(context.Background(), AppendInput{
		MeetingID: meetingID, Speaker: entities.SpeakerAI,
		Text: "Second line", Timestamp: base.Add(time.Second),
	})
	require.NoError(t, err)
	_, err = svc.Append(context.Background(), AppendInput{
		MeetingID: meetingID, Speaker: entities.SpeakerUser, UserName: &alice,
		Text: "First line", Timestamp: base,
	})
	require.NoError(t, err)

	transcript, err := svc.Transcript(context.Background(), meetingID)
	require.NoError(t, err)
	assert.Equal(t, "Alice: First line\nAI: Second line", transcript)
}

func TestTranscript_EmptyMeeting(t *testing.T) {
	svc := NewService(&memChunkRepo{}, nil, nil)

	transcript, err := svc.Transcript(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "", transcript)
}

func TestClear_RemovesChunks(t *testing.T) {
	repo := &memChunkRepo{}
	svc := NewService(repo, nil, nil)
	meetingID := uuid.New()

	_, err := svc.Append(context.Background(), AppendInput{
		MeetingID: meetingID, Speaker: entities.SpeakerUser, Text: "hello",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), meetingID))

	n, err := repo.CountByMeeting(context.Background(), meetingID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
