package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeeting_StartAndEnd(t *testing.T) {
	m := &Meeting{Status: MeetingStatusScheduled}
	assert.False(t, m.IsActive())

	m.Start()
	assert.True(t, m.IsActive())
	require.NotNil(t, m.StartedAt)

	// Backdate the start so duration is measurable
	past := time.Now().Add(-90 * time.Second)
	m.StartedAt = &past

	m.End()
	assert.True(t, m.IsEnded())
	require.NotNil(t, m.EndedAt)
	require.NotNil(t, m.Duration)
	assert.GreaterOrEqual(t, *m.Duration, 90)
}

func TestMeeting_EndWithoutStart(t *testing.T) {
	m := &Meeting{Status: MeetingStatusScheduled}
	m.End()
	assert.True(t, m.IsEnded())
	assert.Nil(t, m.Duration)
}

func TestParticipant_JoinAndLeave(t *testing.T) {
	p := &Participant{Status: ParticipantStatusInvited}

	p.Join()
	assert.Equal(t, ParticipantStatusJoined, p.Status)
	require.NotNil(t, p.JoinedAt)

	past := time.Now().Add(-30 * time.Second)
	p.JoinedAt = &past

	p.Leave()
	assert.Equal(t, ParticipantStatusLeft, p.Status)
	require.NotNil(t, p.Duration)
	assert.GreaterOrEqual(t, *p.Duration, 30)
}
