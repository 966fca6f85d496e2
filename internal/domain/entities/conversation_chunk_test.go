package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinTranscript(t *testing.T) {
	alice := "Alice"
	chunks := []*ConversationChunk{
		{Speaker: SpeakerUser, UserName: &alice, Text: "Hello everyone"},
		{Speaker: SpeakerAI, Text: "Hi Alice, how can I help?"},
		{Speaker: SpeakerUser, Text: "Anonymous question"},
	}

	got := JoinTranscript(chunks)
	want := "Alice: Hello everyone\nAI: Hi Alice, how can I help?\nUser: Anonymous question"
	assert.Equal(t, want, got)
}

func TestJoinTranscript_Empty(t *testing.T) {
	assert.Equal(t, "", JoinTranscript(nil))
}

func TestSpeakerLabel_EmptyUserName(t *testing.T) {
	empty := ""
	chunk := &ConversationChunk{Speaker: SpeakerUser, UserName: &empty}
	assert.Equal(t, "User", chunk.SpeakerLabel())
}
