package conversation

import "time"

// AppendChunkRequest is the payload for recording one utterance
type AppendChunkRequest struct {
	Speaker   string     `json:"speaker" validate:"required,oneof=user ai"`
	UserID    *string    `json:"user_id,omitempty" validate:"omitempty,uuid"`
	UserName  *string    `json:"user_name,omitempty" validate:"omitempty,max=255"`
	Text      string     `json:"text" validate:"required,min=1"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ChunkResponse is the API shape of a conversation chunk
type ChunkResponse struct {
	ID        string    `json:"id"`
	MeetingID string    `json:"meeting_id"`
	Speaker   string    `json:"speaker"`
	UserName  *string   `json:"user_name,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptResponse carries the joined transcript of a meeting
type TranscriptResponse struct {
	MeetingID  string `json:"meeting_id"`
	Transcript string `json:"transcript"`
}
