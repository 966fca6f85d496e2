package presenter

import (
	agentDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/agent"
	conversationDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/conversation"
	meetingDTO "github.com/collabsphere/collabsphere-ai/internal/adapter/dto/meeting"
	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to its API shape
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	resp := &meetingDTO.MeetingResponse{
		ID:                 m.ID.String(),
		Name:               m.Name,
		Description:        m.Description,
		HostID:             m.HostID.String(),
		Status:             string(m.Status),
		LivekitRoomName:    m.LivekitRoomName,
		ScheduledStartTime: m.ScheduledStartTime,
		StartedAt:          m.StartedAt,
		EndedAt:            m.EndedAt,
		Duration:           m.Duration,
		CreatedAt:          m.CreatedAt,
	}
	if m.AgentID != nil {
		id := m.AgentID.String()
		resp.AgentID = &id
	}
	return resp
}

// ToMeetingResponses converts a slice of meetings
func ToMeetingResponses(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToParticipantResponse converts a Participant entity to its API shape
func ToParticipantResponse(p *entities.Participant) *meetingDTO.ParticipantResponse {
	if p == nil {
		return nil
	}

	resp := &meetingDTO.ParticipantResponse{
		ID:          p.ID.String(),
		MeetingID:   p.MeetingID.String(),
		Role:        string(p.Role),
		Status:      string(p.Status),
		DisplayName: p.DisplayName,
		JoinedAt:    p.JoinedAt,
		LeftAt:      p.LeftAt,
	}
	if p.UserID != nil {
		id := p.UserID.String()
		resp.UserID = &id
	}
	return resp
}

// ToParticipantResponses converts a slice of participants
func ToParticipantResponses(participants []*entities.Participant) []*meetingDTO.ParticipantResponse {
	out := make([]*meetingDTO.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, ToParticipantResponse(p))
	}
	return out
}

// ToSummaryResponse converts a summary document to its API shape
func ToSummaryResponse(doc *entities.SummaryDocument) *meetingDTO.SummaryResponse {
	if doc == nil {
		return nil
	}
	return &meetingDTO.SummaryResponse{
		SummaryText: doc.SummaryText,
		Insights:    doc.Insights,
	}
}

// ToAgentResponse converts an Agent entity to its API shape
func ToAgentResponse(a *entities.Agent) *agentDTO.AgentResponse {
	if a == nil {
		return nil
	}
	return &agentDTO.AgentResponse{
		ID:          a.ID.String(),
		OwnerID:     a.OwnerID.String(),
		Name:        a.Name,
		Personality: a.Personality,
		Voice:       a.Voice,
		Model:       a.Model,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAgentResponses converts a slice of agents
func ToAgentResponses(agents []*entities.Agent) []*agentDTO.AgentResponse {
	out := make([]*agentDTO.AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, ToAgentResponse(a))
	}
	return out
}

// ToChunkResponse converts a conversation chunk to its API shape
func ToChunkResponse(c *entities.ConversationChunk) *conversationDTO.ChunkResponse {
	if c == nil {
		return nil
	}
	return &conversationDTO.ChunkResponse{
		ID:        c.ID.String(),
		MeetingID: c.MeetingID.String(),
		Speaker:   string(c.Speaker),
		UserName:  c.UserName,
		Text:      c.Text,
		Timestamp: c.Timestamp,
	}
}

// ToChunkResponses converts a slice of chunks
func ToChunkResponses(chunks []*entities.ConversationChunk) []*conversationDTO.ChunkResponse {
	out := make([]*conversationDTO.ChunkResponse, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, ToChunkResponse(c))
	}
	return out
}
