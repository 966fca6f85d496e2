package entities

import (
	"encoding/json"
	"strings"
)

// InsightSource identifies which path produced an insights payload
type InsightSource string

const (
	// InsightSourceGroq means the LLM alone produced the payload
	InsightSourceGroq InsightSource = "groq"
	// InsightSourceHeuristic means the keyword/regex fallback produced it
	InsightSourceHeuristic InsightSource = "heuristic"
	// InsightSourceClassifier means only the hosted sentiment classifier contributed
	InsightSourceClassifier InsightSource = "hf-sst2"
	// InsightSourceHybrid means both an LLM-derived and a classifier-derived
	// signal contributed
	InsightSourceHybrid InsightSource = "hybrid"
)

// ParticipantSentiment is a per-participant sentiment reading
type ParticipantSentiment struct {
	AvgSentiment float64  `json:"avg_sentiment"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// SentimentAnalysis summarizes the emotional tone of a conversation.
// OverallScore is always clamped to [0.05, 0.95] before being surfaced.
type SentimentAnalysis struct {
	OverallScore   float64                         `json:"overall_score"`
	Notes          []string                        `json:"notes"`
	PerParticipant map[string]ParticipantSentiment `json:"per_participant,omitempty"`
}

// RoleSuggestion proposes a project role for a participant
type RoleSuggestion struct {
	Role       string  `json:"role"`
	User       string  `json:"user"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// InsightsPayload is the structured result of the insight generation
// pipeline. Stored serialized inside the meeting summary document;
// immutable once written (a new completion overwrites it).
type InsightsPayload struct {
	Source            InsightSource                 `json:"source"`
	SentimentAnalysis SentimentAnalysis             `json:"sentiment_analysis"`
	ExpertiseDetection map[string]map[string]float64 `json:"expertise_detection"`
	RoleSuggestions   []RoleSuggestion              `json:"role_suggestions"`
}

// NewNeutralInsights returns the default payload used when no conversation
// was captured: neutral sentiment, no detections.
func NewNeutralInsights(source InsightSource) *InsightsPayload {
	return &InsightsPayload{
		Source: source,
		SentimentAnalysis: SentimentAnalysis{
			OverallScore: 0.5,
			Notes:        []string{},
		},
		ExpertiseDetection: map[string]map[string]float64{},
		RoleSuggestions:    []RoleSuggestion{},
	}
}

// SummaryDocument is what meeting completion writes into Meeting.Summary:
// a plain-text summary plus the structured insights payload.
type SummaryDocument struct {
	SummaryText string           `json:"summary_text"`
	Insights    *InsightsPayload `json:"insights,omitempty"`
}

// Encode serializes the document for storage in the meeting summary column
func (d *SummaryDocument) Encode() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseSummaryDocument decodes a stored summary column value. Older rows
// hold a plain string with no JSON structure; those are returned as
// summary text with no insights rather than an error.
func ParseSummaryDocument(raw string) *SummaryDocument {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var doc SummaryDocument
		if err := json.Unmarshal([]byte(trimmed), &doc); err == nil && doc.SummaryText != "" {
			return &doc
		}
	}
	return &SummaryDocument{SummaryText: raw}
}
