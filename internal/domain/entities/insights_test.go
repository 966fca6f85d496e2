package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryDocument_RoundTrip(t *testing.T) {
	doc := &SummaryDocument{
		SummaryText: "We agreed to ship on Friday.",
		Insights: &InsightsPayload{
			Source: InsightSourceHybrid,
			SentimentAnalysis: SentimentAnalysis{
				OverallScore: 0.72,
				Notes:        []string{"sentiment from hosted classifier"},
			},
			ExpertiseDetection: map[string]map[string]float64{"Alice": {"react": 0.8}},
			RoleSuggestions:    []RoleSuggestion{{Role: "Frontend Lead", User: "Alice", Confidence: 0.9}},
		},
	}

	raw, err := doc.Encode()
	require.NoError(t, err)

	parsed := ParseSummaryDocument(raw)
	assert.Equal(t, doc.SummaryText, parsed.SummaryText)
	require.NotNil(t, parsed.Insights)
	assert.Equal(t, InsightSourceHybrid, parsed.Insights.Source)
	assert.Equal(t, 0.72, parsed.Insights.SentimentAnalysis.OverallScore)
}

func TestParseSummaryDocument_LegacyPlainText(t *testing.T) {
	parsed := ParseSummaryDocument("Key points: we discussed the roadmap.")
	assert.Equal(t, "Key points: we discussed the roadmap.", parsed.SummaryText)
	assert.Nil(t, parsed.Insights)
}

func TestParseSummaryDocument_MalformedJSONTreatedAsText(t *testing.T) {
	raw := `{"summary_text": broken`
	parsed := ParseSummaryDocument(raw)
	assert.Equal(t, raw, parsed.SummaryText)
	assert.Nil(t, parsed.Insights)
}

func TestNewNeutralInsights(t *testing.T) {
	payload := NewNeutralInsights(InsightSourceHeuristic)
	assert.Equal(t, 0.5, payload.SentimentAnalysis.OverallScore)
	assert.NotNil(t, payload.ExpertiseDetection)
	assert.NotNil(t, payload.RoleSuggestions)
}
