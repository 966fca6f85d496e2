package insight

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	pkgai "github.com/collabsphere/collabsphere-ai/pkg/ai"
)

type fakeChat struct {
	configured bool
	calls      int
	responses  map[string]string // keyed by system prompt
	err        error
}

func (f *fakeChat) Configured() bool { return f.configured }

func (f *fakeChat) Chat(ctx context.Context, system, user string, opts *pkgai.ChatOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if resp, ok := f.responses[system]; ok {
		return resp, nil
	}
	return "", fmt.Errorf("no canned response")
}

type fakeSentiment struct {
	configured bool
	calls      int
	result     *pkgai.SentimentResult
	err        error
}

func (f *fakeSentiment) Configured() bool { return f.configured }

func (f *fakeSentiment) Classify(ctx context.Context, text string) (*pkgai.SentimentResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func validInsightJSON(score float64) string {
	return fmt.Sprintf(`{
		"sentiment_analysis": {"overall_score": %v, "notes": ["from model"]},
		"expertise_detection": {"Alice": {"react": 0.8}},
		"role_suggestions": [{"role": "Frontend Lead", "user": "Alice", "confidence": 0.9}]
	}`, score)
}

func TestGenerate_EmptyTranscriptSkipsNetwork(t *testing.T) {
	chat := &fakeChat{configured: true}
	sentiment := &fakeSentiment{configured: true}
	svc := NewService(chat, sentiment, nil)

	result := svc.Generate(context.Background(), "   \n  ", []string{"Alice"})

	require.NotNil(t, result.Insights)
	assert.Equal(t, entities.InsightSourceHeuristic, result.Insights.Source)
	assert.Equal(t, 0.5, result.Insights.SentimentAnalysis.OverallScore)
	assert.Equal(t, "No conversation captured.", result.SummaryText)
	assert.Zero(t, chat.calls, "empty transcript must not call the LLM")
	assert.Zero(t, sentiment.calls, "empty transcript must not call the classifier")
}

func TestGenerate_HeuristicLaplaceSmoothing(t *testing.T) {
	svc := NewService(nil, nil, nil)

	// 3 positive keywords, 0 negative: (3+1)/(3+0+2) = 0.8
	result := svc.Generate(context.Background(), "Bob: nice work, that was awesome and great", nil)

	assert.Equal(t, entities.InsightSourceHeuristic, result.Insights.Source)
	assert.InDelta(t, 0.8, result.Insights.SentimentAnalysis.OverallScore, 1e-9)
}

func TestGenerate_HeuristicNeutralWhenNoKeywords(t *testing.T) {
	svc := NewService(nil, nil, nil)

	result := svc.Generate(context.Background(), "Bob: we met at noon to discuss the agenda", nil)

	assert.InDelta(t, 0.5, result.Insights.SentimentAnalysis.OverallScore, 1e-9)
}

func TestGenerate_HeuristicExpertiseAndRoles(t *testing.T) {
	svc := NewService(nil, nil, nil)

	transcript := "Alice: I'm good at React\nBob: I am experienced with SQL queries"
	result := svc.Generate(context.Background(), transcript, []string{"Alice", "Bob"})

	expertise := result.Insights.ExpertiseDetection
	require.Contains(t, expertise, "Alice")
	assert.InDelta(t, 0.6, expertise["Alice"]["react"], 1e-9)
	require.Contains(t, expertise, "Bob")
	assert.InDelta(t, 0.6, expertise["Bob"]["sql queries"], 1e-9)

	roles := make(map[string]string)
	for _, s := range result.Insights.RoleSuggestions {
		roles[s.User] = s.Role
		assert.GreaterOrEqual(t, s.Confidence, 0.5)
	}
	assert.Equal(t, "Frontend Lead", roles["Alice"])
	assert.Equal(t, "Database Design", roles["Bob"])
}

func TestGenerate_RepeatedSkillRaisesConfidence(t *testing.T) {
	svc := NewService(nil, nil, nil)

	transcript := "Alice: I'm good at React\nAlice: I'm skilled in React"
	result := svc.Generate(context.Background(), transcript, nil)

	assert.InDelta(t, 0.8, result.Insights.ExpertiseDetection["Alice"]["react"], 1e-9)
}

func TestGenerate_LLMPathParsesAndClamps(t *testing.T) {
	chat := &fakeChat{
		configured: true,
		responses: map[string]string{
			insightSystemPrompt: validInsightJSON(1.0),
			summarySystemPrompt: "Short summary of the call.",
		},
	}
	svc := NewService(chat, nil, nil)

	result := svc.Generate(context.Background(), "Alice: shipping tomorrow works", []string{"Alice"})

	assert.Equal(t, entities.InsightSourceGroq, result.Insights.Source)
	assert.Equal(t, 0.95, result.Insights.SentimentAnalysis.OverallScore)
	assert.Equal(t, "Short summary of the call.", result.SummaryText)
}

func TestGenerate_ClassifierPrecedenceMakesHybrid(t *testing.T) {
	chat := &fakeChat{
		configured: true,
		responses: map[string]string{
			insightSystemPrompt: validInsightJSON(0.3),
			summarySystemPrompt: "Summary.",
		},
	}
	sentiment := &fakeSentiment{
		configured: true,
		result:     &pkgai.SentimentResult{Label: pkgai.SentimentPositive, Score: 0.9},
	}
	svc := NewService(chat, sentiment, nil)

	result := svc.Generate(context.Background(), "Alice: this is fine", nil)

	assert.Equal(t, entities.InsightSourceHybrid, result.Insights.Source)
	assert.InDelta(t, 0.9, result.Insights.SentimentAnalysis.OverallScore, 1e-9)
}

func TestGenerate_ClassifierOnlyWhenLLMFails(t *testing.T) {
	chat := &fakeChat{configured: true, err: fmt.Errorf("upstream down")}
	sentiment := &fakeSentiment{
		configured: true,
		result:     &pkgai.SentimentResult{Label: pkgai.SentimentNegative, Score: 0.8},
	}
	svc := NewService(chat, sentiment, nil)

	result := svc.Generate(context.Background(), "Alice: we hit a problem", nil)

	assert.Equal(t, entities.InsightSourceClassifier, result.Insights.Source)
	assert.InDelta(t, 0.2, result.Insights.SentimentAnalysis.OverallScore, 1e-9)
}

func TestGenerate_UnparseableLLMFallsBackToHeuristics(t *testing.T) {
	chat := &fakeChat{
		configured: true,
		responses: map[string]string{
			insightSystemPrompt: "I could not produce JSON, sorry.",
			summarySystemPrompt: "Summary.",
		},
	}
	svc := NewService(chat, nil, nil)

	result := svc.Generate(context.Background(), "Alice: great progress today", nil)

	assert.Equal(t, entities.InsightSourceHeuristic, result.Insights.Source)
}

func TestGenerate_RoleBackfillFromLLMExpertise(t *testing.T) {
	// The model reports expertise but no role suggestions; the shared
	// skill-to-role table fills them in.
	chat := &fakeChat{
		configured: true,
		responses: map[string]string{
			insightSystemPrompt: `{
				"sentiment_analysis": {"overall_score": 0.6, "notes": []},
				"expertise_detection": {"Carol": {"docker": 0.7}},
				"role_suggestions": []
			}`,
			summarySystemPrompt: "Summary.",
		},
	}
	svc := NewService(chat, nil, nil)

	result := svc.Generate(context.Background(), "Carol: I'm comfortable with Docker", nil)

	require.Len(t, result.Insights.RoleSuggestions, 1)
	assert.Equal(t, "DevOps Engineer", result.Insights.RoleSuggestions[0].Role)
	assert.Equal(t, "Carol", result.Insights.RoleSuggestions[0].User)
}

func TestGenerate_SummaryTailFallback(t *testing.T) {
	chat := &fakeChat{configured: true, err: fmt.Errorf("unreachable")}
	svc := NewService(chat, nil, nil)

	var sb strings.Builder
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&sb, "Alice: point number %d\n", i)
	}
	result := svc.Generate(context.Background(), sb.String(), nil)

	assert.True(t, strings.HasPrefix(result.SummaryText, "Key points: "), "got %q", result.SummaryText)
	assert.Contains(t, result.SummaryText, "point number 8")
	assert.NotContains(t, result.SummaryText, "point number 3", "tail keeps only the last 5 lines")
}

func TestClampSentiment_LowBound(t *testing.T) {
	svc := NewService(nil, nil, nil)
	payload := &entities.InsightsPayload{
		SentimentAnalysis: entities.SentimentAnalysis{OverallScore: 0.0},
	}
	svc.clampSentiment(payload)
	assert.Equal(t, 0.05, payload.SentimentAnalysis.OverallScore)
	assert.NotEmpty(t, payload.SentimentAnalysis.Notes)
}
