package insight

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	pkgai "github.com/collabsphere/collabsphere-ai/pkg/ai"
	"github.com/collabsphere/collabsphere-ai/pkg/metrics"
)

const (
	// Sentiment scores are never surfaced outside this band
	minSentiment = 0.05
	maxSentiment = 0.95

	// The hosted classifier only sees the head of long transcripts
	classifierMaxChars = 8000

	emptySummary = "No conversation captured."
)

// ChatClient is the hosted chat-completion collaborator
type ChatClient interface {
	Configured() bool
	Chat(ctx context.Context, system, user string, opts *pkgai.ChatOptions) (string, error)
}

// SentimentClassifier is the hosted binary sentiment collaborator
type SentimentClassifier interface {
	Configured() bool
	Classify(ctx context.Context, text string) (*pkgai.SentimentResult, error)
}

// Result is what a pipeline run produces: a short natural-language summary
// plus the structured insights payload.
type Result struct {
	SummaryText string
	Insights    *entities.InsightsPayload
}

// Service turns a meeting transcript into structured insights, favoring
// hosted-model quality but never failing outright. Every external call is
// individually guarded; the result always has well-typed defaults.
type Service struct {
	chat      ChatClient
	sentiment SentimentClassifier
	logger    *zap.Logger
}

// NewService constructs the insight generation service
func NewService(chat ChatClient, sentiment SentimentClassifier, logger *zap.Logger) *Service {
	return &Service{chat: chat, sentiment: sentiment, logger: logger}
}

// Generate runs the full pipeline over a transcript and participant names.
// It never returns an error: degraded branches produce heuristic output.
func (s *Service) Generate(ctx context.Context, transcript string, participants []string) *Result {
	if strings.TrimSpace(transcript) == "" {
		// No network calls for an empty transcript
		metrics.InsightGenerations.WithLabelValues(string(entities.InsightSourceHeuristic)).Inc()
		return &Result{
			SummaryText: emptySummary,
			Insights:    entities.NewNeutralInsights(entities.InsightSourceHeuristic),
		}
	}

	classifierScore := s.classifySentiment(ctx, transcript)
	insights := s.buildInsights(ctx, transcript, participants, classifierScore)
	summary := s.summarize(ctx, transcript)

	metrics.InsightGenerations.WithLabelValues(string(insights.Source)).Inc()

	return &Result{SummaryText: summary, Insights: insights}
}

// classifySentiment asks the hosted classifier for a unified score.
// Any transport error, non-2xx, or malformed payload makes sentiment
// unavailable (nil) rather than fatal.
func (s *Service) classifySentiment(ctx context.Context, transcript string) *float64 {
	if s.sentiment == nil || !s.sentiment.Configured() {
		return nil
	}

	sample := transcript
	if len(sample) > classifierMaxChars {
		sample = sample[:classifierMaxChars]
	}

	result, err := s.sentiment.Classify(ctx, sample)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("sentiment classifier unavailable", zap.Error(err))
		}
		return nil
	}

	score := result.UnifiedScore()
	return &score
}

// buildInsights tries the LLM first and falls back to heuristics on any
// failure. When both a classifier score and an LLM result exist, the
// classifier sentiment takes precedence and the source becomes hybrid.
func (s *Service) buildInsights(ctx context.Context, transcript string, participants []string, classifierScore *float64) *entities.InsightsPayload {
	if s.chat != nil && s.chat.Configured() {
		if payload := s.llmInsights(ctx, transcript, participants, classifierScore); payload != nil {
			return payload
		}
	}
	return s.heuristicInsights(transcript, classifierScore)
}

func (s *Service) llmInsights(ctx context.Context, transcript string, participants []string, classifierScore *float64) *entities.InsightsPayload {
	content, err := s.chat.Chat(ctx, insightSystemPrompt, insightUserPrompt(transcript, participants), nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("insight LLM call failed, falling back to heuristics", zap.Error(err))
		}
		return nil
	}

	parsed, err := parseLLMInsights(content)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("insight LLM response unparseable, falling back to heuristics", zap.Error(err))
		}
		return nil
	}

	payload := &entities.InsightsPayload{
		Source:             entities.InsightSourceGroq,
		SentimentAnalysis:  parsed.SentimentAnalysis,
		ExpertiseDetection: parsed.ExpertiseDetection,
		RoleSuggestions:    parsed.RoleSuggestions,
	}

	if classifierScore != nil {
		// Classifier sentiment wins when both signals exist
		payload.SentimentAnalysis.OverallScore = *classifierScore
		payload.SentimentAnalysis.Notes = []string{"sentiment from hosted classifier"}
		payload.Source = entities.InsightSourceHybrid
	}

	s.clampSentiment(payload)

	if len(payload.RoleSuggestions) == 0 && len(payload.ExpertiseDetection) > 0 {
		payload.RoleSuggestions = rolesFromExpertise(payload.ExpertiseDetection)
	}

	return payload
}

func (s *Service) heuristicInsights(transcript string, classifierScore *float64) *entities.InsightsPayload {
	score, pos, neg := heuristicSentiment(transcript)
	notes := []string{fmt.Sprintf("keyword sentiment: %d positive, %d negative", pos, neg)}
	source := entities.InsightSourceHeuristic

	if classifierScore != nil {
		score = *classifierScore
		notes = []string{"sentiment from hosted classifier"}
		source = entities.InsightSourceClassifier
	}

	expertise := heuristicExpertise(transcript)

	payload := &entities.InsightsPayload{
		Source: source,
		SentimentAnalysis: entities.SentimentAnalysis{
			OverallScore: score,
			Notes:        notes,
		},
		ExpertiseDetection: expertise,
		RoleSuggestions:    rolesFromExpertise(expertise),
	}

	s.clampSentiment(payload)
	return payload
}

// clampSentiment bounds the overall score to [0.05, 0.95], appending an
// explanatory note when clamping changed the value.
func (s *Service) clampSentiment(payload *entities.InsightsPayload) {
	score := payload.SentimentAnalysis.OverallScore
	clamped := score
	if clamped < minSentiment {
		clamped = minSentiment
	}
	if clamped > maxSentiment {
		clamped = maxSentiment
	}
	if clamped != score {
		payload.SentimentAnalysis.Notes = append(payload.SentimentAnalysis.Notes,
			fmt.Sprintf("score clamped from %.2f to avoid absolute certainty", score))
	}
	payload.SentimentAnalysis.OverallScore = clamped
}

// summarize produces the plain-text summary independently of the insights
// path: LLM when available, otherwise the tail of the transcript.
func (s *Service) summarize(ctx context.Context, transcript string) string {
	if s.chat != nil && s.chat.Configured() {
		content, err := s.chat.Chat(ctx, summarySystemPrompt, transcript, nil)
		if err == nil && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("summary LLM call failed, using transcript tail", zap.Error(err))
		}
	}
	return tailSummary(transcript)
}

// tailSummary concatenates the last 5 non-empty lines of the transcript's
// last 12 lines, prefixed "Key points: ".
func tailSummary(transcript string) string {
	lines := strings.Split(transcript, "\n")
	if len(lines) > 12 {
		lines = lines[len(lines)-12:]
	}

	nonEmpty := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(line))
		}
	}
	if len(nonEmpty) > 5 {
		nonEmpty = nonEmpty[len(nonEmpty)-5:]
	}
	if len(nonEmpty) == 0 {
		return emptySummary
	}

	return "Key points: " + strings.Join(nonEmpty, " ")
}

const insightSystemPrompt = `You are a meeting analyst. Respond with strict JSON only, no prose, ` +
	`containing exactly three top-level keys: "sentiment_analysis" (object with "overall_score" ` +
	`number 0..1 and "notes" string array), "expertise_detection" (object mapping participant ` +
	`name to an object mapping skill to confidence 0..1), and "role_suggestions" (array of ` +
	`objects with "role", "user", "confidence", "reasoning").`

func insightUserPrompt(transcript string, participants []string) string {
	var sb strings.Builder
	sb.WriteString("Participants: ")
	if len(participants) > 0 {
		sb.WriteString(strings.Join(participants, ", "))
	} else {
		sb.WriteString("(unknown)")
	}
	sb.WriteString("\n\nTranscript:\n")
	sb.WriteString(transcript)
	return sb.String()
}

const summarySystemPrompt = `Summarize the following meeting transcript in at most 120 words. ` +
	`Plain text only, no headings or bullet lists.`
