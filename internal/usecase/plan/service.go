package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	"github.com/collabsphere/collabsphere-ai/internal/domain/repositories"
	pkgai "github.com/collabsphere/collabsphere-ai/pkg/ai"
	"github.com/collabsphere/collabsphere-ai/pkg/metrics"
	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
)

// ChatClient is the hosted chat-completion collaborator
type ChatClient interface {
	Configured() bool
	Chat(ctx context.Context, system, user string, opts *pkgai.ChatOptions) (string, error)
}

// Service converts a transcript into a phase/task/subtask structure plus
// assignee suggestions and a workload summary, persisting both the
// denormalized JSON document and the normalized rows.
type Service struct {
	chat   ChatClient
	repo   repositories.PlanRepository
	logger *zap.Logger
}

// NewService constructs the project-plan generation service
func NewService(chat ChatClient, repo repositories.PlanRepository, logger *zap.Logger) *Service {
	return &Service{chat: chat, repo: repo, logger: logger}
}

// Generate builds a plan from the transcript and persists it. An upstream
// transport failure fails the whole operation; a parse failure of an
// otherwise-successful LLM response downgrades to the fallback planner.
func (s *Service) Generate(ctx context.Context, meetingID uuid.UUID, transcript, meetingName string) (*entities.ProjectPlanDoc, *entities.PlanDocument, error) {
	doc, generator, err := s.generateDocument(ctx, transcript, meetingName)
	if err != nil {
		return nil, nil, err
	}

	metrics.PlanGenerations.WithLabelValues(string(generator)).Inc()

	row, err := s.persist(ctx, meetingID, doc, generator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to persist plan: %w", err)
	}

	return row, doc, nil
}

func (s *Service) generateDocument(ctx context.Context, transcript, meetingName string) (*entities.PlanDocument, entities.PlanGenerator, error) {
	if s.chat == nil || !s.chat.Configured() {
		if s.logger != nil {
			s.logger.Info("plan LLM not configured, using fallback planner")
		}
		return fallbackPlan(transcript), entities.PlanGeneratorFallback, nil
	}

	content, err := s.chat.Chat(ctx, planSystemPrompt, planUserPrompt(transcript, meetingName), nil)
	if err != nil {
		// Transport failure is an operation failure, not a silent fallback
		return nil, "", fmt.Errorf("plan generation call failed: %w", err)
	}

	doc, parseErr := parsePlanDocument(content)
	if parseErr != nil {
		if s.logger != nil {
			s.logger.Warn("plan response unparseable, using fallback planner", zap.Error(parseErr))
		}
		return fallbackPlan(transcript), entities.PlanGeneratorFallback, nil
	}

	normalizeDocument(doc)
	return doc, entities.PlanGeneratorGroq, nil
}

// persist writes the denormalized document plus the normalized
// phase/task/subtask rows in a single transaction, so a crash cannot
// leave phases without their children.
func (s *Service) persist(ctx context.Context, meetingID uuid.UUID, doc *entities.PlanDocument, generator entities.PlanGenerator) (*entities.ProjectPlanDoc, error) {
	blob, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	planRow := &entities.ProjectPlanDoc{
		MeetingID:   meetingID,
		Document:    blob,
		GeneratedBy: generator,
	}

	if err := s.repo.SaveGeneratedPlan(ctx, planRow, doc); err != nil {
		return nil, err
	}
	return planRow, nil
}

// parsePlanDocument decodes the LLM response, tolerating surrounding
// prose and minor JSON damage. A document with no phases counts as a
// parse failure.
func parsePlanDocument(content string) (*entities.PlanDocument, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	sliced := content[start : end+1]

	var doc entities.PlanDocument
	if err := json.Unmarshal([]byte(sliced), &doc); err != nil {
		fixed, repairErr := jsonrepair.JSONRepair(sliced)
		if repairErr != nil {
			return nil, fmt.Errorf("unparseable plan JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(fixed), &doc); err != nil {
			return nil, fmt.Errorf("unparseable plan JSON: %w", err)
		}
	}

	if len(doc.Phases) == 0 {
		return nil, fmt.Errorf("plan has no phases")
	}

	return &doc, nil
}

// normalizeDocument backfills defaults for phases the LLM emitted
// incomplete and recomputes workload totals from the actual tasks.
func normalizeDocument(doc *entities.PlanDocument) {
	for i := range doc.Phases {
		phase := &doc.Phases[i]
		if phase.Name == "" {
			phase.Name = fmt.Sprintf("Phase %d", i+1)
		}
		if phase.Order == 0 {
			phase.Order = i + 1
		}
		if phase.Color == "" {
			phase.Color = defaultPhaseColor
		}
		if phase.Tasks == nil {
			phase.Tasks = []entities.PlanTask{}
		}
		for j := range phase.Tasks {
			if phase.Tasks[j].Subtasks == nil {
				phase.Tasks[j].Subtasks = []entities.PlanSubtask{}
			}
			if phase.Tasks[j].Priority == "" {
				phase.Tasks[j].Priority = "medium"
			}
		}
	}

	if doc.SuggestedAssignees == nil {
		doc.SuggestedAssignees = []entities.PlanAssignee{}
	}

	doc.WorkloadAnalysis.TotalTasks = doc.TotalTaskCount()
	doc.WorkloadAnalysis.EstimatedTotalHours = doc.TotalEstimatedHours()
}

const planSystemPrompt = `You are a project planner. Respond with one strict JSON object and no ` +
	`prose, matching this schema exactly: {"phases":[{"name":string,"order":number,"color":string,` +
	`"tasks":[{"title":string,"description":string,"priority":"low"|"medium"|"high",` +
	`"estimatedHours":number,"suggestedAssignee":string,"subtasks":[{"title":string}]}]}],` +
	`"suggestedAssignees":[{"name":string,"reasoning":string}],"workloadAnalysis":` +
	`{"totalTasks":number,"estimatedTotalHours":number,"workloadDistribution":object,` +
	`"recommendations":[string]}}. Derive phase and task content only from the actual ` +
	`transcript; do not invent work that was not discussed.`

func planUserPrompt(transcript, meetingName string) string {
	var sb strings.Builder
	sb.WriteString("Meeting: ")
	sb.WriteString(meetingName)
	sb.WriteString("\n\nTranscript:\n")
	sb.WriteString(transcript)
	return sb.String()
}
