package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
	pkgai "github.com/collabsphere/collabsphere-ai/pkg/ai"
)

type fakeChat struct {
	configured bool
	response   string
	err        error
	calls      int
}

func (f *fakeChat) Configured() bool { return f.configured }

func (f *fakeChat) Chat(ctx context.Context, system, user string, opts *pkgai.ChatOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type memPlanRepo struct {
	saved     []*entities.ProjectPlanDoc
	savedDocs []*entities.PlanDocument
	saveErr   error
}

func (m *memPlanRepo) SaveGeneratedPlan(ctx context.Context, plan *entities.ProjectPlanDoc, doc *entities.PlanDocument) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	plan.ID = uuid.New()
	m.saved = append(m.saved, plan)
	m.savedDocs = append(m.savedDocs, doc)
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ProjectPlanDoc, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memPlanRepo) FindLatestByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.ProjectPlanDoc, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memPlanRepo) ListPhases(ctx context.Context, planID uuid.UUID) ([]*entities.Phase, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memPlanRepo) Delete(ctx context.Context, planID uuid.UUID) error {
	return nil
}

const validPlanJSON = `{
	"phases": [
		{
			"name": "Backend Development",
			"order": 1,
			"color": "#10B981",
			"tasks": [
				{
					"title": "Build the API",
					"description": "Endpoints for meetings",
					"priority": "high",
					"estimatedHours": 10,
					"suggestedAssignee": "Bob",
					"subtasks": [{"title": "CRUD routes"}]
				},
				{
					"title": "Schema design",
					"estimatedHours": 4
				}
			]
		}
	],
	"suggestedAssignees": [{"name": "Bob", "reasoning": "owns the backend"}],
	"workloadAnalysis": {"totalTasks": 99, "estimatedTotalHours": 999}
}`

func TestGenerate_LLMPlanParsedAndNormalized(t *testing.T) {
	chat := &fakeChat{configured: true, response: "Here is your plan:\n" + validPlanJSON + "\nGood luck!"}
	repo := &memPlanRepo{}
	svc := NewService(chat, repo, nil)

	row, doc, err := svc.Generate(context.Background(), uuid.New(), "Bob: the backend API needs work", "Sprint kickoff")
	require.NoError(t, err)

	assert.Equal(t, entities.PlanGeneratorGroq, row.GeneratedBy)
	require.Len(t, doc.Phases, 1)
	assert.Equal(t, "Backend Development", doc.Phases[0].Name)

	// Omitted fields are backfilled
	assert.Equal(t, "medium", doc.Phases[0].Tasks[1].Priority)
	assert.NotNil(t, doc.Phases[0].Tasks[1].Subtasks)

	// Workload totals recomputed from tasks, never trusted from the model
	assert.Equal(t, 2, doc.WorkloadAnalysis.TotalTasks)
	assert.InDelta(t, 14, doc.WorkloadAnalysis.EstimatedTotalHours, 1e-9)

	require.Len(t, repo.saved, 1)
}

func TestGenerate_TransportFailureFailsOperation(t *testing.T) {
	chat := &fakeChat{configured: true, err: fmt.Errorf("connection refused")}
	repo := &memPlanRepo{}
	svc := NewService(chat, repo, nil)

	_, _, err := svc.Generate(context.Background(), uuid.New(), "transcript", "Meeting")
	require.Error(t, err)
	assert.Empty(t, repo.saved, "nothing persisted on transport failure")
}

func TestGenerate_ParseFailureUsesFallback(t *testing.T) {
	chat := &fakeChat{configured: true, response: "I am unable to produce a plan right now."}
	repo := &memPlanRepo{}
	svc := NewService(chat, repo, nil)

	row, doc, err := svc.Generate(context.Background(), uuid.New(), "Alice: the backend database needs a schema", "Planning")
	require.NoError(t, err)

	assert.Equal(t, entities.PlanGeneratorFallback, row.GeneratedBy)
	require.Len(t, doc.Phases, 1)
	assert.Equal(t, "Backend Development", doc.Phases[0].Name)
}

func TestGenerate_NotConfiguredUsesFallback(t *testing.T) {
	repo := &memPlanRepo{}
	svc := NewService(nil, repo, nil)

	transcript := "Alice: the frontend UI needs polish\nBob: and we should plan the deployment"
	_, doc, err := svc.Generate(context.Background(), uuid.New(), transcript, "Planning")
	require.NoError(t, err)

	// One phase per matched keyword family, in priority order
	require.Len(t, doc.Phases, 2)
	assert.Equal(t, "Frontend Development", doc.Phases[0].Name)
	assert.Equal(t, "Implementation & Delivery", doc.Phases[1].Name)
	assert.Equal(t, 1, doc.Phases[0].Order)
	assert.Equal(t, 2, doc.Phases[1].Order)
}

func TestGenerate_FallbackGenericWhenNoKeywords(t *testing.T) {
	repo := &memPlanRepo{}
	svc := NewService(nil, repo, nil)

	_, doc, err := svc.Generate(context.Background(), uuid.New(), "Alice: hello everyone", "Planning")
	require.NoError(t, err)

	require.Len(t, doc.Phases, 1)
	assert.Equal(t, "Project Planning & Setup", doc.Phases[0].Name)
	assert.Equal(t, 2, doc.WorkloadAnalysis.TotalTasks)
}

func TestGenerate_RepairsDamagedJSON(t *testing.T) {
	// Trailing comma and unquoted key; jsonrepair should recover it
	damaged := `{"phases": [{"name": "Backend Development", "order": 1, "color": "#10B981", "tasks": [{"title": "Build it", "estimatedHours": 5,}],}]}`
	chat := &fakeChat{configured: true, response: damaged}
	repo := &memPlanRepo{}
	svc := NewService(chat, repo, nil)

	row, doc, err := svc.Generate(context.Background(), uuid.New(), "transcript", "Meeting")
	require.NoError(t, err)

	assert.Equal(t, entities.PlanGeneratorGroq, row.GeneratedBy)
	require.Len(t, doc.Phases, 1)
	assert.Equal(t, "Build it", doc.Phases[0].Tasks[0].Title)
}

func TestGenerate_PersistFailure(t *testing.T) {
	repo := &memPlanRepo{saveErr: fmt.Errorf("db down")}
	svc := NewService(nil, repo, nil)

	_, _, err := svc.Generate(context.Background(), uuid.New(), "transcript", "Meeting")
	require.Error(t, err)
}

func TestParsePlanDocument_NoPhases(t *testing.T) {
	_, err := parsePlanDocument(`{"phases": []}`)
	require.Error(t, err)
}
