package plan

import (
	"strings"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// defaultPhaseColor backfills phases the LLM emitted without a color
const defaultPhaseColor = "#6366F1"

// phaseFamily is one keyword family the fallback planner scans for,
// with its canned phase. Families are evaluated in a fixed priority
// order so the emitted plan is deterministic.
type phaseFamily struct {
	keywords []string
	build    func(order int) entities.PlanPhase
}

var phaseFamilies = []phaseFamily{
	{
		keywords: []string{"frontend", "ui", "ux"},
		build:    frontendPhase,
	},
	{
		keywords: []string{"backend", "api", "database", "server"},
		build:    backendPhase,
	},
	{
		keywords: []string{"implementation", "deployment", "launch", "delivery"},
		build:    deliveryPhase,
	},
}

// fallbackPlan deterministically generates a plan from transcript keywords
// when the LLM response could not be parsed. One canned phase is emitted
// per matched keyword family; a generic setup phase when nothing matches.
func fallbackPlan(transcript string) *entities.PlanDocument {
	lower := strings.ToLower(transcript)

	phases := make([]entities.PlanPhase, 0, len(phaseFamilies))
	for _, family := range phaseFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				phases = append(phases, family.build(len(phases)+1))
				break
			}
		}
	}

	if len(phases) == 0 {
		phases = append(phases, genericPhase(1))
	}

	doc := &entities.PlanDocument{
		Phases:             phases,
		SuggestedAssignees: []entities.PlanAssignee{},
	}
	doc.WorkloadAnalysis = analyzeWorkload(doc)
	return doc
}

// analyzeWorkload computes plan totals by summing estimated hours across
// all emitted tasks.
func analyzeWorkload(doc *entities.PlanDocument) entities.WorkloadAnalysis {
	return entities.WorkloadAnalysis{
		TotalTasks:          doc.TotalTaskCount(),
		EstimatedTotalHours: doc.TotalEstimatedHours(),
		Recommendations: []string{
			"Review generated tasks with the team before committing to estimates.",
		},
	}
}

func frontendPhase(order int) entities.PlanPhase {
	return entities.PlanPhase{
		Name:  "Frontend Development",
		Order: order,
		Color: "#3B82F6",
		Tasks: []entities.PlanTask{
			{
				Title:          "Design component structure",
				Description:    "Break the UI discussed in the meeting into reusable components.",
				Priority:       "high",
				EstimatedHours: 8,
				Subtasks: []entities.PlanSubtask{
					{Title: "Sketch page layouts"},
					{Title: "Define shared component props"},
				},
			},
			{
				Title:          "Implement core screens",
				Description:    "Build the primary user-facing screens and wire navigation.",
				Priority:       "high",
				EstimatedHours: 16,
				Subtasks: []entities.PlanSubtask{
					{Title: "Build screen skeletons"},
					{Title: "Connect to API endpoints"},
				},
			},
			{
				Title:          "Polish styling and responsiveness",
				Description:    "Apply the design system and verify mobile breakpoints.",
				Priority:       "medium",
				EstimatedHours: 6,
				Subtasks:       []entities.PlanSubtask{},
			},
		},
	}
}

func backendPhase(order int) entities.PlanPhase {
	return entities.PlanPhase{
		Name:  "Backend Development",
		Order: order,
		Color: "#10B981",
		Tasks: []entities.PlanTask{
			{
				Title:          "Design data model",
				Description:    "Define the schema for the entities discussed in the meeting.",
				Priority:       "high",
				EstimatedHours: 6,
				Subtasks: []entities.PlanSubtask{
					{Title: "Draft entity relationships"},
					{Title: "Write migration scripts"},
				},
			},
			{
				Title:          "Implement API endpoints",
				Description:    "Build and document the service endpoints.",
				Priority:       "high",
				EstimatedHours: 12,
				Subtasks: []entities.PlanSubtask{
					{Title: "CRUD endpoints"},
					{Title: "Input validation"},
					{Title: "Error handling"},
				},
			},
			{
				Title:          "Write integration tests",
				Description:    "Cover the API surface with integration tests.",
				Priority:       "medium",
				EstimatedHours: 8,
				Subtasks:       []entities.PlanSubtask{},
			},
		},
	}
}

func deliveryPhase(order int) entities.PlanPhase {
	return entities.PlanPhase{
		Name:  "Implementation & Delivery",
		Order: order,
		Color: "#F59E0B",
		Tasks: []entities.PlanTask{
			{
				Title:          "Set up deployment pipeline",
				Description:    "Automate build, test, and deploy for the environments discussed.",
				Priority:       "high",
				EstimatedHours: 8,
				Subtasks: []entities.PlanSubtask{
					{Title: "Configure CI"},
					{Title: "Provision staging environment"},
				},
			},
			{
				Title:          "Launch checklist",
				Description:    "Verify readiness and roll out to users.",
				Priority:       "medium",
				EstimatedHours: 4,
				Subtasks: []entities.PlanSubtask{
					{Title: "Smoke test production"},
					{Title: "Announce release"},
				},
			},
		},
	}
}

func genericPhase(order int) entities.PlanPhase {
	return entities.PlanPhase{
		Name:  "Project Planning & Setup",
		Order: order,
		Color: defaultPhaseColor,
		Tasks: []entities.PlanTask{
			{
				Title:          "Define project scope",
				Description:    "Turn the meeting discussion into a concrete scope document.",
				Priority:       "high",
				EstimatedHours: 4,
				Subtasks: []entities.PlanSubtask{
					{Title: "List goals and non-goals"},
					{Title: "Identify stakeholders"},
				},
			},
			{
				Title:          "Set up project tooling",
				Description:    "Repository, issue tracker, and communication channels.",
				Priority:       "medium",
				EstimatedHours: 3,
				Subtasks:       []entities.PlanSubtask{},
			},
		},
	}
}
