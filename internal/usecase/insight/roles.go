package insight

// skillRoles maps detected skills to suggested project roles. Owned here
// and shared by the LLM backfill and the heuristic fallback so the two
// branches never drift apart.
var skillRoles = map[string]string{
	"react":      "Frontend Lead",
	"frontend":   "Frontend Lead",
	"javascript": "Frontend Lead",
	"typescript": "Frontend Lead",
	"css":        "Frontend Lead",
	"ui":         "UI/UX Design",
	"ux":         "UI/UX Design",
	"design":     "UI/UX Design",
	"figma":      "UI/UX Design",
	"sql":        "Database Design",
	"database":   "Database Design",
	"postgres":   "Database Design",
	"backend":    "Backend Lead",
	"api":        "Backend Lead",
	"node":       "Backend Lead",
	"python":     "Backend Lead",
	"go":         "Backend Lead",
	"java":       "Backend Lead",
	"docker":     "DevOps Engineer",
	"kubernetes": "DevOps Engineer",
	"devops":     "DevOps Engineer",
	"deployment": "DevOps Engineer",
	"testing":    "QA Lead",
	"qa":         "QA Lead",
	"planning":   "Project Manager",
	"management": "Project Manager",
}

// roleForSkill looks up the suggested role for a skill, if any
func roleForSkill(skill string) (string, bool) {
	role, ok := skillRoles[skill]
	return role, ok
}
