package insight

import (
	"regexp"
	"strings"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// Sentiment keyword lists for the bag-of-words fallback. Hand-picked
// starting configuration; the ratio mechanics are the contract, not the
// exact word lists.
var (
	positiveWords = []string{"good", "great", "cool", "nice", "love", "awesome", "works"}
	negativeWords = []string{"bad", "problem", "issue", "don't", "can't", "confused", "stuck"}
)

// expertisePattern matches self-reported skill statements such as
// "I'm good at React" or "I am experienced with SQL".
var expertisePattern = regexp.MustCompile(
	`(?i)\bi(?:'m|\s+am)\s+(?:good\s+at|great\s+at|experienced\s+(?:with|in)|skilled\s+(?:in|with)|comfortable\s+with)\s+([^.,;!?]{2,60})`)

// skillStopWords are filler tokens stripped from captured skill phrases
var skillStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"my": true, "our": true, "some": true, "very": true, "really": true,
	"at": true, "with": true, "in": true, "of": true, "and": true,
	"stuff": true, "things": true, "it": true,
}

// heuristicSentiment computes a Laplace-smoothed positive ratio over a
// fixed keyword list: (pos+1)/(pos+neg+2), centered at 0.5 when nothing
// matches.
func heuristicSentiment(transcript string) (score float64, pos, neg int) {
	lower := strings.ToLower(transcript)
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	score = float64(pos+1) / float64(pos+neg+2)
	return score, pos, neg
}

// heuristicExpertise extracts self-reported skills per line, attributing
// each to the line's leading "Speaker:" token. Repeated mentions of the
// same skill raise confidence by 0.2 up to the 1.0 cap.
func heuristicExpertise(transcript string) map[string]map[string]float64 {
	detected := make(map[string]map[string]float64)

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker := "Unknown"
		text := line
		if idx := strings.Index(line, ":"); idx > 0 {
			speaker = strings.TrimSpace(line[:idx])
			text = line[idx+1:]
		}

		for _, match := range expertisePattern.FindAllStringSubmatch(text, -1) {
			skill := normalizeSkill(match[1])
			if skill == "" {
				continue
			}

			if detected[speaker] == nil {
				detected[speaker] = make(map[string]float64)
			}
			if current, seen := detected[speaker][skill]; seen {
				detected[speaker][skill] = minFloat(current+0.2, 1.0)
			} else {
				detected[speaker][skill] = 0.6
			}
		}
	}

	return detected
}

// normalizeSkill lowercases a captured phrase, strips stop-words, and
// keeps 1-3-token phrases of 2-30 characters. Returns "" when nothing
// usable remains.
func normalizeSkill(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.Trim(raw, ".,;:!?\"'")

	tokens := strings.Fields(raw)
	kept := make([]string, 0, 3)
	for _, tok := range tokens {
		if skillStopWords[tok] {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}

	skill := strings.Join(kept, " ")
	if len(skill) < 2 || len(skill) > 30 {
		return ""
	}
	return skill
}

// rolesFromExpertise maps detected skills to role suggestions through the
// shared lookup table, one suggestion per matched skill with confidence
// raised by 0.1 over the detection (capped at 1).
func rolesFromExpertise(expertise map[string]map[string]float64) []entities.RoleSuggestion {
	suggestions := make([]entities.RoleSuggestion, 0)
	for user, skills := range expertise {
		for skill, confidence := range skills {
			role, ok := roleForSkill(firstToken(skill))
			if !ok {
				continue
			}
			suggestions = append(suggestions, entities.RoleSuggestion{
				Role:       role,
				User:       user,
				Confidence: minFloat(confidence+0.1, 1.0),
				Reasoning:  "mentioned experience with " + skill,
			})
		}
	}
	return suggestions
}

func firstToken(phrase string) string {
	if idx := strings.IndexByte(phrase, ' '); idx > 0 {
		return phrase[:idx]
	}
	return phrase
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
