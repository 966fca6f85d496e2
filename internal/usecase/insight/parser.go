package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/collabsphere/collabsphere-ai/internal/domain/entities"
)

// llmInsights is the shape the LLM is instructed to emit. All three
// top-level keys must be present for the response to count as parsed.
type llmInsights struct {
	SentimentAnalysis  entities.SentimentAnalysis             `json:"sentiment_analysis"`
	ExpertiseDetection map[string]map[string]float64          `json:"expertise_detection"`
	RoleSuggestions    []entities.RoleSuggestion              `json:"role_suggestions"`
}

// parseLLMInsights extracts the JSON object from an LLM response that may
// be wrapped in prose or markdown, repairs minor syntax damage, and
// validates that all three required keys are present. Any failure is
// returned to the caller, which falls through to the heuristic branch.
func parseLLMInsights(content string) (*llmInsights, error) {
	sliced, err := sliceJSONObject(content)
	if err != nil {
		return nil, err
	}

	raw, err := unmarshalObject(sliced)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{"sentiment_analysis", "expertise_detection", "role_suggestions"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("missing %s in response", key)
		}
	}

	var parsed llmInsights
	if err := unmarshalInto(sliced, &parsed); err != nil {
		return nil, err
	}

	if parsed.SentimentAnalysis.Notes == nil {
		parsed.SentimentAnalysis.Notes = []string{}
	}
	if parsed.ExpertiseDetection == nil {
		parsed.ExpertiseDetection = map[string]map[string]float64{}
	}
	if parsed.RoleSuggestions == nil {
		parsed.RoleSuggestions = []entities.RoleSuggestion{}
	}

	return &parsed, nil
}

// sliceJSONObject cuts the response from the first '{' to the last '}',
// tolerating surrounding prose and code fences.
func sliceJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return content[start : end+1], nil
}

func unmarshalObject(data string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err == nil {
		return raw, nil
	}

	fixed, err := jsonrepair.JSONRepair(data)
	if err != nil {
		return nil, fmt.Errorf("unparseable JSON in response: %w", err)
	}
	if err := json.Unmarshal([]byte(fixed), &raw); err != nil {
		return nil, fmt.Errorf("unparseable JSON in response: %w", err)
	}
	return raw, nil
}

func unmarshalInto(data string, v interface{}) error {
	if err := json.Unmarshal([]byte(data), v); err == nil {
		return nil
	}
	fixed, err := jsonrepair.JSONRepair(data)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(fixed), v)
}
