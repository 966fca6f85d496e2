package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveTaskPayload struct {
	Status     string  `json:"status" validate:"required,oneof=todo in_progress done"`
	AssigneeID *string `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
}

func TestValidatePasses(t *testing.T) {
	cv := New()
	require.NoError(t, cv.Validate(&moveTaskPayload{Status: "done"}))
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	cv := New()

	err := cv.Validate(&moveTaskPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status is required")
	assert.NotContains(t, err.Error(), "Status")
}

func TestValidateFlattensMultipleFailures(t *testing.T) {
	cv := New()

	bad := "not-a-uuid"
	err := cv.Validate(&moveTaskPayload{Status: "archived", AssigneeID: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of: todo in_progress done")
	assert.Contains(t, err.Error(), "assignee_id must be a valid UUID")
}
