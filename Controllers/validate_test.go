package Controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructUsesJSONFieldNames(t *testing.T) {
	fields := validateStruct(SubmitLeaveRequest{
		StartDate: "2025-07-10",
		EndDate:   "10/07/2025",
	})
	require.NotNil(t, fields)

	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "reason")
	assert.NotContains(t, fields, "EndDate")
	assert.NotContains(t, fields, "Reason")
}

func TestValidateStructValid(t *testing.T) {
	fields := validateStruct(SubmitLeaveRequest{
		StartDate: "2025-07-10",
		EndDate:   "2025-07-12",
		Reason:    "family trip",
	})
	assert.Nil(t, fields)
}
