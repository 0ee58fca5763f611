package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	for raw, want := range map[string]uint{"1": 1, " 42 ": 42} {
		id, ok := ParseID(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, id)
	}
	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	req := struct {
		CourseID uint `json:"course_id" validate:"required"`
	}{}

	err := Struct(req)
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "course_id", ve[0].Field())
}
