package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEducationInput_AllMissing(t *testing.T) {
	_, errs, ok := ValidateEducationInput(Record{"school": " ", "degree": nil})

	assert.False(t, ok)
	assert.Equal(t, Errors{
		"school":       "School field is required",
		"degree":       "Degree field is required",
		"from":         "From date field is required",
		"fieldOfStudy": "Field of study field is required",
	}, errs)
}

func TestValidateEducationInput_PartiallyMissing(t *testing.T) {
	_, errs, ok := ValidateEducationInput(Record{
		"school": "MIT",
		"degree": "BSc",
	})

	assert.False(t, ok)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "from")
	assert.Contains(t, errs, "fieldOfStudy")
}

func TestValidateEducationInput_Valid(t *testing.T) {
	in, errs, ok := ValidateEducationInput(Record{
		"school":       "MIT",
		"degree":       "BSc",
		"from":         "2015-09-01",
		"fieldOfStudy": "Computer Science",
		"current":      true,
	})

	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, "Computer Science", in.FieldOfStudy)
	assert.True(t, in.Current)
	assert.Equal(t, "", in.To)
}
