package school

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

func TestGradeValidation(t *testing.T) {
	type probe struct {
		Grade string `json:"grade" validate:"grade"`
	}

	assert.NoError(t, core.Validate.Struct(probe{Grade: "PP1"}))
	assert.NoError(t, core.Validate.Struct(probe{Grade: "Grade 9"}))
	assert.Error(t, core.Validate.Struct(probe{Grade: "Form 2"}))
	assert.Error(t, core.Validate.Struct(probe{Grade: "grade 4"})) // case-sensitive
	assert.Error(t, core.Validate.Struct(probe{Grade: ""}))
}

func TestAdmNoValidation(t *testing.T) {
	type probe struct {
		AdmissionNo string `json:"admission_no" validate:"admno"`
	}

	assert.NoError(t, core.Validate.Struct(probe{AdmissionNo: "ADM001"}))
	assert.NoError(t, core.Validate.Struct(probe{AdmissionNo: "JSS/2026-014"}))
	assert.NoError(t, core.Validate.Struct(probe{AdmissionNo: "adm_001"}))
	assert.Error(t, core.Validate.Struct(probe{AdmissionNo: "ADM 001"})) // no whitespace
	assert.Error(t, core.Validate.Struct(probe{AdmissionNo: "ADM#1"}))
	assert.Error(t, core.Validate.Struct(probe{AdmissionNo: ""}))
}
