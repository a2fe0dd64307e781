package school

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

var (
	gradeTag  = "grade"
	gradeText = "unknown grade"

	admNoTag   = "admno"
	admNoText  = "admission number may only contain letters, digits, '/', '-' and '_'"
	admNoRegex = regexp.MustCompile(`^[A-Za-z0-9/_-]+$`)
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(gradeTag, gradeText)

	_ = core.Validate.RegisterValidation(admNoTag, admNoValidation)
	core.RegisterCustomTranslation(admNoTag, admNoText)
}

// Custom Validators

// gradeValidation checks that the provided grade is in Grades
func gradeValidation(fl validator.FieldLevel) bool {
	if grade, ok := fl.Field().Interface().(string); ok {
		return ValidGrade(grade)
	}
	return false
}

// admNoValidation checks the admission number character set
func admNoValidation(fl validator.FieldLevel) bool {
	if admNo, ok := fl.Field().Interface().(string); ok {
		return admNoRegex.MatchString(admNo)
	}
	return false
}
