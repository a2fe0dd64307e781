package school

// CBC curriculum templates per grade band. Template IDs are stable so that
// seeded subjects keep their identity across installations.

var prePrimarySubjects = []Subject{
	{ID: "lang_pp", Name: "Language Activities", Category: CategoryPrimary},
	{ID: "math_pp", Name: "Mathematical Activities", Category: CategoryPrimary},
	{ID: "env_pp", Name: "Environmental Activities", Category: CategoryPrimary},
	{ID: "psy_pp", Name: "Psychomotor Activities", Category: CategoryPrimary},
	{ID: "cre_pp", Name: "Religious Education", Category: CategoryPrimary},
}

var lowerPrimarySubjects = []Subject{
	{ID: "lit_lp", Name: "Literacy / Indigenous Lang", Category: CategoryPrimary},
	{ID: "kis_lp", Name: "Kiswahili / KSL", Category: CategoryPrimary},
	{ID: "eng_lp", Name: "English Language", Category: CategoryPrimary},
	{ID: "mat_lp", Name: "Mathematics", Category: CategoryPrimary},
	{ID: "env_lp", Name: "Environmental Activities", Category: CategoryPrimary},
	{ID: "hyg_lp", Name: "Hygiene and Nutrition", Category: CategoryPrimary},
	{ID: "cre_lp", Name: "Religious Education", Category: CategoryPrimary},
	{ID: "art_lp", Name: "Creative Arts", Category: CategoryPrimary},
	{ID: "pe_lp", Name: "Movement and Creative", Category: CategoryPrimary},
}

var upperPrimarySubjects = []Subject{
	{ID: "eng_up", Name: "English", Category: CategoryPrimary},
	{ID: "kis_up", Name: "Kiswahili / KSL", Category: CategoryPrimary},
	{ID: "mat_up", Name: "Mathematics", Category: CategoryPrimary},
	{ID: "sci_up", Name: "Science and Technology", Category: CategoryPrimary},
	{ID: "soc_up", Name: "Social Studies", Category: CategoryPrimary},
	{ID: "cre_up", Name: "Religious Education", Category: CategoryPrimary},
	{ID: "art_up", Name: "Creative Arts", Category: CategoryPrimary},
	{ID: "pe_up", Name: "Physical Education", Category: CategoryPrimary},
	{ID: "agr_up", Name: "Agriculture and Nutrition", Category: CategoryPrimary},
}

var jssSubjects = []Subject{
	{ID: "eng_j", Name: "English", Category: CategoryJSS},
	{ID: "kis_j", Name: "Kiswahili / KSL", Category: CategoryJSS},
	{ID: "mat_j", Name: "Mathematics", Category: CategoryJSS},
	{ID: "sci_j", Name: "Integrated Science", Category: CategoryJSS},
	{ID: "soc_j", Name: "Social Studies", Category: CategoryJSS},
	{ID: "pre_j", Name: "Pre-Technical Studies", Category: CategoryJSS},
	{ID: "bus_j", Name: "Business Studies", Category: CategoryJSS},
	{ID: "agr_j", Name: "Agriculture and Nutrition", Category: CategoryJSS},
	{ID: "pe_j", Name: "Physical Education", Category: CategoryJSS},
	{ID: "cre_j", Name: "Religious Education", Category: CategoryJSS},
	{ID: "com_j", Name: "Computer Science", Category: CategoryJSS},
}

// SubjectsForGrade returns the curriculum template subjects for a grade,
// with the grade and grade-scoped ids filled in.
func SubjectsForGrade(grade string) []Subject {
	var tmpl []Subject
	switch grade {
	case "PP1", "PP2":
		tmpl = prePrimarySubjects
	case "Grade 1", "Grade 2", "Grade 3":
		tmpl = lowerPrimarySubjects
	case "Grade 4", "Grade 5", "Grade 6":
		tmpl = upperPrimarySubjects
	default:
		tmpl = jssSubjects
	}

	subjects := make([]Subject, len(tmpl))
	for i, sub := range tmpl {
		sub.ID = sub.ID + ":" + grade
		sub.Grade = grade
		subjects[i] = sub
	}
	return subjects
}
