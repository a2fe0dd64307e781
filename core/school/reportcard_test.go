package school

import "testing"

func TestBuildReportCardAttendance(t *testing.T) {
	st := Student{ID: "s1", AdmissionNo: "ADM001", Name: "Amina Wanjiru", Grade: "Grade 4"}
	subjects := []Subject{
		{ID: "mat", Name: "Mathematics", Grade: "Grade 4"},
		{ID: "eng", Name: "English", Grade: "Grade 4"},
	}
	assessments := []Assessment{
		{StudentID: "s1", SubjectID: "mat", Term: 1, Year: 2026, Score: 70, DaysPresent: 0, TotalDays: 60},
		{StudentID: "s1", SubjectID: "eng", Term: 1, Year: 2026, Score: 80, DaysPresent: 55, TotalDays: 60},
	}

	rc := BuildReportCard(st, subjects, assessments, 1, 2026, 70)
	// the first record carrying attendance wins, even when it reports a
	// learner present for zero days
	if rc.DaysPresent != 0 || rc.TotalDays != 60 {
		t.Errorf("attendance = %d/%d, want 0/60 from the first carrying record", rc.DaysPresent, rc.TotalDays)
	}
}

func TestBuildReportCardAttendanceDefault(t *testing.T) {
	st := Student{ID: "s1", Grade: "Grade 4"}
	subjects := []Subject{{ID: "mat", Name: "Mathematics", Grade: "Grade 4"}}
	assessments := []Assessment{
		{StudentID: "s1", SubjectID: "mat", Term: 1, Year: 2026, Score: 70},
	}

	rc := BuildReportCard(st, subjects, assessments, 1, 2026, 70)
	if rc.TotalDays != 70 || rc.DaysPresent != 0 {
		t.Errorf("attendance = %d/%d, want fallback 0/70", rc.DaysPresent, rc.TotalDays)
	}
}
