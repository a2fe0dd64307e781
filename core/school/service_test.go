package school_test

import (
	"context"
	"strings"
	"testing"

	"github.com/officialmikal/cbc-and-jss-automation/core"
	"github.com/officialmikal/cbc-and-jss-automation/core/school"
	remarksvc "github.com/officialmikal/cbc-and-jss-automation/services/remark"
	dummydb "github.com/officialmikal/cbc-and-jss-automation/storage/dummy"
)

func setup(t *testing.T) (*school.Service, school.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := dummydb.NewSchoolRepository(db)
	svc := school.NewService(repo, remarksvc.NewDummyService(), core.Conf)
	return svc, repo
}

func registerStudent(t *testing.T, svc *school.Service, name, admNo, grade string) school.Student {
	t.Helper()
	st, err := svc.RegisterStudent(school.NewStudent{
		Name:        name,
		AdmissionNo: admNo,
		Gender:      "Female",
		Grade:       grade,
		ParentName:  "Jane Wanjiru",
		ParentPhone: "0712345678",
		Term:        1,
		Year:        2026,
	})
	if err != nil {
		t.Fatalf("RegisterStudent(%s) failed: %v", admNo, err)
	}
	return st
}

func TestServiceRegisterStudent(t *testing.T) {
	svc, _ := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	if st.ID == "" {
		t.Error("registered student has no id")
	}
	if st.AdmissionDate.IsZero() {
		t.Error("registered student has no admission date")
	}

	// duplicate admission number is rejected, case notwithstanding
	_, err := svc.RegisterStudent(school.NewStudent{
		Name:        "Brian Otieno",
		AdmissionNo: "ADM001",
		Gender:      "Male",
		Grade:       "Grade 4",
		ParentName:  "James Otieno",
		ParentPhone: "0798765432",
		Term:        1,
		Year:        2026,
	})
	if err == nil {
		t.Fatal("RegisterStudent() accepted a duplicate admission number")
	}
	var vErr *core.ValidationError
	if !asValidationError(err, &vErr) {
		t.Fatalf("want *core.ValidationError, got %T: %v", err, err)
	}
	if len(vErr.Fields) == 0 || vErr.Fields[0].Field != "admission_no" {
		t.Errorf("unexpected validation fields: %+v", vErr.Fields)
	}
}

func asValidationError(err error, target **core.ValidationError) bool {
	if vErr, ok := err.(*core.ValidationError); ok {
		*target = vErr
		return true
	}
	return false
}

func TestServiceRegisterStudentValidation(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name string
		ns   school.NewStudent
	}{
		{name: "missing name", ns: school.NewStudent{AdmissionNo: "ADM001", Grade: "Grade 4", ParentName: "P", ParentPhone: "07", Term: 1, Year: 2026}},
		{name: "unknown grade", ns: school.NewStudent{Name: "A", AdmissionNo: "ADM001", Grade: "Form 2", ParentName: "P", ParentPhone: "07", Term: 1, Year: 2026}},
		{name: "bad admission number", ns: school.NewStudent{Name: "A", AdmissionNo: "ADM 001!", Grade: "Grade 4", ParentName: "P", ParentPhone: "07", Term: 1, Year: 2026}},
		{name: "bad gender", ns: school.NewStudent{Name: "A", AdmissionNo: "ADM001", Gender: "X", Grade: "Grade 4", ParentName: "P", ParentPhone: "07", Term: 1, Year: 2026}},
		{name: "bad term", ns: school.NewStudent{Name: "A", AdmissionNo: "ADM001", Grade: "Grade 4", ParentName: "P", ParentPhone: "07", Term: 4, Year: 2026}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RegisterStudent(tt.ns); err == nil {
				t.Error("RegisterStudent() accepted invalid input")
			}
		})
	}
}

func TestServiceDeleteStudentCascades(t *testing.T) {
	svc, repo := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	other := registerStudent(t, svc, "Brian Otieno", "ADM002", "Grade 4")

	if _, err := svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 80},
		{StudentID: other.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 60},
	}); err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}
	if _, err := svc.RecordPayment(school.NewPayment{StudentID: st.ID, Amount: 5000, Mode: school.ModeCash, Term: 1, Year: 2026}); err != nil {
		t.Fatalf("RecordPayment() failed: %v", err)
	}

	if err := svc.DeleteStudent(st.ID); err != nil {
		t.Fatalf("DeleteStudent() failed: %v", err)
	}

	assessments, _ := repo.LoadAssessments()
	for _, a := range assessments {
		if a.StudentID == st.ID {
			t.Error("assessment survived its student's deletion")
		}
	}
	if len(assessments) != 1 {
		t.Errorf("got %d assessments, want 1 (other student's record kept)", len(assessments))
	}
	payments, _ := repo.LoadPayments()
	if len(payments) != 0 {
		t.Errorf("got %d payments, want 0 after cascade", len(payments))
	}

	if err := svc.DeleteStudent(st.ID); err != school.ErrStudentNotFound {
		t.Errorf("re-deleting returned %v, want ErrStudentNotFound", err)
	}
}

func TestServiceSaveAssessmentBatchRecomputesLevel(t *testing.T) {
	svc, _ := setup(t)
	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")

	// a lying level on input cannot survive the merge
	merged, err := svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 85, Level: school.LevelBelow},
	})
	if err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}
	if merged[0].Level != school.LevelExceeding {
		t.Errorf("Level = %v, want %v recomputed from score", merged[0].Level, school.LevelExceeding)
	}

	// re-submitting the same key updates rather than duplicates
	merged, err = svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 45},
	})
	if err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("got %d assessments, want 1 after upsert", len(merged))
	}
	if merged[0].Score != 45 || merged[0].Level != school.LevelApproaching {
		t.Errorf("merged[0] = %d/%v, want 45/%v", merged[0].Score, merged[0].Level, school.LevelApproaching)
	}
}

func TestServiceUpsertFeeStructure(t *testing.T) {
	svc, _ := setup(t)

	fs := school.FeeStructure{
		Grade: "Grade 4", Term: 1, Year: 2026,
		Items: []school.FeeItem{{Name: "Tuition", Amount: 10000}},
	}
	if err := svc.UpsertFeeStructure(fs); err != nil {
		t.Fatalf("UpsertFeeStructure() failed: %v", err)
	}

	// same (grade, term) replaces, never appends
	fs.Items = append(fs.Items, school.FeeItem{Name: "Lunch", Amount: 2000})
	if err := svc.UpsertFeeStructure(fs); err != nil {
		t.Fatalf("UpsertFeeStructure() failed: %v", err)
	}
	structures, err := svc.FeeStructures()
	if err != nil {
		t.Fatalf("FeeStructures() failed: %v", err)
	}
	if len(structures) != 1 {
		t.Fatalf("got %d structures, want 1 after replace", len(structures))
	}
	if structures[0].Total() != 12000 {
		t.Errorf("Total() = %d, want 12000", structures[0].Total())
	}

	// a different term is a new structure
	fs.Term = 2
	if err := svc.UpsertFeeStructure(fs); err != nil {
		t.Fatalf("UpsertFeeStructure() failed: %v", err)
	}
	structures, _ = svc.FeeStructures()
	if len(structures) != 2 {
		t.Errorf("got %d structures, want 2", len(structures))
	}
}

func TestServiceBalanceAndDefaulters(t *testing.T) {
	svc, _ := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	registerStudent(t, svc, "Brian Otieno", "ADM002", "Grade 4")

	if err := svc.UpsertFeeStructure(school.FeeStructure{
		Grade: "Grade 4", Term: 1, Year: 2026,
		Items: []school.FeeItem{{Name: "Tuition", Amount: 12000}},
	}); err != nil {
		t.Fatalf("UpsertFeeStructure() failed: %v", err)
	}
	if _, err := svc.RecordPayment(school.NewPayment{StudentID: st.ID, Amount: 8000, Mode: school.ModeMpesa, Term: 1, Year: 2026}); err != nil {
		t.Fatalf("RecordPayment() failed: %v", err)
	}

	balance, err := svc.StudentBalance(st.ID)
	if err != nil {
		t.Fatalf("StudentBalance() failed: %v", err)
	}
	if balance != 4000 {
		t.Errorf("StudentBalance() = %d, want 4000", balance)
	}

	defaulters, err := svc.FeeDefaulters()
	if err != nil {
		t.Fatalf("FeeDefaulters() failed: %v", err)
	}
	if len(defaulters) != 2 {
		t.Fatalf("got %d defaulters, want 2", len(defaulters))
	}
	if defaulters[0].AdmissionNo != "ADM002" || defaulters[0].Balance != 12000 {
		t.Errorf("defaulters[0] = %s (KSh %d), want ADM002 (KSh 12000)", defaulters[0].AdmissionNo, defaulters[0].Balance)
	}
}

func TestServicePaymentForUnknownStudent(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.RecordPayment(school.NewPayment{StudentID: "ghost", Amount: 100, Mode: school.ModeCash, Term: 1, Year: 2026})
	if err != school.ErrStudentNotFound {
		t.Errorf("RecordPayment() error = %v, want ErrStudentNotFound", err)
	}
}

func TestServiceSeedSubjects(t *testing.T) {
	svc, _ := setup(t)

	added, err := svc.SeedSubjects("Grade 7")
	if err != nil {
		t.Fatalf("SeedSubjects() failed: %v", err)
	}
	if len(added) == 0 {
		t.Fatal("SeedSubjects() added nothing")
	}
	for _, sub := range added {
		if sub.Grade != "Grade 7" || sub.Category != school.CategoryJSS {
			t.Errorf("unexpected seeded subject: %+v", sub)
		}
	}

	// seeding twice adds nothing new
	again, err := svc.SeedSubjects("Grade 7")
	if err != nil {
		t.Fatalf("SeedSubjects() failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("re-seeding added %d subjects, want 0", len(again))
	}

	if _, err = svc.SeedSubjects("Form 1"); err == nil {
		t.Error("SeedSubjects() accepted an unknown grade")
	}
}

func TestServiceSubjectLifecycle(t *testing.T) {
	svc, _ := setup(t)

	sub, err := svc.CreateSubject(school.NewSubject{
		Name: "Mathematics", Category: school.CategoryPrimary, Grade: "Grade 4", TeacherName: "Mr. Kamau",
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}

	// partial update keeps unspecified fields
	updated, err := svc.UpdateSubject(sub.ID, school.UpdateSubject{TeacherName: "Mrs. Achieng"})
	if err != nil {
		t.Fatalf("UpdateSubject() failed: %v", err)
	}
	if updated.Name != "Mathematics" || updated.TeacherName != "Mrs. Achieng" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	if _, err = svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: sub.ID, Term: 1, Year: 2026, Score: 70},
	}); err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}

	// deleting the subject orphans its assessments, it does not delete them
	if err = svc.DeleteSubject(sub.ID); err != nil {
		t.Fatalf("DeleteSubject() failed: %v", err)
	}
	assessments, _ := svc.Assessments()
	if len(assessments) != 1 {
		t.Errorf("got %d assessments, want 1 orphaned record", len(assessments))
	}

	if err = svc.DeleteSubject(sub.ID); err != school.ErrSubjectNotFound {
		t.Errorf("re-deleting returned %v, want ErrSubjectNotFound", err)
	}
}

func TestServiceImportFlow(t *testing.T) {
	svc, _ := setup(t)

	res, err := svc.ImportStudents(strings.Join([]string{
		"Amina Wanjiru, ADM001, Female, Grade 4, North, Jane Wanjiru, 0712345678",
		"Broken Line, , Male, Grade 4",
		"Brian Otieno, ADM002, Male, Grade 4, North, James Otieno, 0798765432",
	}, "\n"))
	if err != nil {
		t.Fatalf("ImportStudents() failed: %v", err)
	}
	if len(res.Students) != 2 || len(res.Skipped) != 1 {
		t.Fatalf("got %d imported / %d skipped, want 2 / 1", len(res.Students), len(res.Skipped))
	}

	if _, err = svc.SeedSubjects("Grade 4"); err != nil {
		t.Fatalf("SeedSubjects() failed: %v", err)
	}

	marks, err := svc.ImportMarksByName("ADM001, Mathematics, 85\nADM002, Mathematics, 55", 1, 2026)
	if err != nil {
		t.Fatalf("ImportMarksByName() failed: %v", err)
	}
	if len(marks.Assessments) != 2 {
		t.Fatalf("got %d assessments, want 2", len(marks.Assessments))
	}

	ranked, err := svc.Leaderboard("Grade 4", 0, 0)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked students, want 2", len(ranked))
	}
	if ranked[0].AdmissionNo != "ADM001" || ranked[0].Rank != 1 {
		t.Errorf("ranked[0] = %s rank %d, want ADM001 rank 1", ranked[0].AdmissionNo, ranked[0].Rank)
	}

	pays, err := svc.ImportPayments("ADM001, 5000, mpesa\nADM404, 100, Cash")
	if err != nil {
		t.Fatalf("ImportPayments() failed: %v", err)
	}
	if len(pays.Payments) != 1 || len(pays.Skipped) != 1 {
		t.Errorf("got %d recorded / %d skipped, want 1 / 1", len(pays.Payments), len(pays.Skipped))
	}
}

func TestServiceLeaderboardScope(t *testing.T) {
	svc, _ := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	if _, err := svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 50},
		{StudentID: st.ID, SubjectID: "mat", Term: 2, Year: 2026, Score: 90},
	}); err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}

	// term without year (and vice versa) is rejected, never silently
	// widened to the all-history scope
	if _, err := svc.Leaderboard("", 1, 0); err != school.ErrPartialTermScope {
		t.Errorf("Leaderboard(term only) error = %v, want ErrPartialTermScope", err)
	}
	if _, err := svc.Leaderboard("", 0, 2026); err != school.ErrPartialTermScope {
		t.Errorf("Leaderboard(year only) error = %v, want ErrPartialTermScope", err)
	}

	ranked, err := svc.Leaderboard("", 1, 2026)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if ranked[0].MeanScore != 50 {
		t.Errorf("term-scoped mean = %.1f, want 50.0", ranked[0].MeanScore)
	}
}

func TestServiceReportCard(t *testing.T) {
	svc, _ := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	if _, err := svc.SeedSubjects("Grade 4"); err != nil {
		t.Fatalf("SeedSubjects() failed: %v", err)
	}
	subjects, _ := svc.Subjects()
	if _, err := svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: subjects[0].ID, Term: 1, Year: 2026, Score: 80},
		{StudentID: st.ID, SubjectID: subjects[1].ID, Term: 1, Year: 2026, Score: 60},
	}); err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}

	rc, err := svc.ReportCard("ADM001", 1, 2026)
	if err != nil {
		t.Fatalf("ReportCard() failed: %v", err)
	}
	if len(rc.Rows) != len(subjects) {
		t.Errorf("got %d rows, want one per learning area (%d)", len(rc.Rows), len(subjects))
	}
	if rc.MeanScore != 70 {
		t.Errorf("MeanScore = %.1f, want 70.0 over scored rows only", rc.MeanScore)
	}
	var scored int
	for _, row := range rc.Rows {
		if row.HasScore {
			scored++
		}
	}
	if scored != 2 {
		t.Errorf("got %d scored rows, want 2", scored)
	}
	if rc.School.Name == "" {
		t.Error("report card missing school identity")
	}

	var buf strings.Builder
	if err = rc.Render(&buf); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Amina Wanjiru", "ADM001", "Grade 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report card missing %q", want)
		}
	}

	if _, err = svc.ReportCard("ADM404", 1, 2026); err != school.ErrStudentNotFound {
		t.Errorf("ReportCard() error = %v, want ErrStudentNotFound", err)
	}
}

func TestServiceSummary(t *testing.T) {
	svc, _ := setup(t)

	st := registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	registerStudent(t, svc, "Brian Otieno", "ADM002", "Grade 7")
	if _, err := svc.RecordPayment(school.NewPayment{StudentID: st.ID, Amount: 3000, Mode: school.ModeBank, Term: 1, Year: 2026}); err != nil {
		t.Fatalf("RecordPayment() failed: %v", err)
	}
	if _, err := svc.SaveAssessmentBatch([]school.Assessment{
		{StudentID: st.ID, SubjectID: "mat", Term: 1, Year: 2026, Score: 90},
		{StudentID: st.ID, SubjectID: "eng", Term: 1, Year: 2026, Score: 70},
	}); err != nil {
		t.Fatalf("SaveAssessmentBatch() failed: %v", err)
	}

	sum, err := svc.SchoolSummary()
	if err != nil {
		t.Fatalf("SchoolSummary() failed: %v", err)
	}
	if sum.Students != 2 || sum.Assessments != 2 || sum.FeesCollected != 3000 {
		t.Errorf("unexpected summary: %+v", sum)
	}
	if sum.MeanScore != 80 {
		t.Errorf("MeanScore = %.1f, want 80.0", sum.MeanScore)
	}
}

func TestServiceGenerateRemark(t *testing.T) {
	svc, _ := setup(t)

	sub, err := svc.CreateSubject(school.NewSubject{Name: "Mathematics", Category: school.CategoryPrimary, Grade: "Grade 4"})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}

	remark, err := svc.GenerateRemark(context.Background(), sub.ID, 85)
	if err != nil {
		t.Fatalf("GenerateRemark() failed: %v", err)
	}
	if !strings.Contains(remark, "Mathematics") {
		t.Errorf("remark %q does not mention the subject", remark)
	}

	if _, err = svc.GenerateRemark(context.Background(), "ghost", 85); err != school.ErrSubjectNotFound {
		t.Errorf("GenerateRemark() error = %v, want ErrSubjectNotFound", err)
	}
}

func TestServiceSearchStudents(t *testing.T) {
	svc, _ := setup(t)

	registerStudent(t, svc, "Amina Wanjiru", "ADM001", "Grade 4")
	registerStudent(t, svc, "Brian Otieno", "ADM002", "Grade 7")

	matched, err := svc.SearchStudents("wanji")
	if err != nil {
		t.Fatalf("SearchStudents() failed: %v", err)
	}
	if len(matched) != 1 || matched[0].AdmissionNo != "ADM001" {
		t.Errorf("SearchStudents(wanji) = %+v, want Amina only", matched)
	}

	matched, _ = svc.SearchStudents("adm00")
	if len(matched) != 2 {
		t.Errorf("SearchStudents(adm00) matched %d, want 2", len(matched))
	}

	matched, _ = svc.SearchStudents("")
	if len(matched) != 2 {
		t.Errorf("SearchStudents(\"\") matched %d, want all students", len(matched))
	}
}
