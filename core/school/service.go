package school

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

var (
	// errors
	ErrStudentNotFound   = errors.New("student not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrAdmissionNoExists = errors.New("a student with this admission number already exists")
	ErrPartialTermScope  = errors.New("term and year must be provided together")
)

type (
	// Repository persists whole-collection snapshots: every save replaces
	// the named collection atomically, last writer wins. Load returns an
	// empty collection when none has been saved yet.
	Repository interface {
		LoadStudents() ([]Student, error)
		SaveStudents([]Student) error
		LoadSubjects() ([]Subject, error)
		SaveSubjects([]Subject) error
		LoadAssessments() ([]Assessment, error)
		SaveAssessments([]Assessment) error
		LoadPayments() ([]Payment, error)
		SavePayments([]Payment) error
		LoadFeeStructures() ([]FeeStructure, error)
		SaveFeeStructures([]FeeStructure) error
	}

	// Service wires the pure engine functions to the repository and the
	// remark-generation collaborator. The engine functions themselves never
	// touch the repository; the service loads collections, computes and
	// saves results.
	Service struct {
		repo             Repository
		remarkSvc        core.RemarkService
		defaultFeeTotal  int
		defaultTotalDays int
		school           SchoolInfo
	}
)

func NewService(repo Repository, remarkSvc core.RemarkService, conf *core.Config) *Service {
	return &Service{
		repo:             repo,
		remarkSvc:        remarkSvc,
		defaultFeeTotal:  conf.DefaultFeeTotal,
		defaultTotalDays: conf.DefaultTotalDays,
		school: SchoolInfo{
			Name:  conf.SchoolName,
			Motto: conf.SchoolMotto,
			Box:   conf.SchoolBox,
			Email: conf.SchoolEmail,
			Phone: conf.SchoolPhone,
		},
	}
}

// Students

func (svc *Service) checkAdmissionNoUniqueness(admNo string) error {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return err
	}
	if _, ok := findByAdmissionNo(students, admNo); ok {
		return core.NewValidationError(ErrAdmissionNoExists, core.FieldError{Field: "admission_no", Error: ErrAdmissionNoExists.Error()})
	}
	return nil
}

func (svc *Service) RegisterStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(svc); err != nil {
		return Student{}, err
	}
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	st := Student{
		ID:            uuid.New().String(),
		AdmissionNo:   ns.AdmissionNo,
		Name:          ns.Name,
		Gender:        ns.Gender,
		Grade:         ns.Grade,
		Stream:        ns.Stream,
		ParentName:    ns.ParentName,
		ParentPhone:   ns.ParentPhone,
		Term:          ns.Term,
		Year:          ns.Year,
		AdmissionDate: time.Now().UTC(),
	}
	if err := svc.repo.SaveStudents(append(students, st)); err != nil {
		return Student{}, err
	}
	return st, nil
}

func (svc *Service) Students() ([]Student, error) {
	return svc.repo.LoadStudents()
}

func (svc *Service) GetStudentByAdmissionNo(admNo string) (Student, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Student{}, err
	}
	if st, ok := findByAdmissionNo(students, core.CleanString(admNo)); ok {
		return st, nil
	}
	return Student{}, ErrStudentNotFound
}

// DeleteStudent removes a student and cascades to all of their assessment
// and payment records. The cascade is part of the contract, not optional
// cleanup.
func (svc *Service) DeleteStudent(id string) error {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return err
	}
	kept := make([]Student, 0, len(students))
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if len(kept) == len(students) {
		return ErrStudentNotFound
	}
	if err := svc.repo.SaveStudents(kept); err != nil {
		return err
	}

	assessments, err := svc.repo.LoadAssessments()
	if err != nil {
		return err
	}
	keptAssessments := make([]Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.StudentID != id {
			keptAssessments = append(keptAssessments, a)
		}
	}
	if err := svc.repo.SaveAssessments(keptAssessments); err != nil {
		return err
	}

	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return err
	}
	keptPayments := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.StudentID != id {
			keptPayments = append(keptPayments, p)
		}
	}
	return svc.repo.SavePayments(keptPayments)
}

// ImportStudents bulk-registers students from comma-separated text,
// skipping malformed lines. The skipped report accompanies the imported
// records; both are returned even on a successful save.
func (svc *Service) ImportStudents(raw string) (StudentImport, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return StudentImport{}, err
	}
	res := ParseStudents(raw, students)
	if len(res.Students) == 0 {
		return res, nil
	}
	return res, svc.repo.SaveStudents(append(students, res.Students...))
}

// Subjects

func (svc *Service) Subjects() ([]Subject, error) {
	return svc.repo.LoadSubjects()
}

func (svc *Service) CreateSubject(ns NewSubject) (Subject, error) {
	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return Subject{}, err
	}
	sub := Subject{
		ID:          uuid.New().String(),
		Name:        ns.Name,
		Category:    ns.Category,
		Grade:       ns.Grade,
		TeacherName: ns.TeacherName,
	}
	if err := svc.repo.SaveSubjects(append(subjects, sub)); err != nil {
		return Subject{}, err
	}
	return sub, nil
}

func (svc *Service) UpdateSubject(id string, us UpdateSubject) (Subject, error) {
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return Subject{}, err
	}
	for i, sub := range subjects {
		if sub.ID != id {
			continue
		}
		if err := us.Validate(sub); err != nil {
			return Subject{}, err
		}
		sub.Name = us.Name
		sub.Category = us.Category
		sub.Grade = us.Grade
		sub.TeacherName = us.TeacherName
		subjects[i] = sub
		return sub, svc.repo.SaveSubjects(subjects)
	}
	return Subject{}, ErrSubjectNotFound
}

// DeleteSubject removes a subject. Assessments referencing it are orphaned,
// not deleted.
func (svc *Service) DeleteSubject(id string) error {
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return err
	}
	kept := make([]Subject, 0, len(subjects))
	for _, sub := range subjects {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(subjects) {
		return ErrSubjectNotFound
	}
	return svc.repo.SaveSubjects(kept)
}

// SeedSubjects installs the CBC curriculum template for a grade, skipping
// learning areas already present for that grade. It returns the subjects
// actually added.
func (svc *Service) SeedSubjects(grade string) ([]Subject, error) {
	if !ValidGrade(grade) {
		return nil, core.NewValidationError(errors.New("unknown grade"), core.FieldError{Field: "grade", Error: "unknown grade"})
	}
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return nil, err
	}
	added := make([]Subject, 0)
	for _, tmpl := range SubjectsForGrade(grade) {
		if _, ok := findSubjectByName(subjects, tmpl.Name, grade); ok {
			continue
		}
		subjects = append(subjects, tmpl)
		added = append(added, tmpl)
	}
	if len(added) == 0 {
		return added, nil
	}
	return added, svc.repo.SaveSubjects(subjects)
}

// Assessments

// SaveAssessmentBatch merges a batch of assessments into the stored
// collection (update-or-insert on the composite key, last write wins).
// Every record's level is recomputed from its score before merging, so a
// stored level can never drift from its score.
func (svc *Service) SaveAssessmentBatch(batch []Assessment) ([]Assessment, error) {
	for i := range batch {
		batch[i].Level = Classify(batch[i].Score)
	}
	existing, err := svc.repo.LoadAssessments()
	if err != nil {
		return nil, err
	}
	merged := MergeAssessments(existing, batch)
	if err := svc.repo.SaveAssessments(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (svc *Service) Assessments() ([]Assessment, error) {
	return svc.repo.LoadAssessments()
}

// ImportMarks bulk-imports assessments in the subject-by-id line format and
// merges them into the stored collection. term and year are the fallbacks
// for lines missing those fields.
func (svc *Service) ImportMarks(raw string, term, year int) (MarksImport, error) {
	res, err := svc.parseMarks(raw, term, year, false)
	if err != nil {
		return MarksImport{}, err
	}
	if len(res.Assessments) > 0 {
		if _, err := svc.SaveAssessmentBatch(res.Assessments); err != nil {
			return MarksImport{}, err
		}
	}
	return res, nil
}

// ImportMarksByName is the subject-by-name variant; term and year apply to
// every imported record.
func (svc *Service) ImportMarksByName(raw string, term, year int) (MarksImport, error) {
	res, err := svc.parseMarks(raw, term, year, true)
	if err != nil {
		return MarksImport{}, err
	}
	if len(res.Assessments) > 0 {
		if _, err := svc.SaveAssessmentBatch(res.Assessments); err != nil {
			return MarksImport{}, err
		}
	}
	return res, nil
}

func (svc *Service) parseMarks(raw string, term, year int, byName bool) (MarksImport, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return MarksImport{}, err
	}
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return MarksImport{}, err
	}
	if byName {
		return ParseMarksByName(raw, students, subjects, term, year), nil
	}
	return ParseMarks(raw, students, subjects, term, year), nil
}

// GenerateRemark asks the remark collaborator for a teacher remark on a
// scored subject. The collaborator absorbs its own failures, so this only
// errors when the subject is unknown.
func (svc *Service) GenerateRemark(ctx context.Context, subjectID string, score int) (string, error) {
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return "", err
	}
	sub, ok := findSubjectByID(subjects, subjectID)
	if !ok {
		return "", ErrSubjectNotFound
	}
	return svc.remarkSvc.GenerateRemark(ctx, sub.Name, score, string(Classify(score))), nil
}

// Finance

func (svc *Service) RecordPayment(np NewPayment) (Payment, error) {
	if err := np.Validate(); err != nil {
		return Payment{}, err
	}
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Payment{}, err
	}
	var found bool
	for _, st := range students {
		if st.ID == np.StudentID {
			found = true
			break
		}
	}
	if !found {
		return Payment{}, ErrStudentNotFound
	}

	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return Payment{}, err
	}
	p := Payment{
		ID:        uuid.New().String(),
		StudentID: np.StudentID,
		Amount:    np.Amount,
		Date:      time.Now().UTC(),
		Mode:      np.Mode,
		Term:      np.Term,
		Year:      np.Year,
	}
	if err := svc.repo.SavePayments(append(payments, p)); err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (svc *Service) Payments() ([]Payment, error) {
	return svc.repo.LoadPayments()
}

// ImportPayments bulk-records payments from comma-separated text.
func (svc *Service) ImportPayments(raw string) (PaymentImport, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return PaymentImport{}, err
	}
	res := ParsePayments(raw, students)
	if len(res.Payments) == 0 {
		return res, nil
	}
	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return PaymentImport{}, err
	}
	return res, svc.repo.SavePayments(append(payments, res.Payments...))
}

// UpsertFeeStructure saves a fee structure, replacing any existing structure
// for the same (grade, term) key: last write wins, never append.
func (svc *Service) UpsertFeeStructure(fs FeeStructure) error {
	if err := fs.Validate(); err != nil {
		return err
	}
	structures, err := svc.repo.LoadFeeStructures()
	if err != nil {
		return err
	}
	replaced := false
	for i := range structures {
		if structures[i].Grade == fs.Grade && structures[i].Term == fs.Term {
			structures[i] = fs
			replaced = true
			break
		}
	}
	if !replaced {
		structures = append(structures, fs)
	}
	return svc.repo.SaveFeeStructures(structures)
}

func (svc *Service) FeeStructures() ([]FeeStructure, error) {
	return svc.repo.LoadFeeStructures()
}

// StudentBalance computes the outstanding balance for one student.
func (svc *Service) StudentBalance(studentID string) (int, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return 0, err
	}
	for _, st := range students {
		if st.ID == studentID {
			return svc.balance(st)
		}
	}
	return 0, ErrStudentNotFound
}

func (svc *Service) balance(st Student) (int, error) {
	structures, err := svc.repo.LoadFeeStructures()
	if err != nil {
		return 0, err
	}
	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return 0, err
	}
	return Balance(st, structures, payments, svc.defaultFeeTotal), nil
}

// FeeDefaulters derives the defaulter list across all students.
func (svc *Service) FeeDefaulters() ([]Defaulter, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return nil, err
	}
	structures, err := svc.repo.LoadFeeStructures()
	if err != nil {
		return nil, err
	}
	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return nil, err
	}
	return Defaulters(students, structures, payments, svc.defaultFeeTotal), nil
}

// Reports

// Leaderboard ranks students by mean score within their grade cohorts.
// grade narrows the result to one cohort; empty means all. term and year
// both zero means the all-history default; both set scopes to that term.
// A half-specified scope is rejected so callers never get an all-history
// leaderboard they did not ask for.
func (svc *Service) Leaderboard(grade string, term, year int) ([]RankedStudent, error) {
	if (term > 0) != (year > 0) {
		return nil, ErrPartialTermScope
	}
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return nil, err
	}
	assessments, err := svc.repo.LoadAssessments()
	if err != nil {
		return nil, err
	}

	var ranked []RankedStudent
	if term > 0 && year > 0 {
		ranked = RankForTerm(students, assessments, term, year)
	} else {
		ranked = Rank(students, assessments)
	}
	if grade == "" {
		return ranked, nil
	}
	cohort := make([]RankedStudent, 0, len(ranked))
	for _, rs := range ranked {
		if rs.Grade == grade {
			cohort = append(cohort, rs)
		}
	}
	return cohort, nil
}

// ReportCard assembles a learner's termly report card. When no subjects
// have been configured for the student's grade, the CBC curriculum template
// stands in so the report always has its learning areas.
func (svc *Service) ReportCard(admNo string, term, year int) (ReportCard, error) {
	st, err := svc.GetStudentByAdmissionNo(admNo)
	if err != nil {
		return ReportCard{}, err
	}
	subjects, err := svc.repo.LoadSubjects()
	if err != nil {
		return ReportCard{}, err
	}
	gradeSubjects := make([]Subject, 0)
	for _, sub := range subjects {
		if sub.Grade == st.Grade {
			gradeSubjects = append(gradeSubjects, sub)
		}
	}
	if len(gradeSubjects) == 0 {
		gradeSubjects = SubjectsForGrade(st.Grade)
	}
	assessments, err := svc.repo.LoadAssessments()
	if err != nil {
		return ReportCard{}, err
	}
	rc := BuildReportCard(st, gradeSubjects, assessments, term, year, svc.defaultTotalDays)
	rc.School = svc.school
	return rc, nil
}

// SchoolSummary computes the dashboard aggregates.
func (svc *Service) SchoolSummary() (Summary, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return Summary{}, err
	}
	payments, err := svc.repo.LoadPayments()
	if err != nil {
		return Summary{}, err
	}
	assessments, err := svc.repo.LoadAssessments()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(students, payments, assessments), nil
}

// SearchStudents filters students by a case-insensitive match on name or
// admission number.
func (svc *Service) SearchStudents(query string) ([]Student, error) {
	students, err := svc.repo.LoadStudents()
	if err != nil {
		return nil, err
	}
	query = core.CleanString(query, true /* lower */)
	if query == "" {
		return students, nil
	}
	matched := make([]Student, 0)
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.Name), query) || strings.Contains(strings.ToLower(st.AdmissionNo), query) {
			matched = append(matched, st)
		}
	}
	return matched, nil
}
