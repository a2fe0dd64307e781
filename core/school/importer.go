package school

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

// Bulk import parsers: tolerant, line-oriented, comma-separated. A line that
// fails required-field presence or foreign-key resolution is skipped with a
// reason, never aborting the batch; numeric fields fall back to a default
// instead of erroring. Malformed input degrades to "fewer records imported",
// never a failure.

// SkippedLine reports one rejected input line. Lines are 1-based.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type StudentImport struct {
	Students []Student     `json:"students"`
	Skipped  []SkippedLine `json:"skipped"`
}

type MarksImport struct {
	Assessments []Assessment  `json:"assessments"`
	Skipped     []SkippedLine `json:"skipped"`
}

type PaymentImport struct {
	Payments []Payment     `json:"payments"`
	Skipped  []SkippedLine `json:"skipped"`
}

// ParseStudents parses lines of form:
//
//	Name, AdmissionNo, Gender, Grade, Stream, ParentName, ParentPhone, AdmissionDate, Term, Year
//
// Admission numbers must not collide with existing students or earlier lines
// in the same batch. Term defaults to 1 and Year to the current year when
// missing or malformed; AdmissionDate accepts YYYY-MM-DD and defaults to now.
func ParseStudents(raw string, existing []Student) StudentImport {
	res := StudentImport{Students: make([]Student, 0)}

	seen := make(map[string]bool, len(existing))
	for _, st := range existing {
		seen[strings.ToLower(st.AdmissionNo)] = true
	}

	now := time.Now().UTC()
	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitFields(line, 10)

		name, admNo, grade := f[0], f[1], f[3]
		switch {
		case name == "" || admNo == "":
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "name and admission number are required"})
			continue
		case !ValidGrade(grade):
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown grade " + strconv.Quote(grade)})
			continue
		case seen[strings.ToLower(admNo)]:
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "duplicate admission number " + strconv.Quote(admNo)})
			continue
		}
		seen[strings.ToLower(admNo)] = true

		admitted := now
		if d, err := time.Parse("2006-01-02", f[7]); err == nil {
			admitted = d.UTC()
		}
		res.Students = append(res.Students, Student{
			ID:            uuid.New().String(),
			AdmissionNo:   admNo,
			Name:          name,
			Gender:        f[2],
			Grade:         grade,
			Stream:        f[4],
			ParentName:    f[5],
			ParentPhone:   f[6],
			Term:          atoiDefault(f[8], 1),
			Year:          atoiDefault(f[9], now.Year()),
			AdmissionDate: admitted,
		})
	}
	return res
}

// ParseMarks parses lines of form:
//
//	AdmissionNo, SubjectId, Score, Term, Year
//
// resolving the admission number and subject id against the loaded
// collections. term and year are the fallbacks for missing or malformed
// numeric fields; scores fall back to 0 and are classified as-is.
func ParseMarks(raw string, students []Student, subjects []Subject, term, year int) MarksImport {
	res := MarksImport{Assessments: make([]Assessment, 0)}

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitFields(line, 5)

		st, ok := findByAdmissionNo(students, f[0])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown admission number " + strconv.Quote(f[0])})
			continue
		}
		sub, ok := findSubjectByID(subjects, f[1])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown subject id " + strconv.Quote(f[1])})
			continue
		}

		score := atoiDefault(f[2], 0)
		res.Assessments = append(res.Assessments, Assessment{
			StudentID: st.ID,
			SubjectID: sub.ID,
			Term:      atoiDefault(f[3], term),
			Year:      atoiDefault(f[4], year),
			Score:     score,
			Level:     Classify(score),
		})
	}
	return res
}

// ParseMarksByName parses lines of form:
//
//	AdmissionNo, SubjectName, Score, Remarks
//
// with the subject resolved by case-insensitive name within the student's
// grade. term and year apply to every parsed record.
func ParseMarksByName(raw string, students []Student, subjects []Subject, term, year int) MarksImport {
	res := MarksImport{Assessments: make([]Assessment, 0)}

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitFields(line, 4)

		st, ok := findByAdmissionNo(students, f[0])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown admission number " + strconv.Quote(f[0])})
			continue
		}
		sub, ok := findSubjectByName(subjects, f[1], st.Grade)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown subject " + strconv.Quote(f[1]) + " for " + st.Grade})
			continue
		}

		score := atoiDefault(f[2], 0)
		res.Assessments = append(res.Assessments, Assessment{
			StudentID: st.ID,
			SubjectID: sub.ID,
			Term:      term,
			Year:      year,
			Score:     score,
			Level:     Classify(score),
			Remarks:   f[3],
		})
	}
	return res
}

// ParsePayments parses lines of form:
//
//	AdmissionNo, Amount, Mode, Date, Term, Year
//
// Amounts must be positive; the mode defaults to Cash when blank and is
// rejected when unrecognized; Date accepts YYYY-MM-DD defaulting to now.
func ParsePayments(raw string, students []Student) PaymentImport {
	res := PaymentImport{Payments: make([]Payment, 0)}

	now := time.Now().UTC()
	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitFields(line, 6)

		st, ok := findByAdmissionNo(students, f[0])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown admission number " + strconv.Quote(f[0])})
			continue
		}
		amount := atoiDefault(f[1], 0)
		if amount <= 0 {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "invalid amount " + strconv.Quote(f[1])})
			continue
		}
		mode, ok := normalizeMode(f[2])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: "unknown payment mode " + strconv.Quote(f[2])})
			continue
		}

		date := now
		if d, err := time.Parse("2006-01-02", f[3]); err == nil {
			date = d.UTC()
		}
		res.Payments = append(res.Payments, Payment{
			ID:        uuid.New().String(),
			StudentID: st.ID,
			Amount:    amount,
			Date:      date,
			Mode:      mode,
			Term:      atoiDefault(f[4], st.Term),
			Year:      atoiDefault(f[5], st.Year),
		})
	}
	return res
}

// splitFields splits a comma-separated line into exactly n trimmed fields,
// padding missing trailing fields with "".
func splitFields(line string, n int) []string {
	fields := make([]string, n)
	for i, f := range strings.Split(line, ",") {
		if i >= n {
			break
		}
		fields[i] = core.CleanString(f)
	}
	return fields
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func findByAdmissionNo(students []Student, admNo string) (Student, bool) {
	for _, st := range students {
		if strings.EqualFold(st.AdmissionNo, admNo) {
			return st, true
		}
	}
	return Student{}, false
}

func findSubjectByID(subjects []Subject, id string) (Subject, bool) {
	for _, sub := range subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subject{}, false
}

func findSubjectByName(subjects []Subject, name, grade string) (Subject, bool) {
	for _, sub := range subjects {
		if sub.Grade == grade && strings.EqualFold(sub.Name, name) {
			return sub, true
		}
	}
	return Subject{}, false
}

func normalizeMode(mode string) (string, bool) {
	if mode == "" {
		return ModeCash, true
	}
	for _, m := range PaymentModes {
		if strings.EqualFold(mode, m) {
			return m, true
		}
	}
	// common M-Pesa spellings
	switch strings.ToLower(mode) {
	case "mpesa", "mobile money", "mobile-money":
		return ModeMpesa, true
	}
	return "", false
}
