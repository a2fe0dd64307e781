package school

import (
	"io"
	"sort"
	"text/template"
	"time"

	"github.com/pkg/errors"
)

// SchoolInfo is the identity block stamped on report cards.
type SchoolInfo struct {
	Name  string
	Motto string
	Box   string
	Email string
	Phone string
}

type ReportRow struct {
	Subject  string
	Score    int
	Level    Level
	HasScore bool
	Remarks  string
}

// ReportCard is a learner's termly progress report: one row per learning
// area of their grade, with overall mean and attendance.
type ReportCard struct {
	School      SchoolInfo
	Student     Student
	Term        int
	Year        int
	Rows        []ReportRow
	MeanScore   float64
	Mean        Level
	DaysPresent int
	TotalDays   int
	GeneratedAt time.Time
}

// BuildReportCard assembles a report card for (term, year) from the grade's
// subjects and the student's assessments. Subjects without a recorded
// assessment appear as blank rows. Attendance comes from the first
// assessment carrying it, else defaultTotalDays with full presence unknown.
func BuildReportCard(st Student, subjects []Subject, assessments []Assessment, term, year int, defaultTotalDays int) ReportCard {
	rc := ReportCard{
		Student:     st,
		Term:        term,
		Year:        year,
		TotalDays:   defaultTotalDays,
		GeneratedAt: time.Now().UTC(),
	}

	var sum, count int
	var attendanceFound bool
	for _, sub := range subjects {
		if sub.Grade != st.Grade {
			continue
		}
		row := ReportRow{Subject: sub.Name}
		for _, a := range assessments {
			if a.StudentID == st.ID && a.SubjectID == sub.ID && a.Term == term && a.Year == year {
				row.Score = a.Score
				row.Level = a.Level
				row.HasScore = true
				row.Remarks = a.Remarks
				sum += a.Score
				count++
				// first record carrying attendance wins, even at 0 days present
				if a.TotalDays > 0 && !attendanceFound {
					rc.DaysPresent = a.DaysPresent
					rc.TotalDays = a.TotalDays
					attendanceFound = true
				}
				break
			}
		}
		rc.Rows = append(rc.Rows, row)
	}

	if count > 0 {
		rc.MeanScore = float64(sum) / float64(count)
		rc.Mean = Classify(int(rc.MeanScore))
	}
	return rc
}

var reportCardTmpl = template.Must(template.New("reportcard").Parse(`{{.School.Name}}
{{.School.Motto}}
{{.School.Box}}
Email: {{.School.Email}} | Phone: {{.School.Phone}}

TERMLY PROGRESS REPORT - TERM {{.Term}} - {{.Year}}

Learner's Name : {{.Student.Name}}
Admission No.  : {{.Student.AdmissionNo}}
Grade/Class    : {{.Student.Grade}}{{if .Student.Stream}} ({{.Student.Stream}}){{end}}
Attendance     : {{if .DaysPresent}}{{.DaysPresent}} / {{.TotalDays}} Days{{else}}- / {{.TotalDays}} Days{{end}}

LEARNING AREA | SCORE (%) | LEVEL | REMARKS
{{range .Rows}}{{.Subject}} | {{if .HasScore}}{{.Score}}{{else}}-{{end}} | {{if .HasScore}}{{.Level.Abbrev}}{{else}}-{{end}} | {{if .Remarks}}{{.Remarks}}{{else}}-{{end}}
{{end}}{{if .Mean}}
Mean Score: {{printf "%.1f" .MeanScore}}% ({{.Mean}})
{{end}}
EE: Exceeding Expectations (80-100) | ME: Meeting Expectations (60-79)
AE: Approaching Expectations (40-59) | BE: Below Expectations (0-39)

Generated on {{.GeneratedAt.Format "02 Jan 2006"}}
`))

// Render writes the plain-text report card.
func (rc ReportCard) Render(w io.Writer) error {
	return errors.Wrap(reportCardTmpl.Execute(w, rc), "rendering report card")
}

// GradeCount pairs a grade with its enrollment headcount.
type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// Summary holds the dashboard aggregates.
type Summary struct {
	Students      int          `json:"students"`
	Assessments   int          `json:"assessments"`
	FeesCollected int          `json:"fees_collected"`
	MeanScore     float64      `json:"mean_score"`
	GradeCounts   []GradeCount `json:"grade_counts"`
}

// Summarize computes the school-wide dashboard figures.
func Summarize(students []Student, payments []Payment, assessments []Assessment) Summary {
	s := Summary{Students: len(students), Assessments: len(assessments)}

	for _, p := range payments {
		s.FeesCollected += p.Amount
	}

	var sum int
	for _, a := range assessments {
		sum += a.Score
	}
	if len(assessments) > 0 {
		s.MeanScore = float64(sum) / float64(len(assessments))
	}

	counts := make(map[string]int)
	for _, st := range students {
		counts[st.Grade]++
	}
	for _, g := range Grades {
		if counts[g] > 0 {
			s.GradeCounts = append(s.GradeCounts, GradeCount{Grade: g, Count: counts[g]})
		}
	}
	// grades outside the known catalogue, if any, go last
	var extra []string
	for g := range counts {
		if !ValidGrade(g) {
			extra = append(extra, g)
		}
	}
	sort.Strings(extra)
	for _, g := range extra {
		s.GradeCounts = append(s.GradeCounts, GradeCount{Grade: g, Count: counts[g]})
	}
	return s
}
