package school

import (
	"time"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

// Level is a CBC performance band.
type Level string

const (
	LevelExceeding   Level = "Exceeding Expectations"
	LevelMeeting     Level = "Meeting Expectations"
	LevelApproaching Level = "Approaching Expectations"
	LevelBelow       Level = "Below Expectations"
)

// Abbrev returns the short rating code used on report cards (EE/ME/AE/BE).
func (l Level) Abbrev() string {
	switch l {
	case LevelExceeding:
		return "EE"
	case LevelMeeting:
		return "ME"
	case LevelApproaching:
		return "AE"
	case LevelBelow:
		return "BE"
	}
	return ""
}

// Grades lists enrollment levels in ascending order, PP1 through Grade 9.
var Grades = []string{
	"PP1", "PP2",
	"Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5", "Grade 6",
	"Grade 7", "Grade 8", "Grade 9",
}

func ValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// IsJSSGrade reports whether grade falls in Junior Secondary (Grade 7-9).
func IsJSSGrade(grade string) bool {
	switch grade {
	case "Grade 7", "Grade 8", "Grade 9":
		return true
	}
	return false
}

// Subject categories
const (
	CategoryPrimary = "Primary"
	CategoryJSS     = "JSS"
)

// Payment modes
const (
	ModeCash  = "Cash"
	ModeMpesa = "M-Pesa"
	ModeBank  = "Bank"
)

var PaymentModes = []string{ModeCash, ModeMpesa, ModeBank}

type Student struct {
	ID            string    `json:"id"`
	AdmissionNo   string    `json:"admission_no"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	Grade         string    `json:"grade"`
	Stream        string    `json:"stream"`
	ParentName    string    `json:"parent_name"`
	ParentPhone   string    `json:"parent_phone"`
	Term          int       `json:"term"`
	Year          int       `json:"year"`
	AdmissionDate time.Time `json:"admission_date"` // UTC
}

type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"` // Primary | JSS
	Grade       string `json:"grade"`
	TeacherName string `json:"teacher_name,omitempty"`
}

// AssessmentKey is the composite uniqueness key for Assessment records: at
// most one assessment may exist per key in a stored collection.
type AssessmentKey struct {
	StudentID string
	SubjectID string
	Term      int
	Year      int
}

type Assessment struct {
	StudentID string `json:"student_id"`
	SubjectID string `json:"subject_id"`
	Term      int    `json:"term"`
	Year      int    `json:"year"`
	Score     int    `json:"score"`
	Level     Level  `json:"level"` // always derived from Score, never set independently
	Remarks   string `json:"remarks"`

	// optional attendance capture
	DaysPresent int `json:"days_present,omitempty"`
	TotalDays   int `json:"total_days,omitempty"`
}

func (a Assessment) Key() AssessmentKey {
	return AssessmentKey{StudentID: a.StudentID, SubjectID: a.SubjectID, Term: a.Term, Year: a.Year}
}

// Payment is append-only: recorded on receipt, never mutated.
type Payment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Amount    int       `json:"amount"` // KSh
	Date      time.Time `json:"date"`   // UTC
	Mode      string    `json:"mode"`   // Cash | M-Pesa | Bank
	Term      int       `json:"term"`
	Year      int       `json:"year"`
}

type FeeItem struct {
	Name   string `json:"name" validate:"required"`
	Amount int    `json:"amount" validate:"min=0"`
}

// FeeStructure is keyed by (grade, term): saving one replaces any existing
// structure for the same key.
type FeeStructure struct {
	Grade string    `json:"grade" validate:"required,grade"`
	Term  int       `json:"term" validate:"required,min=1,max=3"`
	Year  int       `json:"year" validate:"omitempty,min=2000"`
	Items []FeeItem `json:"items" validate:"dive"`
}

func (fs FeeStructure) Validate() error { return core.Validate.Struct(fs) }

// Total sums the structure's fee items. An empty items list is a zero total,
// not an error.
func (fs FeeStructure) Total() int {
	var total int
	for _, item := range fs.Items {
		total += item.Amount
	}
	return total
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name        string `json:"name" validate:"required"`
	AdmissionNo string `json:"admission_no" validate:"required,admno"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Grade       string `json:"grade" validate:"required,grade"`
	Stream      string `json:"stream"`
	ParentName  string `json:"parent_name" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"required"`
	Term        int    `json:"term" validate:"required,min=1,max=3"`
	Year        int    `json:"year" validate:"required,min=2000"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.AdmissionNo = core.CleanString(ns.AdmissionNo)
	ns.Stream = core.CleanString(ns.Stream)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.ParentPhone = core.CleanString(ns.ParentPhone)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkAdmissionNoUniqueness(ns.AdmissionNo)
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=Primary JSS"`
	Grade       string `json:"grade" validate:"required,grade"`
	TeacherName string `json:"teacher_name"`
}

func (nsub *NewSubject) Validate() error {
	nsub.Name = core.CleanString(nsub.Name)
	nsub.TeacherName = core.CleanString(nsub.TeacherName)
	return core.Validate.Struct(nsub)
}

// UpdateSubject defines what information may be provided to modify an
// existing Subject; empty fields keep the original values.
type UpdateSubject struct {
	Name        string `json:"name"`
	Category    string `json:"category" validate:"omitempty,oneof=Primary JSS"`
	Grade       string `json:"grade" validate:"omitempty,grade"`
	TeacherName string `json:"teacher_name"`
}

func (us *UpdateSubject) Validate(orig Subject) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if us.Category == "" {
		us.Category = orig.Category
	}
	if us.Grade == "" {
		us.Grade = orig.Grade
	}
	if teacher := core.CleanString(us.TeacherName); teacher != "" {
		us.TeacherName = teacher
	} else {
		us.TeacherName = orig.TeacherName
	}
	return core.Validate.Struct(us)
}

// NewPayment contains information needed to record a fee payment.
type NewPayment struct {
	StudentID string `json:"student_id" validate:"required"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
	Mode      string `json:"mode" validate:"required,oneof=Cash M-Pesa Bank"`
	Term      int    `json:"term" validate:"required,min=1,max=3"`
	Year      int    `json:"year" validate:"required,min=2000"`
}

func (np *NewPayment) Validate() error {
	np.StudentID = core.CleanString(np.StudentID)
	return core.Validate.Struct(np)
}
