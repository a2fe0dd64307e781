package main

import (
	"fmt"
	"os"
	"time"

	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

// registerStudent registers a single student from CLI flags.
func (cli *commandLine) registerStudent(name, admNo, gender, grade, stream, parent, phone string, term, year int) error {
	if year == 0 {
		year = time.Now().Year()
	}
	st, err := cli.svc.RegisterStudent(school.NewStudent{
		Name:        name,
		AdmissionNo: admNo,
		Gender:      gender,
		Grade:       grade,
		Stream:      stream,
		ParentName:  parent,
		ParentPhone: phone,
		Term:        term,
		Year:        year,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "registered %s (%s) in %s\n", st.Name, st.AdmissionNo, st.Grade)
	return nil
}

// importStudents bulk-imports students from a comma-separated file and
// reports skipped lines.
func (cli *commandLine) importStudents(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := cli.svc.ImportStudents(string(raw))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "imported %d students, skipped %d lines\n", len(res.Students), len(res.Skipped))
	for _, sk := range res.Skipped {
		fmt.Fprintf(cli.out, "  line %d: %s\n", sk.Line, sk.Reason)
	}
	return nil
}

// exportStudents prints the full student register as CSV.
func (cli *commandLine) exportStudents() error {
	students, err := cli.svc.Students()
	if err != nil {
		return err
	}
	csv, err := school.ExportCSV(students)
	if err != nil {
		return err
	}
	fmt.Fprint(cli.out, csv)
	return nil
}
