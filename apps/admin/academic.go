package main

import (
	"fmt"
	"os"

	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

// importMarks bulk-imports assessment marks from a comma-separated file and
// merges them into the stored records.
func (cli *commandLine) importMarks(path string, term, year int, byName bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var res school.MarksImport
	if byName {
		res, err = cli.svc.ImportMarksByName(string(raw), term, year)
	} else {
		res, err = cli.svc.ImportMarks(string(raw), term, year)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "imported %d assessments, skipped %d lines\n", len(res.Assessments), len(res.Skipped))
	for _, sk := range res.Skipped {
		fmt.Fprintf(cli.out, "  line %d: %s\n", sk.Line, sk.Reason)
	}
	return nil
}

// seedSubjects installs the CBC learning areas for a grade.
func (cli *commandLine) seedSubjects(grade string) error {
	added, err := cli.svc.SeedSubjects(grade)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "seeded %d learning areas for %s\n", len(added), grade)
	for _, sub := range added {
		fmt.Fprintf(cli.out, "  %s\n", sub.Name)
	}
	return nil
}

// rank prints the student leaderboard, optionally scoped to one grade
// and/or one term.
func (cli *commandLine) rank(grade string, term, year int) error {
	ranked, err := cli.svc.Leaderboard(grade, term, year)
	if err != nil {
		return err
	}
	for _, rs := range ranked {
		if !rs.Ranked() {
			fmt.Fprintf(cli.out, "   - %-25s %-10s (no assessments)\n", rs.Name, rs.Grade)
			continue
		}
		fmt.Fprintf(cli.out, "%4d %-25s %-10s %.1f%%\n", rs.Rank, rs.Name, rs.Grade, rs.MeanScore)
	}
	return nil
}

// reportCard renders a learner's termly report card.
func (cli *commandLine) reportCard(admNo string, term, year int) error {
	rc, err := cli.svc.ReportCard(admNo, term, year)
	if err != nil {
		return err
	}
	return rc.Render(cli.out)
}

// summary prints school-wide aggregates.
func (cli *commandLine) summary() error {
	sum, err := cli.svc.SchoolSummary()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Students:       %d\n", sum.Students)
	fmt.Fprintf(cli.out, "Assessments:    %d\n", sum.Assessments)
	fmt.Fprintf(cli.out, "Fees Collected: KSh %d\n", sum.FeesCollected)
	fmt.Fprintf(cli.out, "Mean Score:     %.1f%%\n", sum.MeanScore)
	for _, gc := range sum.GradeCounts {
		fmt.Fprintf(cli.out, "  %-10s %d\n", gc.Grade, gc.Count)
	}
	return nil
}
