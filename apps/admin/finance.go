package main

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/officialmikal/cbc-and-jss-automation/core"
	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

// recordPayment records a single fee payment from CLI flags.
func (cli *commandLine) recordPayment(admNo string, amount int, mode string, term, year int) error {
	if year == 0 {
		year = time.Now().Year()
	}
	st, err := cli.svc.GetStudentByAdmissionNo(admNo)
	if err != nil {
		return err
	}
	p, err := cli.svc.RecordPayment(school.NewPayment{
		StudentID: st.ID,
		Amount:    amount,
		Mode:      mode,
		Term:      term,
		Year:      year,
	})
	if err != nil {
		return err
	}
	balance, err := cli.svc.StudentBalance(st.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "recorded KSh %d (%s) for %s; balance is now KSh %d\n", p.Amount, p.Mode, st.Name, balance)
	return nil
}

// importPayments bulk-records payments from a comma-separated file.
func (cli *commandLine) importPayments(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := cli.svc.ImportPayments(string(raw))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "recorded %d payments, skipped %d lines\n", len(res.Payments), len(res.Skipped))
	for _, sk := range res.Skipped {
		fmt.Fprintf(cli.out, "  line %d: %s\n", sk.Line, sk.Reason)
	}
	return nil
}

// setFees sets a grade's termly fee structure. items is a comma-separated
// list of Name:Amount pairs, eg. "Tuition:10000,Lunch:2000".
func (cli *commandLine) setFees(grade string, term int, items string) error {
	fs := school.FeeStructure{Grade: grade, Term: term, Year: time.Now().Year()}
	for _, pair := range strings.Split(items, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed fee item %q, want Name:Amount", pair)
		}
		amount, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("malformed fee amount %q: %v", parts[1], err)
		}
		fs.Items = append(fs.Items, school.FeeItem{
			Name:   strings.TrimSpace(parts[0]),
			Amount: amount,
		})
	}
	if err := cli.svc.UpsertFeeStructure(fs); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "fee structure for %s term %d set to KSh %d\n", grade, term, fs.Total())
	return nil
}

// defaulters lists students with outstanding balances, optionally emailing
// the CSV report to the bursar.
func (cli *commandLine) defaulters(emailTo string) error {
	defaulters, err := cli.svc.FeeDefaulters()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d fee defaulters\n", len(defaulters))
	for _, d := range defaulters {
		fmt.Fprintf(cli.out, "  %-10s %-25s %-10s KSh %d\n", d.AdmissionNo, d.Name, d.Grade, d.Balance)
	}
	if emailTo == "" {
		return nil
	}

	csv, err := school.ExportCSV(defaulters)
	if err != nil {
		return err
	}
	msg := &core.EmailMessage{
		To:          []mail.Address{{Address: emailTo}},
		Subject:     "Fee Defaulters Report",
		TextContent: fmt.Sprintf("Attached is the fee defaulters report of %s. %d learners have outstanding balances.", time.Now().Format("2 Jan 2006"), len(defaulters)),
	}
	if err = msg.Attach(strings.NewReader(csv), "defaulters.csv", "text/csv"); err != nil {
		return err
	}
	cli.emailSvc.SendMessages(msg)
	// block until delivered; the process exits right after this command
	cli.emailSvc.Wait()
	fmt.Fprintf(cli.out, "report emailed to %s\n", emailTo)
	return nil
}
