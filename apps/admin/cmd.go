package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/officialmikal/cbc-and-jss-automation/core"
	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	svc      *school.Service
	emailSvc core.EmailService
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  register -name NAME -admno ADMNO -gender GENDER -grade GRADE [-stream STREAM -parent NAME -phone PHONE -term N -year N] - register a student")
	fmt.Fprintln(cli.out, "  importstudents -file FILE - bulk-import students from comma-separated text")
	fmt.Fprintln(cli.out, "  importmarks -file FILE -term N -year N [-byname] - bulk-import assessment marks")
	fmt.Fprintln(cli.out, "  importpayments -file FILE - bulk-import fee payments")
	fmt.Fprintln(cli.out, "  exportstudents - print the student register as CSV")
	fmt.Fprintln(cli.out, "  seedsubjects -grade GRADE - install the CBC learning areas for a grade")
	fmt.Fprintln(cli.out, "  defaulters [-email ADDR] - list fee defaulters, optionally emailing the CSV report")
	fmt.Fprintln(cli.out, "  rank [-grade GRADE] [-term N -year N] - print the student leaderboard")
	fmt.Fprintln(cli.out, "  reportcard -admno ADMNO -term N -year N - print a learner's report card")
	fmt.Fprintln(cli.out, "  pay -admno ADMNO -amount KSH [-mode MODE -term N -year N] - record a fee payment")
	fmt.Fprintln(cli.out, "  setfees -grade GRADE -term N -items \"Tuition:10000,Lunch:2000\" - set a grade's fee structure")
	fmt.Fprintln(cli.out, "  summary - print school-wide aggregates")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	registerName := registerCmd.String("name", "", "The student's full name.")
	registerAdmNo := registerCmd.String("admno", "", "The admission number.")
	registerGender := registerCmd.String("gender", "", "Male or Female.")
	registerGrade := registerCmd.String("grade", "", "The grade, eg. Grade 4.")
	registerStream := registerCmd.String("stream", "", "The stream, eg. North.")
	registerParent := registerCmd.String("parent", "", "The parent or guardian's name.")
	registerPhone := registerCmd.String("phone", "", "The parent's phone number.")
	registerTerm := registerCmd.Int("term", 1, "The current term (1-3).")
	registerYear := registerCmd.Int("year", 0, "The academic year.")

	importStudentsCmd := flag.NewFlagSet("importstudents", flag.ExitOnError)
	importStudentsFile := importStudentsCmd.String("file", "", "Path to the comma-separated student file.")

	importMarksCmd := flag.NewFlagSet("importmarks", flag.ExitOnError)
	importMarksFile := importMarksCmd.String("file", "", "Path to the comma-separated marks file.")
	importMarksTerm := importMarksCmd.Int("term", 0, "The term the marks belong to (1-3).")
	importMarksYear := importMarksCmd.Int("year", 0, "The academic year the marks belong to.")
	importMarksByName := importMarksCmd.Bool("byname", false, "Match subjects by name instead of id.")

	importPaymentsCmd := flag.NewFlagSet("importpayments", flag.ExitOnError)
	importPaymentsFile := importPaymentsCmd.String("file", "", "Path to the comma-separated payments file.")

	seedSubjectsCmd := flag.NewFlagSet("seedsubjects", flag.ExitOnError)
	seedSubjectsGrade := seedSubjectsCmd.String("grade", "", "The grade to seed, eg. Grade 7.")

	defaultersCmd := flag.NewFlagSet("defaulters", flag.ExitOnError)
	defaultersEmail := defaultersCmd.String("email", "", "Email the CSV report to this address.")

	rankCmd := flag.NewFlagSet("rank", flag.ExitOnError)
	rankGrade := rankCmd.String("grade", "", "Restrict the leaderboard to one grade.")
	rankTerm := rankCmd.Int("term", 0, "Restrict to one term (requires -year).")
	rankYear := rankCmd.Int("year", 0, "Restrict to one academic year (requires -term).")

	reportCardCmd := flag.NewFlagSet("reportcard", flag.ExitOnError)
	reportCardAdmNo := reportCardCmd.String("admno", "", "The learner's admission number.")
	reportCardTerm := reportCardCmd.Int("term", 0, "The term (1-3).")
	reportCardYear := reportCardCmd.Int("year", 0, "The academic year.")

	payCmd := flag.NewFlagSet("pay", flag.ExitOnError)
	payAdmNo := payCmd.String("admno", "", "The student's admission number.")
	payAmount := payCmd.Int("amount", 0, "The amount paid in KSh.")
	payMode := payCmd.String("mode", string(school.ModeCash), "Cash, M-Pesa or Bank.")
	payTerm := payCmd.Int("term", 1, "The term the payment covers (1-3).")
	payYear := payCmd.Int("year", 0, "The academic year the payment covers.")

	setFeesCmd := flag.NewFlagSet("setfees", flag.ExitOnError)
	setFeesGrade := setFeesCmd.String("grade", "", "The grade the structure applies to.")
	setFeesTerm := setFeesCmd.Int("term", 0, "The term the structure applies to (1-3).")
	setFeesItems := setFeesCmd.String("items", "", "Fee items as Name:Amount pairs, comma-separated.")

	switch args[1] {
	case "register":
		if err := registerCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *registerName == "" || *registerAdmNo == "" || *registerGender == "" || *registerGrade == "" {
			registerCmd.Usage()
			return errHelp
		}
		return cli.registerStudent(*registerName, *registerAdmNo, *registerGender, *registerGrade,
			*registerStream, *registerParent, *registerPhone, *registerTerm, *registerYear)
	case "importstudents":
		if err := importStudentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importStudentsFile == "" {
			importStudentsCmd.Usage()
			return errHelp
		}
		return cli.importStudents(*importStudentsFile)
	case "importmarks":
		if err := importMarksCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importMarksFile == "" || *importMarksTerm == 0 || *importMarksYear == 0 {
			importMarksCmd.Usage()
			return errHelp
		}
		return cli.importMarks(*importMarksFile, *importMarksTerm, *importMarksYear, *importMarksByName)
	case "importpayments":
		if err := importPaymentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importPaymentsFile == "" {
			importPaymentsCmd.Usage()
			return errHelp
		}
		return cli.importPayments(*importPaymentsFile)
	case "exportstudents":
		return cli.exportStudents()
	case "seedsubjects":
		if err := seedSubjectsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedSubjectsGrade == "" {
			seedSubjectsCmd.Usage()
			return errHelp
		}
		return cli.seedSubjects(*seedSubjectsGrade)
	case "defaulters":
		if err := defaultersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.defaulters(*defaultersEmail)
	case "rank":
		if err := rankCmd.Parse(args[2:]); err != nil {
			return err
		}
		if (*rankTerm == 0) != (*rankYear == 0) {
			rankCmd.Usage()
			return errHelp
		}
		return cli.rank(*rankGrade, *rankTerm, *rankYear)
	case "reportcard":
		if err := reportCardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reportCardAdmNo == "" || *reportCardTerm == 0 || *reportCardYear == 0 {
			reportCardCmd.Usage()
			return errHelp
		}
		return cli.reportCard(*reportCardAdmNo, *reportCardTerm, *reportCardYear)
	case "pay":
		if err := payCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *payAdmNo == "" || *payAmount == 0 {
			payCmd.Usage()
			return errHelp
		}
		return cli.recordPayment(*payAdmNo, *payAmount, *payMode, *payTerm, *payYear)
	case "setfees":
		if err := setFeesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setFeesGrade == "" || *setFeesTerm == 0 || *setFeesItems == "" {
			setFeesCmd.Usage()
			return errHelp
		}
		return cli.setFees(*setFeesGrade, *setFeesTerm, *setFeesItems)
	case "summary":
		return cli.summary()
	default:
		cli.printUsage()
		return errHelp
	}
}
