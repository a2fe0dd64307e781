package main

import (
	"log"
	"os"

	"github.com/officialmikal/cbc-and-jss-automation/core"
	"github.com/officialmikal/cbc-and-jss-automation/core/school"
	emailsvc "github.com/officialmikal/cbc-and-jss-automation/services/email"
	logsvc "github.com/officialmikal/cbc-and-jss-automation/services/logger"
	remarksvc "github.com/officialmikal/cbc-and-jss-automation/services/remark"
	"github.com/officialmikal/cbc-and-jss-automation/storage/jsonstore"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up storage
	store, err := jsonstore.Open(core.Conf.DataDir)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}

	var remarkSvc core.RemarkService
	if core.Conf.GeminiApiKey != "" {
		remarkSvc = remarksvc.NewGeminiService(logger, core.Conf)
	} else {
		remarkSvc = remarksvc.NewDummyService()
	}

	var emailSvc core.EmailService
	if core.Conf.SendgridApiKey != "" {
		emailSvc = emailsvc.NewSendgridService(logger)
	} else {
		emailSvc = emailsvc.NewConsoleService()
	}

	// start CLI
	cli := commandLine{
		svc:      school.NewService(store, remarkSvc, core.Conf),
		emailSvc: emailSvc,
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
