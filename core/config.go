package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. Every "magic" default of the school
// portal (standard fee total, attendance totals, school identity) lives here
// so the engine packages receive them explicitly instead of embedding them.
type Config struct {
	AppName  string
	Env      string
	Debug    bool
	TestMode bool

	// DataDir is where collection snapshots are persisted.
	DataDir string

	// DefaultFeeTotal (KSh) applies when no fee structure matches a
	// student's (grade, term).
	DefaultFeeTotal int

	// DefaultTotalDays is the fallback attendance denominator on report cards.
	DefaultTotalDays int

	// School identity, stamped on report cards and outgoing mail.
	SchoolName  string
	SchoolMotto string
	SchoolBox   string
	SchoolEmail string
	SchoolPhone string

	DefaultFromEmail mail.Address
	SendgridApiKey   string

	GeminiApiKey string
	GeminiModel  string

	RollbarToken string
}

var Conf *Config

func init() {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "ElimuSmart")
	conf.SetDefault("dataDir", filepath.Join(".", "data"))
	conf.SetDefault("defaultFeeTotal", 15000)
	conf.SetDefault("defaultTotalDays", 70)
	conf.SetDefault("schoolName", "ST. PETERS CBC ACADEMY")
	conf.SetDefault("schoolMotto", "Knowledge is Light")
	conf.SetDefault("schoolBox", "P.O. BOX 12345-00100, Nairobi")
	conf.SetDefault("schoolEmail", "info@stpeters.edu.ke")
	conf.SetDefault("schoolPhone", "+254 700 123 456")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("geminiModel", "gemini-3-flash-preview")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	Conf = &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		DataDir:          conf.GetString("dataDir"),
		DefaultFeeTotal:  conf.GetInt("defaultFeeTotal"),
		DefaultTotalDays: conf.GetInt("defaultTotalDays"),
		SchoolName:       conf.GetString("schoolName"),
		SchoolMotto:      conf.GetString("schoolMotto"),
		SchoolBox:        conf.GetString("schoolBox"),
		SchoolEmail:      conf.GetString("schoolEmail"),
		SchoolPhone:      conf.GetString("schoolPhone"),
		DefaultFromEmail: mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		GeminiApiKey:     conf.GetString("geminiApiKey"),
		GeminiModel:      conf.GetString("geminiModel"),
		RollbarToken:     conf.GetString("rollbarToken"),
	}
}
