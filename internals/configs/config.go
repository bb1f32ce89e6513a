package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
)

var (
	JWTSecret       string
	JWTExpiresIn    time.Duration
	SuperAdminEmail string

	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string

	programStart time.Time
	programEnd   time.Time
)

const dateLayout = "2006-01-02"

// Ramadan 1447 window, overridable per deployment via PROGRAM_START / PROGRAM_END.
const (
	defaultProgramStart = "2026-02-19"
	defaultProgramEnd   = "2026-03-19"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system ENV")
	} else {
		log.Println("✅ .env file loaded")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}

	JWTExpiresIn = 30 * 24 * time.Hour
	if v := GetEnv("JWT_ACCESS_TOKEN_EXPIRES"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			JWTExpiresIn = time.Duration(secs) * time.Second
		}
	}

	SuperAdminEmail = GetEnv("SUPER_ADMIN_EMAIL")
	if SuperAdminEmail == "" {
		log.Println("⚠️ SUPER_ADMIN_EMAIL is not set; primary-admin promotion disabled")
	}

	MailServer = GetEnv("MAIL_SERVER", "smtp.gmail.com")
	MailPort = 587
	if v := GetEnv("MAIL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			MailPort = p
		}
	}
	MailUsername = GetEnv("MAIL_USERNAME")
	MailPassword = GetEnv("MAIL_PASSWORD")

	programStart = mustParseDate(GetEnv("PROGRAM_START", defaultProgramStart))
	programEnd = mustParseDate(GetEnv("PROGRAM_END", defaultProgramEnd))
	if programEnd.Before(programStart) {
		log.Fatalf("❌ PROGRAM_END %s before PROGRAM_START %s", programEnd.Format(dateLayout), programStart.Format(dateLayout))
	}
	log.Printf("✅ Program window: %s → %s", programStart.Format(dateLayout), programEnd.Format(dateLayout))
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		log.Fatalf("❌ Invalid date %q (want YYYY-MM-DD): %v", s, err)
	}
	return t
}

// ProgramWindow returns the configured observance period. It is threaded
// into the card validator per call; nothing downstream reads env directly.
func ProgramWindow() engine.Window {
	return engine.Window{Start: programStart, End: programEnd}
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
