package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// TaskLogger satisfies backlite.Logger.
type TaskLogger struct {
	log zerolog.Logger
}

// ForTasks adapts l for the backlite task queue.
func ForTasks(l zerolog.Logger) *TaskLogger {
	return &TaskLogger{log: l.With().Str("component", "tasks").Logger()}
}

func (l *TaskLogger) Info(message string, params ...any) {
	l.log.Debug().Fields(params).Msg(message)
}

func (l *TaskLogger) Error(message string, params ...any) {
	l.log.Error().Fields(params).Msg(message)
}

// CronLogger satisfies cron.Logger.
type CronLogger struct {
	log zerolog.Logger
}

// ForCron adapts l for robfig/cron.
func ForCron(l zerolog.Logger) *CronLogger {
	return &CronLogger{log: l.With().Str("component", "cron").Logger()}
}

func (l *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// ForGorm returns a gorm logger writing through l. SQL statements are only
// logged when l is at debug level; otherwise only slow queries and errors.
func ForGorm(l zerolog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if l.GetLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{log: l.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
