package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
)

// Logger is the process-wide logger. It discards output until Init runs.
var Logger = log.New(io.Discard)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr mirrors info-level output to stderr, for the reminder daemon.
	Stderr bool
}

// File returns the path of the active log file under dir.
func File(dir string) string {
	return filepath.Join(dir, "logs", constants.AppName+".log")
}

// Init points Logger at a rotating file under ConfigDir/logs.
func Init(cfg Config) error {
	path := File(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = rotating(path)

	level := log.WarnLevel
	switch {
	case cfg.Debug:
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	case cfg.Stderr:
		level = log.InfoLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
}

func Debug(msg string, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

func Info(msg string, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

func Warn(msg string, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

func Error(msg string, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
