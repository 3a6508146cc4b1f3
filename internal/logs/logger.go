package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Leveled logging to a file under the XDG config dir, mirrored to the
// terminal when verbose mode is on. The log level comes from HYPKG_LOG_LEVEL
// (DEBUG, INFO, WARN, ERROR); default INFO.

var (
	loggerOut *log.Logger
	loggerErr *log.Logger

	logLevel = "INFO"
	verbose  = false
	logFile  *os.File
)

// SetVerbose enables or disables mirroring logs to stdout/stderr.
func SetVerbose(v bool) {
	verbose = v
}

// InitLogger opens the log file and configures the writers. Safe to call more
// than once; calls before initialization fall back to stderr.
func InitLogger() error {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %v", err)
		}
		xdg = filepath.Join(home, ".config")
	}
	logDir := filepath.Join(xdg, "hypkg", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	var err error
	logFile, err = os.OpenFile(filepath.Join(logDir, "hypkg.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	outWriter := io.Writer(logFile)
	errWriter := io.Writer(logFile)
	if verbose {
		outWriter = io.MultiWriter(logFile, os.Stdout)
		errWriter = io.MultiWriter(logFile, os.Stderr)
	}

	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	loggerOut = log.New(outWriter, "", flags)
	loggerErr = log.New(errWriter, "", flags)

	if lvl := os.Getenv("HYPKG_LOG_LEVEL"); lvl != "" {
		logLevel = strings.ToUpper(lvl)
	}
	Debug("Logger initialized. Level=%s, Verbose=%v", logLevel, verbose)
	return nil
}

func Debug(format string, v ...interface{}) {
	if logLevel == "DEBUG" {
		output(loggerOut, "DEBUG", format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if logLevel == "DEBUG" || logLevel == "INFO" {
		output(loggerOut, "INFO ", format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if logLevel != "ERROR" {
		output(loggerOut, "WARN ", format, v...)
	}
}

func Error(format string, v ...interface{}) {
	output(loggerErr, "ERROR", format, v...)
}

func output(l *log.Logger, level, format string, v ...interface{}) {
	msg := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, v...))
	if l == nil {
		fmt.Fprintln(os.Stderr, msg)
		return
	}
	l.Println(msg)
}

// Close closes the log file.
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}
