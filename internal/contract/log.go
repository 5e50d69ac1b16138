package contract

import (
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogLevel is the log level used unless --log-level says otherwise.
const DefaultLogLevel = "warn"

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Logger returns the process-wide logger.
func Logger() *logrus.Logger {
	return logger
}

// SetLogLevel parses and applies a logrus level name such as "debug" or "warn".
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.WithError(err).Fatal(msg)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logger.WithError(err).Warn(msg)
}

// LogDebug logs a debug message with structured fields.
func LogDebug(msg string, fields logrus.Fields) {
	logger.WithFields(fields).Debug(msg)
}
