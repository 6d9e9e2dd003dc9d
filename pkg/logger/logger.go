package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	log  = newLogger()
	base = logrus.NewEntry(log)
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
}

// Setup configures the process logger once at startup. format "json" emits one
// JSON object per line; any other value keeps the text layout. A non-empty
// service is stamped on every line as the "service" field.
func Setup(level, format, service string) {
	SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        logrus.FieldMap{logrus.FieldKeyMsg: "message"},
		})
	default:
		log.SetFormatter(textFormatter())
	}

	base = logrus.NewEntry(log)
	if service != "" {
		base = base.WithField("service", service)
	}
}

// SetLevel parses a logrus level name; unknown names keep the current level.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		base.Warnf("unknown log level %q, keeping %s", level, log.GetLevel())
		return
	}
	log.SetLevel(lvl)
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Info(args ...interface{})                  { base.Info(args...) }
func Infof(format string, args ...interface{})  { base.Infof(format, args...) }
func Warn(args ...interface{})                  { base.Warn(args...) }
func Warnf(format string, args ...interface{})  { base.Warnf(format, args...) }
func Error(args ...interface{})                 { base.Error(args...) }
func Errorf(format string, args ...interface{}) { base.Errorf(format, args...) }
func Debugf(format string, args ...interface{}) { base.Debugf(format, args...) }
func Fatal(args ...interface{})                 { base.Fatal(args...) }
func Panic(args ...interface{})                 { base.Panic(args...) }

// WithField starts an entry that already carries the service field.
func WithField(key string, value interface{}) *logrus.Entry {
	return base.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return base.WithFields(fields)
}
