package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. Init must be called once at startup;
// before that the logrus defaults apply.
var Log = logrus.New()

// Init configures the shared logger from the given level and format.
// Format is "json" or "text"; unknown levels fall back to info.
func Init(level, format string) {
	Log.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}

// WithComponent returns a logger entry tagged with a component name.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
