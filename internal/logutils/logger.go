package logutils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the logger shared by every package of the service.
var Log = logrus.New()

// Fields is the type of logrus.Fields.
type Fields = logrus.Fields

func init() {
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
}

// Configure applies the configured level and switches to JSON output in production.
func Configure(level, environment string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("invalid LOG_LEVEL %q, keeping %s", level, Log.GetLevel())
	} else {
		Log.SetLevel(lvl)
	}

	if environment == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}
}
