package log

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// Log is the root entry every package derives its own logger from.
var Log *logrus.Entry

func init() {
	l := logrus.New()
	l.SetFormatter(&nested.Formatter{
		HideKeys:    false,
		FieldsOrder: []string{"proc", "sys", "ssys", "kind", "endpoint", "gID", "cID", "mID", "rID"},
		NoColors:    true,
	})

	switch os.Getenv("LOG_TRACE") {
	case "on":
		l.SetLevel(logrus.TraceLevel)
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	}

	Log = l.WithField("proc", "GAMEWATCH")
}

// SetLevel changes the level of the shared logger. Unknown levels are ignored.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithError(err).Warn("Unknown log level, keeping current")
		return
	}
	Log.Logger.SetLevel(lvl)
}
