package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns a logger writing text records to w. Logs never go to
// stdout, which carries command output.
func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// configureLogger applies level; debug logging also records the caller.
func configureLogger(l *logrus.Logger, level logrus.Level) {
	l.SetLevel(level)
	l.SetReportCaller(level >= logrus.DebugLevel)
}
