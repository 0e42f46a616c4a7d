// Package logging configures the process-wide structured logger. Every
// other package logs through this instead of the standard library "log"
// package (see DESIGN.md — grounded on the logrus usage in the
// evanstukalov-redis-in-go reference and telegraf's dependency set).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it; an unrecognized name is silently treated as "info".
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

// For returns a logger scoped to component, e.g. "server", "replication".
func For(component string) *logrus.Entry {
	return base.WithField("component", component)
}
