package log

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/mlstack/entrain/pkg/errors"
)

// setupWarningSink routes pkg/errors warnings (ConvergenceWarning and
// friends) through zerolog so they show up as structured events.
func setupWarningSink() {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})
}
