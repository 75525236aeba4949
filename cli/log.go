package cli

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/remake/log"
)

// logFormat configures the default logger as a side effect of flag parsing
// via encoding.TextUnmarshaler, so diagnostics emitted during parsing
// itself already use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the default logger as a side effect of flag parsing,
// as logFormat does.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info" enum:"debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text" enum:"text,json"             help:"Set log format."`
	TimeLayout string    `default:""                                  help:"Set timestamp format."`
	Pretty     bool      `default:"true"                              help:"Enable colorized output." negatable:""`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the fully parsed configuration, including the values that
// do not route through TextUnmarshaler.
func (f *logConfig) start() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithPretty(f.Pretty),
	)

	log.Debug("logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.Bool("pretty", f.Pretty),
	)
}
