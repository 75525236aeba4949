package cli

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/remake/log"
	"github.com/ardnew/remake/profile"
)

type profileConfig struct {
	Mode string `default:""      enum:",${profileModeEnum}" help:"Enable profiling"          placeholder:"${enum}"`
	Dir  string `default:"prof"                             help:"Profile output directory."                       type:"path"`
}

func (profileConfig) vars() kong.Vars {
	var modes []string
	for m := range profile.Modes() {
		modes = append(modes, m)
	}

	return kong.Vars{"profileModeEnum": strings.Join(modes, ",")}
}

func (profileConfig) group() kong.Group {
	return kong.Group{Key: "profile", Title: "Profiling"}
}

// start begins profiling if a mode was selected and returns the stopper.
func (f profileConfig) start() (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	log.Debug("profile start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	p := profile.Make(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	).Start()

	return func() {
		log.Debug("profile stop", slog.String("mode", f.Mode))
		p.Stop()
	}
}
