// Package cmd implements the subcommands of the remake CLI. Each command
// assembles a variable engine, feeds it definitions, and reports some view
// of the resulting database.
package cmd

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/remake/expand"
	"github.com/ardnew/remake/log"
	"github.com/ardnew/remake/pkg"
	"github.com/ardnew/remake/vars"
)

// newContext assembles an engine wired to the reference resolver, the
// system shell runner, and the default logger as warning sink, seeded with
// the process environment and the conventional base bindings.
func newContext(opts ...vars.Option) *vars.Context {
	resolver := expand.New()

	base := []vars.Option{
		vars.WithResolver(resolver.Expand),
		vars.WithRunner(vars.SystemRunner),
		vars.WithWarningHandler(logWarning),
		vars.WithEnvironment(os.Environ()),
	}

	c := vars.New(append(base, opts...)...)
	c.DefineAutomatics()

	return c
}

// logWarning routes engine diagnostics to the default logger.
func logWarning(_ vars.Warning, action vars.WarnAction, loc vars.Location, msg string) {
	attrs := []slog.Attr{slog.String("at", loc.String())}

	if action == vars.ActionError {
		log.Error(msg, attrs...)

		return
	}

	log.Warn(msg, attrs...)
}

// loader feeds definition streams into an engine. It keeps a registry of
// the targets named by scoped assignments, so a later projection of one of
// those targets sees the bindings its lines established.
type loader struct {
	c       *vars.Context
	targets map[string]*vars.Target
}

func newLoader(c *vars.Context) *loader {
	return &loader{c: c, targets: make(map[string]*vars.Target)}
}

// target returns the registered target with the given name, creating it on
// first use.
func (l *loader) target(name string) *vars.Target {
	t, ok := l.targets[name]
	if !ok {
		t = &vars.Target{Name: name}
		l.targets[name] = t
	}

	return t
}

// loadFile evaluates one definitions file, or standard input for "-".
func (l *loader) loadFile(path string) error {
	if path == "-" {
		return l.loadDefinitions(os.Stdin, "<stdin>")
	}

	f, err := os.Open(path)
	if err != nil {
		return pkg.MakeError(pkg.ErrReadInput).Wrap(err)
	}
	defer f.Close()

	return l.loadDefinitions(f, path)
}

// loadDefinitions evaluates a stream of definition lines: assignments in
// any flavor, target- and pattern-scoped assignments, define/endef blocks,
// and the override, private, export, unexport, and undefine directives.
// Anything else is skipped with a debug note, so a full build script can be
// fed through and only its variable layer takes effect.
func (l *loader) loadDefinitions(r io.Reader, name string) error {
	c := l.c
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0

	for sc.Scan() {
		line := sc.Text()
		lineno++
		c.SetReading(vars.Location{File: name, Line: lineno})

		// Backslash continuations join with a single blank.
		for strings.HasSuffix(line, "\\") && sc.Scan() {
			lineno++
			line = strings.TrimRight(strings.TrimSuffix(line, "\\"), " \t") +
				" " + strings.TrimSpace(sc.Text())
		}

		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "define"); ok && isDirective(rest) {
			n, err := readDefine(c, sc, strings.TrimSpace(rest), lineno)
			if err != nil {
				return err
			}

			lineno = n

			continue
		}

		if err := l.evalLine(trimmed); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return pkg.MakeError(pkg.ErrReadInput).Wrap(err)
	}

	return nil
}

// isDirective reports whether the text following a directive keyword
// actually separates it from an argument, so names like "defines" are not
// misread.
func isDirective(rest string) bool {
	return rest != "" && (rest[0] == ' ' || rest[0] == '\t')
}

// evalLine interprets one logical line.
func (l *loader) evalLine(line string) error {
	c := l.c
	origin := vars.OriginFile
	private := false

	// Directive modifiers stack: "override private VAR = x" is legal.
	for {
		switch {
		case directive(&line, "override"):
			origin = vars.OriginOverride
		case directive(&line, "private"):
			private = true
		case directive(&line, "export"):
			return exportLine(c, line, origin, vars.ExportAlways)
		case directive(&line, "unexport"):
			return exportLine(c, line, origin, vars.ExportNever)
		case directive(&line, "undefine"):
			for _, n := range strings.Fields(line) {
				c.Undefine(c.Expand(n), origin)
			}

			return nil
		default:
			return l.defineLine(line, origin, private)
		}
	}
}

// directive consumes a leading keyword from the line when present.
func directive(line *string, word string) bool {
	rest, ok := strings.CutPrefix(*line, word)
	if !ok || !isDirective(rest) {
		return false
	}

	*line = strings.TrimLeft(rest, " \t")

	return true
}

// exportLine handles "export"/"unexport", with or without an assignment.
func exportLine(c *vars.Context, line string, origin vars.Origin, export vars.Export) error {
	if b, err := c.TryDefinition(line, origin, vars.ScopeGlobal); err != nil {
		return err
	} else if b != nil {
		b.Export = export

		return nil
	}

	for _, n := range strings.Fields(line) {
		name := c.Expand(n)

		b := c.Global().Set().Lookup(name)
		if b == nil {
			b = c.DefineGlobal(name, "", origin, true)
		}

		b.Export = export
	}

	return nil
}

// defineLine handles a plain assignment, a pattern-scoped assignment
// ("%.o: VAR = x"), or a target-scoped one, which defines directly into the
// named target's own scope.
func (l *loader) defineLine(line string, origin vars.Origin, private bool) error {
	c := l.c

	if key, rest, ok := scopedAssignment(line); ok {
		a, defn := vars.ParseAssignment(rest)
		if !defn {
			log.Debug("skipping non-definition line", slog.String("line", line))

			return nil
		}

		if strings.ContainsRune(key, '%') {
			c.DefinePattern(key, a, origin, private)

			return nil
		}

		// The pattern search is deferred to projection time, so templates
		// defined after this line still apply to the target.
		t := l.target(key)
		if t.Loc.IsZero() {
			t.Loc = c.Reading()
		}

		saved := c.InstallTarget(t)
		b, err := c.Apply(a, origin, vars.ScopeTarget)
		c.RestoreContext(saved)

		if err != nil {
			return err
		}

		b.Private = private
		b.PerTarget = true

		return nil
	}

	b, err := c.TryDefinition(line, origin, vars.ScopeGlobal)
	if err != nil {
		return err
	}

	if b == nil {
		log.Debug("skipping non-definition line", slog.String("line", line))

		return nil
	}

	b.Private = private

	return nil
}

// scopedAssignment splits "key: assignment" when the colon introduces a
// scope rather than an assignment operator or a reference.
func scopedAssignment(line string) (key, rest string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '$':
			// A reference may contain a colon; skip the marker so the
			// character after it is never split on.
			i++
		case '=':
			return "", "", false
		case ':':
			if i+1 < len(line) && line[i+1] == '=' {
				return "", "", false
			}

			key = strings.TrimSpace(line[:i])
			rest = strings.TrimSpace(line[i+1:])

			if key == "" || rest == "" {
				return "", "", false
			}

			if _, defn := vars.ParseAssignment(rest); !defn {
				return "", "", false
			}

			return key, rest, true
		}
	}

	return "", "", false
}

// readDefine consumes a define/endef block and applies it as a single
// multi-line assignment. The directive argument may carry an explicit
// operator ("define VAR :="); without one the value is deferred.
func readDefine(c *vars.Context, sc *bufio.Scanner, arg string, lineno int) (int, error) {
	a, ok := vars.ParseAssignment(arg + " ")
	if !ok {
		a = vars.Assignment{Name: strings.TrimSpace(arg), Flavor: vars.FlavorRecursive}
	}

	var body []string

	for sc.Scan() {
		lineno++

		line := sc.Text()
		if strings.TrimSpace(line) == "endef" {
			a.Value = strings.Join(body, "\n")

			_, err := c.Apply(a, vars.OriginFile, vars.ScopeGlobal)

			return lineno, err
		}

		body = append(body, line)
	}

	return lineno, pkg.MakeErrorf("unterminated define '%s'", a.Name)
}
