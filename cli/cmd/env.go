package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/remake/pkg"
	"github.com/ardnew/remake/vars"
)

// Env evaluates definitions and prints the environment a subprocess would
// receive.
type Env struct {
	File    []string `help:"Definitions file(s), or '-' for stdin."              name:"file"    short:"f" type:"existingfile"`
	Define  []string `help:"Command-line definition (NAME=VALUE, any flavor)."   name:"define"  short:"D" placeholder:"DEF"`
	Prepend []string `help:"Prepend an element to a list variable (VAR=ITEM)."   name:"prepend"           placeholder:"VAR=ITEM"`
	Target  string   `help:"Project the environment of this target's scope."     name:"target"  short:"t"`
	Recurse bool     `help:"Project for a recursive invocation of this program." name:"recurse" short:"r"`
	Export  bool     `help:"Export every binding with an exportable name."       name:"export"  short:"e"`
}

// Run executes the env command.
func (e *Env) Run() error {
	c := newContext(vars.WithExportAll(e.Export))
	ld := newLoader(c)

	for _, path := range e.File {
		if err := ld.loadFile(path); err != nil {
			return err
		}
	}

	c.SetReading(vars.Location{})

	for _, def := range e.Define {
		b, err := c.TryDefinition(def, vars.OriginCommand, vars.ScopeGlobal)
		if err != nil {
			return err
		}

		if b == nil {
			return pkg.MakeError(pkg.ErrNotDefinition).Wrapf("%q", def)
		}
	}

	for _, p := range e.Prepend {
		if err := prepend(c, p); err != nil {
			return err
		}
	}

	var target *vars.Target

	if e.Target != "" {
		// A target named by a scoped assignment keeps its parse-time scope.
		target = ld.target(e.Target)
		c.InitializeTarget(target, false)
	}

	for _, entry := range c.Environment(target, e.Recurse) {
		fmt.Println(entry)
	}

	return nil
}

// prepend inserts one element at the front of a list-valued binding,
// deduplicating elements that are already present.
func prepend(c *vars.Context, spec string) error {
	name, item, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return pkg.MakeError(pkg.ErrInvalidFormat).Wrapf("%q", spec)
	}

	sep := " "
	if strings.HasSuffix(name, "PATH") {
		sep = string(os.PathListSeparator)
	}

	current := ""
	if b := c.Lookup(name); b != nil {
		current = c.ResolveBinding(b)
	}

	value := mung.Make(
		mung.WithSubjectItems(current),
		mung.WithDelim(sep),
		mung.WithPrefixItems(item),
	).String()

	c.DefineGlobal(name, value, vars.OriginCommand, false)

	return nil
}
