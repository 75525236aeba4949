package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/remake/pkg"
	"github.com/ardnew/remake/vars"
)

// Dump prints the variable database.
type Dump struct {
	File   []string `help:"Definitions file(s), or '-' for stdin."            name:"file"   short:"f" type:"existingfile"`
	Format string   `help:"Output format."                                    name:"format" short:"F" default:"text" enum:"text,json,yaml"`
	Filter string   `help:"Keep only records matching this expression."      name:"filter"            placeholder:"EXPR"`
}

// Run executes the dump command.
func (d *Dump) Run() error {
	c := newContext()
	ld := newLoader(c)

	for _, path := range d.File {
		if err := ld.loadFile(path); err != nil {
			return err
		}
	}

	if d.Format == "text" && d.Filter == "" {
		c.WriteDatabase(os.Stdout)

		return nil
	}

	records := c.Records()

	if d.Filter != "" {
		filtered, err := filterRecords(records, d.Filter)
		if err != nil {
			return err
		}

		records = filtered
	}

	switch d.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(records); err != nil {
			return pkg.MakeError(pkg.ErrJSONMarshal).Wrap(err)
		}

	case "yaml":
		out, err := yaml.Marshal(records)
		if err != nil {
			return pkg.MakeError(pkg.ErrYAMLMarshal).Wrap(err)
		}

		os.Stdout.Write(out)

	default:
		for _, r := range records {
			fmt.Printf("%s = %s (%s, %s)\n", r.Name, r.Value, r.Origin, r.Flavor)
		}
	}

	return nil
}

// filterRecords keeps the records for which the compiled predicate holds.
// The expression sees each record's fields by name, e.g.
// `Origin == "environment" && Name startsWith "MAKE"`.
func filterRecords(records []vars.Record, source string) ([]vars.Record, error) {
	program, err := expr.Compile(source,
		expr.Env(vars.Record{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, pkg.MakeError(pkg.ErrFilterExpr).Wrap(err)
	}

	out := records[:0:0]

	for _, r := range records {
		keep, err := expr.Run(program, r)
		if err != nil {
			return nil, pkg.MakeError(pkg.ErrFilterExpr).Wrap(err)
		}

		if b, ok := keep.(bool); ok && b {
			out = append(out, r)
		}
	}

	return out, nil
}
