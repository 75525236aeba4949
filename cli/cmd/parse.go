package cmd

import (
	"fmt"
	"strings"

	"github.com/ardnew/remake/vars"
)

// Parse classifies a single line and reports its parts without evaluating
// anything.
type Parse struct {
	Line []string `arg:"" help:"Line to classify (quoting optional; arguments are joined)." name:"line"`
}

// operator maps each flavor back to its source spelling for display.
func operator(a vars.Assignment) string {
	op := map[vars.Flavor]string{
		vars.FlavorRecursive:   "=",
		vars.FlavorSimple:      ":=",
		vars.FlavorExpand:      ":::=",
		vars.FlavorShell:       "!=",
		vars.FlavorAppend:      "+=",
		vars.FlavorAppendValue: "+=",
	}[a.Flavor]

	if a.Conditional {
		return "?" + op
	}

	return op
}

// Run executes the parse command.
func (p *Parse) Run() error {
	line := strings.Join(p.Line, " ")

	a, ok := vars.ParseAssignment(line)
	if !ok {
		fmt.Println("not a variable definition")

		return nil
	}

	fmt.Printf("name:     %q\n", a.Name)
	fmt.Printf("operator: %s\n", operator(a))
	fmt.Printf("flavor:   %s\n", a.Flavor)
	fmt.Printf("value:    %q\n", a.Value)

	return nil
}
