package cmd

import (
	"github.com/ardnew/remake/cli/cmd/repl"
)

// Repl starts the interactive inspector.
type Repl struct {
	File []string `help:"Definitions file(s) evaluated before the prompt." name:"file" short:"f" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run() error {
	c := newContext()
	ld := newLoader(c)

	for _, path := range r.File {
		if err := ld.loadFile(path); err != nil {
			return err
		}
	}

	return repl.Run(c)
}
