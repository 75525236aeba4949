package vars

import (
	"os/exec"
)

// SystemRunner is a RunFunc that executes command through the shell named
// by the SHELL binding (falling back to the context's default), with the
// projected environment. Standard error passes through to the process.
func SystemRunner(c *Context, command string) (string, error) {
	shell := c.defaultShell

	if b := c.Lookup(ShellVar); b != nil {
		if v := c.ResolveBinding(b); v != "" {
			shell = v
		}
	}

	cmd := exec.Command(shell, "-c", command)
	cmd.Env = c.Environment(nil, false)

	out, err := cmd.Output()

	return string(out), err
}
