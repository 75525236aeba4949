package vars

import (
	"os"
	"strconv"

	"github.com/ardnew/remake/pkg"
)

// automaticRefs are the per-target convenience variables defined as
// deferred references so they track whatever the file-name automatics hold
// at resolution time.
var automaticRefs = [...][2]string{
	{"@D", "$(patsubst %/,%,$(dir $@))"},
	{"%D", "$(patsubst %/,%,$(dir $%))"},
	{"*D", "$(patsubst %/,%,$(dir $*))"},
	{"<D", "$(patsubst %/,%,$(dir $<))"},
	{"?D", "$(patsubst %/,%,$(dir $?))"},
	{"^D", "$(patsubst %/,%,$(dir $^))"},
	{"+D", "$(patsubst %/,%,$(dir $+))"},
	{"@F", "$(notdir $@)"},
	{"%F", "$(notdir $%)"},
	{"*F", "$(notdir $*)"},
	{"<F", "$(notdir $<)"},
	{"?F", "$(notdir $?)"},
	{"^F", "$(notdir $^)"},
	{"+F", "$(notdir $+)"},
}

// DefineAutomatics seeds the conventional base bindings a fresh context is
// expected to hold. Call it after [Context.ImportEnvironment] so the
// environment-sourced values it adjusts are already present.
func (c *Context) DefineAutomatics() {
	// An inherited recursion depth wins over the zero default, but never
	// over an explicit level set at construction.
	if b := c.global.set.Lookup(LevelVar); b != nil && c.level == 0 {
		if n, err := strconv.Atoi(b.Value); err == nil && n >= 0 {
			c.level = n
		}
	}

	c.DefineGlobal(LevelVar, strconv.Itoa(c.level), OriginEnv, false)
	c.DefineGlobal("MAKE_VERSION", pkg.Version, OriginDefault, false)

	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}

	c.DefineGlobal("MAKE_HOST", host, OriginDefault, false)
	c.DefineGlobal("MAKE", "$(MAKE_COMMAND)", OriginDefault, true)
	c.DefineGlobal("MAKE_COMMAND", pkg.Name, OriginDefault, false)

	// An inherited SHELL value must not win over the default: the shell
	// used to run recipes is the module's choice, not the caller's login
	// shell. Demote an environment-sourced SHELL to file origin so an
	// ordinary definition can still replace it.
	if shell := c.global.set.Lookup(ShellVar); shell != nil {
		if shell.Origin == OriginEnv || shell.Origin == OriginEnvOverride {
			shell.Origin = OriginFile
			shell.Export = ExportNever
		}
	} else {
		c.DefineGlobal(ShellVar, c.defaultShell, OriginDefault, false)
	}

	if flags := c.global.set.Lookup(FlagsVar); flags != nil {
		c.decodeFlags(c.Expand(flags.Value))
	} else {
		c.DefineGlobal(FlagsVar, "", OriginDefault, true)
	}

	if mf := c.DefineGlobal("MAKEFILES", "", OriginDefault, true); mf != nil {
		mf.Export = ExportIfSet
	}

	c.DefineGlobal(VariableNamesVar, "", OriginDefault, false)
	c.DefineGlobal(RecipePrefixVar, "", OriginDefault, false)

	for _, ref := range automaticRefs {
		if b := c.DefineGlobal(ref[0], ref[1], OriginAutomatic, true); b != nil {
			b.PerTarget = true
		}
	}
}
