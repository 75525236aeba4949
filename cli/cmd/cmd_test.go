package cmd

import (
	"strings"
	"testing"

	"github.com/ardnew/remake/expand"
	"github.com/ardnew/remake/vars"
)

func testEngine(t *testing.T) *vars.Context {
	t.Helper()

	r := expand.New()

	return vars.New(vars.WithResolver(r.Expand))
}

func load(t *testing.T, c *vars.Context, text string) *loader {
	t.Helper()

	l := newLoader(c)
	if err := l.loadDefinitions(strings.NewReader(text), "test.mk"); err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}

	return l
}

func TestLoadDefinitionsAssignments(t *testing.T) {
	c := testEngine(t)

	load(t, c, `
# comment lines and blanks are skipped
CC = gcc
OPT := -O$(LEVEL)
LEVEL = 2

SRCS = a.c \
	b.c \
	c.c
`)

	if got := c.Expand("$(CC)"); got != "gcc" {
		t.Errorf("CC = %q", got)
	}

	// Immediate assignment froze the value before LEVEL was defined.
	if got := c.Expand("$(OPT)"); got != "-O" {
		t.Errorf("OPT = %q", got)
	}

	// Continuations join with single blanks.
	if got := c.Expand("$(SRCS)"); got != "a.c b.c c.c" {
		t.Errorf("SRCS = %q", got)
	}
}

func TestLoadDefinitionsSkipsRules(t *testing.T) {
	c := testEngine(t)

	load(t, c, `
all: main.o
	$(CC) -o $@ $^

.PHONY: all
X = 1
`)

	if got := c.Expand("$(X)"); got != "1" {
		t.Errorf("X = %q", got)
	}

	if b := c.Lookup("all"); b != nil {
		t.Errorf("rule line produced a binding: %+v", b)
	}
}

func TestLoadDefinitionsDirectives(t *testing.T) {
	c := testEngine(t)

	load(t, c, `
FROM_FILE = old
override FROM_FILE = locked
FROM_FILE = ignored

override private TOKEN = s3cret

export VISIBLE = yes
export BARE
unexport HIDDEN = no

undefine FROM_FILE
`)

	// An override binding resists both the later plain assignment and the
	// file-origin undefine.
	b := c.Lookup("FROM_FILE")
	if b == nil || b.Value != "locked" || b.Origin != vars.OriginOverride {
		t.Fatalf("FROM_FILE = %+v", b)
	}

	tok := c.Lookup("TOKEN")
	if tok == nil || !tok.Private || tok.Origin != vars.OriginOverride {
		t.Fatalf("TOKEN = %+v", tok)
	}

	if b := c.Lookup("VISIBLE"); b == nil || b.Export != vars.ExportAlways {
		t.Fatalf("VISIBLE = %+v", b)
	}

	if b := c.Lookup("BARE"); b == nil || b.Export != vars.ExportAlways {
		t.Fatalf("BARE = %+v", b)
	}

	if b := c.Lookup("HIDDEN"); b == nil || b.Export != vars.ExportNever {
		t.Fatalf("HIDDEN = %+v", b)
	}
}

func TestLoadDefinitionsUndefine(t *testing.T) {
	c := testEngine(t)

	load(t, c, `
GONE = x
undefine GONE
`)

	if b := c.Lookup("GONE"); b != nil {
		t.Fatalf("GONE survived: %+v", b)
	}
}

func TestLoadDefinitionsDefineBlock(t *testing.T) {
	c := testEngine(t)

	load(t, c, `
define HELP
usage: run [target]
  build   compile everything
endef

define STAMP :=
release-$(REV)
endef
REV = 9
`)

	help := c.Lookup("HELP")
	if help == nil || !help.Recursive {
		t.Fatalf("HELP = %+v", help)
	}

	if want := "usage: run [target]\n  build   compile everything"; help.Value != want {
		t.Fatalf("HELP value = %q", help.Value)
	}

	// The explicit := froze the body before REV existed.
	stamp := c.Lookup("STAMP")
	if stamp == nil || stamp.Recursive || stamp.Value != "release-" {
		t.Fatalf("STAMP = %+v", stamp)
	}
}

func TestLoadDefinitionsUnterminatedDefine(t *testing.T) {
	c := testEngine(t)

	err := newLoader(c).loadDefinitions(strings.NewReader("define OOPS\nbody\n"), "bad.mk")
	if err == nil || !strings.Contains(err.Error(), "OOPS") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadDefinitionsScopedAssignments(t *testing.T) {
	c := testEngine(t)

	ld := load(t, c, `
CFLAGS = -O2
%.o: CFLAGS = -g
app: LDFLAGS = -s
`)

	var patterns []string
	for p := range c.Patterns().All() {
		patterns = append(patterns, p.Target)
	}

	// Only the wildcard line registers a template; the literal target line
	// defines into that target's own scope.
	if len(patterns) != 1 || patterns[0] != "%.o" {
		t.Fatalf("patterns = %v", patterns)
	}

	// The global binding is untouched by the scoped ones.
	if got := c.Expand("$(CFLAGS)"); got != "-O2" {
		t.Errorf("CFLAGS = %q", got)
	}

	tgt := &vars.Target{Name: "main.o"}
	c.InitializeTarget(tgt, false)

	saved := c.InstallTarget(tgt)
	got := c.Expand("$(CFLAGS)")
	c.RestoreContext(saved)

	if got != "-g" {
		t.Errorf("target CFLAGS = %q", got)
	}

	app := ld.target("app")
	c.InitializeTarget(app, false)

	saved = c.InstallTarget(app)
	got = c.Expand("$(LDFLAGS)")
	c.RestoreContext(saved)

	if got != "-s" {
		t.Errorf("app LDFLAGS = %q", got)
	}
}

func TestScopedAssignmentSplit(t *testing.T) {
	tests := []struct {
		line string
		key  string
		rest string
		ok   bool
	}{
		{"%.o: CFLAGS = -g", "%.o", "CFLAGS = -g", true},
		{"app: X := 1", "app", "X := 1", true},
		{"FOO = bar", "", "", false},
		{"FOO := bar", "", "", false},
		{"all: main.o", "", "", false},
		{"all:", "", "", false},
		{": X = 1", "", "", false},
	}

	for _, tt := range tests {
		key, rest, ok := scopedAssignment(tt.line)
		if key != tt.key || rest != tt.rest || ok != tt.ok {
			t.Errorf("scopedAssignment(%q) = %q, %q, %v",
				tt.line, key, rest, ok)
		}
	}
}
