package expand

import (
	"testing"

	"github.com/ardnew/remake/vars"
)

func newContext(t *testing.T) (*vars.Context, *[]string) {
	t.Helper()

	r := New()

	var warnings []string

	c := vars.New(
		vars.WithResolver(r.Expand),
		vars.WithWarningHandler(func(_ vars.Warning, _ vars.WarnAction,
			_ vars.Location, msg string,
		) {
			warnings = append(warnings, msg)
		}),
	)

	return c, &warnings
}

func TestExpandReferences(t *testing.T) {
	c, _ := newContext(t)

	c.DefineGlobal("CC", "gcc", vars.OriginFile, false)
	c.DefineGlobal("X", "1", vars.OriginFile, false)
	c.DefineGlobal("suffix", "o", vars.OriginFile, false)
	c.DefineGlobal("OBJ_o", "main.o", vars.OriginFile, false)

	tests := []struct {
		text string
		want string
	}{
		{"plain text", "plain text"},
		{"$(CC) -c", "gcc -c"},
		{"${CC} -c", "gcc -c"},
		{"$X$X", "11"},
		{"cost: $$5", "cost: $5"},
		// Nested references resolve the inner name first.
		{"$(OBJ_$(suffix))", "main.o"},
		{"a $", "a "},
		// An unterminated reference extends to the end of the text.
		{"$(CC", "gcc"},
	}

	for _, tt := range tests {
		if got := c.Expand(tt.text); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExpandDeferredChain(t *testing.T) {
	c, _ := newContext(t)

	c.DefineGlobal("A", "$(B) end", vars.OriginFile, true)
	c.DefineGlobal("B", "$(CC)", vars.OriginFile, true)
	c.DefineGlobal("CC", "gcc", vars.OriginFile, false)

	if got := c.Expand("$(A)"); got != "gcc end" {
		t.Fatalf("got %q", got)
	}

	// Redefining a link changes every later read.
	c.DefineGlobal("CC", "clang", vars.OriginFile, false)

	if got := c.Expand("$(A)"); got != "clang end" {
		t.Fatalf("after redefine, got %q", got)
	}
}

func TestExpandUndefined(t *testing.T) {
	c, warnings := newContext(t)
	c.SetWarning(vars.WarnUndefined, vars.ActionWarn)

	if got := c.Expand("<$(NOPE)>"); got != "<>" {
		t.Fatalf("got %q", got)
	}

	if len(*warnings) != 1 {
		t.Fatalf("warnings = %v", *warnings)
	}
}

func TestExpandSelfReferenceCycle(t *testing.T) {
	c, _ := newContext(t)

	c.DefineGlobal("LOOP", "x $(LOOP) y", vars.OriginFile, true)

	if got := c.Expand("$(LOOP)"); got != "x  y" {
		t.Fatalf("got %q", got)
	}

	// Mutual recursion cuts at the repeated name, not the entry point.
	c.DefineGlobal("PING", "p$(PONG)", vars.OriginFile, true)
	c.DefineGlobal("PONG", "q$(PING)", vars.OriginFile, true)

	if got := c.Expand("$(PING)"); got != "pq" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandAppendMerge(t *testing.T) {
	c, _ := newContext(t)

	c.DefineGlobal("CFLAGS", "-O2", vars.OriginFile, false)

	tgt := &vars.Target{Name: "debug"}
	c.InitializeTarget(tgt, false)

	saved := c.InstallTarget(tgt)

	b := c.Define("CFLAGS", "-g", vars.OriginFile, true)
	b.Append = true

	// The enclosing scope's value comes first, the appended piece last.
	if got := c.Expand("$(CFLAGS)"); got != "-O2 -g" {
		t.Fatalf("got %q", got)
	}

	c.RestoreContext(saved)

	if got := c.Expand("$(CFLAGS)"); got != "-O2" {
		t.Fatalf("global view, got %q", got)
	}
}
