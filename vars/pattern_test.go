package vars

import (
	"testing"
)

func definePattern(t *testing.T, x *PatternIndex, pattern, name, value string) *PatternVar {
	t.Helper()

	p := x.Define(pattern, FlavorRecursive, Binding{
		Name:      name,
		Value:     value,
		Origin:    OriginFile,
		Recursive: true,
		PerTarget: true,
	})
	if p == nil {
		t.Fatalf("Define(%q) rejected", pattern)
	}

	return p
}

func TestPatternIndexOrdering(t *testing.T) {
	var x PatternIndex

	definePattern(t, &x, "lib%.a", "A", "1")
	definePattern(t, &x, "%.o", "B", "2")
	definePattern(t, &x, "a%.o", "C", "3")
	definePattern(t, &x, "b%.o", "D", "4")

	var got []string
	for p := range x.All() {
		got = append(got, p.Target)
	}

	// Ascending pattern length, equal lengths in definition order.
	want := []string{"%.o", "a%.o", "b%.o", "lib%.a"}

	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if x.Len() != 4 {
		t.Fatalf("Len = %d", x.Len())
	}
}

func TestPatternIndexRequiresWildcard(t *testing.T) {
	var x PatternIndex

	if x.Define("plain.o", FlavorRecursive, Binding{Name: "A"}) != nil {
		t.Fatal("pattern without wildcard accepted")
	}
}

func TestPatternMatchCursor(t *testing.T) {
	var x PatternIndex

	definePattern(t, &x, "%.o", "A", "1")
	definePattern(t, &x, "a%.o", "B", "2")
	definePattern(t, &x, "x%.o", "C", "3")

	// Shortest pattern matches first; the cursor resumes past the last
	// hit and skips non-matching templates.
	p := x.Match(nil, "ab.o")
	if p == nil || p.Target != "%.o" {
		t.Fatalf("first match = %+v", p)
	}

	p = x.Match(p, "ab.o")
	if p == nil || p.Target != "a%.o" {
		t.Fatalf("second match = %+v", p)
	}

	if p = x.Match(p, "ab.o"); p != nil {
		t.Fatalf("third match = %+v, want nil", p)
	}
}

func TestPatternStemRule(t *testing.T) {
	var x PatternIndex

	definePattern(t, &x, "a%.o", "A", "1")

	// The stem must be at least one character: "a.o" leaves none.
	if p := x.Match(nil, "a.o"); p != nil {
		t.Fatalf("empty stem matched: %+v", p)
	}

	if p := x.Match(nil, "ab.o"); p == nil {
		t.Fatal("one-character stem did not match")
	}

	// Literal prefix and suffix must match exactly.
	if p := x.Match(nil, "xb.o"); p != nil {
		t.Fatalf("prefix mismatch matched: %+v", p)
	}

	if p := x.Match(nil, "ab.c"); p != nil {
		t.Fatalf("suffix mismatch matched: %+v", p)
	}
}

func TestTargetPatternScope(t *testing.T) {
	c, _ := testContext(t)

	c.DefinePattern("%.o", Assignment{
		Name:   "CFLAGS",
		Value:  "-O2",
		Flavor: FlavorRecursive,
	}, OriginFile, false)

	tgt := &Target{Name: "main.o"}
	c.InitializeTarget(tgt, false)

	b := c.LookupForTarget("CFLAGS", tgt)
	if b == nil || b.Value != "-O2" {
		t.Fatalf("pattern binding = %+v", b)
	}

	if !b.PerTarget {
		t.Fatal("clone lost the per-target mark")
	}

	// The clone is independent: writing through the target scope must not
	// touch the registered template.
	saved := c.InstallTarget(tgt)
	c.Define("CFLAGS", "-O0", OriginFile, true)
	c.RestoreContext(saved)

	for p := range c.Patterns().All() {
		if p.Binding.Value != "-O2" {
			t.Fatalf("template mutated: %q", p.Binding.Value)
		}
	}

	other := &Target{Name: "other.o"}
	c.InitializeTarget(other, false)

	if b := c.LookupForTarget("CFLAGS", other); b == nil || b.Value != "-O2" {
		t.Fatalf("second target clone = %+v", b)
	}
}

func TestPatternSearchSuppressedWhileParsing(t *testing.T) {
	c, _ := testContext(t)

	c.DefinePattern("%.o", Assignment{
		Name:   "CFLAGS",
		Value:  "-O2",
		Flavor: FlavorRecursive,
	}, OriginFile, false)

	tgt := &Target{Name: "main.o"}
	c.InitializeTarget(tgt, true)

	if b := c.LookupForTarget("CFLAGS", tgt); b != nil {
		t.Fatalf("pattern searched during parse: %+v", b)
	}

	// Re-initializing after the parse performs the search.
	c.InitializeTarget(tgt, false)

	if b := c.LookupForTarget("CFLAGS", tgt); b == nil {
		t.Fatal("pattern not searched after parse")
	}
}

func TestPatternSimpleFlavorFreezesAtDefinition(t *testing.T) {
	c, _ := testContext(t)

	c.DefineGlobal("OPT", "-O2", OriginFile, false)
	c.DefinePattern("%.o", Assignment{
		Name:   "CFLAGS",
		Value:  "$(OPT)",
		Flavor: FlavorSimple,
	}, OriginFile, false)

	c.DefineGlobal("OPT", "-O3", OriginFile, false)

	tgt := &Target{Name: "main.o"}
	c.InitializeTarget(tgt, false)

	if b := c.LookupForTarget("CFLAGS", tgt); b == nil || b.Value != "-O2" {
		t.Fatalf("simple template value = %+v, want frozen at definition", b)
	}
}
