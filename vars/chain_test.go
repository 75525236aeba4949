package vars

import (
	"testing"
)

func TestPushScopeShadowsAndPopsRestores(t *testing.T) {
	c, _ := testContext(t)

	c.DefineGlobal("X", "outer", OriginFile, false)
	c.PushScope()
	c.Define("X", "inner", OriginFile, false)

	if b := c.Lookup("X"); b == nil || b.Value != "inner" {
		t.Fatalf("inner scope lookup = %+v", b)
	}

	c.PopScope()

	if b := c.Lookup("X"); b == nil || b.Value != "outer" {
		t.Fatalf("after pop lookup = %+v", b)
	}
}

func TestPushScopeAtGlobalKeepsNodeIdentity(t *testing.T) {
	c, _ := testContext(t)

	c.DefineGlobal("X", "outer", OriginFile, false)

	global := c.Global()
	pushed := c.PushScope()

	// Pushing at the global level swaps contents into the same node, so
	// chains that terminate at the global node see the new scope without
	// being rebuilt.
	if pushed != global {
		t.Fatal("global-level push must reuse the global node")
	}

	if !c.Current().IsGlobal() {
		t.Fatal("current scope lost the global tag")
	}

	c.DefineGlobal("Y", "new", OriginFile, false)

	if b := c.Lookup("X"); b == nil || b.Value != "outer" {
		t.Fatalf("displaced contents not reachable: %+v", b)
	}

	c.PopScope()

	if c.Global() != global {
		t.Fatal("pop changed the global node identity")
	}

	if c.Lookup("Y") != nil {
		t.Fatal("popped scope's binding survived")
	}

	if b := c.Lookup("X"); b == nil || b.Value != "outer" {
		t.Fatalf("original global contents lost: %+v", b)
	}
}

func TestPopRootPanics(t *testing.T) {
	c, _ := testContext(t)

	defer func() {
		if recover() == nil {
			t.Fatal("pop of root scope did not panic")
		}
	}()

	c.PopScope()
}

func TestPrivateVisibility(t *testing.T) {
	c, _ := testContext(t)

	b := c.DefineGlobal("SECRET", "global", OriginFile, false)
	b.Private = true

	parent := &Target{Name: "parent"}
	child := &Target{Name: "child", Parent: parent}

	c.InitializeTarget(parent, false)

	saved := c.InstallTarget(parent)
	pb := c.Define("PSECRET", "parent-only", OriginFile, false)
	pb.Private = true
	c.RestoreContext(saved)

	// From the child's chain both lookups cross a parent link, so neither
	// private binding is visible.
	if got := c.LookupForTarget("SECRET", child); got != nil {
		t.Fatalf("global private visible across parent link: %+v", got)
	}

	if got := c.LookupForTarget("PSECRET", child); got != nil {
		t.Fatalf("parent private visible in child: %+v", got)
	}

	// From the owning scope itself, private bindings resolve.
	if got := c.LookupForTarget("PSECRET", parent); got == nil {
		t.Fatal("private binding invisible in its own scope")
	}
}

func TestMergeScopesReceiverWins(t *testing.T) {
	c, _ := testContext(t)

	from := &Chain{set: newSet(smallScopeBuckets), next: c.Global()}
	c.defineIn(from.set, "A", "from", OriginFile, false, Location{})
	c.defineIn(from.set, "B", "from", OriginFile, false, Location{})

	to := &Chain{set: newSet(smallScopeBuckets), next: c.Global()}
	c.defineIn(to.set, "A", "to", OriginFile, false, Location{})

	head := c.MergeScopes(to, from)
	if head != to {
		t.Fatal("merge must keep the receiver as head")
	}

	if b := to.Set().Lookup("A"); b == nil || b.Value != "to" {
		t.Fatalf("collision lost receiver value: %+v", b)
	}

	if b := to.Set().Lookup("B"); b == nil || b.Value != "from" {
		t.Fatalf("absent name not absorbed: %+v", b)
	}
}

func TestInitializeTargetDoubleColon(t *testing.T) {
	c, _ := testContext(t)

	canonical := &Target{Name: "out"}
	sibling := &Target{Name: "out", DoubleColon: canonical}
	canonical.DoubleColon = canonical

	c.InitializeTarget(sibling, false)

	// A sibling body defines into the canonical body's scope.
	saved := c.InstallTarget(canonical)
	c.Define("X", "shared", OriginFile, false)
	c.RestoreContext(saved)

	if b := c.LookupForTarget("X", sibling); b == nil || b.Value != "shared" {
		t.Fatalf("sibling does not see canonical scope: %+v", b)
	}
}

func TestInstallTargetRestores(t *testing.T) {
	c, _ := testContext(t)

	before := c.Current()
	tgt := &Target{Name: "t", Loc: Location{File: "mk", Line: 3}}

	saved := c.InstallTarget(tgt)

	if c.Current() == before {
		t.Fatal("install did not switch the current chain")
	}

	if c.Reading() != tgt.Loc {
		t.Fatalf("reading location = %v, want target's", c.Reading())
	}

	c.RestoreContext(saved)

	if c.Current() != before {
		t.Fatal("restore did not reinstate the chain")
	}
}
