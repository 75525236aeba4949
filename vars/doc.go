// Package vars implements the variable binding and scoping engine of the
// remake build tool: the layered scope model, the assignment-flavor
// semantics, pattern-keyed variable injection, and the projection of a
// scope chain into a child-process environment.
//
// The engine is organized around an explicit [Context] that owns the
// process-global scope, the pattern variable index, and a change counter
// used to invalidate synthetic variables. All entry points are methods on
// Context so multiple independent evaluation contexts can coexist (for
// example, in tests).
//
// Value expansion of $(...)-style references is not implemented here. The
// Context delegates to a [ResolveFunc] collaborator; package expand provides
// the reference implementation. Likewise subprocess capture for the !=
// flavor is delegated to a [RunFunc].
//
// The engine is single-threaded by design: every Context must be confined
// to one goroutine. The only suspension point is the subprocess invocation
// performed by the != assignment flavor, and it is re-entrant.
package vars
