package vars

//go:generate go tool stringer --linecomment --type Origin,Flavor,Export,Scope --output origin_string.go

// Origin records the provenance of a binding and determines its override
// strength. The declaration order is the precedence ladder: a definition or
// removal only takes effect when its origin is at least as strong as the
// existing binding's origin.
type Origin int

const (
	// OriginAutomatic is a variable maintained by the engine per target.
	OriginAutomatic Origin = iota // automatic
	// OriginDefault is a built-in default definition.
	OriginDefault // default
	// OriginEnv is a variable inherited from the process environment.
	OriginEnv // environment
	// OriginFile is a definition read from a makefile.
	OriginFile // makefile
	// OriginEnvOverride is an environment variable promoted by the -e switch.
	OriginEnvOverride // environment under -e
	// OriginCommand is a definition given on the command line.
	OriginCommand // command line
	// OriginOverride is a definition from an override directive.
	OriginOverride // 'override' directive
)

// Flavor selects how an assignment transforms its raw text into the stored
// value, chosen by the assignment operator spelling at parse time.
type Flavor int

const (
	// FlavorRecursive stores the value verbatim and re-expands it on every
	// read (operator =).
	FlavorRecursive Flavor = iota // recursive
	// FlavorSimple expands the value once at definition time (:= and ::=).
	FlavorSimple // simple
	// FlavorExpand expands the value once and then escapes every reference
	// marker in the result so later re-expansion reproduces it (:::=).
	FlavorExpand // expand
	// FlavorShell expands the value, runs it as a shell command, and stores
	// the captured output (!=).
	FlavorShell // shell
	// FlavorAppend merges the expanded value onto an existing binding (+=).
	FlavorAppend // append
	// FlavorAppendValue appends without expanding the new text, used for
	// multi-line definition bodies.
	FlavorAppendValue // append-value
)

// Export is the per-binding export policy consulted by the environment
// projector.
type Export int

const (
	// ExportDefault defers to the default rules: exportable name, origin
	// from the command line or environment, or export-all in effect.
	ExportDefault Export = iota // default
	// ExportAlways exports the binding unconditionally.
	ExportAlways // export
	// ExportNever suppresses export unconditionally.
	ExportNever // noexport
	// ExportIfSet exports unless the binding still has its default origin.
	ExportIfSet // ifset
)

// Scope identifies the kind of scope an assignment targets.
type Scope int

const (
	// ScopeGlobal defines into the process-global scope.
	ScopeGlobal Scope = iota // global
	// ScopeTarget defines into the current target-specific scope.
	ScopeTarget // target
	// ScopePattern defines into a pattern-match scope.
	ScopePattern // pattern
)
