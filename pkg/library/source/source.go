package source

import "context"

// Definition is one named formula as authored, before compilation.
type Definition struct {
	Name        string
	Expr        string
	Description string
}

// Document is everything one source contributes to a library load: formula
// definitions plus shared constants the formulas may reference.
type Document struct {
	Constants   map[string]float64
	Definitions []Definition
}

// Source supplies formula definitions to a library. Implementations load
// from memory, YAML files, or a SQLite table; a library may combine several.
type Source interface {
	// Load reads the current definitions. It is called on every library
	// load and reload and must return a fresh snapshot.
	Load(ctx context.Context) (*Document, error)

	// String describes the source for logs ("file:formulas/combat.yaml").
	String() string
}

// Watchable is implemented by sources whose backing store can be observed
// for changes. The library's file watcher asks each source for the
// filesystem paths it should watch; non-file sources simply do not
// implement the interface.
type Watchable interface {
	// WatchPaths returns the filesystem paths to watch for changes.
	WatchPaths() []string
}
