package source

import "context"

// MemorySource serves a fixed set of definitions from memory. It is the
// simplest Source: tests use it heavily, and hosts use it for formulas
// that ship compiled into the binary rather than as data files.
type MemorySource struct {
	doc Document
}

// NewMemorySource creates a source over the given document. The document is
// not copied; callers must not mutate it after handing it over.
func NewMemorySource(doc Document) *MemorySource {
	return &MemorySource{doc: doc}
}

// Load implements Source.
func (s *MemorySource) Load(ctx context.Context) (*Document, error) {
	out := Document{
		Constants:   make(map[string]float64, len(s.doc.Constants)),
		Definitions: make([]Definition, len(s.doc.Definitions)),
	}
	for name, v := range s.doc.Constants {
		out.Constants[name] = v
	}
	copy(out.Definitions, s.doc.Definitions)
	return &out, nil
}

// String implements Source.
func (s *MemorySource) String() string {
	return "memory"
}
