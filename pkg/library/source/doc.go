// Package source defines where formula definitions come from.
//
// A Source produces a Document: a set of named constants plus a list of
// formula definitions (name, expression text, description). The library
// package compiles documents; sources only fetch them.
//
// Three implementations are provided:
//
//   - MemorySource: a fixed in-memory document, for tests and embedded
//     formula sets.
//   - FileSource: YAML files on disk, either a single file or a directory
//     of .yaml/.yml files. Implements Watchable so the library can reload
//     on change.
//   - SQLiteSource: rows in a SQLite table, for deployments backed by a
//     formula database.
//
// The YAML file format:
//
//	constants:
//	  base_crit: 0.05
//	formulas:
//	  - name: damage
//	    expr: "attack * power / max(1, defense)"
//	    description: Physical damage before mitigation.
package source
