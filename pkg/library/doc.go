// Package library manages named sets of compiled formulas.
//
// A Library loads formula definitions from one or more sources (YAML
// files, a SQLite database, in-memory documents), compiles every
// definition once against a shared prototype context, and serves the
// compiled formulas to hosts by name. Loads are atomic and tagged with a
// revision identifier, so concurrent evaluations always run against a
// consistent formula set and logs can say which set produced a value.
//
// Hot reload is available two ways:
//
//   - Watcher reloads when formula files change on disk (fsnotify with
//     debouncing).
//   - Refresher reloads on a cron schedule, for sources without change
//     notification such as a shared database.
//
// Typical use:
//
//	lib := library.New([]source.Source{source.NewFileSource("formulas/", nil)}, nil, logger)
//	if _, err := lib.Load(ctx); err != nil {
//		return err
//	}
//	c := lib.NewContext()
//	c.Define("attack", 42)
//	dmg, _ := lib.Execute("damage", c)
package library
