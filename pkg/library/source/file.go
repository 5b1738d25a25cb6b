package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileSource loads formula definitions from YAML files on disk.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// fileDocument is the on-disk YAML shape of a formula file.
type fileDocument struct {
	Constants map[string]float64 `yaml:"constants"`
	Formulas  []fileFormula      `yaml:"formulas"`
}

type fileFormula struct {
	Name        string `yaml:"name"`
	Expr        string `yaml:"expr"`
	Description string `yaml:"description"`
}

// NewFileSource creates a new file-based formula source.
// The path can be either a single file or a directory.
// If it's a directory, all .yaml and .yml files will be loaded.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Load loads all formula definitions from the configured path.
func (s *FileSource) Load(ctx context.Context) (*Document, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	doc := &Document{Constants: make(map[string]float64)}

	if info.IsDir() {
		if err := s.loadDirectory(ctx, doc); err != nil {
			return nil, err
		}
	} else {
		if err := s.loadFile(ctx, s.path, doc); err != nil {
			return nil, err
		}
	}

	s.logger.Info("loaded formulas from source",
		"path", s.path,
		"formula_count", len(doc.Definitions),
		"constant_count", len(doc.Constants),
	)

	return doc, nil
}

// loadDirectory loads all formula files from a directory into doc.
// Invalid files are skipped with a warning so one bad file cannot take
// down the whole library.
func (s *FileSource) loadDirectory(ctx context.Context, doc *Document) error {
	err := filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if err := s.loadFile(ctx, path, doc); err != nil {
			s.logger.Warn("failed to load formula file, skipping",
				"path", path,
				"error", err,
			)
			return nil
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to walk directory %q: %w", s.path, err)
	}

	return nil
}

// loadFile loads a single formula file into doc.
func (s *FileSource) loadFile(ctx context.Context, path string, doc *Document) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var fd fileDocument
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return fmt.Errorf("failed to parse formula file %q: %w", path, err)
	}

	for name, v := range fd.Constants {
		doc.Constants[name] = v
	}
	for _, f := range fd.Formulas {
		doc.Definitions = append(doc.Definitions, Definition{
			Name:        f.Name,
			Expr:        f.Expr,
			Description: f.Description,
		})
	}

	s.logger.Debug("loaded formula file",
		"path", path,
		"formula_count", len(fd.Formulas),
	)

	return nil
}

// String implements Source.
func (s *FileSource) String() string {
	return fmt.Sprintf("file(%s)", s.path)
}

// WatchPaths implements Watchable.
func (s *FileSource) WatchPaths() []string {
	return []string{s.path}
}
