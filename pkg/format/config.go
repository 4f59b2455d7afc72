package format

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigFileName is the name of the project-level formatter configuration.
const ConfigFileName = "kitefmt.toml"

// Options controls layout decisions that are not fixed by the language.
type Options struct {
	// IndentSize is the number of spaces in one indent level.
	IndentSize int `toml:"indent_size"`

	// KeepBlankLines is the maximum number of consecutive blank lines kept
	// from the source.
	KeepBlankLines int `toml:"keep_blank_lines"`

	// AlignAssignments aligns `=` across consecutive declarations and
	// properties.
	AlignAssignments bool `toml:"align_assignments"`

	// AlignColons aligns `:` in multi-line object literals and argument
	// lists.
	AlignColons bool `toml:"align_colons"`

	// AlignSchemas aligns property names and defaults in schema bodies.
	AlignSchemas bool `toml:"align_schemas"`
}

// DefaultOptions returns the canonical style.
func DefaultOptions() Options {
	return Options{
		IndentSize:       4,
		KeepBlankLines:   1,
		AlignAssignments: true,
		AlignColons:      true,
		AlignSchemas:     true,
	}
}

// Validate rejects settings the renderer cannot honour.
func (o Options) Validate() error {
	if o.IndentSize < 1 || o.IndentSize > 16 {
		return errors.Errorf("indent_size must be between 1 and 16, got %d", o.IndentSize)
	}
	if o.KeepBlankLines < 0 {
		return errors.Errorf("keep_blank_lines must not be negative, got %d", o.KeepBlankLines)
	}
	return nil
}

// ProjectConfig is the on-disk shape of kitefmt.toml.
type ProjectConfig struct {
	Format Options `toml:"format"`
}

// LoadConfig reads a kitefmt.toml file. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Options, error) {
	config := ProjectConfig{Format: DefaultOptions()}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Options{}, errors.Wrapf(err, "parsing %s", path)
	}
	if err := config.Format.Validate(); err != nil {
		return Options{}, errors.Wrapf(err, "invalid %s", path)
	}
	return config.Format, nil
}

// FindConfig searches for kitefmt.toml starting from dir and walking up to
// parent directories, stopping at a .git boundary. It returns the path of
// the file that was found, or "" and the default options if none was.
func FindConfig(dir string) (string, Options, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", Options{}, err
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			opts, err := LoadConfig(path)
			if err != nil {
				return "", Options{}, err
			}
			return path, opts, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", DefaultOptions(), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", DefaultOptions(), nil
		}
		dir = parent
	}
}

// normalized fills in values a zero Options would leave unusable.
func (o Options) normalized() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultOptions().IndentSize
	}
	if o.KeepBlankLines < 0 {
		o.KeepBlankLines = 0
	}
	return o
}
