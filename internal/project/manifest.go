package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// ManifestName — имя файла манифеста проекта.
const ManifestName = "partref.toml"

// DefaultSuffix is appended to the source stem when [generate].suffix is absent.
const DefaultSuffix = "_partref"

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is the parsed partref.toml plus its location on disk.
type Manifest struct {
	Package  PackageConfig  `toml:"package"`
	Generate GenerateConfig `toml:"generate"`

	Path string `toml:"-"` // абсолютный путь к partref.toml
	Dir  string `toml:"-"` // каталог манифеста
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// GenerateConfig is the [generate] section. Imports maps a type qualifier
// used in part declarations (e.g. "time" in `part Stamp: time.Time`) to the
// import path emitted into generated files.
type GenerateConfig struct {
	Suffix    string            `toml:"suffix"`
	OutputDir string            `toml:"output_dir"`
	Imports   map[string]string `toml:"imports"`
}

// Default returns the manifest used when no partref.toml is found.
func Default() *Manifest {
	return &Manifest{Generate: GenerateConfig{Suffix: DefaultSuffix}}
}

// Load parses and validates the partref.toml at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if meta.IsDefined("generate", "suffix") {
		if !isValidSuffix(m.Generate.Suffix) {
			return nil, fmt.Errorf("%s: invalid [generate].suffix %q", path, m.Generate.Suffix)
		}
	} else {
		m.Generate.Suffix = DefaultSuffix
	}
	if meta.IsDefined("generate", "output_dir") {
		dir := strings.TrimSpace(m.Generate.OutputDir)
		if dir == "" {
			return nil, fmt.Errorf("%s: empty [generate].output_dir", path)
		}
		m.Generate.OutputDir = dir
	}
	for qual, imp := range m.Generate.Imports {
		if !isValidQualifier(qual) {
			return nil, fmt.Errorf("%s: invalid qualifier %q in [generate.imports]", path, qual)
		}
		if strings.TrimSpace(imp) == "" {
			return nil, fmt.Errorf("%s: empty import path for qualifier %q", path, qual)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve manifest path: %w", path, err)
	}
	m.Path = abs
	m.Dir = filepath.Dir(abs)
	return &m, nil
}

// isValidSuffix reports whether s can be spliced into an output filename.
// Допустимы только ASCII буквы, цифры и '_'.
func isValidSuffix(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isValidQualifier reports whether s is usable as a Go import qualifier.
func isValidQualifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
