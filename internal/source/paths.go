package source

import (
	"path/filepath"
	"strings"
)

// AbsolutePath resolves p to an absolute, cleaned, slash-separated path.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath renders target relative to baseDir. Targets outside baseDir
// fall back to the absolute form so diagnostics never print "../../.." chains.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return filepath.ToSlash(absTarget), nil
	}
	if strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absTarget), nil
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the final path element.
func BaseName(p string) string {
	return filepath.Base(filepath.FromSlash(p))
}
