package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"partref/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a partref project",
	Long: `Initialize a partref project by creating a manifest (partref.toml)
and an example declaration file (example.pref). If [path|name] is
omitted, initializes the current directory. A non-existing name creates
the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "partref-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	examplePath := filepath.Join(target, "example.pref")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(defaultExamplePref()), 0o600); err != nil {
			return fmt.Errorf("failed to write example.pref: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized partref project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdExample {
		fmt.Fprintf(os.Stdout, "  - example.pref\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - example.pref (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# partref project manifest
[package]
name = "%s"
version = "0.1.0"

[generate]
suffix = "%s"

# Map type qualifiers used in part declarations to import paths.
# Bare stdlib qualifiers (time, math) need no entry.
# [generate.imports]
# pb = "example.com/proto/pb"
`, name, project.DefaultSuffix)
}

func defaultExamplePref() string {
	return `// partref example: run 'partref generate example.pref' after
// declaring the Graph struct with matching lowercase fields.

package example

part Neighbors: [][]int
part Colors: []int
part Weights: []float64

record Graph {
	Neighbors from neighbors
	Colors    from colors
	Weights   from weights
}

// A view is a capability list: bare entries grant reads, mut entries
// grant writes.
view Update of Graph = mut Weights, Colors

// split proves Update can be carved out of the full handle and names
// the exact remainder usable alongside it.
split Update from GraphExcl
`
}
