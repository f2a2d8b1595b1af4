// Package script handles everything between a recorded routine file on disk
// and the single command path the interpreter consumes: discovery under the
// scripts root, placeholder substitution, and translation into a
// slash-delimited invocation.
package script

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the suffix a recorded routine file must carry to be picked
// up by discovery.
const Extension = ".routine"

// Locate resolves each fragment against root and returns the matching
// routine files, deduplicated and sorted. A fragment naming a file is
// included directly; a fragment naming a directory is walked recursively.
// Fragments that do not exist are reported to warn and skipped. An empty
// fragment list means "everything under root".
func Locate(root string, fragments []string, warn io.Writer) ([]string, error) {
	if len(fragments) == 0 {
		fragments = []string{""}
	}

	seen := make(map[string]struct{})
	for _, fragment := range fragments {
		resolved := filepath.Join(root, fragment)

		info, err := os.Stat(resolved)
		if err != nil {
			fmt.Fprintf(warn, "warning: can't find %s\n", resolved)
			continue
		}

		if !info.IsDir() {
			if strings.HasSuffix(resolved, Extension) {
				seen[resolved] = struct{}{}
			}
			continue
		}

		walkErr := filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), Extension) {
				seen[path] = struct{}{}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("scan %s: %w", resolved, walkErr)
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// ShortName returns the operator-facing name for a script: its path
// relative to the scripts root, or the path unchanged when it does not
// live under the root.
func ShortName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
