package service

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/codeguard/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

// GitignoreFileName is read by init --from-gitignore
const GitignoreFileName = ".gitignore"

// ExcludeMatcher matches paths against the excludePaths of a project
// configuration using gitignore semantics
type ExcludeMatcher struct {
	patterns []string
	ignore   *ignore.GitIgnore
}

// NewExcludeMatcher compiles patterns
func NewExcludeMatcher(patterns []string) *ExcludeMatcher {
	return &ExcludeMatcher{
		patterns: append([]string(nil), patterns...),
		ignore:   ignore.CompileIgnoreLines(patterns...),
	}
}

// Patterns returns the compiled patterns
func (m *ExcludeMatcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// Match reports whether path is excluded and by which pattern
func (m *ExcludeMatcher) Match(path string) (bool, string) {
	path = filepath.ToSlash(filepath.Clean(path))
	matched, how := m.ignore.MatchesPathHow(path)
	if !matched || how == nil {
		return false, ""
	}
	return true, how.Line
}

// ReadGitignorePatterns returns the patterns of dir/.gitignore, skipping
// blank lines and comments. A missing file yields no patterns.
func ReadGitignorePatterns(dir string) ([]string, error) {
	path := filepath.Join(dir, GitignoreFileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewIOError(fmt.Sprintf("failed to read %s", path), err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewIOError(fmt.Sprintf("failed to read %s", path), err)
	}
	return patterns, nil
}

// MergePatterns appends extra to base, dropping duplicates and keeping order
func MergePatterns(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
