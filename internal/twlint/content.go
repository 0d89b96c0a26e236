package twlint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"
)

// ContentStats summarizes a content check.
type ContentStats struct {
	Patterns     int // patterns checked
	Unmatched    int // patterns matching no file
	FilesMatched int // distinct files matched by any pattern
	FilesIgnored int // matches dropped by .gitignore
}

// CheckContent expands the content patterns against the filesystem and
// reports patterns that match no file. Patterns resolve against workDir,
// or against the config file's directory when content.relative is set.
func CheckContent(cfg *Config, workDir string) ([]Finding, ContentStats) {
	var findings []Finding
	stats := ContentStats{}

	base := workDir
	if cfg.Content.Relative && cfg.Path != "" {
		base = filepath.Dir(cfg.Path)
	}
	gi := loadGitIgnore(base)

	seen := make(map[string]bool)
	for i, p := range cfg.Content.Files {
		path := fmt.Sprintf("%s[%d]", keyContent, i)
		if strings.HasPrefix(p.Glob, "!") {
			continue
		}
		stats.Patterns++

		pattern := p.Glob
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(base, pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			findings = append(findings, Finding{
				Rule:     RuleContent,
				Kind:     KindMalformedConfig,
				Severity: SeverityError,
				Path:     path,
				Pos:      p.Pos,
				Message:  fmt.Sprintf("invalid content pattern %q: %v", p.Glob, err),
			})
			continue
		}

		matched := 0
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if isIgnored(gi, base, match) {
				stats.FilesIgnored++
				continue
			}
			matched++
			if !seen[match] {
				seen[match] = true
				stats.FilesMatched++
			}
		}

		log.Debug().Str("pattern", p.Glob).Int("matches", matched).Msg("content pattern expanded")

		if matched == 0 {
			stats.Unmatched++
			findings = append(findings, Finding{
				Rule:     RuleContentUnmatched,
				Kind:     KindUnreachable,
				Severity: SeverityWarning,
				Path:     path,
				Pos:      p.Pos,
				Message:  fmt.Sprintf("content pattern %q matches no files", p.Glob),
			})
		}
	}

	return findings, stats
}

// loadGitIgnore loads base/.gitignore. A missing file means nothing is ignored.
func loadGitIgnore(base string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(base, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func isIgnored(gi *ignore.GitIgnore, base, path string) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}
