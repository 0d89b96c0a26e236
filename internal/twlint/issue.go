package twlint

// Issue represents a single finding in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // rule name: "dangling-reference"
	Text        string     `json:"Text"`        // "animation \"ghost\" references undefined keyframes \"ghost\""
	Severity    Severity   `json:"Severity"`    // "warning", "error"
	Kind        string     `json:"Kind"`        // "DanglingReference"
	Path        string     `json:"Path"`        // "theme.extend.animation.ghost"
	SourceLines []string   `json:"SourceLines"` // Lines of the config with the issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Optional range
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "tailwind.config.js"
	Line     int    `json:"Line"`     // 7
	Column   int    `json:"Column"`   // 7 (1-based, start of the offending key)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// newIssue converts a finding, attaching the source line it points at.
func newIssue(f Finding, filename string, lines []string) Issue {
	issue := Issue{
		FromLinter: f.Rule,
		Text:       f.Message,
		Severity:   f.Severity,
		Kind:       string(f.Kind),
		Path:       f.Path,
		Pos: IssuePos{
			Filename: filename,
			Line:     f.Pos.Line,
			Column:   f.Pos.Column,
		},
	}
	if f.Pos.Line > 0 && f.Pos.Line <= len(lines) {
		issue.SourceLines = []string{lines[f.Pos.Line-1]}
	}
	return issue
}
