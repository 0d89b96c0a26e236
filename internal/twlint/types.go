package twlint

// Config is a decoded framework configuration file.
type Config struct {
	Path    string  // Source file, "" for in-memory configs
	Tree    Value   // Raw tree the config was decoded from
	Content Content // Files the build tool scans for class names
	Theme   Theme
	Plugins []Value // Kept opaque; usually require(...) expressions
	Extra   []Entry // Top-level keys twlint does not interpret (darkMode, prefix, ...)

	PluginsSet bool
}

// ContentForm records how the content key was spelled so it can be re-emitted.
type ContentForm int

const (
	// ContentList is `content: ["./src/**/*.tsx"]`.
	ContentList ContentForm = iota
	// ContentFiles is `content: { files: [...], relative: true }`.
	ContentFiles
)

// Content is the content glob list.
type Content struct {
	Files    []Pattern
	Relative bool
	Form     ContentForm
	Set      bool
	Pos      Pos
}

// Pattern is a single content glob.
type Pattern struct {
	Glob string
	Pos  Pos
}

// Theme holds both merge layers of the theme key.
type Theme struct {
	Extend   Section // theme.extend.*: merged on top of the defaults
	Override Section // theme.*: replaces the defaults outright

	Set       bool
	ExtendSet bool
}

// Section is one layer of animation, keyframes and backgroundImage entries.
// Entries keep source order and duplicates.
type Section struct {
	Animation       []Animation
	Keyframes       []Keyframes
	BackgroundImage []BackgroundImage

	AnimationSet       bool
	KeyframesSet       bool
	BackgroundImageSet bool
}

// Animation maps a utility name to an animation shorthand.
type Animation struct {
	Name  string // "float"
	Value string // "float 6s ease-in-out infinite"
	Pos   Pos
}

// Keyframes is a named @keyframes body.
type Keyframes struct {
	Name  string
	Pos   Pos
	Stops []Stop
}

// Stop is one selector block inside a keyframes body.
type Stop struct {
	Selector     string // "0%, 100%", "from", "33%"
	Pos          Pos
	Declarations []Declaration
}

// Declaration is a property/value pair inside a stop.
type Declaration struct {
	Property string // as written: "backgroundPosition"
	Value    string
	Numeric  bool // written as a number literal (opacity: 0)
	Pos      Pos
}

// BackgroundImage maps a utility name to a CSS image value.
type BackgroundImage struct {
	Name  string // "gradient-radial"
	Value string // "radial-gradient(var(--tw-gradient-stops))"
	Pos   Pos
}

// KeyframesByName returns the last keyframes block with the given name.
func (s Section) KeyframesByName(name string) (Keyframes, bool) {
	for i := len(s.Keyframes) - 1; i >= 0; i-- {
		if s.Keyframes[i].Name == name {
			return s.Keyframes[i], true
		}
	}
	return Keyframes{}, false
}

// AnimationByName returns the last animation with the given name.
func (s Section) AnimationByName(name string) (Animation, bool) {
	for i := len(s.Animation) - 1; i >= 0; i-- {
		if s.Animation[i].Name == name {
			return s.Animation[i], true
		}
	}
	return Animation{}, false
}

// BackgroundImageByName returns the last background image with the given name.
func (s Section) BackgroundImageByName(name string) (BackgroundImage, bool) {
	for i := len(s.BackgroundImage) - 1; i >= 0; i-- {
		if s.BackgroundImage[i].Name == name {
			return s.BackgroundImage[i], true
		}
	}
	return BackgroundImage{}, false
}

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FindingKind is the error taxonomy of a finding.
type FindingKind string

const (
	KindMalformedConfig   FindingKind = "MalformedConfig"
	KindDanglingReference FindingKind = "DanglingReference"
	KindDuplicateKey      FindingKind = "DuplicateKey"
	KindInvalidStop       FindingKind = "InvalidStop"
	KindInvalidValue      FindingKind = "InvalidValue"
	KindUnreachable       FindingKind = "Unreachable"
)

// Rule names reported with each finding.
const (
	RuleMalformed           = "malformed-config"
	RuleDanglingReference   = "dangling-reference"
	RuleMissingKeyframeName = "missing-keyframe-name"
	RuleInvalidStop         = "invalid-stop"
	RuleDuplicateKey        = "duplicate-key"
	RuleOverlappingStop     = "overlapping-stop"
	RuleUnusedKeyframes     = "unused-keyframes"
	RuleEmptyKeyframes      = "empty-keyframes"
	RuleCSSSyntax           = "css-syntax"
	RuleBackgroundImage     = "background-image"
	RuleContent             = "content"
	RuleContentUnmatched    = "content-unmatched"
)

// Finding is one validation result.
type Finding struct {
	Rule     string
	Kind     FindingKind
	Severity Severity
	Path     string // "theme.extend.keyframes.float"
	Pos      Pos
	Message  string
}

// ValidationResult is the ordered list of findings for one config.
type ValidationResult struct {
	Findings []Finding
	Refs     ReferenceStats
}

// ReferenceStats counts how animation keyframe references resolved.
type ReferenceStats struct {
	Total      int // names extracted from animation shorthands
	Resolved   int // found in the config's own keyframes
	Builtin    int // found in the framework defaults
	Dangling   int
	Unresolved int // var(...) values that cannot be checked statically
}

// HasErrors reports whether any finding is an error.
func (r *ValidationResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByKind returns the findings of one kind.
func (r *ValidationResult) ByKind(kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
