package twlint

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// ValidateOptions tunes the validator's policy.
type ValidateOptions struct {
	// NoBuiltins disables the framework's default keyframes, so references to
	// spin, ping, pulse and bounce must be defined in the config.
	NoBuiltins bool
	// BuiltinKeyframes replaces DefaultKeyframes when non-nil.
	BuiltinKeyframes []string
	// DanglingSeverity is the severity of dangling references (default warning).
	DanglingSeverity Severity
	// DuplicateSeverity is the severity of duplicate keys (default warning).
	DuplicateSeverity Severity
}

func (o ValidateOptions) builtins() []string {
	if o.NoBuiltins {
		return nil
	}
	if o.BuiltinKeyframes != nil {
		return o.BuiltinKeyframes
	}
	return DefaultKeyframes
}

func severityOr(s Severity, def Severity) Severity {
	if s == "" {
		return def
	}
	return s
}

// Validate checks a config and returns its findings, sorted by position.
// It reads nothing but cfg, so validating the same config twice gives the
// same result.
func Validate(cfg *Config, opts ValidateOptions) *ValidationResult {
	v := &checker{
		cfg:        cfg,
		opts:       opts,
		result:     &ValidationResult{},
		referenced: make(map[string]bool),
	}

	tree := cfg.Tree
	if tree.IsZero() {
		tree = Encode(cfg)
	}
	v.checkDuplicates(tree, "")
	v.checkContent()

	layers := []struct {
		path    string
		section Section
	}{
		{path: joinPath(keyTheme, keyExtend), section: cfg.Theme.Extend},
		{path: keyTheme, section: cfg.Theme.Override},
	}

	for _, l := range layers {
		for _, kf := range l.section.Keyframes {
			v.checkKeyframes(kf, joinPath(joinPath(l.path, keyKeyframes), kf.Name))
		}
	}
	for _, l := range layers {
		for _, a := range l.section.Animation {
			v.checkAnimation(a, joinPath(joinPath(l.path, keyAnimation), a.Name))
		}
		for _, b := range l.section.BackgroundImage {
			v.checkBackgroundImage(b, joinPath(joinPath(l.path, keyBackgroundImage), b.Name))
		}
	}

	if !cfg.Theme.Override.AnimationSet && !opts.NoBuiltins {
		for _, kf := range DefaultAnimations {
			v.referenced[kf] = true
		}
	}
	for _, l := range layers {
		for _, kf := range l.section.Keyframes {
			if !v.referenced[kf.Name] {
				v.add(Finding{
					Rule:     RuleUnusedKeyframes,
					Kind:     KindUnreachable,
					Severity: SeverityWarning,
					Path:     joinPath(joinPath(l.path, keyKeyframes), kf.Name),
					Pos:      kf.Pos,
					Message:  fmt.Sprintf("keyframes %q are not used by any animation", kf.Name),
				})
			}
		}
	}

	sortFindings(v.result.Findings)

	log.Debug().
		Int("findings", len(v.result.Findings)).
		Int("references", v.result.Refs.Total).
		Int("dangling", v.result.Refs.Dangling).
		Msg("validation finished")

	return v.result
}

type checker struct {
	cfg        *Config
	opts       ValidateOptions
	result     *ValidationResult
	referenced map[string]bool
}

func (v *checker) add(f Finding) {
	v.result.Findings = append(v.result.Findings, f)
}

// checkDuplicates reports every mapping key that repeats an earlier key in
// the same mapping. The source formats keep only the later entry, so that is
// where the finding points.
func (v *checker) checkDuplicates(val Value, path string) {
	switch val.Kind {
	case KindMapping:
		first := make(map[string]Entry, len(val.Entries))
		for _, e := range val.Entries {
			if prev, dup := first[e.Key]; dup {
				where := ""
				if prev.KeyPos.IsValid() {
					where = fmt.Sprintf(" (first defined at line %d)", prev.KeyPos.Line)
				}
				container := path
				if container == "" {
					container = "config root"
				}
				v.add(Finding{
					Rule:     RuleDuplicateKey,
					Kind:     KindDuplicateKey,
					Severity: severityOr(v.opts.DuplicateSeverity, SeverityWarning),
					Path:     joinPath(path, e.Key),
					Pos:      e.KeyPos,
					Message:  fmt.Sprintf("duplicate key %q in %s overwrites the earlier value%s", e.Key, container, where),
				})
			} else {
				first[e.Key] = e
			}
			v.checkDuplicates(e.Value, joinPath(path, e.Key))
		}
	case KindList:
		for i, item := range val.Items {
			v.checkDuplicates(item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

func (v *checker) checkContent() {
	if v.cfg.Content.Set && len(v.cfg.Content.Files) > 0 {
		return
	}
	v.add(Finding{
		Rule:     RuleContent,
		Kind:     KindUnreachable,
		Severity: SeverityWarning,
		Path:     keyContent,
		Pos:      v.cfg.Content.Pos,
		Message:  "no content patterns: the build tool will not find any class names and generates no utilities",
	})
}

func (v *checker) checkKeyframes(kf Keyframes, path string) {
	if len(kf.Stops) == 0 {
		v.add(Finding{
			Rule:     RuleEmptyKeyframes,
			Kind:     KindUnreachable,
			Severity: SeverityWarning,
			Path:     path,
			Pos:      kf.Pos,
			Message:  fmt.Sprintf("keyframes %q have no stops", kf.Name),
		})
		return
	}

	covered := make(map[float64]string)
	for _, stop := range kf.Stops {
		stopPath := joinPath(path, stop.Selector)

		offsets, err := ParseStopSelector(stop.Selector)
		if err != nil {
			v.add(Finding{
				Rule:     RuleInvalidStop,
				Kind:     KindInvalidStop,
				Severity: SeverityError,
				Path:     stopPath,
				Pos:      stop.Pos,
				Message:  fmt.Sprintf("invalid stop selector in keyframes %q: %v", kf.Name, err),
			})
		}
		for _, off := range offsets {
			prev, seen := covered[off]
			if !seen {
				covered[off] = stop.Selector
				continue
			}
			// Identical selectors are already reported as duplicate keys.
			if prev != stop.Selector {
				v.add(Finding{
					Rule:     RuleOverlappingStop,
					Kind:     KindInvalidStop,
					Severity: SeverityWarning,
					Path:     stopPath,
					Pos:      stop.Pos,
					Message:  fmt.Sprintf("stop %q in keyframes %q repeats offset %s already set by %q", stop.Selector, kf.Name, formatOffset(off), prev),
				})
			}
		}

		if len(stop.Declarations) == 0 {
			v.add(Finding{
				Rule:     RuleEmptyKeyframes,
				Kind:     KindUnreachable,
				Severity: SeverityWarning,
				Path:     stopPath,
				Pos:      stop.Pos,
				Message:  fmt.Sprintf("stop %q in keyframes %q has no declarations", stop.Selector, kf.Name),
			})
		}

		for _, d := range stop.Declarations {
			if d.Numeric {
				continue
			}
			if problem := CheckValueSyntax(d.Value); problem != "" {
				v.add(Finding{
					Rule:     RuleCSSSyntax,
					Kind:     KindInvalidValue,
					Severity: SeverityWarning,
					Path:     joinPath(stopPath, d.Property),
					Pos:      d.Pos,
					Message:  fmt.Sprintf("%s: %s in %q", CSSPropertyName(d.Property), problem, d.Value),
				})
			}
		}
	}
}

// keyframesDefined reports whether a name resolves in the config itself.
func (v *checker) keyframesDefined(name string) bool {
	if _, ok := v.cfg.Theme.Extend.KeyframesByName(name); ok {
		return true
	}
	_, ok := v.cfg.Theme.Override.KeyframesByName(name)
	return ok
}

// keyframesBuiltin reports whether a name resolves to the framework defaults.
// Overriding theme.keyframes drops the defaults.
func (v *checker) keyframesBuiltin(name string) bool {
	if v.cfg.Theme.Override.KeyframesSet {
		return false
	}
	for _, b := range v.opts.builtins() {
		if b == name {
			return true
		}
	}
	return false
}

func (v *checker) checkAnimation(a Animation, path string) {
	if problem := CheckValueSyntax(a.Value); problem != "" {
		v.add(Finding{
			Rule:     RuleCSSSyntax,
			Kind:     KindInvalidValue,
			Severity: SeverityWarning,
			Path:     path,
			Pos:      a.Pos,
			Message:  fmt.Sprintf("animation %q: %s in %q", a.Name, problem, a.Value),
		})
		if problem == "empty value" {
			return
		}
	}

	for _, ref := range ParseAnimationRefs(a.Value) {
		switch {
		case ref.None:
			continue
		case ref.Dynamic && ref.Keyframes == "":
			v.result.Refs.Unresolved++
			continue
		case ref.Keyframes == "":
			v.add(Finding{
				Rule:     RuleMissingKeyframeName,
				Kind:     KindDanglingReference,
				Severity: SeverityWarning,
				Path:     path,
				Pos:      a.Pos,
				Message:  fmt.Sprintf("animation %q does not name any keyframes in %q", a.Name, a.Value),
			})
			continue
		}

		v.result.Refs.Total++
		v.referenced[ref.Keyframes] = true

		switch {
		case v.keyframesDefined(ref.Keyframes):
			v.result.Refs.Resolved++
		case v.keyframesBuiltin(ref.Keyframes):
			v.result.Refs.Builtin++
		default:
			v.result.Refs.Dangling++
			v.add(Finding{
				Rule:     RuleDanglingReference,
				Kind:     KindDanglingReference,
				Severity: severityOr(v.opts.DanglingSeverity, SeverityWarning),
				Path:     path,
				Pos:      a.Pos,
				Message:  fmt.Sprintf("animation %q references undefined keyframes %q", a.Name, ref.Keyframes),
			})
		}
	}
}

func (v *checker) checkBackgroundImage(b BackgroundImage, path string) {
	if problem := CheckImageValue(b.Value); problem != "" {
		v.add(Finding{
			Rule:     RuleBackgroundImage,
			Kind:     KindInvalidValue,
			Severity: SeverityWarning,
			Path:     path,
			Pos:      b.Pos,
			Message:  fmt.Sprintf("background image %q: %s", b.Name, problem),
		})
	}
	if problem := CheckValueSyntax(b.Value); problem != "" && problem != "empty value" {
		v.add(Finding{
			Rule:     RuleCSSSyntax,
			Kind:     KindInvalidValue,
			Severity: SeverityWarning,
			Path:     path,
			Pos:      b.Pos,
			Message:  fmt.Sprintf("background image %q: %s in %q", b.Name, problem, b.Value),
		})
	}
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}
