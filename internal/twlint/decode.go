package twlint

import (
	"strconv"
	"strings"
)

// Known top-level and theme keys.
const (
	keyContent         = "content"
	keyTheme           = "theme"
	keyPlugins         = "plugins"
	keyExtend          = "extend"
	keyAnimation       = "animation"
	keyKeyframes       = "keyframes"
	keyBackgroundImage = "backgroundImage"
	keyFiles           = "files"
	keyRelative        = "relative"
)

// Decode interprets a raw tree as a framework config. Known keys with the
// wrong shape fail with a *MalformedConfigError; unknown keys are kept.
// When a key appears twice the later occurrence wins, as in the source formats.
func Decode(file string, tree Value) (*Config, error) {
	if tree.Kind != KindMapping {
		return nil, malformed(file, tree.Pos, "", "config root must be a mapping, got %s", tree.Kind)
	}

	d := decoder{file: file}
	cfg := &Config{Path: file, Tree: tree}

	for _, e := range tree.Entries {
		switch e.Key {
		case keyContent:
			content, err := d.content(e.Value)
			if err != nil {
				return nil, err
			}
			cfg.Content = content

		case keyTheme:
			theme, err := d.theme(e.Value)
			if err != nil {
				return nil, err
			}
			cfg.Theme = theme

		case keyPlugins:
			if e.Value.Kind != KindList {
				return nil, d.wrongKind(e.Value, keyPlugins, "a list")
			}
			cfg.Plugins = append([]Value{}, e.Value.Items...)
			cfg.PluginsSet = true

		default:
			cfg.Extra = append(cfg.Extra, e)
		}
	}

	return cfg, nil
}

type decoder struct {
	file string
}

func (d decoder) wrongKind(v Value, path, want string) *MalformedConfigError {
	return malformed(d.file, v.Pos, path, "must be %s, got %s", want, v.Kind)
}

func (d decoder) content(v Value) (Content, error) {
	content := Content{Set: true, Pos: v.Pos}

	switch v.Kind {
	case KindList:
		files, err := d.patterns(v, keyContent)
		if err != nil {
			return Content{}, err
		}
		content.Files = files
		content.Form = ContentList

	case KindMapping:
		content.Form = ContentFiles
		for _, e := range v.Entries {
			path := joinPath(keyContent, e.Key)
			switch e.Key {
			case keyFiles:
				if e.Value.Kind != KindList {
					return Content{}, d.wrongKind(e.Value, path, "a list")
				}
				files, err := d.patterns(e.Value, path)
				if err != nil {
					return Content{}, err
				}
				content.Files = files
			case keyRelative:
				if e.Value.Kind != KindBool {
					return Content{}, d.wrongKind(e.Value, path, "a bool")
				}
				content.Relative = e.Value.Text == "true"
			}
		}

	default:
		return Content{}, d.wrongKind(v, keyContent, "a list or a mapping")
	}

	return content, nil
}

func (d decoder) patterns(v Value, path string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(v.Items))
	for i, item := range v.Items {
		// Raw content entries ({ raw: '<div class="...">' }) carry no glob.
		if item.Kind == KindMapping {
			if _, ok := item.Get("raw"); ok {
				continue
			}
		}
		if item.Kind != KindString {
			return nil, d.wrongKind(item, path+"["+strconv.Itoa(i)+"]", "a glob string")
		}
		patterns = append(patterns, Pattern{Glob: item.Text, Pos: item.Pos})
	}
	return patterns, nil
}

func (d decoder) theme(v Value) (Theme, error) {
	if v.Kind != KindMapping {
		return Theme{}, d.wrongKind(v, keyTheme, "a mapping")
	}

	theme := Theme{Set: true}
	for _, e := range v.Entries {
		path := joinPath(keyTheme, e.Key)
		switch e.Key {
		case keyExtend:
			if e.Value.Kind != KindMapping {
				return Theme{}, d.wrongKind(e.Value, path, "a mapping")
			}
			extend := Section{}
			for _, se := range e.Value.Entries {
				if err := d.sectionEntry(&extend, se, path); err != nil {
					return Theme{}, err
				}
			}
			theme.Extend = extend
			theme.ExtendSet = true
		default:
			if err := d.sectionEntry(&theme.Override, e, keyTheme); err != nil {
				return Theme{}, err
			}
		}
	}
	return theme, nil
}

// sectionEntry decodes one animation, keyframes or backgroundImage entry of a
// theme layer. Other tokens (colors, spacing, ...) are left to the tree.
func (d decoder) sectionEntry(s *Section, e Entry, base string) error {
	path := joinPath(base, e.Key)

	switch e.Key {
	case keyAnimation:
		if e.Value.Kind != KindMapping {
			return d.wrongKind(e.Value, path, "a mapping of animation names to shorthands")
		}
		s.Animation = s.Animation[:0]
		for _, a := range e.Value.Entries {
			if a.Value.Kind != KindString {
				return d.wrongKind(a.Value, joinPath(path, a.Key), "a string")
			}
			s.Animation = append(s.Animation, Animation{Name: a.Key, Value: a.Value.Text, Pos: a.KeyPos})
		}
		s.AnimationSet = true

	case keyKeyframes:
		if e.Value.Kind != KindMapping {
			return d.wrongKind(e.Value, path, "a mapping of keyframes names to stops")
		}
		s.Keyframes = s.Keyframes[:0]
		for _, k := range e.Value.Entries {
			kf, err := d.keyframes(k, joinPath(path, k.Key))
			if err != nil {
				return err
			}
			s.Keyframes = append(s.Keyframes, kf)
		}
		s.KeyframesSet = true

	case keyBackgroundImage:
		if e.Value.Kind != KindMapping {
			return d.wrongKind(e.Value, path, "a mapping of utility names to images")
		}
		s.BackgroundImage = s.BackgroundImage[:0]
		for _, b := range e.Value.Entries {
			if b.Value.Kind != KindString {
				return d.wrongKind(b.Value, joinPath(path, b.Key), "a string")
			}
			s.BackgroundImage = append(s.BackgroundImage, BackgroundImage{Name: b.Key, Value: b.Value.Text, Pos: b.KeyPos})
		}
		s.BackgroundImageSet = true
	}

	return nil
}

func (d decoder) keyframes(e Entry, path string) (Keyframes, error) {
	if e.Value.Kind != KindMapping {
		return Keyframes{}, d.wrongKind(e.Value, path, "a mapping of stop selectors to declarations")
	}

	kf := Keyframes{Name: e.Key, Pos: e.KeyPos, Stops: make([]Stop, 0, len(e.Value.Entries))}
	for _, se := range e.Value.Entries {
		stopPath := joinPath(path, se.Key)
		if se.Value.Kind != KindMapping {
			return Keyframes{}, d.wrongKind(se.Value, stopPath, "a mapping of CSS properties to values")
		}

		stop := Stop{Selector: se.Key, Pos: se.KeyPos, Declarations: make([]Declaration, 0, len(se.Value.Entries))}
		for _, de := range se.Value.Entries {
			decl := Declaration{Property: de.Key, Value: de.Value.Text, Pos: de.KeyPos}
			switch de.Value.Kind {
			case KindString:
			case KindNumber:
				decl.Numeric = true
			default:
				return Keyframes{}, d.wrongKind(de.Value, joinPath(stopPath, de.Key), "a string or number")
			}
			stop.Declarations = append(stop.Declarations, decl)
		}
		kf.Stops = append(kf.Stops, stop)
	}
	return kf, nil
}

// joinPath appends a key to a dotted path. Keys that are not plain
// identifiers are bracket-quoted: theme.extend.keyframes.float["0%, 100%"].
func joinPath(base, key string) string {
	if !isPlainKey(key) {
		return base + "[" + strconv.Quote(key) + "]"
	}
	if base == "" {
		return key
	}
	return base + "." + key
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	return strings.IndexFunc(key, func(r rune) bool {
		return !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
}
