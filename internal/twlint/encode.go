package twlint

// Encode rebuilds a tree from a typed config. Keys twlint does not interpret
// are taken from cfg.Tree in their original order, so loading and encoding a
// file gives back an equal tree. Earlier duplicates of structural keys
// (two `theme` blocks) are dropped, since the source format discards them too.
func Encode(cfg *Config) Value {
	raw := cfg.Tree
	if raw.Kind != KindMapping {
		raw = Mapping(cfg.Extra...)
	}

	return layout(raw, []field{
		{key: keyContent, set: cfg.Content.Set, encode: func(r Value) Value { return encodeContent(cfg.Content, r) }},
		{key: keyTheme, set: cfg.Theme.Set, encode: func(r Value) Value { return encodeTheme(cfg.Theme, r) }},
		{key: keyPlugins, set: cfg.PluginsSet, encode: func(Value) Value { return List(cfg.Plugins...) }},
	})
}

// field is a known key of one mapping level.
type field struct {
	key    string
	set    bool
	encode func(raw Value) Value
}

// layout merges typed fields into a raw mapping: unknown entries pass
// through, the last occurrence of each known key is replaced by its encoding,
// and known keys missing from the raw mapping are appended.
func layout(raw Value, fields []field) Value {
	out := Mapping()
	out.Pos = raw.Pos

	byKey := make(map[string]field, len(fields))
	for _, f := range fields {
		byKey[f.key] = f
	}
	last := make(map[string]int)
	for i, e := range raw.Entries {
		last[e.Key] = i
	}

	done := make(map[string]bool)
	for i, e := range raw.Entries {
		f, known := byKey[e.Key]
		if !known {
			out.Entries = append(out.Entries, e)
			continue
		}
		if last[e.Key] != i || !f.set {
			continue
		}
		out.Entries = append(out.Entries, Entry{Key: e.Key, KeyPos: e.KeyPos, Value: f.encode(e.Value)})
		done[e.Key] = true
	}

	for _, f := range fields {
		if f.set && !done[f.key] {
			out.Entries = append(out.Entries, E(f.key, f.encode(Value{})))
		}
	}
	return out
}

func encodeContent(c Content, raw Value) Value {
	if c.Form == ContentFiles {
		if raw.Kind != KindMapping {
			raw = Mapping()
		}
		var rawFiles Value
		if v, ok := raw.Get(keyFiles); ok {
			rawFiles = v
		}
		_, hasRelative := raw.Get(keyRelative)
		out := layout(raw, []field{
			{key: keyFiles, set: true, encode: func(Value) Value { return encodePatterns(c.Files, rawFiles) }},
			{key: keyRelative, set: hasRelative || c.Relative, encode: func(Value) Value { return Bool(c.Relative) }},
		})
		out.Pos = c.Pos
		return out
	}

	out := encodePatterns(c.Files, raw)
	out.Pos = c.Pos
	return out
}

// encodePatterns replaces the glob strings of a raw content list with the
// typed patterns, keeping non-glob items ({raw: ...}) where they were.
func encodePatterns(files []Pattern, raw Value) Value {
	out := List()
	j := 0
	if raw.Kind == KindList {
		for _, item := range raw.Items {
			if item.Kind == KindString {
				if j < len(files) {
					out.Items = append(out.Items, patternValue(files[j]))
					j++
				}
				continue
			}
			out.Items = append(out.Items, item)
		}
	}
	for ; j < len(files); j++ {
		out.Items = append(out.Items, patternValue(files[j]))
	}
	return out
}

func patternValue(p Pattern) Value {
	v := String(p.Glob)
	v.Pos = p.Pos
	return v
}

func encodeTheme(t Theme, raw Value) Value {
	if raw.Kind != KindMapping {
		raw = Mapping()
	}
	var rawExtend Value
	if v, ok := raw.Get(keyExtend); ok {
		rawExtend = v
	}

	fields := sectionFields(t.Override)
	fields = append(fields, field{
		key:    keyExtend,
		set:    t.ExtendSet,
		encode: func(Value) Value { return encodeSection(t.Extend, rawExtend) },
	})
	return layout(raw, fields)
}

func encodeSection(s Section, raw Value) Value {
	if raw.Kind != KindMapping {
		raw = Mapping()
	}
	return layout(raw, sectionFields(s))
}

func sectionFields(s Section) []field {
	return []field{
		{key: keyAnimation, set: s.AnimationSet, encode: func(Value) Value { return encodeAnimations(s.Animation) }},
		{key: keyKeyframes, set: s.KeyframesSet, encode: func(Value) Value { return encodeKeyframes(s.Keyframes) }},
		{key: keyBackgroundImage, set: s.BackgroundImageSet, encode: func(Value) Value { return encodeBackgroundImages(s.BackgroundImage) }},
	}
}

func encodeAnimations(anims []Animation) Value {
	out := Mapping()
	for _, a := range anims {
		out.Entries = append(out.Entries, Entry{Key: a.Name, KeyPos: a.Pos, Value: String(a.Value)})
	}
	return out
}

func encodeKeyframes(kfs []Keyframes) Value {
	out := Mapping()
	for _, kf := range kfs {
		stops := Mapping()
		for _, stop := range kf.Stops {
			decls := Mapping()
			for _, d := range stop.Declarations {
				v := String(d.Value)
				if d.Numeric {
					v = Number(d.Value)
				}
				decls.Entries = append(decls.Entries, Entry{Key: d.Property, KeyPos: d.Pos, Value: v})
			}
			stops.Entries = append(stops.Entries, Entry{Key: stop.Selector, KeyPos: stop.Pos, Value: decls})
		}
		out.Entries = append(out.Entries, Entry{Key: kf.Name, KeyPos: kf.Pos, Value: stops})
	}
	return out
}

func encodeBackgroundImages(images []BackgroundImage) Value {
	out := Mapping()
	for _, b := range images {
		out.Entries = append(out.Entries, Entry{Key: b.Name, KeyPos: b.Pos, Value: String(b.Value)})
	}
	return out
}
