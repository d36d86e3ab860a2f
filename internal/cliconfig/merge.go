package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// String values are applied when non-empty; booleans when the source set
// them explicitly (see SetFields) or, for programmatic configs, when true.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	strs := []struct {
		key string
		src string
		dst *string
	}{
		{"backend", source.Backend, &target.Backend},
		{"dataDir", source.DataDir, &target.DataDir},
		{"resources", source.Resources, &target.Resources},
		{"filter", source.Filter, &target.Filter},
		{"view", source.View, &target.View},
		{"logLevel", source.LogLevel, &target.LogLevel},
		{"logFormat", source.LogFormat, &target.LogFormat},
		{"logFile", source.LogFile, &target.LogFile},
	}
	for _, s := range strs {
		if s.src != "" {
			*s.dst = s.src
			target.Sources[s.key] = sourceType
		}
	}

	if boolIsSet(source, "readOnly", source.ReadOnly) {
		target.ReadOnly = source.ReadOnly
		target.Sources["readOnly"] = sourceType
	}
	if boolIsSet(source, "audit", source.Audit) {
		target.Audit = source.Audit
		target.Sources["audit"] = sourceType
	}
	if boolIsSet(source, "syncOnApply", source.SyncOnApply) {
		target.SyncOnApply = source.SyncOnApply
		target.Sources["syncOnApply"] = sourceType
	}
}

// boolIsSet reports whether a boolean field was explicitly set in source.
// Without SetFields an explicit false cannot be told apart from the zero
// value, so only true counts.
func boolIsSet(source *CLIConfig, key string, value bool) bool {
	if source.SetFields != nil {
		return source.SetFields[key]
	}
	return value
}
