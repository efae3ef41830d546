// Package config loads named CompileOption presets from TOML, the way a
// host project checks in a vuec.toml instead of constructing
// vuec.CompileOption literals in Go for every build target.
package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Preset is the serializable subset of vuec.CompileOption: everything that
// is a plain value rather than a callback. Callback fields (is_native_tag,
// get_namespace, ...) stay Go-only; a preset only ever holds dompreset's
// defaults, so loading one is wiring the rest into vuec.Default() and
// overriding these fields.
type Preset struct {
	DelimOpen  string `toml:"delim_open"`
	DelimClose string `toml:"delim_close"`

	Whitespace string `toml:"whitespace"` // "preserve" or "condense"

	IsDev            bool  `toml:"is_dev"`
	HoistStatic      bool  `toml:"hoist_static"`
	CacheHandlers    bool  `toml:"cache_handlers"`
	PrefixIdentifier bool  `toml:"prefix_identifier"`
	NeedReactivity   bool  `toml:"need_reactivity"`
	SourceMap        bool  `toml:"source_map"`
	PreserveComments *bool `toml:"preserve_comments"`

	ModeKind          string `toml:"mode"` // "function" or "module"
	RuntimeGlobalName string `toml:"runtime_global_name"`
	RuntimeModuleName string `toml:"runtime_module_name"`
}

// File is a vuec.toml document: one or more named presets under [presets.*].
type File struct {
	Presets map[string]Preset `toml:"presets"`
}

// Load parses a vuec.toml document's bytes.
func Load(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &f, nil
}

// Preset looks up a named preset, reporting whether it was defined.
func (f *File) Preset(name string) (Preset, bool) {
	p, ok := f.Presets[name]
	return p, ok
}
