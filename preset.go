package vuec

import (
	"fmt"

	"github.com/vuec/compiler/internal/codegen"
	"github.com/vuec/compiler/internal/config"
	"github.com/vuec/compiler/internal/parser"
)

// LoadPreset parses a vuec.toml document and applies the named preset on
// top of Default(), overriding only the value fields config.Preset carries
// -- the callback fields (IsNativeTag, GetNamespace, ...) always come from
// the DOM preset Default() already wired in.
func LoadPreset(data []byte, name string) (CompileOption, error) {
	f, err := config.Load(data)
	if err != nil {
		return CompileOption{}, err
	}
	p, ok := f.Preset(name)
	if !ok {
		return CompileOption{}, fmt.Errorf("vuec: no preset named %q", name)
	}
	return applyPreset(Default(), p), nil
}

func applyPreset(base CompileOption, p config.Preset) CompileOption {
	if p.DelimOpen != "" {
		base.DelimOpen = p.DelimOpen
	}
	if p.DelimClose != "" {
		base.DelimClose = p.DelimClose
	}
	switch p.Whitespace {
	case "preserve":
		base.Whitespace = parser.Preserve
	case "condense":
		base.Whitespace = parser.Condense
	}

	base.IsDev = p.IsDev
	base.HoistStatic = p.HoistStatic
	base.CacheHandlers = p.CacheHandlers
	base.NeedReactivity = p.NeedReactivity
	base.SourceMap = p.SourceMap
	if p.PreserveComments != nil {
		base.PreserveComments = p.PreserveComments
	}

	base.Mode.PrefixIdentifier = p.PrefixIdentifier
	if p.RuntimeGlobalName != "" {
		base.Mode.RuntimeGlobalName = p.RuntimeGlobalName
	}
	if p.RuntimeModuleName != "" {
		base.Mode.RuntimeModuleName = p.RuntimeModuleName
	}
	switch p.ModeKind {
	case "module":
		base.Mode.Kind = codegen.ModeModule
	case "function":
		base.Mode.Kind = codegen.ModeFunction
	}

	return base
}
