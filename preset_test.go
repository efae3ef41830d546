package vuec_test

import (
	"strings"
	"testing"

	vuec "github.com/vuec/compiler"
	"gotest.tools/v3/assert"
)

const prodPresetTOML = `
[presets.prod]
is_dev = false
hoist_static = true
cache_handlers = true
prefix_identifier = true
mode = "module"
runtime_module_name = "vue"
`

func TestLoadPresetAppliesOverridesOntoDefault(t *testing.T) {
	opt, err := vuec.LoadPreset([]byte(prodPresetTOML), "prod")
	assert.NilError(t, err)

	assert.Assert(t, !opt.IsDev)
	assert.Assert(t, opt.HoistStatic)
	assert.Equal(t, opt.Mode.Kind, vuec.ModeModule)
	// Callback fields still come from Default()'s dompreset wiring.
	assert.Assert(t, opt.IsNativeTag != nil)
	assert.Assert(t, opt.IsNativeTag("div"))
}

func TestLoadPresetUnknownNameErrors(t *testing.T) {
	_, err := vuec.LoadPreset([]byte(prodPresetTOML), "staging")
	assert.Assert(t, err != nil)
}

func TestLoadPresetCompilesUsingOverriddenMode(t *testing.T) {
	opt, err := vuec.LoadPreset([]byte(prodPresetTOML), "prod")
	assert.NilError(t, err)

	code, _ := vuec.Compile(`<div/>`, vuec.SfcInfo{}, opt)
	assert.Assert(t, strings.HasPrefix(code, "import "))
}
