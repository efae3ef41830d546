package config_test

import (
	"testing"

	"github.com/vuec/compiler/internal/config"
	"gotest.tools/v3/assert"
)

const sampleTOML = `
[presets.prod]
delim_open = "{{"
delim_close = "}}"
whitespace = "condense"
is_dev = false
hoist_static = true
cache_handlers = true
prefix_identifier = true
mode = "module"
runtime_module_name = "vue"

[presets.dev]
is_dev = true
hoist_static = false
cache_handlers = false
mode = "function"
runtime_global_name = "Vue"
`

func TestLoadParsesMultiplePresets(t *testing.T) {
	f, err := config.Load([]byte(sampleTOML))
	assert.NilError(t, err)

	prod, ok := f.Preset("prod")
	assert.Assert(t, ok)
	assert.Assert(t, !prod.IsDev)
	assert.Assert(t, prod.HoistStatic)
	assert.Equal(t, prod.ModeKind, "module")

	dev, ok := f.Preset("dev")
	assert.Assert(t, ok)
	assert.Assert(t, dev.IsDev)
	assert.Assert(t, !dev.HoistStatic)
}

func TestPresetMissingNameReportsNotFound(t *testing.T) {
	f, err := config.Load([]byte(sampleTOML))
	assert.NilError(t, err)

	_, ok := f.Preset("nonexistent")
	assert.Assert(t, !ok)
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	_, err := config.Load([]byte("this is not [ valid"))
	assert.Assert(t, err != nil)
}
