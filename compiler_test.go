package vuec_test

import (
	"strings"
	"testing"

	vuec "github.com/vuec/compiler"
	"github.com/vuec/compiler/internal/errs"
	"gotest.tools/v3/assert"
)

func TestCompileStaticElementProducesCreateElementVNodeCall(t *testing.T) {
	code, diags := vuec.Compile(`<div class="a">hi</div>`, vuec.SfcInfo{}, vuec.Default())

	assert.Equal(t, len(diags), 0)
	assert.Assert(t, strings.Contains(code, "_createElementVNode"))
	assert.Assert(t, strings.Contains(code, `"div"`))
	assert.Assert(t, strings.Contains(code, `"hi"`))
}

func TestCompileInterpolationEmitsToDisplayString(t *testing.T) {
	code, diags := vuec.Compile(`<div>{{ msg }}</div>`, vuec.SfcInfo{}, vuec.Default())

	assert.Equal(t, len(diags), 0)
	assert.Assert(t, strings.Contains(code, "_toDisplayString(_ctx.msg)"))
}

func TestCompileBareVBindMergesPropsObject(t *testing.T) {
	code, diags := vuec.Compile(`<div v-bind="obj" class="a">hi</div>`, vuec.SfcInfo{}, vuec.Default())

	assert.Equal(t, len(diags), 0)
	assert.Assert(t, strings.Contains(code, `_mergeProps({ "class": "a" }, _ctx.obj)`))
}

func TestCompileBareVOnMergesHandlersObject(t *testing.T) {
	code, diags := vuec.Compile(`<div v-on="handlers">hi</div>`, vuec.SfcInfo{}, vuec.Default())

	assert.Equal(t, len(diags), 0)
	assert.Assert(t, strings.Contains(code, `_mergeProps({}, _ctx.handlers)`))
}

func TestCompileVIfEmitsTernaryChain(t *testing.T) {
	code, _ := vuec.Compile(
		`<div v-if="ok">yes</div><span v-else>no</span>`,
		vuec.SfcInfo{},
		vuec.Default(),
	)

	assert.Assert(t, strings.Contains(code, "_ctx.ok"))
	assert.Assert(t, strings.Contains(code, "?"))
	assert.Assert(t, strings.Contains(code, ":"))
}

func TestCompileVForEmitsRenderList(t *testing.T) {
	code, _ := vuec.Compile(
		`<li v-for="item in items">{{ item }}</li>`,
		vuec.SfcInfo{},
		vuec.Default(),
	)

	assert.Assert(t, strings.Contains(code, "_renderList"))
	assert.Assert(t, strings.Contains(code, "_ctx.items"))
}

func TestCompileComponentTagResolvesAsIdentifier(t *testing.T) {
	code, _ := vuec.Compile(`<MyWidget :foo="bar"/>`, vuec.SfcInfo{}, vuec.Default())

	assert.Assert(t, strings.Contains(code, "_ctx.MyWidget") || strings.Contains(code, "MyWidget"))
	assert.Assert(t, strings.Contains(code, "foo"))
}

func TestCompileDumpIRReceivesJSONOfTransformedTree(t *testing.T) {
	opt := vuec.Default()
	var dump []byte
	opt.DumpIR = func(json []byte) { dump = json }

	vuec.Compile(`<div class="a">hi</div>`, vuec.SfcInfo{}, opt)

	assert.Assert(t, len(dump) > 0)
	assert.Assert(t, strings.Contains(string(dump), "div"))
}

func TestCompileFunctionModeOmitsImportStatement(t *testing.T) {
	code, _ := vuec.Compile(`<div/>`, vuec.SfcInfo{}, vuec.Default())

	assert.Assert(t, !strings.Contains(code, "import "))
	assert.Assert(t, strings.Contains(code, "return function render"))
}

func TestCompileModuleModeEmitsImportAndExport(t *testing.T) {
	opt := vuec.Default()
	opt.Mode = vuec.Mode{Kind: vuec.ModeModule, RuntimeModuleName: "vue"}

	code, _ := vuec.Compile(`<div/>`, vuec.SfcInfo{}, opt)

	assert.Assert(t, strings.HasPrefix(code, "import "))
	assert.Assert(t, strings.Contains(code, "export function render"))
}

func TestCompileCollectsErrorHandlerDiagnosticsAlongsideReturnValue(t *testing.T) {
	sink := errs.NewCollectingSink()
	opt := vuec.Default()
	opt.ErrorHandler = sink

	_, diags := vuec.Compile(`<div v-for="not valid">x</div>`, vuec.SfcInfo{}, opt)

	assert.Assert(t, len(diags) > 0)
	assert.Equal(t, len(sink.Errors()), len(diags))
}

func TestCompileSFCSplitsBlocksAndCompilesTemplateOnly(t *testing.T) {
	src := "<template><div>{{ msg }}</div></template>\n" +
		"<script>export default { data: () => ({ msg: 'hi' }) }</script>\n" +
		"<style scoped>.a { color: red; }</style>\n"

	result := vuec.CompileSFC(src, "widget.vue", vuec.Default())

	assert.Assert(t, strings.Contains(result.Code, "_toDisplayString(_ctx.msg)"))
	assert.Assert(t, result.Descriptor.Script != nil)
	assert.Equal(t, len(result.Descriptor.Styles), 1)
}

func TestCompileSFCWithoutTemplateReturnsEmptyCode(t *testing.T) {
	src := "<script>export default {}</script>\n"

	result := vuec.CompileSFC(src, "script-only.vue", vuec.Default())

	assert.Equal(t, result.Code, "")
	assert.Assert(t, result.Descriptor.Template == nil)
}
