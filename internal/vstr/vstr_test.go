package vstr_test

import (
	"testing"

	"github.com/vuec/compiler/internal/vstr"
	"gotest.tools/v3/assert"
)

func TestWriteBasic(t *testing.T) {
	cases := []struct {
		name string
		v    vstr.VStr
		want string
	}{
		{"empty ops", vstr.Of("test"), "test"},
		{"v-dir prefix", vstr.Of("test").PrefixVDir(), "v-test"},
		{"self suffix is a noop marker", vstr.Of("test").SuffixSelf(), "test"},
		{"js string", vstr.Of("test").BeJSStr(), `"test"`},
		{"camel + v-dir prefix", vstr.Of("test").Camelize().PrefixVDir(), "vTest"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.v.String(), c.want)
		})
	}
}

func TestSpecScenario3(t *testing.T) {
	// (V_DIR_PREFIX | CAMEL_CASE).write("foo-bar") == "vFooBar"
	got := vstr.Of("foo-bar").Camelize().PrefixVDir().String()
	assert.Equal(t, got, "vFooBar")

	// VALID_COMP.write("a^_^") == "_component_a94_94"
	got = vstr.Of("a^_^").BeComponent().String()
	assert.Equal(t, got, "_component_a94_94")
}

func TestWriteEdgeCases(t *testing.T) {
	cases := []struct {
		src  string
		v    func(vstr.VStr) vstr.VStr
		want string
	}{
		{"foo-bar", vstr.VStr.Camelize, "fooBar"},
		{"foo-bar", vstr.VStr.Capitalize, "Foo-bar"},
		{"", vstr.VStr.Capitalize, ""},
		{"ω", vstr.VStr.Capitalize, "Ω"},
		{"-a-b-c", vstr.VStr.Camelize, "ABC"},
		{"a-a-b-c", vstr.VStr.Camelize, "aABC"},
		{"a--b", vstr.VStr.Camelize, "a-B"},
		{"a--b", vstr.VStr.BeComponent, "_component_a__b"},
		{"a--b", vstr.VStr.BeDirective, "_directive_a__b"},
		{"a--", vstr.VStr.BeDirective, "_directive_a__"},
	}
	for _, c := range cases {
		got := c.v(vstr.Of(c.src)).String()
		assert.Equal(t, got, c.want, "input %q", c.src)
	}
}

func TestPascalizeComposesCamelAndCapital(t *testing.T) {
	got := vstr.Of("foo-bar").Pascalize().String()
	assert.Equal(t, got, "FooBar")
}

func TestIdempotence(t *testing.T) {
	// StrOp idempotence: any subset of IDEMPOTENT_OPS applied "twice" (i.e.
	// setting the bit once, since the bitset itself can't double-set) must
	// equal applying it once. We check this by confirming the result is
	// stable under re-staging the already-resolved output.
	v := vstr.Of("foo-bar  baz").Camelize().CompressWS()
	once := v.String()
	twice := vstr.Of(once).Camelize().CompressWS().String()
	assert.Equal(t, once, twice)
}

func TestOpOrderIsAscendingBitPosition(t *testing.T) {
	// HANDLER_KEY (bit 0) must run before CTX_PREFIX (bit 11): onClick,
	// then _ctx. prefixed onto the result, never the reverse.
	v := vstr.Of("click").BeHandler().PrefixCtx()
	assert.Equal(t, v.String(), "_ctx.onClick")
}

func TestDecodeEntities(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a &amp; b", "a & b"},
		{"&lt;tag&gt;", "<tag>"},
		{"&#65;&#x42;", "AB"},
		{"no entities here", "no entities here"},
		{"&unknown;end", "&unknown;end"},
	}
	for _, c := range cases {
		got := vstr.Of(c.in).Decode(false).String()
		assert.Equal(t, got, c.want, "input %q", c.in)
	}
}

func TestIsHandlerAndEventProp(t *testing.T) {
	assert.Assert(t, vstr.IsHandler(vstr.Of("click").BeHandler()))
	assert.Assert(t, vstr.IsHandler(vstr.Of("onClick")))
	assert.Assert(t, !vstr.IsHandler(vstr.Of("class")))
}

func TestHasAffixAndAsset(t *testing.T) {
	v := vstr.Of("x").BeComponent()
	assert.Assert(t, vstr.IsAsset(v))
	assert.Assert(t, vstr.HasAffix(v))
	plain := vstr.Of("x")
	assert.Assert(t, !vstr.IsAsset(plain))
	assert.Assert(t, !vstr.HasAffix(plain))
}
