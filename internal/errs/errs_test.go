package errs_test

import (
	"testing"

	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/loc"
	"gotest.tools/v3/assert"
)

func TestCollectingSinkSeparatesSeverities(t *testing.T) {
	sink := errs.NewCollectingSink()
	sink.Error(errs.New(errs.KindStructural, loc.Span{Start: 1, End: 2}, "unclosed tag %q", "div"))
	sink.Warning(errs.New(errs.KindDeprecation, loc.Span{Start: 3, End: 4}, "directive is deprecated"))
	sink.Info(errs.New(errs.KindSemantic, loc.Span{}, "info"))
	sink.Hint(errs.New(errs.KindSemantic, loc.Span{}, "hint"))

	assert.Assert(t, sink.HasErrors())
	assert.Equal(t, len(sink.Errors()), 1)
	assert.Equal(t, len(sink.Warnings()), 1)
	assert.Equal(t, len(sink.Infos()), 1)
	assert.Equal(t, len(sink.Hints()), 1)
	assert.Equal(t, len(sink.All()), 4)
	assert.Equal(t, sink.Errors()[0].Severity, errs.SeverityError)
	assert.Equal(t, sink.Warnings()[0].Severity, errs.SeverityWarning)
}

func TestNoopSinkDiscards(t *testing.T) {
	var sink errs.Sink = errs.NoopSink{}
	sink.Error(errs.New(errs.KindLexical, loc.Span{}, "boom"))
}

func TestCompilationErrorMessage(t *testing.T) {
	e := errs.New(errs.KindDirective, loc.Span{Start: 0, End: 1}, "unknown directive %q", "v-foo")
	assert.Equal(t, e.Error(), `directive: unknown directive "v-foo"`)
}

func TestPositioned(t *testing.T) {
	src := "line one\nline two\nline three"
	lines := loc.NewLineIndex(src)
	e := errs.New(errs.KindSemantic, loc.Span{Start: 9, End: 13}, "bad thing")
	assert.Equal(t, e.Positioned(lines), "2:1: semantic: bad thing")
}
