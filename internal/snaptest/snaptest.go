// Package snaptest carries the input/output snapshot helpers tests across
// this module use to pin down compiled output, ported from the teacher's
// internal/test_utils for a single output kind (compiled JS) instead of the
// teacher's five.
package snaptest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
)

// Dedent strips a test fixture's leading indentation and collapses runs of
// blank lines down to at most one, so a template written indented to match
// surrounding Go code reads as if it started at column zero.
func Dedent(input string) string {
	s := strings.TrimLeft(strings.TrimRight(input, " \n\r"), " \t\r\n")
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return dedent.Dedent(s)
}

// ANSIDiff renders cmp.Diff's output with additions/removals colored for a
// terminal, for use in a test failure message.
func ANSIDiff(x, y interface{}, opts ...cmp.Option) string {
	diff := cmp.Diff(x, y, opts...)
	if diff == "" {
		return ""
	}
	lines := strings.Split(diff, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "-"):
			lines[i] = "\x1b[31m" + l + "\x1b[0m"
		case strings.HasPrefix(l, "+"):
			lines[i] = "\x1b[32m" + l + "\x1b[0m"
		}
	}
	return strings.Join(lines, "\n")
}

// redactName strips characters that would confuse a snapshot filename.
func redactName(name string) string {
	r := strings.NewReplacer(
		"#", "_", "<", "_", ">", "_", ")", "_", "(", "_", ":", "_",
		" ", "_", "'", "_", `"`, "_", "@", "_", "`", "_", "+", "_",
	)
	return r.Replace(name)
}

// Options configures one call to MatchCompiled.
type Options struct {
	T          *testing.T
	Name       string
	Template   string
	Compiled   string
	FolderName string // defaults to "__snapshots__"
}

// MatchCompiled records (or compares against) a snapshot pairing a template
// source with its compiled render-function output.
func MatchCompiled(opt Options) {
	folder := opt.FolderName
	if folder == "" {
		folder = "__snapshots__"
	}

	s := snaps.WithConfig(
		snaps.Filename(redactName(opt.Name)),
		snaps.Dir(folder),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "## Template\n\n```\n%s\n```\n\n## Compiled\n\n```js\n%s\n```",
		Dedent(opt.Template), Dedent(opt.Compiled))

	s.MatchSnapshot(opt.T, b.String())
}
