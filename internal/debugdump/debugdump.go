// Package debugdump renders a compiled IR tree as JSON, for tooling that
// wants to inspect the compiler's intermediate output (an editor extension,
// a `--dump-ir` CLI flag) rather than only the final render-function text.
package debugdump

import (
	json "github.com/go-json-experiment/json"

	"github.com/vuec/compiler/internal/ir"
)

// IR marshals root to JSON. Node and JsExpr are interfaces backed by a
// closed set of structs, so the dump shows each node's field data without a
// discriminating type tag — readable for a human or a diffing test, not
// meant as a stable wire format to round-trip back into ir.Root.
func IR(root *ir.Root) ([]byte, error) {
	return json.Marshal(root)
}
