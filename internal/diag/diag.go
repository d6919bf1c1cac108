// Package diag renders batched compiler diagnostics for output: a
// plain-text form with one finding per line, and a JSON form for tools
// that want structured output.
package diag

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-pastac/internal/errors"
)

// Text renders diagnostics one per line, in the order they were collected.
func Text(diags []*errors.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// JSON renders diagnostics as a JSON document of the shape
//
//	{"count": 2, "diagnostics": [{"kind": ..., "message": ..., "line": ..., "column": ...}, ...]}
//
// built incrementally, one field at a time.
func JSON(diags []*errors.Diagnostic) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "count", len(diags)); err != nil {
		return nil, err
	}
	if len(diags) == 0 {
		if out, err = sjson.SetRawBytes(out, "diagnostics", []byte(`[]`)); err != nil {
			return nil, err
		}
		return out, nil
	}
	for i, d := range diags {
		prefix := fmt.Sprintf("diagnostics.%d.", i)
		if out, err = sjson.SetBytes(out, prefix+"kind", d.Kind.String()); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, prefix+"message", d.Message); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, prefix+"line", d.Pos.Line); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, prefix+"column", d.Pos.Column); err != nil {
			return nil, err
		}
	}
	return out, nil
}
