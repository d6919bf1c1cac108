package optimizer_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-pastac/internal/ir"
	"github.com/cwbudde/go-pastac/internal/optimizer"
	"github.com/cwbudde/go-pastac/internal/parser"
)

// Snapshot tests over the full pipeline: each fixture program's listing is
// captured before and after optimization, so any change to temp/label
// numbering, lowering order or a pass rewrite shows up as a snapshot diff.
func TestPipelineListings(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "constant_arithmetic",
			src: `program p; var x: integer;
begin x := 5 + 3; write(x); end.`,
		},
		{
			name: "common_subexpression",
			src: `program p; var a,b,c,d: integer;
begin c := a + b; d := a + b; end.`,
		},
		{
			name: "counting_loop",
			src: `program p; var i: integer;
begin i := 0; while (i < 10) do i := i + 1; end.`,
		},
		{
			name: "branching",
			src: `program p; var x: integer;
begin
  read(x);
  if (x > 0) then write("positive") else write("other");
end.`,
		},
		{
			name: "function_call",
			src: `program p;
var r: integer;
function square(n: integer): integer;
begin square := n * n; end;
begin r := square(7); write(r); end.`,
		},
		{
			name: "mixed_types",
			src: `program p;
const scale := 2.5;
var total: real; var count: integer;
begin
  count := 4;
  total := scale * count;
  write(total);
end.`,
		},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			prog, err := parser.New(fx.src).Parse()
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			before := ir.Generate(prog)
			after := optimizer.Optimize(before)

			snaps.MatchSnapshot(t, fmt.Sprintf("%s_before", fx.name), ir.Listing(before))
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_after", fx.name), ir.Listing(after))
		})
	}
}
