package evaluator

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestCanonicalLiteralRoundTrip snapshots the canonical textual form a
// handful of FEEL literals evaluate to, using go-snaps rather than
// hand-written want strings.
func TestCanonicalLiteralRoundTrip(t *testing.T) {
	exprs := []string{
		`1 + 2 * 3`,
		`2 ** 10`,
		`@"2017-03-10"`,
		`@"2017-03-10T10:00:00"`,
		`duration("P1Y2M")`,
		`duration("P1DT2H")`,
		`[1, 2, 3]`,
		`{a: 1, b: "x"}`,
		`[1..10]`,
		`not(true)`,
	}
	for _, src := range exprs {
		v := eval(t, src, nil)
		snaps.MatchSnapshot(t, fmt.Sprintf("%s => %s", src, v.String()))
	}
}
