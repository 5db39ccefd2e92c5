package parser

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTokenizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("joining tokens with commas round-trips", prop.ForAll(
		func(tokens []string) bool {
			got := Tokenize(strings.Join(tokens, ", "))
			if len(got) != len(tokens) {
				return false
			}
			for i, tok := range tokens {
				if got[i] != tok {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("a quoted token keeps its commas", prop.ForAll(
		func(left, right string) bool {
			quoted := left + "," + right
			got := Tokenize(`x, "` + quoted + `"`)
			return len(got) == 2 && got[0] == "x" && got[1] == quoted
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
