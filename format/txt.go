package format

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/hunaft/hunaft/alphabet"
)

// ReadTXT parses one word per line, skipping '#'-prefixed comment
// lines and blank lines (TXT carries no diagnostics of its own — there
// is nothing to warn about beyond what Encode already reports).
func ReadTXT(text string, a *alphabet.Alphabet) ([][]byte, error) {
	var out [][]byte
	for i, line := range strings.Split(text, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := a.Encode(line, true)
		if err != nil {
			return nil, errors.Wrapf(err, "txt:%d", i+1)
		}
		out = append(out, word)
	}
	return out, nil
}

// WriteTXT renders words one per line, sorted lexicographically.
func WriteTXT(words [][]byte, a *alphabet.Alphabet) string {
	decoded := make([]string, len(words))
	for i, w := range words {
		decoded[i] = a.Decode(w)
	}
	sort.Strings(decoded)
	var b strings.Builder
	for _, w := range decoded {
		b.WriteString(w)
		b.WriteByte('\n')
	}
	return b.String()
}
