package format

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/hunaft/hunaft/alphabet"
	"github.com/hunaft/hunaft/internal/bytescan"
)

// ReadCSV splits every line on ',' or '|' and treats each trimmed
// token as an independent word.
func ReadCSV(text string, a *alphabet.Alphabet) ([][]byte, error) {
	var out [][]byte
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		for _, tok := range splitCommaOrPipe(line) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			word, err := a.Encode(tok, true)
			if err != nil {
				return nil, errors.Wrapf(err, "csv:%d", i+1)
			}
			out = append(out, word)
		}
	}
	return out, nil
}

// WriteCSV renders words as one comma-separated line, sorted
// lexicographically.
func WriteCSV(words [][]byte, a *alphabet.Alphabet) string {
	decoded := make([]string, len(words))
	for i, w := range words {
		decoded[i] = a.Decode(w)
	}
	sort.Strings(decoded)
	return strings.Join(decoded, ",") + "\n"
}

func splitCommaOrPipe(line string) []string {
	var out []string
	rest := line
	for {
		b := []byte(rest)
		idx := bytescan.IndexAny2(b, ',', '|')
		if idx < 0 {
			out = append(out, rest)
			return out
		}
		out = append(out, rest[:idx])
		rest = rest[idx+1:]
	}
}
