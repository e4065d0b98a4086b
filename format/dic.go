// Package format implements the three line-oriented external word-list
// formats this engine reads and writes: DIC (Hunspell's own dictionary
// format), TXT (one word per line), and CSV (comma- or pipe-separated
// words per line). Each reader returns the typed errors the alphabet
// and flag-set packages raise, wrapped with the offending line number
// via github.com/pkg/errors so a driver can report "dic:42: ..." style
// messages without every adapter hand-rolling that wrapping.
package format

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hunaft/hunaft/aff"
	"github.com/hunaft/hunaft/diag"
	"github.com/hunaft/hunaft/expand"
	"github.com/hunaft/hunaft/internal/bytescan"
)

// ReadDIC parses a DIC file's text into dictionary entries. The first
// line is a decimal entry count; a missing or inconsistent count is a
// warning, not a fatal error — Hunspell tolerates it and simply reads
// whatever lines follow.
func ReadDIC(text string, a *aff.Affix, sink *diag.Sink) ([]expand.Entry, error) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	start := 0
	if len(lines) > 0 {
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			start = 1
		} else {
			sink.Report(diag.Warningf("dic", 1, "missing or non-numeric entry count, reading all lines as entries"))
		}
	}

	var entries []expand.Entry
	declaredCount := 0
	if start == 1 {
		declaredCount, _ = strconv.Atoi(strings.TrimSpace(lines[0]))
	}

	for i := start; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		if line == "" {
			sink.Report(diag.Warningf("dic", lineNo, "empty line, skipping"))
			continue
		}

		field := line
		if sp := strings.IndexAny(line, " \t"); sp >= 0 {
			field = line[:sp] // morphology tokens discarded
		}

		stemText := field
		flagField := ""
		if slash := bytescan.IndexByte([]byte(field), '/'); slash >= 0 {
			stemText = field[:slash]
			flagField = field[slash+1:]
		}

		stem, err := a.Alphabet.Encode(stemText, true)
		if err != nil {
			return nil, errors.Wrapf(err, "dic:%d", lineNo)
		}
		flags, err := a.Flags.ParseField(flagField, sink, "dic", lineNo)
		if err != nil {
			return nil, errors.Wrapf(err, "dic:%d", lineNo)
		}
		entries = append(entries, expand.Entry{Stem: stem, Flags: flags})
	}

	if start == 1 && declaredCount != len(entries) {
		sink.Report(diag.Warningf("dic", 1, "declared count %d does not match %d entries read", declaredCount, len(entries)))
	}

	return entries, nil
}

// WriteDIC renders entries as DIC text: a count line followed by
// entries, each rendered as stem[/flags], sorted lexicographically by
// that rendered line.
func WriteDIC(entries []expand.Entry, a *aff.Affix) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		stem := a.Alphabet.Decode(e.Stem)
		if flagStr := a.Flags.Stringify(e.Flags); flagStr != "" {
			lines[i] = stem + "/" + flagStr
		} else {
			lines[i] = stem
		}
	}
	sort.Strings(lines)

	var b strings.Builder
	b.WriteString(strconv.Itoa(len(lines)))
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
