package affix

import "bytes"

// Apply attempts to apply m to word, returning the resulting word and
// whether application is defined.
//
// A prefix rule removes RemoveLeft bytes from the left and prepends
// AppendLeft; a suffix rule removes RemoveRight bytes from the right and
// appends AppendRight. Application is refused — regardless of
// FULLSTRIP — unless word actually carries the bytes being removed
// (condition matching is the caller's job; Apply only performs the
// strip/append mechanics and the FULLSTRIP guard).
//
// fullStrip permits removing the entire word; without it, a rule that
// would strip every remaining byte is inapplicable (the spec's
// "FULLSTRIP absent" edge case).
func (m *AffixMatch) Apply(word []byte, fullStrip bool) ([]byte, bool) {
	if m.Kind == Prefix {
		return applyEdge(word, m.RemoveLeft, m.AppendLeft, true, fullStrip)
	}
	return applyEdge(word, m.RemoveRight, m.AppendRight, false, fullStrip)
}

func applyEdge(word, remove, add []byte, left bool, fullStrip bool) ([]byte, bool) {
	if len(remove) > len(word) {
		return nil, false
	}
	if !left {
		if !bytes.HasSuffix(word, remove) {
			return nil, false
		}
	} else if !bytes.HasPrefix(word, remove) {
		return nil, false
	}

	remaining := len(word) - len(remove)
	if remaining == 0 && !fullStrip {
		return nil, false
	}

	out := make([]byte, 0, remaining+len(add))
	if left {
		out = append(out, add...)
		out = append(out, word[len(remove):]...)
	} else {
		out = append(out, word[:len(word)-len(remove)]...)
		out = append(out, add...)
	}
	return out, true
}
