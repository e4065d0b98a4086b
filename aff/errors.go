package aff

import "fmt"

// MalformedError reports an AFF construct that Hunspell itself cannot
// tolerate: a condition with an unbalanced bracket, or a malformed flag
// in a rule's "/flags2" continuation field. Unlike the warn-and-continue
// paths in load.go (header/data flag mismatches and conditions that
// cannot be reconciled with the strip field only warn), this aborts the
// load.
type MalformedError struct {
	Line    int
	Message string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("aff:%d: %s", e.Line, e.Message)
}
