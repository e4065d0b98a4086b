package aff

import (
	"strconv"
	"strings"

	"github.com/hunaft/hunaft/affix"
	"github.com/hunaft/hunaft/alphabet"
	"github.com/hunaft/hunaft/condition"
	"github.com/hunaft/hunaft/diag"
	"github.com/hunaft/hunaft/flagset"
	"github.com/hunaft/hunaft/internal/breakscan"
)

// block tracks an open PFX/SFX header while its data lines are consumed.
type block struct {
	kind      affix.Kind
	flag      string
	remaining int
	cross     bool
}

func isIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func parseMode(token string) (flagset.Mode, bool) {
	switch strings.ToLower(token) {
	case "long":
		return flagset.Long, true
	case "num":
		return flagset.Num, true
	case "utf-8", "utf8":
		return flagset.UTF8, true
	default:
		return flagset.UTF8, false
	}
}

// discoverMode scans lines once for the first non-indented FLAG
// directive. Absence means UTF8, the Hunspell default.
func discoverMode(lines []string) flagset.Mode {
	for _, line := range lines {
		if isIndented(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "FLAG" {
			if mode, ok := parseMode(fields[1]); ok {
				return mode
			}
		}
	}
	return flagset.UTF8
}

// registerFlags is pass one: walk the file once, tracking open
// PFX/SFX blocks exactly as pass two will, registering every flag
// mentioned — header flags, NEEDAFFIX, and continuation flags on a
// data line's append field — against registry.
func registerFlags(lines []string, registry *flagset.Registry) {
	var b block
	for _, line := range lines {
		if isComment(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		indented := isIndented(line)

		if !indented && fields[0] == "NEEDAFFIX" && len(fields) >= 2 {
			registry.Register(fields[1])
			continue
		}

		switch fields[0] {
		case "PFX", "SFX":
			if b.remaining == 0 {
				if len(fields) >= 4 {
					registry.Register(fields[1])
					if n, err := strconv.Atoi(fields[3]); err == nil && n >= 0 {
						b = block{kind: kindOf(fields[0]), flag: fields[1], remaining: n}
					}
				}
				continue
			}
			b.remaining--
			if len(fields) >= 5 {
				appendField, flags2 := splitContinuation(fields[3])
				_ = appendField
				if flags2 != "" {
					registry.RegisterField(flags2, nil, "aff", 0)
				}
			}
		}
	}
}

func kindOf(token string) affix.Kind {
	if token == "PFX" {
		return affix.Prefix
	}
	return affix.Suffix
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// splitContinuation splits an append field's trailing "/flags2" clause
// off, returning the bare append text and the flags2 token (empty if
// none).
func splitContinuation(field string) (string, string) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		return field[:i], field[i+1:]
	}
	return field, ""
}

// Load parses an AFF file's text into an Affix. sink collects advisory
// diagnostics (malformed-but-tolerated constructs); it may be nil.
func Load(text string, sink *diag.Sink) (*Affix, error) {
	return LoadWithAlphabet(text, sink, alphabet.New())
}

// LoadWithAlphabet parses text exactly like Load, but grows seed
// instead of a fresh Alphabet. The driver's documented unknown-character
// recovery uses this: on the first UnknownCharacterError it seeds an
// Alphabet from every input file's runes and retries the whole
// conversion once against that pre-populated Alphabet.
func LoadWithAlphabet(text string, sink *diag.Sink, seed *alphabet.Alphabet) (*Affix, error) {
	lines := strings.Split(text, "\n")

	mode := discoverMode(lines)
	registry := flagset.NewRegistry(mode)
	registerFlags(lines, registry)

	a := seed
	result := &Affix{
		Alphabet:  a,
		Flags:     registry,
		NeedAffix: -1,
	}
	result.PrefixFromStem = affix.NewRuleset(a.Size)
	result.PrefixToStem = affix.NewRuleset(a.Size)
	result.SuffixFromStem = affix.NewRuleset(a.Size)
	result.SuffixToStem = affix.NewRuleset(a.Size)

	var b block
	for i, line := range lines {
		lineNo := i + 1
		if isComment(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		indented := isIndented(line)

		switch fields[0] {
		case "FLAG":
			if indented {
				sink.Report(diag.Warningf("aff", lineNo, "indented FLAG directive ignored"))
			}
			// mode already fixed by discoverMode; nothing further to do.
			continue
		case "NEEDAFFIX":
			if indented {
				sink.Report(diag.Warningf("aff", lineNo, "indented NEEDAFFIX directive ignored"))
				continue
			}
			if len(fields) < 2 {
				continue
			}
			if p, ok := registry.BitPosition(fields[1]); ok {
				result.NeedAffix = p
			}
			continue
		case "FULLSTRIP":
			if indented {
				sink.Report(diag.Warningf("aff", lineNo, "indented FULLSTRIP directive ignored"))
				continue
			}
			result.FullStrip = true
			continue
		case "TRY", "WORDCHARS":
			if len(fields) >= 2 {
				a.ObserveString(fields[1])
			}
			continue
		case "BREAK":
			if len(fields) >= 2 {
				a.ObserveString(fields[1])
				result.Break = append(result.Break, fields[1])
			}
			continue
		case "SET":
			continue
		case "PFX", "SFX":
			// handled below
		default:
			continue
		}

		if err := processAffixLine(fields, lineNo, &b, result, registry, sink); err != nil {
			return nil, err
		}
	}

	scanner, err := breakscan.New(result.Break)
	if err != nil {
		sink.Report(diag.Warningf("aff", 0, "could not build BREAK scanner: %v", err))
	} else {
		result.BreakScanner = scanner
	}

	return result, nil
}

func processAffixLine(fields []string, lineNo int, b *block, result *Affix, registry *flagset.Registry, sink *diag.Sink) error {
	kind := kindOf(fields[0])

	if b.remaining == 0 {
		return openHeader(fields, lineNo, b, kind, sink)
	}

	if fields[1] != b.flag {
		sink.Report(diag.Warningf("aff", lineNo, "data line flag %q does not match open header flag %q, skipping", fields[1], b.flag))
		b.remaining--
		return nil
	}
	b.remaining--

	return compileDataLine(fields, lineNo, b, result, registry, sink)
}

func openHeader(fields []string, lineNo int, b *block, kind affix.Kind, sink *diag.Sink) error {
	if len(fields) < 4 {
		sink.Report(diag.Warningf("aff", lineNo, "malformed %s header, ignoring", fields[0]))
		return nil
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n < 0 {
		sink.Report(diag.Warningf("aff", lineNo, "malformed %s header count %q, ignoring", fields[0], fields[3]))
		return nil
	}
	*b = block{kind: kind, flag: fields[1], remaining: n}
	// cross-product char validated lazily per data line via the block's
	// recorded flag; Hunspell's Y/N column lives on the header, so stash
	// it by re-parsing fields[2] once here.
	b.cross = parseCross(fields[2], lineNo, fields[0], fields[1], sink)
	return nil
}

func parseCross(token string, lineNo int, directive, flag string, sink *diag.Sink) bool {
	switch token {
	case "Y":
		return true
	case "N":
		return false
	default:
		sink.Report(diag.Warningf("aff", lineNo, "%s %s: unrecognized cross-product character %q, defaulting to N", directive, flag, token))
		return false
	}
}

func compileDataLine(fields []string, lineNo int, b *block, result *Affix, registry *flagset.Registry, sink *diag.Sink) error {
	if len(fields) < 5 {
		sink.Report(diag.Warningf("aff", lineNo, "malformed %s data line, skipping", fields[0]))
		return nil
	}

	stripTok := fields[2]
	appendTok, flags2Tok := splitContinuation(fields[3])
	condTok := fields[4]
	if stripTok == "0" {
		stripTok = ""
	}
	if appendTok == "0" {
		appendTok = ""
	}

	fixedCond, inert := repairCondition(condTok, stripTok, b.kind)
	if inert {
		sink.Report(diag.Warningf("aff", lineNo, "condition %q cannot be reconciled with strip %q, rule marked inert", condTok, stripTok))
		return nil
	}

	cond, err := condition.Compile(fixedCond, result.Alphabet)
	if err != nil {
		return &MalformedError{Line: lineNo, Message: err.Error()}
	}

	stripEnc, _ := result.Alphabet.Encode(stripTok, false)
	appendEnc, _ := result.Alphabet.Encode(appendTok, false)

	var flag2 []int
	if flags2Tok != "" {
		set, err := registry.ParseField(flags2Tok, sink, "aff", lineNo)
		if err != nil {
			return &MalformedError{Line: lineNo, Message: err.Error()}
		}
		flag2 = registry.StringifyOrder(set)
	}

	flagPos, ok := registry.BitPosition(b.flag)
	if !ok {
		flagPos = registry.Register(b.flag)
	}

	var context *condition.Condition
	if b.kind == affix.Suffix {
		context = cond.DropTail(len(stripEnc))
	} else {
		context = cond.DropHead(len(stripEnc))
	}

	m := &affix.AffixMatch{
		Kind:             b.kind,
		Flag:             flagPos,
		Flag2:            flag2,
		Cross:            b.cross,
		Condition:        cond,
		ConditionContext: context,
		Raw:              strings.Join(fields, " "),
	}

	if b.kind == affix.Prefix {
		m.RemoveLeft, m.AppendLeft = stripEnc, appendEnc
		result.PrefixFromStem.Insert(affix.BuildPath(affix.Prefix, stripEnc, context), m)
		result.PrefixToStem.Insert(affix.BuildPath(affix.Prefix, appendEnc, context), m)
	} else {
		m.RemoveRight, m.AppendRight = stripEnc, appendEnc
		result.SuffixFromStem.Insert(affix.BuildPath(affix.Suffix, stripEnc, context), m)
		result.SuffixToStem.Insert(affix.BuildPath(affix.Suffix, appendEnc, context), m)
	}

	return nil
}

// repairCondition normalizes cond against strip per the documented
// Hunspell-compatible recovery chain: a bare "." condition is treated as
// the strip field itself; otherwise cond must literally end (suffix) or
// begin (prefix) with strip, or have a bracket class at that edge whose
// members include every rune of strip (in which case the class is
// collapsed to the literal strip). Failing both, the rule is reported
// inert rather than aborting the whole load — see DESIGN.md for why
// this reading of an underspecified repair rule was chosen.
func repairCondition(cond, strip string, kind affix.Kind) (fixed string, inert bool) {
	if cond == "." {
		cond = strip
	}
	if strip == "" {
		return cond, false
	}
	if kind == affix.Suffix {
		if strings.HasSuffix(cond, strip) {
			return cond, false
		}
		if ok, rewritten := substituteTailClass(cond, strip); ok {
			return rewritten, false
		}
		return cond, true
	}
	if strings.HasPrefix(cond, strip) {
		return cond, false
	}
	if ok, rewritten := substituteHeadClass(cond, strip); ok {
		return rewritten, false
	}
	return cond, true
}

func substituteTailClass(cond, strip string) (bool, string) {
	if !strings.HasSuffix(cond, "]") {
		return false, ""
	}
	idx := strings.LastIndex(cond, "[")
	if idx < 0 {
		return false, ""
	}
	body := cond[idx+1 : len(cond)-1]
	if strings.HasPrefix(body, "^") {
		return false, ""
	}
	for _, r := range strip {
		if !strings.ContainsRune(body, r) {
			return false, ""
		}
	}
	return true, cond[:idx] + strip
}

func substituteHeadClass(cond, strip string) (bool, string) {
	if !strings.HasPrefix(cond, "[") {
		return false, ""
	}
	idx := strings.IndexByte(cond, ']')
	if idx < 0 {
		return false, ""
	}
	body := cond[1:idx]
	if strings.HasPrefix(body, "^") {
		return false, ""
	}
	for _, r := range strip {
		if !strings.ContainsRune(body, r) {
			return false, ""
		}
	}
	return true, strip + cond[idx+1:]
}
