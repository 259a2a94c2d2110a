package query

import "strings"

// maxGroupDepth bounds parenthesis nesting so pathological input fails
// with a SyntaxError instead of exhausting the call stack.
const maxGroupDepth = 128

// The parser produces a flat raw stream per grouping level: comparison
// triples and logical markers in alternation, with nested groups tagged
// distinctly. Literal text is kept raw; casting happens in the compiler.
type rawNode interface {
	rawItem()
}

type rawCond struct {
	path   []string
	op     CompareOp
	lit    string // raw literal text, cast by the compiler
	offset int
	litOff int
}

func (rawCond) rawItem() {}

type rawLogic struct {
	op     LogicOp
	offset int
}

func (rawLogic) rawItem() {}

type rawGroup struct {
	children []rawNode
	offset   int
}

func (rawGroup) rawItem() {}

// Parse parses query text into a predicate tree. Empty input, trailing
// unparsed text, and every grammar violation surface as a *SyntaxError.
func Parse(input string) (Predicates, error) {
	s := &scanner{input: input}
	s.skipSpace()
	if s.eof() {
		return nil, syntaxErrorf(0, "empty query")
	}

	items, err := parseStream(s, 0)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, syntaxErrorf(s.pos, "unexpected %q", s.input[s.pos])
	}

	preds, err := compile(items)
	if err != nil {
		return nil, err
	}
	if err := preds.Validate(); err != nil {
		return nil, syntaxErrorf(0, "%v", err)
	}
	return preds, nil
}

// parseStream parses one grouping level: factors separated by logical
// operators, stopping at EOF or an unconsumed ')'.
func parseStream(s *scanner, depth int) ([]rawNode, error) {
	var items []rawNode
	for {
		s.skipSpace()
		if len(items) == 0 && (s.eof() || s.peek() == ')') {
			return items, nil
		}

		if s.peek() == '(' {
			open := s.pos
			if depth+1 > maxGroupDepth {
				return nil, syntaxErrorf(open, "group nesting deeper than %d", maxGroupDepth)
			}
			s.pos++
			children, err := parseStream(s, depth+1)
			if err != nil {
				return nil, err
			}
			s.skipSpace()
			if s.eof() || s.peek() != ')' {
				return nil, syntaxErrorf(open, "unmatched '('")
			}
			s.pos++
			if len(children) == 0 {
				return nil, syntaxErrorf(open, "empty group")
			}
			items = append(items, rawGroup{children: children, offset: open})
		} else {
			cond, err := scanComparison(s)
			if err != nil {
				return nil, err
			}
			items = append(items, cond)
		}

		s.skipSpace()
		if s.eof() || s.peek() == ')' {
			return items, nil
		}

		opOff := s.pos
		op, ok := s.scanLogic()
		if !ok {
			return nil, syntaxErrorf(opOff, "expected AND or OR")
		}
		items = append(items, rawLogic{op: op, offset: opOff})

		s.skipSpace()
		if s.eof() || s.peek() == ')' {
			return nil, syntaxErrorf(opOff, "missing operand after %s", op)
		}
	}
}

// scanComparison scans one identifier/comparator/literal triple.
func scanComparison(s *scanner) (rawCond, error) {
	off := s.pos
	path, err := s.scanIdentifier()
	if err != nil {
		return rawCond{}, err
	}
	s.skipSpace()
	op, err := s.scanComparator()
	if err != nil {
		return rawCond{}, err
	}
	s.skipSpace()
	litOff := s.pos
	lit, err := s.scanLiteral()
	if err != nil {
		return rawCond{}, err
	}
	return rawCond{path: path, op: op, lit: lit, offset: off, litOff: litOff}, nil
}

// scanner walks query text byte-wise. The grammar's structural characters
// are all ASCII; quoted strings pass through verbatim, so UTF-8 content
// survives untouched.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.input[s.pos]) {
		s.pos++
	}
}

// scanIdentifier scans a dot-path: segments of [A-Za-z_][A-Za-z0-9_]*
// joined by single dots. Consecutive or trailing dots are errors.
func (s *scanner) scanIdentifier() ([]string, error) {
	var segs []string
	for {
		if s.eof() || !isIdentStart(s.input[s.pos]) {
			if len(segs) == 0 {
				return nil, syntaxErrorf(s.pos, "expected identifier")
			}
			return nil, syntaxErrorf(s.pos, "empty path segment")
		}
		start := s.pos
		s.pos++
		for !s.eof() && isIdentChar(s.input[s.pos]) {
			s.pos++
		}
		segs = append(segs, s.input[start:s.pos])

		if s.eof() || s.input[s.pos] != '.' {
			return segs, nil
		}
		s.pos++ // consume '.', next segment required
	}
}

// scanComparator scans one of the nine comparison operators. Symbolic
// forms are matched longest-first; keyword forms match case-insensitively.
// "not in" is recognized and rejected: it is intentionally not an
// operator.
func (s *scanner) scanComparator() (CompareOp, error) {
	off := s.pos
	rest := s.input[s.pos:]

	for _, sym := range [...]CompareOp{OpEq, OpNotEq, OpGte, OpLte, OpGt, OpLt} {
		if strings.HasPrefix(rest, string(sym)) {
			s.pos += len(sym)
			return sym, nil
		}
	}

	switch {
	case hasFoldPrefix(rest, "contains"):
		s.pos += len("contains")
		return OpContains, nil
	case hasFoldPrefix(rest, "not"):
		s.pos += len("not")
		s.skipSpace()
		tail := s.input[s.pos:]
		switch {
		case hasFoldPrefix(tail, "contains"):
			s.pos += len("contains")
			return OpNotContains, nil
		case hasFoldPrefix(tail, "in"):
			return "", syntaxErrorf(off, `operator "not in" is not supported`)
		default:
			return "", syntaxErrorf(off, `expected "contains" after "not"`)
		}
	case hasFoldPrefix(rest, "in"):
		s.pos += len("in")
		return OpIn, nil
	}

	return "", syntaxErrorf(off, "expected comparator")
}

// scanLogic matches a case-insensitive AND/OR prefix. There is no word
// boundary requirement: a number followed directly by a keyword still
// parses ("a==1andb==2"), matching the PEG-style grammar.
func (s *scanner) scanLogic() (LogicOp, bool) {
	rest := s.input[s.pos:]
	switch {
	case hasFoldPrefix(rest, "and"):
		s.pos += len("and")
		return LogicAnd, true
	case hasFoldPrefix(rest, "or"):
		s.pos += len("or")
		return LogicOr, true
	default:
		return LogicNone, false
	}
}

// scanLiteral delimits the raw text of one literal: a quoted string with
// optional cast suffix, a bracketed list (quote-aware), a bare word, or
// a number. The compiler casts the text; the scanner only finds its
// extent.
func (s *scanner) scanLiteral() (string, error) {
	off := s.pos
	if s.eof() {
		return "", syntaxErrorf(off, "missing operand")
	}

	switch c := s.input[s.pos]; {
	case c == '\'':
		end, err := scanQuoted(s.input, s.pos)
		if err != nil {
			return "", err
		}
		s.pos = end
		if strings.HasPrefix(s.input[s.pos:], "::") {
			s.pos += 2
			start := s.pos
			for !s.eof() && isLetter(s.input[s.pos]) {
				s.pos++
			}
			if s.pos == start {
				return "", syntaxErrorf(start, "expected cast name after '::'")
			}
		}
		return s.input[off:s.pos], nil

	case c == '[':
		i := s.pos + 1
		for i < len(s.input) && s.input[i] != ']' {
			if s.input[i] == '\'' {
				end, err := scanQuoted(s.input, i)
				if err != nil {
					return "", err
				}
				i = end
			} else {
				i++
			}
		}
		if i >= len(s.input) {
			return "", syntaxErrorf(off, "unterminated list")
		}
		s.pos = i + 1
		return s.input[off:s.pos], nil

	case isLetter(c) || c == '_':
		i := s.pos
		for i < len(s.input) && isLetter(s.input[i]) {
			i++
		}
		s.pos = i
		return s.input[off:i], nil

	default:
		return s.scanNumber()
	}
}

// scanNumber scans an optionally signed decimal with optional fraction
// and exponent. Letters terminate the number without needing whitespace;
// the exponent marker is only consumed when digits actually follow it.
func (s *scanner) scanNumber() (string, error) {
	off := s.pos
	i := s.pos
	if i < len(s.input) && s.input[i] == '-' {
		i++
	}

	digits := 0
	for i < len(s.input) && isDigit(s.input[i]) {
		i++
		digits++
	}
	if i < len(s.input) && s.input[i] == '.' {
		i++
		for i < len(s.input) && isDigit(s.input[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return "", syntaxErrorf(off, "expected literal")
	}

	if i < len(s.input) && (s.input[i] == 'e' || s.input[i] == 'E') {
		j := i + 1
		if j < len(s.input) && (s.input[j] == '+' || s.input[j] == '-') {
			j++
		}
		k := j
		for k < len(s.input) && isDigit(s.input[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	s.pos = i
	return s.input[off:i], nil
}

// scanQuoted scans a single-quoted run starting at input[start] and
// returns the index just past the closing quote.
func scanQuoted(input string, start int) (int, error) {
	for i := start + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++ // escaped character, including \'
		case '\'':
			return i + 1, nil
		}
	}
	return 0, syntaxErrorf(start, "unterminated string")
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
