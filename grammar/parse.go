package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pingcap/errors"
)

// ErrEmptyGrammar is returned when a grammar source contains no productions.
var ErrEmptyGrammar = errors.New("no productions found in grammar")

// FormatError reports a malformed production line. The offending line is
// preserved verbatim.
type FormatError struct {
	Row    int
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid production at line %v: %v: %v", e.Row, e.Reason, e.Line)
}

// separators are the accepted production arrows.
var separators = []string{"->", "→"}

// Parse reads a grammar in the line-oriented text format: one
// `LHS -> alt | alt | ...` production per line, symbols separated by
// whitespace, an alternative that is blank, the empty marker, or the literal
// word "epsilon" denoting an empty body. Lines beginning with # and blank
// lines are skipped. The first left-hand side becomes the start symbol.
func Parse(r io.Reader) (*Grammar, error) {
	scanner := bufio.NewScanner(r)
	var prods []*Production
	start := ""
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lhsText, rhsText, ok := splitProduction(line)
		if !ok {
			return nil, &FormatError{Row: row, Line: line, Reason: "no production separator"}
		}
		lhs := strings.TrimSpace(lhsText)
		if lhs == "" {
			return nil, &FormatError{Row: row, Line: line, Reason: "empty left-hand side"}
		}
		if start == "" {
			start = lhs
		}

		for _, alt := range strings.Split(rhsText, "|") {
			syms := strings.Fields(alt)
			if isEmptyBody(syms) {
				prods = append(prods, &Production{Lhs: lhs})
				continue
			}
			prods = append(prods, &Production{Lhs: lhs, Rhs: syms})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Annotatef(err, "reading grammar source")
	}
	if len(prods) == 0 {
		return nil, ErrEmptyGrammar
	}

	return New(start, prods)
}

// ParseText is Parse over an in-memory string.
func ParseText(text string) (*Grammar, error) {
	return Parse(strings.NewReader(text))
}

func splitProduction(line string) (string, string, bool) {
	for _, sep := range separators {
		if i := strings.Index(line, sep); i >= 0 {
			return line[:i], line[i+len(sep):], true
		}
	}
	return "", "", false
}

func isEmptyBody(syms []string) bool {
	if len(syms) == 0 {
		return true
	}
	return len(syms) == 1 && (syms[0] == Epsilon || syms[0] == "epsilon")
}
