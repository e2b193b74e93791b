package apinode

import "strings"

// Unwrap repeatedly peels the outermost modifier from a source-level type
// spelling in the fixed order spec.md §4.2 prescribes: qualifiers (const,
// volatile, restrict) → pointer (*) → l-value reference (&) → r-value
// reference (&&) → parenthesized (no prefix) → array (no prefix, peels the
// element type), until no further peel is possible.
//
// It returns the concatenation of peeled modifier tokens, in reverse peel
// order (outermost first when read left to right), and the terminal type
// name. For pointer/reference/qualifier chains, prefix+terminal
// reconstructs the original spelling; for array suffixes the bracket text
// is folded into prefix as-is rather than algebraically reordered, since C's
// declarator grammar doesn't admit a left-to-right prefix form for arrays
// (this mirrors how the front-end hands ARMOR only the spelled text, with
// no semantic type model to reason about array/pointer precedence).
func Unwrap(spelling string) (prefix string, terminal string) {
	s := strings.TrimSpace(spelling)
	var peeled []string

	for {
		if tok, rest, ok := peelQualifier(s); ok {
			peeled = append(peeled, tok)
			s = rest
			continue
		}
		if rest, ok := peelSuffix(s, "*"); ok {
			peeled = append(peeled, "*")
			s = rest
			continue
		}
		if rest, ok := peelSingleAmp(s); ok {
			peeled = append(peeled, "&")
			s = rest
			continue
		}
		if rest, ok := peelSuffix(s, "&&"); ok {
			peeled = append(peeled, "&&")
			s = rest
			continue
		}
		if rest, ok := peelParens(s); ok {
			peeled = append(peeled, "")
			s = rest
			continue
		}
		if tok, rest, ok := peelArray(s); ok {
			peeled = append(peeled, tok)
			s = rest
			continue
		}
		break
	}

	// Reverse: the innermost peel happened last, but it is the outermost
	// modifier when read left to right (it was stripped from the outside
	// of whatever remained).
	for i, j := 0, len(peeled)-1; i < j; i, j = i+1, j-1 {
		peeled[i], peeled[j] = peeled[j], peeled[i]
	}

	return strings.Join(peeled, ""), strings.TrimSpace(s)
}

var qualifierTokens = []string{"const", "volatile", "restrict"}

func peelQualifier(s string) (tok, rest string, ok bool) {
	trimmed := strings.TrimSpace(s)
	for _, q := range qualifierTokens {
		if strings.HasSuffix(trimmed, " "+q) {
			return q, strings.TrimSpace(trimmed[:len(trimmed)-len(q)]), true
		}
	}
	// A leading qualifier binds to the innermost type, so it is peeled only
	// once no pointer, reference, array or parenthesized modifier is left.
	if trimmed == "" || strings.ContainsRune("*&])", rune(trimmed[len(trimmed)-1])) {
		return "", s, false
	}
	for _, q := range qualifierTokens {
		if strings.HasPrefix(trimmed, q+" ") {
			return q, strings.TrimSpace(trimmed[len(q):]), true
		}
	}
	return "", s, false
}

func peelSuffix(s, tok string) (rest string, ok bool) {
	trimmed := strings.TrimRight(s, " ")
	if strings.HasSuffix(trimmed, tok) {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(tok)]), true
	}
	return s, false
}

// peelSingleAmp peels a trailing "&" that is not part of "&&".
func peelSingleAmp(s string) (rest string, ok bool) {
	trimmed := strings.TrimRight(s, " ")
	if strings.HasSuffix(trimmed, "&&") {
		return s, false
	}
	if strings.HasSuffix(trimmed, "&") {
		return strings.TrimSpace(trimmed[:len(trimmed)-1]), true
	}
	return s, false
}

func peelParens(s string) (rest string, ok bool) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '(' || trimmed[len(trimmed)-1] != ')' {
		return s, false
	}
	depth := 0
	for i, r := range trimmed {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(trimmed)-1 {
				return s, false // closes before the end: not a single wrapping pair
			}
		}
	}
	return strings.TrimSpace(trimmed[1 : len(trimmed)-1]), true
}

func peelArray(s string) (tok, rest string, ok bool) {
	trimmed := strings.TrimRight(s, " ")
	if !strings.HasSuffix(trimmed, "]") {
		return "", s, false
	}
	open := strings.LastIndex(trimmed, "[")
	if open < 0 {
		return "", s, false
	}
	return trimmed[open:], strings.TrimSpace(trimmed[:open]), true
}
