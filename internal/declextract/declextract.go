// Package declextract implements the declaration-extraction collaborator
// spec.md 1 lists as deliberately out of core scope: pulling a function's
// textual declaration back out of its original source file. There's no
// original_source/ reference for this component — it's a genuine external
// collaborator the orchestrator depends on through a narrow interface, not
// a ported algorithm — so the default implementation here is a best-effort
// scanner, not a C++ parser.
package declextract

// Extractor finds the textual declaration of a named function inside a
// source file's bytes.
type Extractor interface {
	// Declaration returns the function's declaration text (its signature
	// up to, but not including, any body) and whether one was found.
	// Per spec.md 9, extraction from macros and preprocessor-conditional
	// code is unreliable; returning ok == false is a soft skip, not an
	// error.
	Declaration(name string, source []byte) (string, bool)
}

// Scanner is the default Extractor: a brace-depth scan that locates the
// first occurrence of name followed by '(' at brace depth zero, then walks
// forward to either a ';' (a standalone declaration) or a matching '{' (a
// definition, whose signature up to the brace is returned as the
// declaration).
type Scanner struct{}

// NewScanner returns the default best-effort Extractor.
func NewScanner() Scanner {
	return Scanner{}
}

func (Scanner) Declaration(name string, source []byte) (string, bool) {
	depth := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
			continue
		case '}':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 0 {
			continue
		}
		if !matchesNameAt(source, i, name) {
			continue
		}
		callEnd := skipToOpenParen(source, i+len(name))
		if callEnd < 0 {
			continue
		}
		end := findDeclarationEnd(source, callEnd)
		if end < 0 {
			continue
		}
		start := lineStart(source, i)
		decl := trimTrailingBody(source[start:end])
		if len(decl) == 0 {
			continue
		}
		return string(decl) + ";", true
	}
	return "", false
}

func matchesNameAt(source []byte, i int, name string) bool {
	if i+len(name) > len(source) {
		return false
	}
	if string(source[i:i+len(name)]) != name {
		return false
	}
	if i > 0 && isIdentByte(source[i-1]) {
		return false // matched a suffix of a longer identifier
	}
	if i+len(name) < len(source) && isIdentByte(source[i+len(name)]) {
		return false // matched a prefix of a longer identifier
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// skipToOpenParen walks whitespace from i and returns the index right
// after the next '(' it finds, or -1 if the name isn't immediately
// followed by a call/declaration parameter list.
func skipToOpenParen(source []byte, i int) int {
	for i < len(source) && isSpace(source[i]) {
		i++
	}
	if i >= len(source) || source[i] != '(' {
		return -1
	}
	return i + 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// findDeclarationEnd walks forward from just past the '(' at parenDepth 1,
// matching parens, and returns the index of the ';' or '{' that follows
// the matching ')' (only whitespace may come between), or -1 if anything
// else follows or EOF is reached first.
func findDeclarationEnd(source []byte, i int) int {
	depth := 1
	for ; i < len(source) && depth > 0; i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	for i < len(source) {
		switch source[i] {
		case ';', '{':
			return i
		case ' ', '\t', '\n', '\r':
			i++
			continue
		default:
			return -1
		}
	}
	return -1
}

func lineStart(source []byte, i int) int {
	for i > 0 && source[i-1] != '\n' {
		i--
	}
	return i
}

func trimTrailingBody(decl []byte) []byte {
	i := len(decl)
	for i > 0 && isSpace(decl[i-1]) {
		i--
	}
	return decl[:i]
}
