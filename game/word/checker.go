// Package word implements the in-memory lexicon used to validate words
// formed by a placement.
package word

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Checker determines if words are valid
type Checker map[string]struct{}

// NewChecker consumes the lower case words in the reader to use for checking and creates a new Checker.
func NewChecker(r io.Reader) *Checker {
	c := make(Checker)
	scanner := bufio.NewScanner(r)
	scanner.Split(scanLowerWords)
	for scanner.Scan() {
		rawWord := scanner.Text()
		c[rawWord] = struct{}{}
	}
	return &c
}

// Check determines whether or not the word is valid.
// Words are converted to lowercase before checking.
func (c Checker) Check(word string) bool {
	lowerWord := strings.ToLower(word)
	_, ok := c[lowerWord]
	return ok
}

// scanLowerWords is a bufio.SplitFunc that returns the first all-lowercase
// word, decoding full UTF-8 runes (rather than raw bytes) so that
// multi-byte alphabets, such as Polish's diacritic letters, split the same
// way an ASCII word list does. Derived from bufio.ScanWords.
func scanLowerWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start, end := 0, 0
	skipUntilSpace := false
	for end < len(data) {
		r, size := utf8.DecodeRune(data[end:])
		if r == utf8.RuneError && size <= 1 && !atEOF {
			return start, nil, nil // incomplete rune at the end of data, request more
		}
		end += size
		switch {
		case unicode.IsSpace(r):
			if !skipUntilSpace && end-size-start > 0 {
				return end, data[start : end-size], nil
			}
			start = end
			skipUntilSpace = false
		case !unicode.IsLower(r) && !skipUntilSpace: // uppercase/symbol
			skipUntilSpace = true
		}
	}
	if atEOF && len(data) > start {
		if skipUntilSpace {
			return len(data), nil, nil
		}
		// If we're at EOF, we have a final, non-empty, non-terminated word. Return it.
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}
