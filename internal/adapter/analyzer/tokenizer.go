package analyzer

import (
	"bufio"
	"errors"
	"io"

	"invidx/internal/domain"
)

// Tokenizer splits documents on ASCII whitespace (space, \t, \n, \v, \f,
// \r). Tokens are kept verbatim (no case folding, no punctuation
// stripping) and cut to maxLen bytes; the rest of an over-long run is
// dropped, however long it is.
type Tokenizer struct {
	maxLen int
}

// NewTokenizer creates a new Tokenizer. A non-positive maxLen selects
// domain.MaxWordLen.
func NewTokenizer(maxLen int) *Tokenizer {
	if maxLen <= 0 {
		maxLen = domain.MaxWordLen
	}
	return &Tokenizer{maxLen: maxLen}
}

// Tokenize reads r to the end and returns its tokens in order.
func (t *Tokenizer) Tokenize(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	// One byte past the limit lets Truncate see whether the cut splits a rune.
	buf := make([]byte, 0, t.maxLen+1)

	var tokens []string
	flush := func() {
		if len(buf) > 0 {
			tokens = append(tokens, domain.Truncate(string(buf), t.maxLen))
			buf = buf[:0]
		}
	}

	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isSpace(c) {
			flush()
			continue
		}
		if len(buf) <= t.maxLen {
			buf = append(buf, c)
		}
	}
	flush()
	return tokens, nil
}

// MaxLen returns the truncation limit.
func (t *Tokenizer) MaxLen() int {
	return t.maxLen
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
