package port

import "io"

type Tokenizer interface {
	// Tokenize returns the whitespace-delimited tokens of r in order.
	Tokenize(r io.Reader) ([]string, error)
}
