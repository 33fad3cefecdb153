package report

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"invidx/internal/domain"
)

const (
	rowFormat   = "%-6v %-20s %-20s %-10v\n"
	ruleWidth   = 60
	headerIndex = "Index"
	headerWord  = "Word"
	headerDoc   = "Document"
	headerCount = "Count"
)

// TableWriter prints the index as a table with one row per (word, document)
// pair. The bucket index appears on the first row of each word only.
type TableWriter struct {
	w io.Writer
}

func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w}
}

// WriteIndex prints every entry yielded by entries.
func (t *TableWriter) WriteIndex(entries iter.Seq2[int, domain.WordEntry]) error {
	t.header()
	for bucket, entry := range entries {
		for i, occ := range entry.Occurrences {
			var index any = bucket
			if i > 0 {
				index = ""
			}
			fmt.Fprintf(t.w, rowFormat, index, entry.Word, occ.DocumentID, occ.Count)
		}
	}
	return t.rule()
}

// WriteSearch prints the rows for a single word.
func (t *TableWriter) WriteSearch(res domain.SearchResult) error {
	t.header()
	for _, occ := range res.Occurrences {
		fmt.Fprintf(t.w, rowFormat, res.Bucket, res.Word, occ.DocumentID, occ.Count)
	}
	return t.rule()
}

// WriteNotFound reports a word absent from the index.
func (t *TableWriter) WriteNotFound(word string) error {
	_, err := fmt.Fprintf(t.w, "Word '%s' not found in the database.\n", word)
	return err
}

func (t *TableWriter) header() {
	t.rule()
	fmt.Fprintf(t.w, rowFormat, headerIndex, headerWord, headerDoc, headerCount)
	t.rule()
}

func (t *TableWriter) rule() error {
	_, err := fmt.Fprintln(t.w, strings.Repeat("-", ruleWidth))
	return err
}
