// Package codec reads and writes the line-oriented database format:
//
//	#28
//	<bucket>;<word>;<document_count>;<doc1>;<count1>;...;#
//
// A ';' or '\' inside a word or document id is escaped with a backslash.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"invidx/internal/domain"
	"invidx/internal/port"
)

const (
	fieldSep   = ';'
	escapeChar = '\\'
	endMarker  = "#"

	// DefaultMaxLineLen bounds a single database line.
	DefaultMaxLineLen = 64 * 1024
)

// Header returns the first line of every database file.
func Header() string {
	return fmt.Sprintf("#%d", domain.BucketCount)
}

// Encode writes the header and one line per word entry of src, in
// bucket then insertion order.
func Encode(w io.Writer, src port.PostingsIndex) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n", Header()); err != nil {
		return err
	}
	for bucket, entry := range src.Enumerate() {
		bw.WriteString(strconv.Itoa(bucket))
		bw.WriteByte(fieldSep)
		bw.WriteString(escape(entry.Word))
		bw.WriteByte(fieldSep)
		bw.WriteString(strconv.Itoa(entry.DocumentCount()))
		bw.WriteByte(fieldSep)
		for _, occ := range entry.Occurrences {
			bw.WriteString(escape(occ.DocumentID))
			bw.WriteByte(fieldSep)
			bw.WriteString(strconv.Itoa(occ.Count))
			bw.WriteByte(fieldSep)
		}
		bw.WriteString(endMarker)
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Options tunes Decode.
type Options struct {
	MaxLineLen       int
	MaxWordLen       int
	MaxDocumentIDLen int
}

func (o Options) withDefaults() Options {
	if o.MaxLineLen <= 0 {
		o.MaxLineLen = DefaultMaxLineLen
	}
	if o.MaxWordLen <= 0 {
		o.MaxWordLen = domain.MaxWordLen
	}
	if o.MaxDocumentIDLen <= 0 {
		o.MaxDocumentIDLen = domain.MaxDocumentIDLen
	}
	return o
}

// DecodeStats summarizes what Decode merged.
type DecodeStats struct {
	Lines       int
	Entries     int
	Occurrences int
	Documents   int
	// Short counts lines holding fewer pairs than their document count.
	Short int
	// Relocated counts lines whose stored bucket disagreed with the word.
	Relocated int
}

// Decode parses a database from r and merges it into dst, registering every
// document id it reads in reg. Placement is recomputed from each word; the
// stored bucket is only checked. Each line is applied whole or not at all,
// but a malformed line stops decoding without undoing earlier lines.
func Decode(r io.Reader, dst port.PostingsIndex, reg port.DocumentRegistry, opts Options) (DecodeStats, error) {
	opts = opts.withDefaults()
	var stats DecodeStats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(4096, opts.MaxLineLen)), opts.MaxLineLen)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseLine(line, opts)
		if err != nil {
			return stats, domain.NewFormatError(lineNo, err.Error())
		}

		stats.Lines++
		if rec.short {
			stats.Short++
		}
		if rec.storedBucket != domain.BucketOf(rec.word) {
			stats.Relocated++
		}
		if len(rec.occurrences) == 0 {
			continue
		}

		stats.Entries++
		for _, occ := range rec.occurrences {
			dst.InsertOrMerge(rec.word, occ.DocumentID, occ.Count)
			stats.Occurrences++
			if reg.Add(occ.DocumentID) {
				stats.Documents++
			}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return stats, domain.NewFormatError(lineNo+1, fmt.Sprintf("line exceeds %d bytes", opts.MaxLineLen))
		}
		return stats, err
	}
	return stats, nil
}

type record struct {
	storedBucket int
	word         string
	occurrences  []domain.Occurrence
	short        bool
}

func parseLine(line string, opts Options) (record, error) {
	var rec record
	fields := split(line)
	if len(fields) < 3 {
		return rec, errors.New("expected bucket, word and document count")
	}

	bucket, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return rec, fmt.Errorf("invalid bucket %q", fields[0])
	}
	rec.storedBucket = bucket

	rec.word = domain.Truncate(fields[1], opts.MaxWordLen)
	if rec.word == "" {
		return rec, errors.New("missing word")
	}

	n, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || n < 0 {
		return rec, fmt.Errorf("invalid document count %q", fields[2])
	}

	pairs := fields[3:]
	for i := 0; i < n; i++ {
		if 2*i+1 >= len(pairs) || pairs[2*i] == endMarker {
			rec.short = true
			break
		}
		id := domain.Truncate(pairs[2*i], opts.MaxDocumentIDLen)
		if id == "" {
			return rec, fmt.Errorf("missing document id in pair %d", i+1)
		}
		count, err := strconv.Atoi(strings.TrimSpace(pairs[2*i+1]))
		if err != nil || count < 1 {
			return rec, fmt.Errorf("invalid count %q for %s", pairs[2*i+1], id)
		}
		rec.occurrences = append(rec.occurrences, domain.Occurrence{DocumentID: id, Count: count})
	}
	return rec, nil
}

// split breaks a line on unescaped separators. A backslash escapes only a
// separator or another backslash; anything else is kept literally.
func split(line string) []string {
	var fields []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == escapeChar && i+1 < len(line) && (line[i+1] == fieldSep || line[i+1] == escapeChar):
			cur.WriteByte(line[i+1])
			i++
		case c == fieldSep:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func escape(s string) string {
	if !strings.ContainsAny(s, `;\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == fieldSep || s[i] == escapeChar {
			b.WriteByte(escapeChar)
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
