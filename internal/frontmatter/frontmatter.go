// Package frontmatter parses the "---" delimited metadata header used across
// the content tree. Metadata stays a flat string map; values are never
// type-coerced, callers convert dates and lists downstream.
package frontmatter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

// separator divides a metadata line into key and value.
const separator = ": "

// ErrMalformed marks a document whose front-matter delimiter pair is missing.
var ErrMalformed = errors.New("front-matter delimiters not found")

// Document is a parsed document: flat metadata plus the body with the
// metadata block stripped.
type Document struct {
	Metadata map[string]string
	Content  string
}

// Parse splits raw into metadata and body. The first line must be exactly
// "---" and a later line must close the block, otherwise ErrMalformed.
// Block lines split on the first ": "; keys and values are whitespace-trimmed
// and one layer of matching enclosing quotes is stripped from the value.
// Non-blank lines without the separator are skipped, not fatal.
func Parse(raw []byte) (*Document, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || trimEOL(scanner.Text()) != Delimiter {
		return nil, ErrMalformed
	}

	meta := make(map[string]string)
	closed := false
	line := 1
	for scanner.Scan() {
		line++
		text := trimEOL(scanner.Text())
		if text == Delimiter {
			closed = true
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		key, value, found := strings.Cut(text, separator)
		key = strings.TrimSpace(key)
		if !found || key == "" {
			logger.Warn("skipping metadata line without separator", "line", line)
			continue
		}
		meta[key] = unquote(strings.TrimSpace(value))
	}
	if !closed {
		return nil, ErrMalformed
	}

	var body []string
	for scanner.Scan() {
		body = append(body, trimEOL(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	return &Document{
		Metadata: meta,
		Content:  strings.TrimSpace(strings.Join(body, "\n")),
	}, nil
}

// Encode writes metadata and content back into document form: a sorted key
// block between delimiters, then the body. Parse's quote stripping and
// trimming are one-way, so Encode(Parse(doc)) need not be byte-identical,
// but Parse(Encode(meta, content)) returns meta and content unchanged.
func Encode(meta map[string]string, content string) []byte {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	for _, k := range keys {
		b.WriteString(k + separator + meta[k] + "\n")
	}
	b.WriteString(Delimiter + "\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	return []byte(b.String())
}

// unquote strips one layer of matching enclosing quotes.
func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// trimEOL drops a trailing carriage return so CRLF content parses the same.
func trimEOL(line string) string {
	return strings.TrimSuffix(line, "\r")
}
