// Package recommend implements the prompt composer and the response
// extractor for book recommendations.
//
// The output contract with the model is a line-oriented plain-text schema
// (one labeled field per line, one block per book). The schema is declared
// as data so the strict and loose matching tiers are generated from the
// same field list instead of being hand-written patterns.
package recommend

import (
	"fmt"
	"regexp"
	"strings"
)

// Field keys used in raw extraction maps.
const (
	FieldName        = "name"
	FieldAuthor      = "author"
	FieldGenre       = "genre"
	FieldPrice       = "price"
	FieldRationale   = "ai_reasoning"
	FieldLink        = "amazon_link"
	FieldDescription = "description"
)

// Field describes one labeled line of a book block.
type Field struct {
	// Key identifies the field independent of its label spelling.
	Key string

	// Label is the exact, case-sensitive label the model is instructed
	// to emit.
	Label string

	// Synonyms are accepted by the loose tier (case-insensitive).
	// The canonical label is always implied.
	Synonyms []string

	// Required fields must be non-empty after trimming or the whole
	// block is discarded.
	Required bool

	looseRe *regexp.Regexp
}

// Schema is one revision of the instructed output format.
type Schema struct {
	Version int
	Fields  []Field

	strictMarker *regexp.Regexp
	looseMarker  *regexp.Regexp
}

// SchemaV2 is the current revision: "Book N:" block markers and a Price line.
func SchemaV2() *Schema {
	return newSchema(2, []Field{
		{Key: FieldName, Label: "Name", Synonyms: []string{"Title", "Book"}, Required: true},
		{Key: FieldAuthor, Label: "Author", Synonyms: []string{"By", "Writer"}, Required: true},
		{Key: FieldGenre, Label: "Genre", Synonyms: []string{"Genres", "Category", "Type"}, Required: true},
		{Key: FieldPrice, Label: "Price", Synonyms: []string{"Cost"}},
		{Key: FieldRationale, Label: "ai_reasoning", Synonyms: []string{"Why", "Reasoning", "Recommendation"}, Required: true},
		{Key: FieldLink, Label: "Amazon Link", Synonyms: []string{"Link", "Buy"}},
		{Key: FieldDescription, Label: "description", Synonyms: []string{"About", "Summary"}, Required: true},
	})
}

// SchemaV1 is the earlier revision without the Price line. Kept so responses
// generated against the old instruction still parse.
func SchemaV1() *Schema {
	return newSchema(1, []Field{
		{Key: FieldName, Label: "Name", Synonyms: []string{"Title", "Book"}, Required: true},
		{Key: FieldAuthor, Label: "Author", Synonyms: []string{"By", "Writer"}, Required: true},
		{Key: FieldGenre, Label: "Genre", Synonyms: []string{"Genres", "Category", "Type"}, Required: true},
		{Key: FieldRationale, Label: "ai_reasoning", Synonyms: []string{"Why", "Reasoning", "Recommendation"}, Required: true},
		{Key: FieldLink, Label: "Amazon Link", Synonyms: []string{"Link", "Buy"}},
		{Key: FieldDescription, Label: "description", Synonyms: []string{"About", "Summary"}, Required: true},
	})
}

func newSchema(version int, fields []Field) *Schema {
	s := &Schema{
		Version: version,
		Fields:  fields,
		// The strict marker is case-sensitive, matching the instruction.
		strictMarker: regexp.MustCompile(`^Book (\d+):\s*(.*)$`),
		looseMarker:  regexp.MustCompile(`(?i)^book\s*(\d+)\s*[:.]\s*(.*)$`),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		labels := append([]string{f.Label}, f.Synonyms...)
		for j, l := range labels {
			labels[j] = regexp.QuoteMeta(l)
		}
		f.looseRe = regexp.MustCompile(`(?i)^(?:` + strings.Join(labels, "|") + `)\s*:\s*(.*)$`)
	}
	return s
}

// Field returns the field with the given key, or nil.
func (s *Schema) Field(key string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i]
		}
	}
	return nil
}

// matchMarker reports whether line is a "Book N:" block marker and returns
// any trailing content after the marker.
func (s *Schema) matchMarker(line string, strict bool) (rest string, ok bool) {
	re := s.strictMarker
	if !strict {
		re = s.looseMarker
	}
	m := re.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[2], true
}

// matchLabel reports whether line begins with a recognized field label and
// returns the field key plus the value portion of the line.
//
// The strict tier requires the exact, case-sensitive label. The loose tier
// accepts synonyms case-insensitively.
func (s *Schema) matchLabel(line string, strict bool) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	for i := range s.Fields {
		f := &s.Fields[i]
		if strict {
			if rest, found := strings.CutPrefix(trimmed, f.Label+":"); found {
				return f.Key, strings.TrimLeft(rest, " \t"), true
			}
			continue
		}
		if m := f.looseRe.FindStringSubmatch(trimmed); m != nil {
			return f.Key, m[1], true
		}
	}
	return "", "", false
}

// FieldOrder renders the instructed block layout for the system prompt.
func (s *Schema) FieldOrder() string {
	var b strings.Builder
	for _, f := range s.Fields {
		switch f.Key {
		case FieldName:
			fmt.Fprintf(&b, "%s: <Book Name>\n", f.Label)
		case FieldAuthor:
			fmt.Fprintf(&b, "%s: <Author>\n", f.Label)
		case FieldGenre:
			fmt.Fprintf(&b, "%s: <Genre 1>, <Genre 2>, <Genre 3> (list up to 3 applicable genres, most relevant first)\n", f.Label)
		case FieldPrice:
			fmt.Fprintf(&b, "%s: <Approximate price in INR (Indian Rupees), e.g. ₹499>\n", f.Label)
		case FieldRationale:
			fmt.Fprintf(&b, "%s: <Brief reasoning for recommending this book>\n", f.Label)
		case FieldLink:
			fmt.Fprintf(&b, "%s: <Leave this blank - it is generated automatically>\n", f.Label)
		case FieldDescription:
			fmt.Fprintf(&b, "%s: <Short description of the book>\n", f.Label)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
