package recommend

import (
	"log/slog"
	"strings"

	"github.com/novelquest/novelquest/internal/types"
)

// knownQuestions are conversational follow-ups the model tends to append to
// the last block despite being told not to. Matching is case-sensitive; the
// phrase and everything after it is removed from the field value.
var knownQuestions = []string{
	"Are these the kind of books you're looking for?",
	"Would you like recommendations from a more specific genre?",
	"Do you prefer a different type of story",
	"Would you like more recommendations",
	"Let me know if",
}

// Extractor turns a model's free-text reply into ordered BookRecord values.
//
// It runs two tiers over the same schema: a strict pass matching the exact
// instructed labels, then (only when the strict pass finds nothing) a loose
// pass accepting label synonyms case-insensitively. Extraction is a pure
// function of the input text; purchase links and cover images are filled in
// by the caller afterwards.
type Extractor struct {
	Schema *Schema

	// KeepPartial keeps blocks that are missing required context fields
	// (genre, rationale, description). Blocks missing name or author are
	// always dropped. Defaults to false: partial blocks are discarded.
	KeepPartial bool

	Logger *slog.Logger
}

// NewExtractor returns an extractor for the current schema revision.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{Schema: SchemaV2(), Logger: logger}
}

// Extract parses text into book records, preserving source order.
// A return of zero records is not an error; it signals that the reply did
// not follow the schema (callers ask the user to rephrase).
func (e *Extractor) Extract(text string) []types.BookRecord {
	schema := e.Schema
	if schema == nil {
		schema = SchemaV2()
	}

	blocks := scan(schema, text, true)
	if len(blocks) == 0 {
		blocks = scan(schema, text, false)
	}

	var records []types.BookRecord
	for _, block := range blocks {
		rec, missing := e.build(schema, block)
		if len(missing) > 0 {
			if !e.keepable(missing) {
				if e.Logger != nil {
					e.Logger.Debug("dropping partial book block", "missing", missing, "name", block[FieldName])
				}
				continue
			}
		}
		records = append(records, rec)
	}
	return records
}

// keepable reports whether a block with the given missing fields survives
// under the KeepPartial policy. Name and author are never optional.
func (e *Extractor) keepable(missing []string) bool {
	if !e.KeepPartial {
		return false
	}
	for _, key := range missing {
		if key == FieldName || key == FieldAuthor {
			return false
		}
	}
	return true
}

// rawBlock maps field keys to raw (untrimmed) captured values.
type rawBlock map[string]string

// scan tokenizes text into raw blocks. A block starts at a "Book N:" marker
// or, when the model omits markers, at a name-field label while a block is
// already open. Field values span multiple lines: a line that does not begin
// with a recognized label continues the previous field. Lines before the
// first recognized label or marker are conversational noise and are skipped.
func scan(schema *Schema, text string, strict bool) []rawBlock {
	var (
		blocks  []rawBlock
		current rawBlock
		curKey  string
	)

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
		}
		current, curKey = nil, ""
	}

	for _, line := range strings.Split(text, "\n") {
		if rest, ok := schema.matchMarker(line, strict); ok {
			flush()
			current = rawBlock{}
			if strings.TrimSpace(rest) == "" {
				continue
			}
			// Marker line carried content; treat the remainder as a
			// potential first field line.
			line = rest
		}

		if key, value, ok := schema.matchLabel(line, strict); ok {
			if key == FieldName {
				if _, seen := current[FieldName]; seen {
					flush()
				}
			}
			if current == nil {
				current = rawBlock{}
			}
			current[key] = value
			curKey = key
			continue
		}

		if current == nil || curKey == "" {
			continue
		}
		current[curKey] += "\n" + line
	}
	flush()
	return blocks
}

// build validates a raw block against the schema and assembles a record.
// It returns the keys of required fields that were empty after trimming.
//
// The Amazon Link capture is intentionally ignored: the model is told to
// leave it blank and its value is never trusted.
func (e *Extractor) build(schema *Schema, block rawBlock) (types.BookRecord, []string) {
	get := func(key string) string {
		return strings.TrimSpace(block[key])
	}

	rec := types.BookRecord{
		Name:        get(FieldName),
		Author:      get(FieldAuthor),
		Genres:      splitGenres(get(FieldGenre)),
		Price:       get(FieldPrice),
		Rationale:   stripTrailingQuestion(get(FieldRationale)),
		Description: stripTrailingQuestion(get(FieldDescription)),
	}

	var missing []string
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		switch f.Key {
		case FieldName:
			if rec.Name == "" {
				missing = append(missing, f.Key)
			}
		case FieldAuthor:
			if rec.Author == "" {
				missing = append(missing, f.Key)
			}
		case FieldGenre:
			if len(rec.Genres) == 0 {
				missing = append(missing, f.Key)
			}
		case FieldRationale:
			if rec.Rationale == "" {
				missing = append(missing, f.Key)
			}
		case FieldDescription:
			if rec.Description == "" {
				missing = append(missing, f.Key)
			}
		}
	}
	return rec, missing
}

// splitGenres splits the comma-separated genre line into at most three
// entries, preserving the model's relevance order.
func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	var genres []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		genres = append(genres, g)
		if len(genres) == 3 {
			break
		}
	}
	return genres
}

// stripTrailingQuestion removes a known conversational question and
// everything following it from a field value.
func stripTrailingQuestion(s string) string {
	for _, phrase := range knownQuestions {
		if idx := strings.Index(s, phrase); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
