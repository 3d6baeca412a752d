package recommend

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// sampleReply builds a well-formed model reply with n blocks.
func sampleReply(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Book %d:\n", i)
		fmt.Fprintf(&b, "Name: Book Title %d\n", i)
		fmt.Fprintf(&b, "Author: Author %d\n", i)
		fmt.Fprintf(&b, "Genre: Fantasy, Adventure\n")
		fmt.Fprintf(&b, "Price: ₹%d99\n", i)
		fmt.Fprintf(&b, "ai_reasoning: Matches your request %d.\n", i)
		fmt.Fprintf(&b, "Amazon Link:\n")
		fmt.Fprintf(&b, "description: A story about thing %d.\n\n", i)
	}
	return b.String()
}

func TestExtract(t *testing.T) {
	e := NewExtractor(nil)

	t.Run("extracts all blocks in order", func(t *testing.T) {
		records := e.Extract(sampleReply(5))
		if len(records) != 5 {
			t.Fatalf("expected 5 records, got %d", len(records))
		}
		for i, rec := range records {
			want := fmt.Sprintf("Book Title %d", i+1)
			if rec.Name != want {
				t.Errorf("record %d: expected name %q, got %q", i, want, rec.Name)
			}
		}
	})

	t.Run("captures fields verbatim", func(t *testing.T) {
		records := e.Extract(sampleReply(1))
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		rec := records[0]
		if rec.Author != "Author 1" {
			t.Errorf("expected author Author 1, got %q", rec.Author)
		}
		if rec.Price != "₹199" {
			t.Errorf("expected price ₹199, got %q", rec.Price)
		}
		if rec.Rationale != "Matches your request 1." {
			t.Errorf("unexpected rationale %q", rec.Rationale)
		}
		if rec.Description != "A story about thing 1." {
			t.Errorf("unexpected description %q", rec.Description)
		}
		if !reflect.DeepEqual(rec.Genres, []string{"Fantasy", "Adventure"}) {
			t.Errorf("unexpected genres %v", rec.Genres)
		}
	})

	t.Run("ignores preamble and trailing chatter", func(t *testing.T) {
		text := "Sure! Here are some books you might like:\n\n" +
			sampleReply(2) +
			"\nAre these the kind of books you're looking for?\n"
		records := e.Extract(text)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("strips trailing question from last description", func(t *testing.T) {
		text := "Book 1:\n" +
			"Name: Quiet Rivers\n" +
			"Author: J. Doe\n" +
			"Genre: Drama\n" +
			"ai_reasoning: Calm and reflective.\n" +
			"Amazon Link:\n" +
			"description: A slow-burn family story. Would you like more recommendations?\n"
		records := e.Extract(text)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Description != "A slow-burn family story." {
			t.Errorf("question not stripped: %q", records[0].Description)
		}
	})

	t.Run("drops block missing author, keeps neighbors", func(t *testing.T) {
		text := sampleReply(1) +
			"Book 2:\nName: Orphan Block\nGenre: Mystery\nai_reasoning: ok\nAmazon Link:\ndescription: d\n\n" +
			strings.ReplaceAll(sampleReply(1), "Book 1", "Book 3")
		records := e.Extract(text)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		for _, rec := range records {
			if rec.Name == "Orphan Block" {
				t.Error("partial block should have been dropped")
			}
		}
	})

	t.Run("keep partial retains context-incomplete blocks", func(t *testing.T) {
		text := "Book 1:\nName: Bare Bones\nAuthor: A. Writer\n"
		strict := &Extractor{Schema: SchemaV2()}
		if got := strict.Extract(text); got != nil {
			t.Fatalf("expected nil without KeepPartial, got %v", got)
		}
		lenient := &Extractor{Schema: SchemaV2(), KeepPartial: true}
		records := lenient.Extract(text)
		if len(records) != 1 || records[0].Name != "Bare Bones" {
			t.Fatalf("expected partial record kept, got %v", records)
		}
	})

	t.Run("multi-line description is joined", func(t *testing.T) {
		text := "Book 1:\n" +
			"Name: Long One\n" +
			"Author: B. Writer\n" +
			"Genre: Epic\n" +
			"ai_reasoning: fits\n" +
			"description: First line of the description\n" +
			"that continues on a second line.\n"
		records := e.Extract(text)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if !strings.Contains(records[0].Description, "second line") {
			t.Errorf("continuation line lost: %q", records[0].Description)
		}
	})

	t.Run("caps genres at three", func(t *testing.T) {
		text := "Book 1:\n" +
			"Name: Many Genres\n" +
			"Author: C. Writer\n" +
			"Genre: One, Two, Three, Four, Five\n" +
			"ai_reasoning: fits\n" +
			"description: d\n"
		records := e.Extract(text)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if len(records[0].Genres) != 3 {
			t.Errorf("expected 3 genres, got %v", records[0].Genres)
		}
	})

	t.Run("no blocks returns nil", func(t *testing.T) {
		if got := e.Extract("I need more details about what you like to read."); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestExtractLooseFallback(t *testing.T) {
	e := NewExtractor(nil)

	t.Run("synonym labels parse when strict finds nothing", func(t *testing.T) {
		text := "book 1.\n" +
			"Title: Synonym City\n" +
			"By: D. Writer\n" +
			"Category: Noir\n" +
			"Why: moody and atmospheric\n" +
			"Summary: A detective story.\n"
		records := e.Extract(text)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		rec := records[0]
		if rec.Name != "Synonym City" || rec.Author != "D. Writer" {
			t.Errorf("unexpected record %+v", rec)
		}
		if rec.Rationale != "moody and atmospheric" {
			t.Errorf("unexpected rationale %q", rec.Rationale)
		}
	})

	t.Run("strict results win over loose", func(t *testing.T) {
		// Strict labels present: the loose tier must not run, so the
		// lowercase "title:" line stays a continuation, not a new field.
		text := "Book 1:\n" +
			"Name: Proper Block\n" +
			"Author: E. Writer\n" +
			"Genre: SF\n" +
			"ai_reasoning: fits\n" +
			"description: has a working title:\nsomething else\n"
		records := e.Extract(text)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Name != "Proper Block" {
			t.Errorf("unexpected name %q", records[0].Name)
		}
	})

	t.Run("repeated name label starts a new block", func(t *testing.T) {
		// No markers at all; blocks delimited by the Name label.
		text := "Name: First\nAuthor: A\nGenre: G\nai_reasoning: r\ndescription: d\n" +
			"Name: Second\nAuthor: B\nGenre: G\nai_reasoning: r\ndescription: d\n"
		records := e.Extract(text)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Name != "First" || records[1].Name != "Second" {
			t.Errorf("unexpected records %+v", records)
		}
	})
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor(nil)
	text := sampleReply(3)

	first := e.Extract(text)
	second := e.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("extraction is not deterministic for identical input")
	}
}

func TestSchemaV1(t *testing.T) {
	// V1 has no Price field; a V1-style reply still parses fully.
	e := &Extractor{Schema: SchemaV1()}
	text := "Book 1:\n" +
		"Name: Old Format\n" +
		"Author: F. Writer\n" +
		"Genre: History\n" +
		"ai_reasoning: fits\n" +
		"Amazon Link:\n" +
		"description: d\n"
	records := e.Extract(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Price != "" {
		t.Errorf("expected empty price, got %q", records[0].Price)
	}
}

func TestStripTrailingQuestion(t *testing.T) {
	got := stripTrailingQuestion("A good read. Let me know if you want more options.")
	if got != "A good read." {
		t.Errorf("expected trailing question removed, got %q", got)
	}
}
