package recommend

import (
	"strings"
	"testing"

	"github.com/novelquest/novelquest/internal/types"
)

func TestClampCount(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero uses default", 0, DefaultResults},
		{"negative uses default", -3, DefaultResults},
		{"in range unchanged", 7, 7},
		{"above max clamped", 50, MaxResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampCount(tt.in); got != tt.want {
				t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	t.Run("includes count and field layout", func(t *testing.T) {
		prompt := SystemPrompt(SchemaV2(), 3)
		if !strings.Contains(prompt, "exactly 3 books") {
			t.Error("expected count in prompt")
		}
		if !strings.Contains(prompt, "Book 1:") {
			t.Error("expected block marker example")
		}
		for _, label := range []string{"Name:", "Author:", "Genre:", "Price:", "ai_reasoning:", "Amazon Link:", "description:"} {
			if !strings.Contains(prompt, label) {
				t.Errorf("expected label %q in prompt", label)
			}
		}
	})

	t.Run("instructs rupee pricing", func(t *testing.T) {
		prompt := SystemPrompt(SchemaV2(), 5)
		if !strings.Contains(prompt, "Indian Rupees") {
			t.Error("expected INR instruction")
		}
	})

	t.Run("nil schema falls back to current revision", func(t *testing.T) {
		if SystemPrompt(nil, 5) != SystemPrompt(SchemaV2(), 5) {
			t.Error("nil schema should render the V2 layout")
		}
	})
}

func TestFilterClauses(t *testing.T) {
	t.Run("empty filters render nothing", func(t *testing.T) {
		if got := FilterClauses(types.Filters{}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("page range", func(t *testing.T) {
		got := FilterClauses(types.Filters{PageMin: 100, PageMax: 400})
		if got != " The book should be between 100 and 400 pages." {
			t.Errorf("unexpected clause %q", got)
		}
	})

	t.Run("open-ended bounds", func(t *testing.T) {
		if got := FilterClauses(types.Filters{PageMin: 200}); !strings.Contains(got, "at least 200 pages") {
			t.Errorf("unexpected clause %q", got)
		}
		if got := FilterClauses(types.Filters{YearMax: 1990}); !strings.Contains(got, "published before 1990") {
			t.Errorf("unexpected clause %q", got)
		}
	})

	t.Run("genres joined", func(t *testing.T) {
		got := FilterClauses(types.Filters{Genres: []string{"fantasy", "horror"}})
		if got != " The book should be in the following genres: fantasy, horror." {
			t.Errorf("unexpected clause %q", got)
		}
	})
}

func TestTurnMessage(t *testing.T) {
	t.Run("first turn is query plus filters", func(t *testing.T) {
		got := TurnMessage("something spooky", types.Filters{PageMax: 300}, nil)
		want := "something spooky The book should be at most 300 pages."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("follow-up renders prior conversation", func(t *testing.T) {
		history := []types.ConversationTurn{
			{Role: types.RoleUser, Content: "something spooky"},
			{Role: types.RoleAssistant, Content: "Book 1:\nName: Dracula"},
		}
		got := TurnMessage("less gothic please", types.Filters{}, history)
		if !strings.HasPrefix(got, "Previous conversation:\n") {
			t.Errorf("expected history prefix, got %q", got)
		}
		if !strings.Contains(got, "user: something spooky") {
			t.Error("expected user turn in history")
		}
		if !strings.Contains(got, "\nNew request: less gothic please") {
			t.Error("expected new request suffix")
		}
	})
}
