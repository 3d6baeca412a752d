package recommend

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/novelquest/novelquest/internal/types"
)

// Bounds for the requested number of results.
const (
	MinResults     = 1
	MaxResults     = 10
	DefaultResults = 5
)

// systemPromptTmpl is the fixed system instruction. It constrains the output
// format as tightly as possible: the downstream parser is label-anchored, so
// every instruction here (exact field order, blank link line, no questions
// inside the structured blocks) exists to reduce parse failures.
var systemPromptTmpl = template.Must(template.New("system").Parse(
	`You are an AI that recommends books. Your task is to suggest exactly {{.Count}} books that match the user's description very closely. You will engage in a conversation with the user, refining recommendations based on their preferences.

For each book, provide the following information in this exact format:

Book 1:
{{.FieldOrder}}

Book 2:
... and so on for all {{.Count}} books.

Do not add questions, commentary, or any other text inside or between the book blocks. If you want to continue the conversation, do so only after the final block.

If the user's description is vague or does not provide enough information to recommend {{.Count}} books that closely match, explain this to the user and ask for more details instead of suggesting books that are only loosely related. If you can only find fewer closely matching books, recommend only those and explain why.

If the user asks something unrelated to books, politely redirect them back to book recommendations.

IMPORTANT: List prices in Indian Rupees (₹) as these books will be purchased from Amazon India.`))

// ClampCount bounds a requested result count, substituting the default for
// zero or negative values.
func ClampCount(n int) int {
	switch {
	case n <= 0:
		return DefaultResults
	case n > MaxResults:
		return MaxResults
	}
	return n
}

// SystemPrompt renders the system instruction for the given schema and
// result count.
func SystemPrompt(schema *Schema, count int) string {
	if schema == nil {
		schema = SchemaV2()
	}
	var b strings.Builder
	err := systemPromptTmpl.Execute(&b, struct {
		Count      int
		FieldOrder string
	}{Count: ClampCount(count), FieldOrder: schema.FieldOrder()})
	if err != nil {
		// The template and its inputs are fixed; execution cannot fail.
		panic(err)
	}
	return b.String()
}

// FilterClauses renders active filters as natural-language sentences to be
// appended to the user's request.
func FilterClauses(f types.Filters) string {
	var b strings.Builder
	if f.PageMin > 0 || f.PageMax > 0 {
		switch {
		case f.PageMin > 0 && f.PageMax > 0:
			fmt.Fprintf(&b, " The book should be between %d and %d pages.", f.PageMin, f.PageMax)
		case f.PageMin > 0:
			fmt.Fprintf(&b, " The book should be at least %d pages.", f.PageMin)
		default:
			fmt.Fprintf(&b, " The book should be at most %d pages.", f.PageMax)
		}
	}
	if f.YearMin > 0 || f.YearMax > 0 {
		switch {
		case f.YearMin > 0 && f.YearMax > 0:
			fmt.Fprintf(&b, " The book should be published between %d and %d.", f.YearMin, f.YearMax)
		case f.YearMin > 0:
			fmt.Fprintf(&b, " The book should be published after %d.", f.YearMin)
		default:
			fmt.Fprintf(&b, " The book should be published before %d.", f.YearMax)
		}
	}
	if len(f.Genres) > 0 {
		fmt.Fprintf(&b, " The book should be in the following genres: %s.", strings.Join(f.Genres, ", "))
	}
	return b.String()
}

// TurnMessage combines the user's free-text request with filter clauses and,
// on follow-up turns, the rendered prior conversation.
//
// The caller is responsible for rejecting empty queries before composing.
func TurnMessage(query string, filters types.Filters, history []types.ConversationTurn) string {
	enhanced := strings.TrimSpace(query) + FilterClauses(filters)
	if len(history) == 0 {
		return enhanced
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range history {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nNew request: ")
	b.WriteString(enhanced)
	return b.String()
}
