package openai

import (
	"strings"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/search"
)

const systemPrompt = `You are a thoughtful assistant that answers questions about a person's own journal.
You are given the journal entries most relevant to the question, each with its date,
weekday, relevance and text. Answer in two to four sentences, in the second person
("you went running on Monday"). Use only the entries provided. Mention dates when
they help. If the entries do not answer the question, say so plainly.`

// buildUserPrompt lays out the ranked entries followed by the question.
func buildUserPrompt(query string, results []*core.ScoredResult) string {
	var sb strings.Builder

	sb.WriteString("## Journal Entries\n\n")
	if len(results) == 0 {
		sb.WriteString("(no matching entries)\n")
	} else {
		sb.WriteString(search.RenderResults(results))
	}

	sb.WriteString("\n## Question\n")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\n## Answer\n")

	return sb.String()
}
