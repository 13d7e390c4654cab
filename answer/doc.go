// Package answer writes a prose answer to a question from ranked journal
// entries.
//
// The Generator asks an ai.Summarizer, retrying with exponential backoff.
// When the model stays unavailable it returns FallbackSummary instead, a
// rule-based summary naming the best entry and the recurring themes.
package answer
