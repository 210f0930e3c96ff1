package repository

import (
	"fmt"
	"strings"

	"stock-news-digest/internal/entity"
)

// Articles longer than this are truncated before prompting; the lead
// paragraphs carry the substance of a news article.
const maxPromptContentChars = 6000

const batchSummaryInstructions = `You are a financial news editor. Summarize each of the numbered articles below in 2-4 neutral sentences, keeping company names, numbers and percentages.

Respond with a JSON array of strings only, no other text. The array must contain exactly one summary per article, in the same order as the articles.`

// BuildBatchSummaryPrompt builds the prompt for summarizing a batch of
// articles in a single model call.
func BuildBatchSummaryPrompt(articles []entity.Article) string {
	var b strings.Builder
	b.WriteString(batchSummaryInstructions)
	fmt.Fprintf(&b, "\n\nThere are %d articles.\n", len(articles))

	for i, article := range articles {
		content := article.Content
		if len(content) > maxPromptContentChars {
			content = content[:maxPromptContentChars]
		}
		fmt.Fprintf(&b, "\n### Article %d\nTitle: %s\nPublished: %s\nContent:\n%s\n",
			i+1, article.Title, article.PublishedAt.Format("2006-01-02"), content)
	}

	return b.String()
}
