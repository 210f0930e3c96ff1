package dto

import "time"

// ProviderArticle is the article stub a news provider returns before the
// full body is scraped.
type ProviderArticle struct {
	Source      string
	Author      string
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

// NewsAPIResponse mirrors the everything-endpoint response of a NewsAPI
// style provider.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is a single article stub in a NewsAPIResponse.
type NewsAPIArticle struct {
	Source      NewsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt time.Time     `json:"publishedAt"`
}

// NewsAPISource names the outlet an article came from.
type NewsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
