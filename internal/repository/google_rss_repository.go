package repository

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"stock-news-digest/internal/dto"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/utils"

	"github.com/mmcdole/gofeed"
)

// googleRSSRepository is an alternate NewsRepository backed by the Google
// News RSS search feed. It needs no API key, at the cost of coarser
// metadata than a NewsAPI-style endpoint.
type googleRSSRepository struct {
	parser *gofeed.Parser
	logger *logger.Logger
}

// NewGoogleRSSRepository creates a NewsRepository backed by Google News RSS.
func NewGoogleRSSRepository(log *logger.Logger) NewsRepository {
	return &googleRSSRepository{
		parser: gofeed.NewParser(),
		logger: log,
	}
}

// Search queries the RSS search feed and filters items to the [from, to]
// window, since the feed itself cannot be range-bounded.
func (r *googleRSSRepository) Search(ctx context.Context, query string, from, to time.Time) ([]dto.ProviderArticle, error) {
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en", url.QueryEscape(query))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	sort.Slice(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.Before(*feed.Items[j].PublishedParsed)
	})

	var articles []dto.ProviderArticle
	for _, item := range feed.Items {
		if item.PublishedParsed == nil {
			r.logger.Debug("Skipping item without published date", logger.StringField("link", item.Link))
			continue
		}
		publishedAt := item.PublishedParsed.UTC()
		if publishedAt.Before(from) || publishedAt.After(to) {
			continue
		}

		source := ""
		if parsed, err := url.Parse(item.Link); err == nil {
			source = parsed.Hostname()
		}

		author := ""
		if len(item.Authors) > 0 {
			author = item.Authors[0].Name
		}

		articles = append(articles, dto.ProviderArticle{
			Source:      source,
			Author:      author,
			Title:       utils.CleanToValidUTF8(item.Title),
			Description: utils.CleanToValidUTF8(item.Description),
			URL:         item.Link,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}
