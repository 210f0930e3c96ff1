package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-news-digest/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

// ErrContentUnavailable indicates the page yielded no usable article text.
// Callers treat this as a per-article condition, not a hard failure.
var ErrContentUnavailable = errors.New("article content unavailable")

// Scraper extracts readable article text from a URL.
type Scraper interface {
	Extract(ctx context.Context, url string) (string, error)
}

// ReadabilityScraper pulls a page over HTTP and runs it through readability
// to strip navigation, ads and boilerplate.
type ReadabilityScraper struct {
	client *http.Client
}

// NewReadabilityScraper creates a scraper with the given per-request timeout.
func NewReadabilityScraper(timeout time.Duration) *ReadabilityScraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReadabilityScraper{
		client: &http.Client{Timeout: timeout},
	}
}

// Extract fetches the URL and returns the cleaned article body. Returns
// ErrContentUnavailable when no usable text can be extracted.
func (s *ReadabilityScraper) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	content, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse extracted content: %w", err)
	}

	text := cleanParagraphs(content)
	if text == "" {
		return "", ErrContentUnavailable
	}

	return utils.CleanToValidUTF8(text), nil
}

// cleanParagraphs joins the non-empty paragraphs of the extracted document
// with blank lines, falling back to the whole document text when the markup
// has no paragraph tags.
func cleanParagraphs(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return strings.TrimSpace(doc.Text())
	}

	return strings.Join(paragraphs, "\n\n")
}
