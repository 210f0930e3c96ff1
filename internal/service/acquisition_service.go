package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/entity"
	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/scraper"
	"stock-news-digest/pkg/utils"
)

// AcquisitionService fetches, scrapes and persists news articles for a
// ticker.
type AcquisitionService interface {
	// AcquireNews returns the number of new articles persisted. Zero with
	// a nil error is a valid outcome.
	AcquireNews(ctx context.Context, ticker string) (int, error)
}

// NewAcquisitionService creates a new AcquisitionService.
func NewAcquisitionService(
	companyRepo repository.CompanyRepository,
	articleRepo repository.ArticleRepository,
	newsRepo repository.NewsRepository,
	sc scraper.Scraper,
	log *logger.Logger,
	cfg *config.Config,
) AcquisitionService {
	workers := cfg.Scraper.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	lookbackDays := cfg.News.LookbackDays
	if lookbackDays <= 0 {
		lookbackDays = 7
	}

	return &acquisitionService{
		companyRepo: companyRepo,
		articleRepo: articleRepo,
		newsRepo:    newsRepo,
		scraper:     sc,
		logger:      log,
		workers:     workers,
		lookback:    time.Duration(lookbackDays) * 24 * time.Hour,
	}
}

type acquisitionService struct {
	companyRepo repository.CompanyRepository
	articleRepo repository.ArticleRepository
	newsRepo    repository.NewsRepository
	scraper     scraper.Scraper
	logger      *logger.Logger
	workers     int
	lookback    time.Duration
}

// AcquireNews resolves the company, computes the incremental fetch window,
// queries the news source, scrapes article bodies across a worker pool and
// persists the surviving batch as unprocessed articles.
func (s *acquisitionService) AcquireNews(ctx context.Context, ticker string) (int, error) {
	company, err := s.companyRepo.FindBySymbol(ctx, ticker)
	if err != nil {
		return 0, storeErr(err)
	}
	if company == nil {
		return 0, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}

	latest, err := s.articleRepo.LatestPublishedAt(ctx, company.Symbol)
	if err != nil {
		return 0, storeErr(err)
	}

	from, to := fetchWindow(latest, time.Now().UTC(), s.lookback)
	query := fmt.Sprintf("%q OR %s", company.Name, company.Symbol)

	s.logger.Info("Fetching news",
		logger.StringField("ticker", company.Symbol),
		logger.StringField("query", query),
		logger.StringField("from", from.Format(time.RFC3339)),
		logger.StringField("to", to.Format(time.RFC3339)),
	)

	stubs, err := s.newsRepo.Search(ctx, query, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if len(stubs) == 0 {
		s.logger.Info("No articles found", logger.StringField("ticker", company.Symbol))
		return 0, nil
	}

	articles := s.scrapeAll(ctx, company, stubs)
	if len(articles) == 0 {
		s.logger.Info("No articles left after scraping", logger.StringField("ticker", company.Symbol))
		return 0, nil
	}

	inserted, err := s.articleRepo.CreateBatch(ctx, articles)
	if err != nil {
		return 0, storeErr(err)
	}

	s.logger.Info("Persisted articles",
		logger.StringField("ticker", company.Symbol),
		logger.IntField("fetched", len(stubs)),
		logger.IntField("scraped", len(articles)),
		logger.IntField("inserted", inserted),
	)

	return inserted, nil
}

// scrapeAll fetches article bodies across a bounded worker pool. Articles
// whose scrape fails are dropped; the rest are collected behind the
// WaitGroup barrier so persistence happens as a single batch.
func (s *acquisitionService) scrapeAll(ctx context.Context, company *entity.Company, stubs []dto.ProviderArticle) []*entity.Article {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		articles []*entity.Article
	)

	semaphore := make(chan struct{}, s.workers)

	for _, stub := range stubs {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		item := stub
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			content, err := s.scraper.Extract(ctx, item.URL)
			if err != nil {
				s.logger.Warn("Dropping article, scrape failed",
					logger.ErrorField(err),
					logger.StringField("url", item.URL),
				)
				return
			}

			article := &entity.Article{
				Ticker:      company.Symbol,
				CompanyName: company.Name,
				Source:      item.Source,
				Author:      item.Author,
				Title:       utils.CleanToValidUTF8(item.Title),
				Description: utils.CleanToValidUTF8(item.Description),
				URL:         item.URL,
				ImageURL:    item.ImageURL,
				PublishedAt: item.PublishedAt,
				Content:     content,
				Status:      entity.ArticleStatusUnprocessed,
			}

			mu.Lock()
			articles = append(articles, article)
			mu.Unlock()
		})
	}

	wg.Wait()
	return articles
}

// fetchWindow computes the incremental fetch window: from the latest stored
// published timestamp, or lookback before now when the ticker has no
// articles yet, up to now. The watermark tolerates articles published
// earlier but indexed later by the source.
func fetchWindow(latest *time.Time, now time.Time, lookback time.Duration) (from, to time.Time) {
	if latest != nil {
		return latest.UTC(), now
	}
	return now.Add(-lookback), now
}
