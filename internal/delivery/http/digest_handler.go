package http

import (
	"errors"
	"fmt"
	"net/http"

	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/service"
	"stock-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DigestHandler handles HTTP requests that drive the digest pipeline.
type DigestHandler struct {
	acquisition  service.AcquisitionService
	summarizer   service.SummarizerService
	dailyRollup  service.DailyRollupService
	weeklyRollup service.WeeklyRollupService
	logger       *logger.Logger
}

// NewDigestHandler creates a new DigestHandler.
func NewDigestHandler(
	acquisition service.AcquisitionService,
	summarizer service.SummarizerService,
	dailyRollup service.DailyRollupService,
	weeklyRollup service.WeeklyRollupService,
	logger *logger.Logger,
) *DigestHandler {
	return &DigestHandler{
		acquisition:  acquisition,
		summarizer:   summarizer,
		dailyRollup:  dailyRollup,
		weeklyRollup: weeklyRollup,
		logger:       logger,
	}
}

// RegisterNewsRoutes registers the news trigger routes to the Echo group.
func (h *DigestHandler) RegisterNewsRoutes(g *echo.Group) {
	g.POST("/:ticker/fetch", h.FetchNews)
	g.POST("/summarize", h.Summarize)
}

// RegisterDigestRoutes registers the roll-up routes to the Echo group.
func (h *DigestHandler) RegisterDigestRoutes(g *echo.Group) {
	g.POST("/:ticker/daily", h.RollUpDaily)
	g.POST("/:ticker/weekly", h.RollUpWeekly)
	g.GET("/daily", h.GetDailyByRange)
}

// FetchNews triggers acquisition for a ticker.
func (h *DigestHandler) FetchNews(c echo.Context) error {
	ticker := c.Param("ticker")

	inserted, err := h.acquisition.AcquireNews(c.Request().Context(), ticker)
	if err != nil {
		return h.errorResponse(c, err)
	}

	message := fmt.Sprintf("News for %s fetched and saved.", ticker)
	if inserted == 0 {
		message = fmt.Sprintf("No new articles found for %s.", ticker)
	}
	return c.JSON(http.StatusOK, dto.FetchNewsResponse{Message: message, Inserted: inserted})
}

// Summarize triggers batch summarization of all unprocessed articles.
func (h *DigestHandler) Summarize(c echo.Context) error {
	var req dto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	processed, err := h.summarizer.SummarizeUnprocessed(c.Request().Context(), req.BatchSize)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.SummarizeResponse{
		Message:   fmt.Sprintf("Summarized %d articles.", processed),
		Processed: processed,
	})
}

// RollUpDaily triggers the daily roll-up for a ticker.
func (h *DigestHandler) RollUpDaily(c echo.Context) error {
	ticker := c.Param("ticker")

	if err := h.dailyRollup.RollUpDaily(c.Request().Context(), ticker); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Daily summaries generated for %s.", ticker)})
}

// RollUpWeekly triggers the weekly roll-up for a ticker.
func (h *DigestHandler) RollUpWeekly(c echo.Context) error {
	ticker := c.Param("ticker")

	if err := h.weeklyRollup.RollUpWeekly(c.Request().Context(), ticker); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Weekly summary generated for %s.", ticker)})
}

// GetDailyByRange returns a daily summary for a named range such as
// "Today" or "Yesterday".
func (h *DigestHandler) GetDailyByRange(c echo.Context) error {
	dateRange := c.QueryParam("range")

	summary, err := h.dailyRollup.FindDailyByRange(c.Request().Context(), dateRange)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date range"})
		}
		return h.errorResponse(c, err)
	}
	if summary == nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No summary found for the selected date range."})
	}

	return c.JSON(http.StatusOK, summary)
}

// errorResponse maps the service error taxonomy onto fixed-shape HTTP
// responses. Internals are logged, never exposed.
func (h *DigestHandler) errorResponse(c echo.Context, err error) error {
	h.logger.Error("Request failed", logger.ErrorField(err), logger.StringField("path", c.Path()))

	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
	case errors.Is(err, service.ErrSourceUnavailable):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "News source is unavailable"})
	case errors.Is(err, service.ErrModelInference):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Summarization failed"})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred"})
	}
}
