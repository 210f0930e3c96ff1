package http

import (
	"net/http"

	"stock-news-digest/internal/dto"
	"stock-news-digest/internal/repository"
	"stock-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CompanyHandler handles HTTP requests for company lookups.
type CompanyHandler struct {
	companyRepo repository.CompanyRepository
	logger      *logger.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyRepo repository.CompanyRepository, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{companyRepo: companyRepo, logger: logger}
}

// RegisterRoutes registers the company routes to the Echo group.
func (h *CompanyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetCompany)
}

// GetCompany looks up a company by ticker symbol.
func (h *CompanyHandler) GetCompany(c echo.Context) error {
	ticker := c.Param("ticker")

	company, err := h.companyRepo.FindBySymbol(c.Request().Context(), ticker)
	if err != nil {
		h.logger.Error("Failed to look up company", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An error occurred during company search."})
	}
	if company == nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
	}

	return c.JSON(http.StatusOK, dto.CompanyResponse{
		CompanyName:  company.Name,
		Symbol:       company.Symbol,
		Sector:       company.Sector,
		SubIndustry:  company.SubIndustry,
		Headquarters: company.Headquarters,
		Founded:      company.Founded,
		Employees:    company.Employees,
		Description:  company.Description,
	})
}
