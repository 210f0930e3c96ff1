package repository

import (
	"context"
	"strings"
	"time"

	"stock-news-digest/internal/entity"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// CompanyRepository defines the interface for reading company records.
// Companies are maintained by an external loader, so only lookups exist.
type CompanyRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.Company, error)
	FindAll(ctx context.Context) ([]entity.Company, error)
}

// NewCompanyRepository creates a new instance of CompanyRepository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{
		db:    db,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type companyRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// FindBySymbol looks up a company by ticker symbol, case-insensitively.
// Returns (nil, nil) when no company exists for the symbol.
func (r *companyRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Company, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if cached, found := r.cache.Get(symbol); found {
		company := cached.(entity.Company)
		return &company, nil
	}

	var company entity.Company
	result := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&company)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	r.cache.Set(symbol, company, cache.DefaultExpiration)
	return &company, nil
}

// FindAll returns every company record.
func (r *companyRepository) FindAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Order("symbol asc").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
