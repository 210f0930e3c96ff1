package entity

import "time"

// Company holds the reference record for a listed company. Rows are loaded
// by an external process and are read-only to this service.
type Company struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Symbol       string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"symbol"`
	Name         string    `gorm:"not null" json:"name"`
	Sector       string    `json:"sector"`
	SubIndustry  string    `json:"sub_industry"`
	Headquarters string    `json:"headquarters"`
	Founded      string    `json:"founded"`
	Employees    int       `json:"employees"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}
