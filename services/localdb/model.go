package localdb

// Hotel is the local index row, ingested from the scraping pipeline.
type Hotel struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"column:name"`
	City          string  `gorm:"column:city"`
	PriceRange    string  `gorm:"column:price_range"`
	AvgReview     float64 `gorm:"column:avg_review"`
	ReviewCount   int     `gorm:"column:review_count"`
	PrimaryInfo   string  `gorm:"column:primary_info"`
	SecondaryInfo string  `gorm:"column:secondary_info"`
	Description   string  `gorm:"column:description"`
	AmenitiesJSON string  `gorm:"column:amenities_json"`
	Active        bool    `gorm:"column:active"`
}

func (Hotel) TableName() string { return "hotels" }
