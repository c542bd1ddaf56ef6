package model

import "database/sql"

// ProductRow is the raw scan target for the aggregated catalog query.
// Column names match the SELECT aliases; nullable columns stay nullable
// here and are defaulted once, in the mapper.
type ProductRow struct {
	ProductID          int64           `gorm:"column:product_id"`
	ProductName        string          `gorm:"column:product_name"`
	ProductDescription sql.NullString  `gorm:"column:product_description"`
	Slug               sql.NullString  `gorm:"column:slug"`
	Price              sql.NullFloat64 `gorm:"column:price"`
	OriginalPrice      sql.NullFloat64 `gorm:"column:original_price"`
	ImageURL           sql.NullString  `gorm:"column:image_url"`
	Rating             sql.NullFloat64 `gorm:"column:rating"`
	ReviewCount        sql.NullInt64   `gorm:"column:review_count"`
	Categories         sql.NullString  `gorm:"column:categories"`
	AvailableSizes     sql.NullString  `gorm:"column:available_sizes"`
	AvailableColors    sql.NullString  `gorm:"column:available_colors"`
}
