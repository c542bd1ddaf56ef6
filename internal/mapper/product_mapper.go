package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"
)

// ProductRowToEntity resolves relational NULLs into the entity defaults.
// This is the single place where defaulting rules live; downstream
// consumers can rely on every field being populated.
func ProductRowToEntity(row *model.ProductRow) *entity.ProductRecord {
	return &entity.ProductRecord{
		ID:            row.ProductID,
		Name:          row.ProductName,
		Description:   row.ProductDescription.String,
		Slug:          row.Slug.String,
		Price:         row.Price.Float64,
		OriginalPrice: row.OriginalPrice.Float64,
		Image:         row.ImageURL.String,
		Rating:        row.Rating.Float64,
		ReviewCount:   int(row.ReviewCount.Int64),
		Categories:    row.Categories.String,
		Sizes:         row.AvailableSizes.String,
		Colors:        row.AvailableColors.String,
	}
}

func ProductRowsToEntities(rows []model.ProductRow) []*entity.ProductRecord {
	entities := make([]*entity.ProductRecord, len(rows))
	for i := range rows {
		entities[i] = ProductRowToEntity(&rows[i])
	}
	return entities
}
