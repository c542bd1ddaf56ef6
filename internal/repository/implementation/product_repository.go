package implementation

import (
	"context"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/mapper"
	"fashion-chatbot-be/internal/model"
	"fashion-chatbot-be/internal/repository/contract"

	"gorm.io/gorm"
)

// The catalog schema is owned by the storefront backend (Prisma-managed,
// quoted CamelCase identifiers), so products are read with a raw
// aggregation query instead of gorm models per table.
const productSelect = `
	SELECT
		p.id AS product_id,
		p.name AS product_name,
		p.description AS product_description,
		p.slug,

		p.price,
		p."originalPrice" AS original_price,
		p.thumbnail AS image_url,
		p.rating,
		p."reviewCount" AS review_count,

		STRING_AGG(DISTINCT c.name, ', ') AS categories,

		STRING_AGG(DISTINCT pv.size, ', ') AS available_sizes,
		STRING_AGG(DISTINCT pv.color, ', ') AS available_colors

	FROM "Product" p
	LEFT JOIN "_CategoryToProduct" cp ON cp."B" = p.id
	LEFT JOIN "Category" c ON c.id = cp."A"
	LEFT JOIN "ProductVariant" pv ON pv."productId" = p.id
`

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FetchAllActive(ctx context.Context) ([]*entity.ProductRecord, error) {
	var rows []model.ProductRow
	query := productSelect + ` WHERE p."isActive" = TRUE GROUP BY p.id`

	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return mapper.ProductRowsToEntities(rows), nil
}

func (r *productRepository) FetchByIds(ctx context.Context, ids []int64) ([]*entity.ProductRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []model.ProductRow
	query := productSelect + ` WHERE p.id IN ? GROUP BY p.id`

	if err := r.db.WithContext(ctx).Raw(query, ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return mapper.ProductRowsToEntities(rows), nil
}
