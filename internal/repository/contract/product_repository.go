package contract

import (
	"context"

	"fashion-chatbot-be/internal/entity"
)

// ProductRepository reads catalog products from the relational store of
// truth, aggregated with their categories and variant attributes.
type ProductRepository interface {
	// FetchAllActive returns every active product.
	FetchAllActive(ctx context.Context) ([]*entity.ProductRecord, error)

	// FetchByIds returns the subset of the given ids that exist and are
	// active; missing ids are simply absent from the result.
	FetchByIds(ctx context.Context, ids []int64) ([]*entity.ProductRecord, error)
}
