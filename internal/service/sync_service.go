// FILE: internal/service/sync_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/contract"
	"fashion-chatbot-be/pkg/embedding"
	"fashion-chatbot-be/pkg/vectorstore"
)

type ISyncService interface {
	// SyncAll re-indexes every active product.
	SyncAll(ctx context.Context) error

	// SyncSpecifics re-indexes the given product ids. Ids missing from the
	// database are skipped silently.
	SyncSpecifics(ctx context.Context, productIds []int64) error

	// DeleteProducts removes the given ids from the vector index.
	DeleteProducts(ctx context.Context, productIds []int64) error

	// EnsureCollection creates the vector collection when absent.
	EnsureCollection(ctx context.Context) error
}

type syncService struct {
	productRepo       contract.ProductRepository
	embeddingProvider embedding.EmbeddingProvider
	store             vectorstore.VectorStore
	denseVectorSize   int
	logger            logger.ILogger
}

func NewSyncService(
	productRepo contract.ProductRepository,
	embeddingProvider embedding.EmbeddingProvider,
	store vectorstore.VectorStore,
	denseVectorSize int,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		productRepo:       productRepo,
		embeddingProvider: embeddingProvider,
		store:             store,
		denseVectorSize:   denseVectorSize,
		logger:            log,
	}
}

func (s *syncService) SyncAll(ctx context.Context) error {
	products, err := s.productRepo.FetchAllActive(ctx)
	if err != nil {
		s.logger.Error("SyncService", "Failed to fetch catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return s.indexProducts(ctx, products, constant.SyncAllBatchSize)
}

func (s *syncService) SyncSpecifics(ctx context.Context, productIds []int64) error {
	if len(productIds) == 0 {
		return nil
	}

	products, err := s.productRepo.FetchByIds(ctx, productIds)
	if err != nil {
		s.logger.Error("SyncService", "Failed to fetch products", map[string]interface{}{
			"product_ids": productIds,
			"error":       err.Error(),
		})
		return err
	}

	return s.indexProducts(ctx, products, constant.SyncSpecificsBatchSize)
}

func (s *syncService) DeleteProducts(ctx context.Context, productIds []int64) error {
	if len(productIds) == 0 {
		return nil
	}

	if err := s.store.Delete(ctx, productIds); err != nil {
		s.logger.Error("SyncService", "Failed to delete products from index", map[string]interface{}{
			"product_ids": productIds,
			"error":       err.Error(),
		})
		return err
	}

	s.logger.Info("SyncService", "Products removed from index", map[string]interface{}{
		"count": len(productIds),
	})
	return nil
}

func (s *syncService) EnsureCollection(ctx context.Context) error {
	return s.store.EnsureCollection(ctx, s.denseVectorSize)
}

// indexProducts embeds and upserts products in sequential batches. An empty
// product list is a no-op; the first failing batch aborts the job.
func (s *syncService) indexProducts(ctx context.Context, products []*entity.ProductRecord, batchSize int) error {
	if len(products) == 0 {
		s.logger.Info("SyncService", "Nothing to index", nil)
		return nil
	}

	for start := 0; start < len(products); start += batchSize {
		end := start + batchSize
		if end > len(products) {
			end = len(products)
		}

		if err := s.indexBatch(ctx, products[start:end]); err != nil {
			s.logger.Error("SyncService", "Batch indexing failed", map[string]interface{}{
				"batch_start": start,
				"batch_size":  end - start,
				"error":       err.Error(),
			})
			return err
		}
	}

	s.logger.Info("SyncService", "Catalog indexed", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (s *syncService) indexBatch(ctx context.Context, products []*entity.ProductRecord) error {
	texts := make([]string, len(products))
	for i, product := range products {
		texts[i] = buildSemanticText(product)
	}

	dense, sparse, err := s.embeddingProvider.Embed(texts)
	if err != nil {
		return fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(dense) != len(products) || len(sparse) != len(products) {
		return fmt.Errorf("embedding count mismatch: %d products, %d dense / %d sparse", len(products), len(dense), len(sparse))
	}

	points := make([]vectorstore.Point, len(products))
	for i, product := range products {
		points[i] = vectorstore.Point{
			ID:     product.ID,
			Dense:  dense[i],
			Sparse: sparse[i],
			Payload: vectorstore.ProductPayload{
				ProductID:     product.ID,
				Name:          product.Name,
				Description:   product.Description,
				Price:         product.Price,
				OriginalPrice: product.OriginalPrice,
				Image:         product.Image,
				Rating:        product.Rating,
				ReviewCount:   product.ReviewCount,
				Categories:    product.Categories,
				Sizes:         product.Sizes,
				Colors:        product.Colors,
				Slug:          product.Slug,
				TextContent:   texts[i],
			},
		}
	}

	return s.store.Upsert(ctx, points)
}

// buildSemanticText renders the product attributes into the document that
// gets embedded on both the dense and sparse branches.
func buildSemanticText(p *entity.ProductRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product Name: %s.\n", p.Name)
	fmt.Fprintf(&sb, "Categories: %s.\n", p.Categories)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Price: %.2f.\n", p.Price)
	fmt.Fprintf(&sb, "Rating: %.1f from %d reviews.\n", p.Rating, p.ReviewCount)
	fmt.Fprintf(&sb, "Available Colors: %s.\n", p.Colors)
	fmt.Fprintf(&sb, "Available Sizes: %s.", p.Sizes)
	return sb.String()
}
