package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/domain/entity"
	"github.com/tokoberkah/kasir-api/internal/domain/repository"
	"github.com/tokoberkah/kasir-api/pkg/apperror"
	"github.com/tokoberkah/kasir-api/pkg/pagination"
)

// ProductService exposes the catalog read surface the POS client needs to
// build a cart. The catalog itself is mutated elsewhere.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with optional name search
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}
