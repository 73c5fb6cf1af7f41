package product

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/tx"
	"salesledger/internal/domain"
	"salesledger/internal/domain/cart"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)

	return svc
}

func (s *Service) checkCodeUnique(ctx context.Context, p *Product) error {
	if p.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	exists, err := s.repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if exists {
		return apperror.NewDuplicate("product", "code", p.Code)
	}
	return nil
}

// CartProduct returns the catalog view the line item aggregator consumes:
// identifier, display fields and the current unit price.
func (s *Service) CartProduct(ctx context.Context, code string) (cart.Product, error) {
	p, err := s.GetByCode(ctx, code)
	if err != nil {
		return cart.Product{}, err
	}
	return cart.Product{
		ID:        p.ID.String(),
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.UnitPrice,
	}, nil
}
