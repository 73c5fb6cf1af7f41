package customer

import (
	"context"

	"salesledger/internal/core/apperror"
	"salesledger/internal/core/tx"
	"salesledger/internal/domain"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
}

// NewService creates a Customer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)

	return svc
}

func (s *Service) checkCodeUnique(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	exists, err := s.repo.ExistsByCode(ctx, c.Code)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if exists {
		return apperror.NewDuplicate("customer", "code", c.Code)
	}
	return nil
}
