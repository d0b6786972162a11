package doctor

import (
	"context"

	domain "github.com/healthify-app/healthify-api/internal/domain/doctor"
	"github.com/healthify-app/healthify-api/internal/models"
)

type ListPending struct {
	repo domain.Repository
}

func NewListPending(repo domain.Repository) *ListPending {
	return &ListPending{repo: repo}
}

func (uc *ListPending) Execute(ctx context.Context) ([]models.Doctor, error) {
	return uc.repo.ListByStatus(ctx, domain.StatusPending)
}
