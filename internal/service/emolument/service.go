package emolument

import (
	"context"
	"errors"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type ComponentServiceImpl struct {
	db   *database.DB
	repo emolument.ComponentRepository
}

func NewComponentService(db *database.DB, repo emolument.ComponentRepository) emolument.ComponentService {
	return &ComponentServiceImpl{db: db, repo: repo}
}

func (s *ComponentServiceImpl) Create(ctx context.Context, req emolument.CreateComponentRequest) (emolument.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return emolument.ComponentResponse{}, err
	}

	_, err := s.repo.GetByCode(ctx, req.ClientID, req.ComponentCode)
	if err == nil {
		return emolument.ComponentResponse{}, emolument.ErrComponentCodeExists
	}
	if !errors.Is(err, emolument.ErrComponentNotFound) {
		return emolument.ComponentResponse{}, err
	}

	clientID := req.ClientID
	created, err := s.repo.Create(ctx, emolument.Component{
		ClientID:        &clientID,
		ComponentCode:   req.ComponentCode,
		ComponentName:   req.ComponentName,
		Category:        emolument.Category(req.Category),
		PayrollCategory: req.PayrollCategory,
		IsPensionable:   req.IsPensionable,
		IsTaxable:       req.IsTaxable,
	})
	if err != nil {
		return emolument.ComponentResponse{}, err
	}

	return emolument.ToResponse(created), nil
}

func (s *ComponentServiceImpl) Get(ctx context.Context, id string) (emolument.ComponentResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return emolument.ComponentResponse{}, err
	}
	return emolument.ToResponse(found), nil
}

func (s *ComponentServiceImpl) ListForClient(ctx context.Context, clientID string) ([]emolument.ComponentResponse, error) {
	components, err := s.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]emolument.ComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, emolument.ToResponse(c))
	}
	return responses, nil
}

func (s *ComponentServiceImpl) Update(ctx context.Context, req emolument.UpdateComponentRequest) (emolument.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return emolument.ComponentResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return emolument.ComponentResponse{}, err
	}
	if current.IsUniversal() {
		return emolument.ComponentResponse{}, emolument.ErrComponentReadOnly
	}

	if req.ComponentName != nil {
		current.ComponentName = *req.ComponentName
	}
	if req.Category != nil {
		current.Category = emolument.Category(*req.Category)
	}
	if req.PayrollCategory != nil {
		current.PayrollCategory = *req.PayrollCategory
	}
	if req.IsPensionable != nil {
		current.IsPensionable = *req.IsPensionable
	}
	if req.IsTaxable != nil {
		current.IsTaxable = *req.IsTaxable
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return emolument.ComponentResponse{}, err
	}

	return emolument.ToResponse(current), nil
}

// Delete refuses to remove universal components and components still
// referenced by pay grades.
func (s *ComponentServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsUniversal() {
		return emolument.ErrComponentReadOnly
	}

	uses, err := s.repo.CountPayGradeUses(ctx, current.ComponentCode, *current.ClientID)
	if err != nil {
		return err
	}
	if uses > 0 {
		return emolument.ErrComponentInUse
	}

	return s.repo.Delete(ctx, id)
}
