package emolument

import "context"

type ComponentRepository interface {
	Create(ctx context.Context, c Component) (Component, error)
	GetByID(ctx context.Context, id string) (Component, error)
	GetByCode(ctx context.Context, clientID string, code string) (Component, error)
	// ListForClient returns the universal set plus the client's own components.
	ListForClient(ctx context.Context, clientID string) ([]Component, error)
	Update(ctx context.Context, c Component) error
	Delete(ctx context.Context, id string) error
	CountPayGradeUses(ctx context.Context, code string, clientID string) (int64, error)
}
