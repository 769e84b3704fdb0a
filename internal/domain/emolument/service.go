package emolument

import "context"

type ComponentService interface {
	Create(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	Get(ctx context.Context, id string) (ComponentResponse, error)
	ListForClient(ctx context.Context, clientID string) ([]ComponentResponse, error)
	Update(ctx context.Context, req UpdateComponentRequest) (ComponentResponse, error)
	Delete(ctx context.Context, id string) error
}
