package client

import (
	"context"

	"github.com/meridianhr/payroll-backend-go/internal/domain/client"
)

type ClientServiceImpl struct {
	repo client.ClientRepository
}

func NewClientService(repo client.ClientRepository) client.ClientService {
	return &ClientServiceImpl{repo: repo}
}

func (s *ClientServiceImpl) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	existing, err := s.repo.List(ctx, false)
	if err != nil {
		return client.ClientResponse{}, err
	}
	for _, c := range existing {
		if c.Code == req.Code {
			return client.ClientResponse{}, client.ErrClientCodeExists
		}
	}

	created, err := s.repo.Create(ctx, client.Client{
		Name:     req.Name,
		Code:     req.Code,
		IsActive: true,
	})
	if err != nil {
		return client.ClientResponse{}, err
	}

	return client.ToResponse(created), nil
}

func (s *ClientServiceImpl) Get(ctx context.Context, id string) (client.ClientResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(found), nil
}

func (s *ClientServiceImpl) List(ctx context.Context, activeOnly bool) ([]client.ClientResponse, error) {
	clients, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.ToResponse(c))
	}
	return responses, nil
}

func (s *ClientServiceImpl) Update(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return client.ClientResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return client.ClientResponse{}, err
	}

	return client.ToResponse(current), nil
}
