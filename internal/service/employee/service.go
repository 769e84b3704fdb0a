package employee

import (
	"context"
	"errors"

	"github.com/meridianhr/payroll-backend-go/internal/domain/client"
	"github.com/meridianhr/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
)

type EmployeeServiceImpl struct {
	repo       employee.EmployeeRepository
	clientRepo client.ClientRepository
	gradeRepo  paygrade.PayGradeRepository
}

func NewEmployeeService(
	repo employee.EmployeeRepository,
	clientRepo client.ClientRepository,
	gradeRepo paygrade.PayGradeRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		repo:       repo,
		clientRepo: clientRepo,
		gradeRepo:  gradeRepo,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err := s.repo.GetByCode(ctx, req.ClientID, req.EmployeeCode)
	if err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}

	if req.PayGradeID != nil {
		if _, err := s.gradeRepo.GetByID(ctx, *req.PayGradeID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	created, err := s.repo.Create(ctx, employee.Employee{
		ClientID:     req.ClientID,
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		PayGradeID:   req.PayGradeID,
		IsActive:     true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(found), nil
}

func (s *EmployeeServiceImpl) ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]employee.EmployeeResponse, error) {
	staff, err := s.repo.ListByClientID(ctx, clientID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(staff))
	for _, e := range staff {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.PayGradeID != nil {
		if _, err := s.gradeRepo.GetByID(ctx, *req.PayGradeID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		current.PayGradeID = req.PayGradeID
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(current), nil
}
