package jobstructure

import (
	"context"

	"github.com/meridianhr/payroll-backend-go/internal/domain/client"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type JobStructureServiceImpl struct {
	db         *database.DB
	repo       jobstructure.JobStructureRepository
	clientRepo client.ClientRepository
}

func NewJobStructureService(
	db *database.DB,
	repo jobstructure.JobStructureRepository,
	clientRepo client.ClientRepository,
) jobstructure.JobStructureService {
	return &JobStructureServiceImpl{
		db:         db,
		repo:       repo,
		clientRepo: clientRepo,
	}
}

func (s *JobStructureServiceImpl) Create(ctx context.Context, req jobstructure.CreateJobStructureRequest) (jobstructure.JobStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	existing, err := s.repo.ListByClientID(ctx, req.ClientID, false)
	if err != nil {
		return jobstructure.JobStructureResponse{}, err
	}
	for _, j := range existing {
		if j.JobCode == req.JobCode {
			return jobstructure.JobStructureResponse{}, jobstructure.ErrJobCodeExists
		}
	}

	created, err := s.repo.Create(ctx, jobstructure.JobStructure{
		ClientID:       req.ClientID,
		JobCode:        req.JobCode,
		JobTitle:       req.JobTitle,
		ContractType:   jobstructure.ContractType(req.ContractType),
		ContractNature: jobstructure.ContractNature(req.ContractNature),
		PayStructures:  req.PayStructures,
		IsActive:       true,
	})
	if err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	return jobstructure.ToResponse(created), nil
}

func (s *JobStructureServiceImpl) Get(ctx context.Context, id string) (jobstructure.JobStructureResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return jobstructure.JobStructureResponse{}, err
	}
	return jobstructure.ToResponse(found), nil
}

func (s *JobStructureServiceImpl) ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]jobstructure.JobStructureResponse, error) {
	structures, err := s.repo.ListByClientID(ctx, clientID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]jobstructure.JobStructureResponse, 0, len(structures))
	for _, j := range structures {
		responses = append(responses, jobstructure.ToResponse(j))
	}
	return responses, nil
}

func (s *JobStructureServiceImpl) Update(ctx context.Context, req jobstructure.UpdateJobStructureRequest) (jobstructure.JobStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	if req.JobTitle != nil {
		current.JobTitle = *req.JobTitle
	}
	if req.ContractType != nil {
		current.ContractType = jobstructure.ContractType(*req.ContractType)
	}
	if req.ContractNature != nil {
		current.ContractNature = jobstructure.ContractNature(*req.ContractNature)
	}
	if req.PayStructures != nil {
		current.PayStructures = *req.PayStructures
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return jobstructure.JobStructureResponse{}, err
	}

	return jobstructure.ToResponse(current), nil
}

// Delete refuses to remove a job structure that still owns pay grades.
func (s *JobStructureServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountPayGrades(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return jobstructure.ErrHasDependentGrades
	}

	return s.repo.Delete(ctx, id)
}
