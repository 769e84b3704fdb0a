package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type jobStructureRepositoryImpl struct {
	db *database.DB
}

func NewJobStructureRepository(db *database.DB) jobstructure.JobStructureRepository {
	return &jobStructureRepositoryImpl{db: db}
}

const jobStructureColumns = `id, client_id, job_code, job_title, contract_type, contract_nature, pay_structures, is_active, created_at, updated_at`

func scanJobStructure(row pgx.Row) (jobstructure.JobStructure, error) {
	var j jobstructure.JobStructure
	err := row.Scan(
		&j.ID,
		&j.ClientID,
		&j.JobCode,
		&j.JobTitle,
		&j.ContractType,
		&j.ContractNature,
		&j.PayStructures,
		&j.IsActive,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

// Create implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) Create(ctx context.Context, j jobstructure.JobStructure) (jobstructure.JobStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_structures (id, client_id, job_code, job_title, contract_type, contract_nature, pay_structures, is_active)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + jobStructureColumns

	created, err := scanJobStructure(q.QueryRow(ctx, query,
		j.ClientID,
		j.JobCode,
		j.JobTitle,
		j.ContractType,
		j.ContractNature,
		j.PayStructures,
		j.IsActive,
	))
	if err != nil {
		return jobstructure.JobStructure{}, fmt.Errorf("failed to create job structure: %w", err)
	}

	return created, nil
}

// GetByID implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) GetByID(ctx context.Context, id string) (jobstructure.JobStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + jobStructureColumns + ` FROM job_structures WHERE id = $1`

	found, err := scanJobStructure(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return jobstructure.JobStructure{}, jobstructure.ErrJobStructureNotFound
		}
		return jobstructure.JobStructure{}, fmt.Errorf("failed to get job structure: %w", err)
	}

	return found, nil
}

// ListByClientID implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) ListByClientID(ctx context.Context, clientID string, activeOnly bool) ([]jobstructure.JobStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + jobStructureColumns + `
		FROM job_structures
		WHERE client_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY job_code ASC
	`

	rows, err := q.Query(ctx, query, clientID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list job structures: %w", err)
	}
	defer rows.Close()

	var structures []jobstructure.JobStructure
	for rows.Next() {
		j, err := scanJobStructure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job structure: %w", err)
		}
		structures = append(structures, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job structures: %w", err)
	}

	return structures, nil
}

// Update implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) Update(ctx context.Context, j jobstructure.JobStructure) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE job_structures
		SET job_code = $1, job_title = $2, contract_type = $3, contract_nature = $4,
			pay_structures = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		j.JobCode,
		j.JobTitle,
		j.ContractType,
		j.ContractNature,
		j.PayStructures,
		j.IsActive,
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return jobstructure.ErrJobStructureNotFound
	}

	return nil
}

// Delete implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM job_structures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return jobstructure.ErrJobStructureNotFound
	}

	return nil
}

// CountPayGrades implements jobstructure.JobStructureRepository.
func (r *jobStructureRepositoryImpl) CountPayGrades(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pay_grades WHERE job_structure_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pay grades: %w", err)
	}

	return count, nil
}
