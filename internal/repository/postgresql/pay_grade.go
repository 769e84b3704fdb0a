package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type payGradeRepositoryImpl struct {
	db *database.DB
}

func NewPayGradeRepository(db *database.DB) paygrade.PayGradeRepository {
	return &payGradeRepositoryImpl{db: db}
}

const payGradeColumns = `id, job_structure_id, grade_name, grade_code, pay_structure_type, emoluments, currency, is_active, created_at, updated_at`

func scanPayGrade(row pgx.Row) (paygrade.PayGrade, error) {
	var p paygrade.PayGrade
	var emoluments []byte
	err := row.Scan(
		&p.ID,
		&p.JobStructureID,
		&p.GradeName,
		&p.GradeCode,
		&p.PayStructureType,
		&emoluments,
		&p.Currency,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return paygrade.PayGrade{}, err
	}
	if err := json.Unmarshal(emoluments, &p.Emoluments); err != nil {
		return paygrade.PayGrade{}, fmt.Errorf("decode emoluments: %w", err)
	}
	if p.Emoluments == nil {
		p.Emoluments = map[string]decimal.Decimal{}
	}
	return p, nil
}

func encodeEmoluments(p paygrade.PayGrade) ([]byte, error) {
	if p.Emoluments == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.Emoluments)
}

// Create implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) Create(ctx context.Context, p paygrade.PayGrade) (paygrade.PayGrade, error) {
	q := GetQuerier(ctx, r.db)

	emoluments, err := encodeEmoluments(p)
	if err != nil {
		return paygrade.PayGrade{}, fmt.Errorf("encode emoluments: %w", err)
	}

	query := `
		INSERT INTO pay_grades (id, job_structure_id, grade_name, grade_code, pay_structure_type, emoluments, currency, is_active)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + payGradeColumns

	created, err := scanPayGrade(q.QueryRow(ctx, query,
		p.JobStructureID,
		p.GradeName,
		p.GradeCode,
		p.PayStructureType,
		emoluments,
		p.Currency,
		p.IsActive,
	))
	if err != nil {
		return paygrade.PayGrade{}, fmt.Errorf("failed to create pay grade: %w", err)
	}

	return created, nil
}

// GetByID implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) GetByID(ctx context.Context, id string) (paygrade.PayGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payGradeColumns + ` FROM pay_grades WHERE id = $1`

	found, err := scanPayGrade(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paygrade.PayGrade{}, paygrade.ErrPayGradeNotFound
		}
		return paygrade.PayGrade{}, fmt.Errorf("failed to get pay grade: %w", err)
	}

	return found, nil
}

// GetByCode implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) GetByCode(ctx context.Context, jobStructureID string, gradeCode string) (paygrade.PayGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payGradeColumns + ` FROM pay_grades WHERE job_structure_id = $1 AND grade_code = $2`

	found, err := scanPayGrade(q.QueryRow(ctx, query, jobStructureID, gradeCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paygrade.PayGrade{}, paygrade.ErrPayGradeNotFound
		}
		return paygrade.PayGrade{}, fmt.Errorf("failed to get pay grade by code: %w", err)
	}

	return found, nil
}

// ListByJobStructureID implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) ListByJobStructureID(ctx context.Context, jobStructureID string) ([]paygrade.PayGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payGradeColumns + `
		FROM pay_grades
		WHERE job_structure_id = $1
		ORDER BY grade_code ASC
	`

	rows, err := q.Query(ctx, query, jobStructureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay grades: %w", err)
	}
	defer rows.Close()

	var grades []paygrade.PayGrade
	for rows.Next() {
		p, err := scanPayGrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay grade: %w", err)
		}
		grades = append(grades, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay grades: %w", err)
	}

	return grades, nil
}

// Update implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) Update(ctx context.Context, p paygrade.PayGrade) error {
	q := GetQuerier(ctx, r.db)

	emoluments, err := encodeEmoluments(p)
	if err != nil {
		return fmt.Errorf("encode emoluments: %w", err)
	}

	query := `
		UPDATE pay_grades
		SET grade_name = $1, grade_code = $2, pay_structure_type = $3, emoluments = $4,
			currency = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		p.GradeName,
		p.GradeCode,
		p.PayStructureType,
		emoluments,
		p.Currency,
		p.IsActive,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pay grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paygrade.ErrPayGradeNotFound
	}

	return nil
}

// Upsert implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) Upsert(ctx context.Context, p paygrade.PayGrade) (paygrade.PayGrade, error) {
	q := GetQuerier(ctx, r.db)

	emoluments, err := encodeEmoluments(p)
	if err != nil {
		return paygrade.PayGrade{}, fmt.Errorf("encode emoluments: %w", err)
	}

	query := `
		INSERT INTO pay_grades (id, job_structure_id, grade_name, grade_code, pay_structure_type, emoluments, currency, is_active)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (job_structure_id, grade_code) DO UPDATE
		SET grade_name = EXCLUDED.grade_name,
			pay_structure_type = EXCLUDED.pay_structure_type,
			emoluments = EXCLUDED.emoluments,
			currency = EXCLUDED.currency,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + payGradeColumns

	saved, err := scanPayGrade(q.QueryRow(ctx, query,
		p.JobStructureID,
		p.GradeName,
		p.GradeCode,
		p.PayStructureType,
		emoluments,
		p.Currency,
		p.IsActive,
	))
	if err != nil {
		return paygrade.PayGrade{}, fmt.Errorf("failed to upsert pay grade: %w", err)
	}

	return saved, nil
}

// Delete implements paygrade.PayGradeRepository.
func (r *payGradeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pay_grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pay grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paygrade.ErrPayGradeNotFound
	}

	return nil
}
