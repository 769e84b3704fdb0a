package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type componentRepositoryImpl struct {
	db *database.DB
}

func NewComponentRepository(db *database.DB) emolument.ComponentRepository {
	return &componentRepositoryImpl{db: db}
}

const componentColumns = `id, client_id, component_code, component_name, category, payroll_category, is_pensionable, is_taxable, created_at, updated_at`

func scanComponent(row pgx.Row) (emolument.Component, error) {
	var c emolument.Component
	err := row.Scan(
		&c.ID,
		&c.ClientID,
		&c.ComponentCode,
		&c.ComponentName,
		&c.Category,
		&c.PayrollCategory,
		&c.IsPensionable,
		&c.IsTaxable,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) Create(ctx context.Context, c emolument.Component) (emolument.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO emolument_components (id, client_id, component_code, component_name, category, payroll_category, is_pensionable, is_taxable)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + componentColumns

	created, err := scanComponent(q.QueryRow(ctx, query,
		c.ClientID,
		c.ComponentCode,
		c.ComponentName,
		c.Category,
		c.PayrollCategory,
		c.IsPensionable,
		c.IsTaxable,
	))
	if err != nil {
		return emolument.Component{}, fmt.Errorf("failed to create emolument component: %w", err)
	}

	return created, nil
}

// GetByID implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) GetByID(ctx context.Context, id string) (emolument.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentColumns + ` FROM emolument_components WHERE id = $1`

	found, err := scanComponent(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return emolument.Component{}, emolument.ErrComponentNotFound
		}
		return emolument.Component{}, fmt.Errorf("failed to get emolument component: %w", err)
	}

	return found, nil
}

// GetByCode implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) GetByCode(ctx context.Context, clientID string, code string) (emolument.Component, error) {
	q := GetQuerier(ctx, r.db)

	// Client components shadow universal ones with the same code.
	query := `
		SELECT ` + componentColumns + `
		FROM emolument_components
		WHERE component_code = $2 AND (client_id = $1 OR client_id IS NULL)
		ORDER BY client_id NULLS LAST
		LIMIT 1
	`

	found, err := scanComponent(q.QueryRow(ctx, query, clientID, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return emolument.Component{}, emolument.ErrComponentNotFound
		}
		return emolument.Component{}, fmt.Errorf("failed to get emolument component by code: %w", err)
	}

	return found, nil
}

// ListForClient implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) ListForClient(ctx context.Context, clientID string) ([]emolument.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM emolument_components
		WHERE client_id = $1 OR client_id IS NULL
		ORDER BY client_id NULLS FIRST, component_code ASC
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emolument components: %w", err)
	}
	defer rows.Close()

	var components []emolument.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emolument component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emolument components: %w", err)
	}

	return components, nil
}

// Update implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) Update(ctx context.Context, c emolument.Component) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE emolument_components
		SET component_code = $1, component_name = $2, category = $3, payroll_category = $4,
			is_pensionable = $5, is_taxable = $6, updated_at = NOW()
		WHERE id = $7 AND client_id IS NOT NULL
	`

	tag, err := q.Exec(ctx, query,
		c.ComponentCode,
		c.ComponentName,
		c.Category,
		c.PayrollCategory,
		c.IsPensionable,
		c.IsTaxable,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update emolument component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return emolument.ErrComponentNotFound
	}

	return nil
}

// Delete implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM emolument_components WHERE id = $1 AND client_id IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete emolument component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return emolument.ErrComponentNotFound
	}

	return nil
}

// CountPayGradeUses implements emolument.ComponentRepository.
func (r *componentRepositoryImpl) CountPayGradeUses(ctx context.Context, code string, clientID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM pay_grades pg
		JOIN job_structures js ON js.id = pg.job_structure_id
		WHERE js.client_id = $1 AND pg.emoluments ? $2
	`

	var count int64
	err := q.QueryRow(ctx, query, clientID, code).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count component uses: %w", err)
	}

	return count, nil
}
