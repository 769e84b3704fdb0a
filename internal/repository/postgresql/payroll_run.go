package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/payrollrun"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payrollrun.RunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

const runColumns = `id, run_name, client_id, month, year, status, employee_count, total_gross, total_net, approved_by, approved_at, exported_at, created_at, updated_at`

func scanRun(row pgx.Row) (payrollrun.Run, error) {
	var run payrollrun.Run
	err := row.Scan(
		&run.ID,
		&run.RunName,
		&run.ClientID,
		&run.Month,
		&run.Year,
		&run.Status,
		&run.EmployeeCount,
		&run.TotalGross,
		&run.TotalNet,
		&run.ApprovedBy,
		&run.ApprovedAt,
		&run.ExportedAt,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	return run, err
}

// Create implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) Create(ctx context.Context, run payrollrun.Run) (payrollrun.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, run_name, client_id, month, year, status, employee_count, total_gross, total_net)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.RunName,
		run.ClientID,
		run.Month,
		run.Year,
		run.Status,
		run.EmployeeCount,
		run.TotalGross,
		run.TotalNet,
	))
	if err != nil {
		return payrollrun.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

// GetByID implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) GetByID(ctx context.Context, id string) (payrollrun.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`

	found, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollrun.Run{}, payrollrun.ErrRunNotFound
		}
		return payrollrun.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return found, nil
}

// GetByPeriod implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) GetByPeriod(ctx context.Context, clientID string, month, year int) (payrollrun.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE client_id = $1 AND month = $2 AND year = $3 AND status != 'cancelled'`

	found, err := scanRun(q.QueryRow(ctx, query, clientID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollrun.Run{}, payrollrun.ErrRunNotFound
		}
		return payrollrun.Run{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return found, nil
}

// List implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) List(ctx context.Context, clientID string) ([]payrollrun.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE client_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payrollrun.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}

	return runs, nil
}

// Update implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) Update(ctx context.Context, run payrollrun.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, employee_count = $2, total_gross = $3, total_net = $4,
			approved_by = $5, approved_at = $6, exported_at = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, query,
		run.Status,
		run.EmployeeCount,
		run.TotalGross,
		run.TotalNet,
		run.ApprovedBy,
		run.ApprovedAt,
		run.ExportedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payrollrun.ErrRunNotFound
	}

	return nil
}

// Delete implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Line items cascade via FK.
	tag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payrollrun.ErrRunNotFound
	}

	return nil
}

// ReplaceLineItems implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) ReplaceLineItems(ctx context.Context, runID string, items []payrollrun.LineItem) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_line_items WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear payroll line items: %w", err)
	}

	query := `
		INSERT INTO payroll_line_items (
			id, run_id, employee_id, employee_code, employee_name, pay_grade_name,
			days_present, period_days, prorated,
			gross, pension, nhf, nsitf, paye, total_deduction, net
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for _, item := range items {
		_, err := q.Exec(ctx, query,
			runID,
			item.EmployeeID,
			item.EmployeeCode,
			item.EmployeeName,
			item.PayGradeName,
			item.DaysPresent,
			item.PeriodDays,
			item.Prorated,
			item.Gross,
			item.Pension,
			item.NHF,
			item.NSITF,
			item.PAYE,
			item.TotalDeduction,
			item.Net,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payroll line item: %w", err)
		}
	}

	return nil
}

// GetLineItems implements payrollrun.RunRepository.
func (r *payrollRunRepositoryImpl) GetLineItems(ctx context.Context, runID string) ([]payrollrun.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, employee_code, employee_name, pay_grade_name,
			   days_present, period_days, prorated,
			   gross, pension, nhf, nsitf, paye, total_deduction, net
		FROM payroll_line_items
		WHERE run_id = $1
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll line items: %w", err)
	}
	defer rows.Close()

	var items []payrollrun.LineItem
	for rows.Next() {
		var item payrollrun.LineItem
		err := rows.Scan(
			&item.ID,
			&item.RunID,
			&item.EmployeeID,
			&item.EmployeeCode,
			&item.EmployeeName,
			&item.PayGradeName,
			&item.DaysPresent,
			&item.PeriodDays,
			&item.Prorated,
			&item.Gross,
			&item.Pension,
			&item.NHF,
			&item.NSITF,
			&item.PAYE,
			&item.TotalDeduction,
			&item.Net,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll line items: %w", err)
	}

	return items, nil
}
