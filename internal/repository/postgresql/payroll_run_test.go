package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/payrollrun"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

var testRepoDB *database.DB

func repoTestInit(t *testing.T) {
	t.Helper()
	if testRepoDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testRepoDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
}

func truncateRepoTables(t *testing.T, ctx context.Context) {
	tables := []string{"payroll_line_items", "payroll_runs", "clients"}

	for _, table := range tables {
		_, err := testRepoDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createRepoTestClient(t *testing.T, ctx context.Context, code string) string {
	var clientID string
	err := testRepoDB.QueryRow(ctx, `
		INSERT INTO clients (id, name, code, is_active)
		VALUES (uuidv7(), 'Acme Outsourcing', $1, true)
		RETURNING id
	`, code).Scan(&clientID)
	require.NoError(t, err)
	return clientID
}

func newTestRun(clientID string, month, year int) payrollrun.Run {
	return payrollrun.Run{
		RunName:    fmt.Sprintf("Payroll %d-%02d", year, month),
		ClientID:   clientID,
		Month:      month,
		Year:       year,
		Status:     payrollrun.StatusDraft,
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
	}
}

// A cancelled run frees its period, so a replacement run for the same
// client and month can be created.
func TestPayrollRunGetByPeriodSkipsCancelled(t *testing.T) {
	repoTestInit(t)
	ctx := context.Background()
	truncateRepoTables(t, ctx)

	repo := NewPayrollRunRepository(testRepoDB)
	clientID := createRepoTestClient(t, ctx, "ACME")

	created, err := repo.Create(ctx, newTestRun(clientID, 3, 2026))
	require.NoError(t, err)

	found, err := repo.GetByPeriod(ctx, clientID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	created.Status = payrollrun.StatusCancelled
	require.NoError(t, repo.Update(ctx, created))

	_, err = repo.GetByPeriod(ctx, clientID, 3, 2026)
	assert.ErrorIs(t, err, payrollrun.ErrRunNotFound)

	// The period is open again.
	replacement, err := repo.Create(ctx, newTestRun(clientID, 3, 2026))
	require.NoError(t, err)

	found, err = repo.GetByPeriod(ctx, clientID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, replacement.ID, found.ID)
}

func TestPayrollRunGetByPeriodNotFound(t *testing.T) {
	repoTestInit(t)
	ctx := context.Background()
	truncateRepoTables(t, ctx)

	repo := NewPayrollRunRepository(testRepoDB)
	clientID := createRepoTestClient(t, ctx, "ACME")

	_, err := repo.GetByPeriod(ctx, clientID, 1, 2026)
	assert.ErrorIs(t, err, payrollrun.ErrRunNotFound)
}
