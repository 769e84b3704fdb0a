package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/database"
)

type offerLetterRepositoryImpl struct {
	db *database.DB
}

func NewOfferLetterRepository(db *database.DB) offerletter.TemplateRepository {
	return &offerLetterRepositoryImpl{db: db}
}

const offerLetterColumns = `id, client_id, job_structure_id, pay_grade_id, header, footer, content, variables, created_at, updated_at`

func scanOfferLetter(row pgx.Row) (offerletter.Template, error) {
	var t offerletter.Template
	var header, footer, content, variables []byte
	err := row.Scan(
		&t.ID,
		&t.ClientID,
		&t.JobStructureID,
		&t.PayGradeID,
		&header,
		&footer,
		&content,
		&variables,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return offerletter.Template{}, err
	}

	if err := json.Unmarshal(header, &t.Header); err != nil {
		return offerletter.Template{}, fmt.Errorf("decode header: %w", err)
	}
	if err := json.Unmarshal(footer, &t.Footer); err != nil {
		return offerletter.Template{}, fmt.Errorf("decode footer: %w", err)
	}
	if err := json.Unmarshal(content, &t.Content); err != nil {
		return offerletter.Template{}, fmt.Errorf("decode content: %w", err)
	}
	if err := json.Unmarshal(variables, &t.Variables); err != nil {
		return offerletter.Template{}, fmt.Errorf("decode variables: %w", err)
	}

	return t, nil
}

func encodeOfferLetter(t offerletter.Template) (header, footer, content, variables []byte, err error) {
	if header, err = json.Marshal(t.Header); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode header: %w", err)
	}
	if footer, err = json.Marshal(t.Footer); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode footer: %w", err)
	}
	if content, err = json.Marshal(t.Content); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode content: %w", err)
	}
	if variables, err = json.Marshal(t.Variables); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode variables: %w", err)
	}
	return header, footer, content, variables, nil
}

// Create implements offerletter.TemplateRepository.
func (r *offerLetterRepositoryImpl) Create(ctx context.Context, t offerletter.Template) (offerletter.Template, error) {
	q := GetQuerier(ctx, r.db)

	header, footer, content, variables, err := encodeOfferLetter(t)
	if err != nil {
		return offerletter.Template{}, err
	}

	query := `
		INSERT INTO offer_letter_templates (id, client_id, job_structure_id, pay_grade_id, header, footer, content, variables)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + offerLetterColumns

	created, err := scanOfferLetter(q.QueryRow(ctx, query,
		t.ClientID,
		t.JobStructureID,
		t.PayGradeID,
		header,
		footer,
		content,
		variables,
	))
	if err != nil {
		return offerletter.Template{}, fmt.Errorf("failed to create offer letter template: %w", err)
	}

	return created, nil
}

// GetByID implements offerletter.TemplateRepository.
func (r *offerLetterRepositoryImpl) GetByID(ctx context.Context, id string) (offerletter.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + offerLetterColumns + ` FROM offer_letter_templates WHERE id = $1`

	found, err := scanOfferLetter(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return offerletter.Template{}, offerletter.ErrTemplateNotFound
		}
		return offerletter.Template{}, fmt.Errorf("failed to get offer letter template: %w", err)
	}

	return found, nil
}

// GetByPayGradeID implements offerletter.TemplateRepository.
func (r *offerLetterRepositoryImpl) GetByPayGradeID(ctx context.Context, payGradeID string) (offerletter.Template, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + offerLetterColumns + ` FROM offer_letter_templates WHERE pay_grade_id = $1`

	found, err := scanOfferLetter(q.QueryRow(ctx, query, payGradeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return offerletter.Template{}, offerletter.ErrTemplateNotFound
		}
		return offerletter.Template{}, fmt.Errorf("failed to get offer letter template by pay grade: %w", err)
	}

	return found, nil
}

// Update implements offerletter.TemplateRepository.
func (r *offerLetterRepositoryImpl) Update(ctx context.Context, t offerletter.Template) error {
	q := GetQuerier(ctx, r.db)

	header, footer, content, variables, err := encodeOfferLetter(t)
	if err != nil {
		return err
	}

	query := `
		UPDATE offer_letter_templates
		SET header = $1, footer = $2, content = $3, variables = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, header, footer, content, variables, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update offer letter template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return offerletter.ErrTemplateNotFound
	}

	return nil
}

// Delete implements offerletter.TemplateRepository.
func (r *offerLetterRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM offer_letter_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer letter template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return offerletter.ErrTemplateNotFound
	}

	return nil
}
