package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sitegen/internal/dto"
	"github.com/octobees/sitegen/internal/entity"
)

var (
	// ErrLeadNotFound is returned when no lead matches the lookup.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrDuplicateLead is returned when an idempotency key was already used.
	ErrDuplicateLead = errors.New("lead already recorded")
)

// pgxPool is the subset of *pgxpool.Pool the repositories use.
type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// LeadsRepository persists lead form submissions.
type LeadsRepository interface {
	Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Lead, error)
	MarkForwarded(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.LeadFilter) ([]entity.Lead, error)
}

// CreateLeadInput holds the normalized submission.
type CreateLeadInput struct {
	FormID         string
	Email          *string
	Phone          *string
	FormData       map[string]any
	IdempotencyKey *string
}

// PGXLeadsRepository implements LeadsRepository with pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository instantiates a leads repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

// Create inserts a lead that has not been forwarded yet.
func (r *PGXLeadsRepository) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if strings.TrimSpace(input.FormID) == "" {
		return nil, fmt.Errorf("form id is required")
	}
	data := input.FormData
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode form data: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (form_id, email, phone, form_data, idempotency_key)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, input.FormID, input.Email, input.Phone, raw, input.IdempotencyKey)

	lead := entity.Lead{
		FormID:   input.FormID,
		Email:    input.Email,
		Phone:    input.Phone,
		FormData: data,
	}
	if err := row.Scan(&lead.ID, &lead.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "idempotency_key") {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateLead, pgErr)
		}
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return &lead, nil
}

// FindByIdempotencyKey returns the lead stored under key.
func (r *PGXLeadsRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, form_id, email, phone, form_data, forwarded, created_at
        FROM leads
        WHERE idempotency_key = $1
    `, key)
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, ErrLeadNotFound
	}
	return &leads[0], nil
}

// MarkForwarded flags a lead as delivered to the CMS.
func (r *PGXLeadsRepository) MarkForwarded(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET forwarded = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark lead forwarded: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// List returns leads newest first.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.LeadFilter) ([]entity.Lead, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.FormID != "" {
		args = append(args, filter.FormID)
		clauses = append(clauses, fmt.Sprintf("form_id = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT id, form_id, email, phone, form_data, forwarded, created_at FROM leads`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func scanLeads(rows pgx.Rows) ([]entity.Lead, error) {
	leads := make([]entity.Lead, 0)
	for rows.Next() {
		var (
			lead      entity.Lead
			email     *string
			phone     *string
			raw       []byte
			createdAt time.Time
		)
		if err := rows.Scan(&lead.ID, &lead.FormID, &email, &phone, &raw, &lead.Forwarded, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		lead.Email = email
		lead.Phone = phone
		lead.CreatedAt = createdAt
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &lead.FormData); err != nil {
				return nil, fmt.Errorf("decode lead form data: %w", err)
			}
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

var _ LeadsRepository = (*PGXLeadsRepository)(nil)
