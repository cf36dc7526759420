package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/sitegen/internal/dto"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

type stubRows struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (s *stubRows) Close() {}

func (s *stubRows) Err() error { return s.err }

func (s *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *stubRows) Next() bool {
	if s.err != nil {
		return false
	}
	if s.idx < len(s.scans) {
		s.idx++
		return true
	}
	return false
}

func (s *stubRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.scans) {
		return errors.New("scan called out of order")
	}
	return s.scans[s.idx-1](dest...)
}

func (s *stubRows) Values() ([]any, error) { return nil, nil }

func (s *stubRows) RawValues() [][]byte { return nil }

func (s *stubRows) Conn() *pgx.Conn { return nil }

func TestPGXLeadsRepository_Create(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var gotArgs []any

	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotArgs = args
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*time.Time) = created
				return nil
			}}
		},
	}}

	email := "ana@example.com"
	lead, err := repo.Create(context.Background(), CreateLeadInput{FormID: "contact", Email: &email})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID != id || !lead.CreatedAt.Equal(created) {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if lead.FormData == nil {
		t.Fatalf("expected empty form data map, got nil")
	}
	if string(gotArgs[3].([]byte)) != "{}" {
		t.Fatalf("expected encoded empty object, got %s", gotArgs[3])
	}

	if _, err := repo.Create(context.Background(), CreateLeadInput{FormID: "  "}); err == nil {
		t.Fatalf("expected validation error for blank form id")
	}
}

func TestPGXLeadsRepository_CreateDuplicate(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "leads_idempotency_key_key"}
			}}
		},
	}}

	key := "abc"
	_, err := repo.Create(context.Background(), CreateLeadInput{FormID: "contact", IdempotencyKey: &key})
	if !errors.Is(err, ErrDuplicateLead) {
		t.Fatalf("expected ErrDuplicateLead, got %v", err)
	}
}

func TestPGXLeadsRepository_MarkForwarded(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}
	if err := repo.MarkForwarded(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.pool = &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	if err := repo.MarkForwarded(context.Background(), uuid.New()); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestPGXLeadsRepository_List(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &PGXLeadsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*dest[0].(*uuid.UUID) = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
					*dest[1].(*string) = "contact"
					phone := "+15125550100"
					*dest[3].(**string) = &phone
					*dest[4].(*[]byte) = []byte(`{"name":"Ana"}`)
					*dest[5].(*bool) = true
					*dest[6].(*time.Time) = since
					return nil
				},
			}}, nil
		},
	}}

	leads, err := repo.List(context.Background(), dto.LeadFilter{FormID: "contact", Since: &since, Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 || leads[0].FormData["name"] != "Ana" || !leads[0].Forwarded {
		t.Fatalf("unexpected leads: %+v", leads)
	}
	if leads[0].Email != nil || leads[0].Phone == nil {
		t.Fatalf("unexpected contact fields: %+v", leads[0])
	}
	if !strings.Contains(gotQuery, "form_id = $1 AND created_at >= $2") || !strings.Contains(gotQuery, "LIMIT $3 OFFSET $4") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if gotArgs[2] != 10 || gotArgs[3] != 10 {
		t.Fatalf("unexpected pagination args: %v", gotArgs)
	}
}

func TestPGXLeadsRepository_ListErrors(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return nil, errors.New("connection reset")
		},
	}}
	if _, err := repo.List(context.Background(), dto.LeadFilter{Page: 1, PerPage: 20}); err == nil {
		t.Fatalf("expected query error")
	}

	repo.pool = &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{err: errors.New("stream broken")}, nil
		},
	}
	if _, err := repo.List(context.Background(), dto.LeadFilter{Page: 1, PerPage: 20}); err == nil {
		t.Fatalf("expected iteration error")
	}
}

func TestPGXLeadsRepository_FindByIdempotencyKey(t *testing.T) {
	var gotArgs []any
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			if !strings.Contains(query, "WHERE idempotency_key = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			gotArgs = args
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
					*dest[1].(*string) = "booking"
					*dest[4].(*[]byte) = []byte(`{"email":"ana@example.com"}`)
					return nil
				},
			}}, nil
		},
	}}

	lead, err := repo.FindByIdempotencyKey(context.Background(), "k-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.FormID != "booking" || lead.Forwarded || lead.FormData["email"] != "ana@example.com" {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "k-1" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	repo.pool = &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{}, nil
		},
	}
	if _, err := repo.FindByIdempotencyKey(context.Background(), "missing"); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}
