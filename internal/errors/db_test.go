package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_Nil(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_Context(t *testing.T) {
	if err := MapDBError(fmt.Errorf("query: %w", context.DeadlineExceeded)); GetCode(err) != ErrCodeTimeout {
		t.Errorf("deadline should map to Timeout, got %v", GetCode(err))
	}
	if err := MapDBError(context.Canceled); GetCode(err) != ErrCodeCanceled {
		t.Errorf("cancel should map to Canceled, got %v", GetCode(err))
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Error("mapped error should still wrap pgx.ErrNoRows")
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "column name",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
				ColumnName:     "username",
			},
			wantField: "username",
		},
		{
			name: "detail message",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "templates_slug_key",
				Detail:         `Key (slug)=(about-us) already exists.`,
			},
			wantField: "slug",
		},
		{
			name: "expression index detail",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_lower_idx",
				Detail:         `Key (lower(email))=(a@b.co) already exists.`,
			},
			wantField: "email",
		},
		{
			name: "constraint name only",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			},
			wantField: "email",
		},
		{
			name: "ambiguous constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "table_field1_field2_key",
			},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Errorf("MapDBError() should be Conflict, got %v", GetCode(err))
			}
			if field := GetField(err); field != tt.wantField {
				t.Errorf("MapDBError() field = %q, want %q", field, tt.wantField)
			}
		})
	}
}

func TestMapDBError_ValidationCodes(t *testing.T) {
	for _, code := range []string{pgerrcode.CheckViolation, pgerrcode.NotNullViolation} {
		err := MapDBError(&pgconn.PgError{Code: code, ColumnName: "title"})
		if !IsValidation(err) {
			t.Errorf("code %s should map to Validation, got %v", code, GetCode(err))
		}
		if GetField(err) != "title" {
			t.Errorf("code %s field = %q, want title", code, GetField(err))
		}
	}
}

func TestMapDBError_OtherPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SyntaxError})
	if GetCode(err) != ErrCodeInternal {
		t.Errorf("syntax error should map to Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	plain := errors.New("network down")
	if err := MapDBError(plain); err != plain {
		t.Errorf("unrecognized errors should pass through, got %v", err)
	}
}
