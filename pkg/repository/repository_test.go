package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/million/pkg/repository"
)

var (
	errDuplicate = errors.New("duplicate")
	errMissing   = errors.New("missing reference")
)

func TestMapWriteError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), errMissing},
		{"other passes through", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapWriteError(tt.err, errDuplicate, errMissing); got != tt.want {
				t.Errorf("MapWriteError() = %v, want %v", got, tt.want)
			}
		})
	}
}
