package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceDSN(t *testing.T) {
	tests := []struct {
		name      string
		dsn       string
		wantAdmin string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "swaps target database",
			dsn:       "postgres://u:p@localhost:5432/bestxi?sslmode=disable",
			wantAdmin: "postgres://u:p@localhost:5432/postgres?sslmode=disable",
			wantName:  "bestxi",
		},
		{
			name:      "postgresql scheme",
			dsn:       "postgresql://localhost/fantasy",
			wantAdmin: "postgresql://localhost/postgres",
			wantName:  "fantasy",
		},
		{name: "already postgres", dsn: "postgres://localhost/postgres"},
		{name: "no database", dsn: "postgres://localhost"},
		{name: "keyword form", dsn: "host=localhost dbname=bestxi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, name, err := maintenanceDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdmin, admin)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"bestxi"`, quoteIdent("bestxi"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestIsDatabaseMissing(t *testing.T) {
	missing := fmt.Errorf("connect: %w", &pgconn.PgError{Code: codeDatabaseMissing, Message: `database "bestxi" does not exist`})
	assert.True(t, isDatabaseMissing(missing))
	assert.False(t, isDatabaseMissing(&pgconn.PgError{Code: "28P01", Message: "password authentication failed"}))
	assert.True(t, isDatabaseMissing(errors.New(`FATAL: database "bestxi" does not exist (SQLSTATE 3D000)`)))
	assert.False(t, isDatabaseMissing(errors.New("connection refused")))
}
