package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	d, err := Open("sqlite://file::memory:", zap.NewNop())
	require.NoError(t, err)
	defer Close(d)

	assert.Equal(t, "sqlite", d.Dialector.Name())

	var one int
	require.NoError(t, d.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_PostgresIsLazy(t *testing.T) {
	// Nothing listens on this port; Open must still succeed because the pool
	// only dials on first use.
	d, err := Open("postgres://nobody@127.0.0.1:1/memorial?sslmode=disable&connect_timeout=1", zap.NewNop())
	require.NoError(t, err)
	defer Close(d)

	assert.Equal(t, "postgres", d.Dialector.Name())

	err = d.Exec("SELECT 1").Error
	require.Error(t, err)
	assert.True(t, IsUnavailable(err), "dial failure should be classified as unavailable: %v", err)
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"wrapped bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"conn done", sql.ErrConnDone, true},
		{"deadline", context.DeadlineExceeded, true},
		{"net op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"plain error", errors.New("no such table: employees"), false},
		{"no rows", sql.ErrNoRows, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUnavailable(tc.err))
		})
	}
}
