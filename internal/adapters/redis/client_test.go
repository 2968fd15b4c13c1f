package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb, err := NewClient(context.Background(), mr.Addr(), "", 0, logger)
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	require.NoError(t, rdb.Close())

	mr.Close()
	_, err = NewClient(context.Background(), mr.Addr(), "", 0, logger)
	require.Error(t, err)
}
