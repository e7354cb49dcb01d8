package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRetriesBoundedTimes(t *testing.T) {
	calls := 0
	_, err := Connect(context.Background(), 3, time.Millisecond, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("refused")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestConnectStopsOnSuccess(t *testing.T) {
	calls := 0
	value, err := Connect(context.Background(), 5, time.Millisecond, func(context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("refused")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, calls)
}

func TestConnectHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Connect(ctx, 3, time.Hour, func(context.Context) (int, error) {
		return 0, errors.New("refused")
	})
	require.ErrorIs(t, err, context.Canceled)
}
