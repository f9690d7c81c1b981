package util

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelRunsAllInputs(t *testing.T) {
	var count int64
	err := Parallel([]int{1, 2, 3, 4, 5}, 3, func(ctx context.Context, n int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestParallelEmptyInputIsNoop(t *testing.T) {
	err := Parallel(nil, 3, func(ctx context.Context, n int) error {
		t.Fatal("should not run")
		return nil
	})
	assert.NoError(t, err)
}

func TestParallelFirstErrorCancelsRest(t *testing.T) {
	var ran int64
	err := Parallel([]int{1, 2, 3, 4, 5, 6, 7, 8}, 1, func(ctx context.Context, n int) error {
		atomic.AddInt64(&ran, 1)
		if n == 2 {
			return fmt.Errorf("boom on %d", n)
		}
		return nil
	})
	require.Error(t, err)
	assert.Less(t, ran, int64(8))
}

func TestParallelZeroWorkerLimitRunsSerially(t *testing.T) {
	var count int64
	err := Parallel([]int{1, 2, 3}, 0, func(ctx context.Context, n int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFormatDateTpl(t *testing.T) {
	ts := time.Date(2023, 11, 10, 14, 30, 45, 0, time.Local).UnixMilli()
	assert.Equal(t, "2023-11-10 14:30:45", FormatDateTpl(ts, "YYYY-MM-DD hh:mm:ss"))
	assert.Equal(t, "10/11/23", FormatDateTpl(ts, "DD/MM/YY"))
	assert.Equal(t, "", FormatDateTpl(0, "YYYY"))
}
