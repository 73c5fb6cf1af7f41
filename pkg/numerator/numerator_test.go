package numerator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier simulates the sys_sequences UPSERT without a database.
type fakeQuerier struct {
	values map[string]int64
	calls  int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{values: make(map[string]int64)}
}

type fakeRow struct{ val int64 }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls++
	key := args[0].(string)
	switch {
	case strings.Contains(sql, "sys_sequences.current_val +"):
		increment := int64(1)
		if len(args) > 1 {
			increment = args[1].(int64)
		}
		q.values[key] += increment
	case len(args) > 1:
		// SetNextNumber overwrites the stored value
		q.values[key] = args[1].(int64)
	default:
		q.values[key]++
	}
	return fakeRow{val: q.values[key]}
}

func TestService_GetNextNumber_Strict(t *testing.T) {
	ctx := context.Background()
	querier := newFakeQuerier()
	svc := New(querier)
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	first, err := svc.GetNextNumber(ctx, DefaultConfig("INV"), DefaultOptions(), period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", first)

	second, err := svc.GetNextNumber(ctx, DefaultConfig("INV"), DefaultOptions(), period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", second)

	// every strict number hits the database
	assert.Equal(t, 2, querier.calls)
}

func TestService_GetNextNumber_Cached(t *testing.T) {
	ctx := context.Background()
	querier := newFakeQuerier()
	svc := New(querier)
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(ctx, DefaultConfig("ORD"), opts, period)
		require.NoError(t, err)
		assert.Contains(t, num, "ORD-2026-")
	}

	// one range reservation covers all ten numbers
	assert.Equal(t, 1, querier.calls)

	num, err := svc.GetNextNumber(ctx, DefaultConfig("ORD"), opts, period)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-00011", num)
	assert.Equal(t, 2, querier.calls)
}

func TestService_GetNextNumber_YearScoping(t *testing.T) {
	ctx := context.Background()
	querier := newFakeQuerier()
	svc := New(querier)

	in2026, err := svc.GetNextNumber(ctx, DefaultConfig("INV"), DefaultOptions(),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	in2027, err := svc.GetNextNumber(ctx, DefaultConfig("INV"), DefaultOptions(),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// each year starts its own sequence
	assert.Equal(t, "INV-2026-00001", in2026)
	assert.Equal(t, "INV-2027-00001", in2027)
}

func TestService_SetNextNumber_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	querier := newFakeQuerier()
	svc := New(querier)
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	_, err := svc.GetNextNumber(ctx, DefaultConfig("ORD"), opts, period)
	require.NoError(t, err)

	require.NoError(t, svc.SetNextNumber(ctx, DefaultConfig("ORD"), period, 100))

	// the cached range was dropped, so a new one is reserved past 100
	num, err := svc.GetNextNumber(ctx, DefaultConfig("ORD"), opts, period)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-00101", num)
}
