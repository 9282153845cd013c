package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/mocks"
	"go.uber.org/mock/gomock"
)

type countFunc func(ctx context.Context) (int, error)

func (f countFunc) Count(ctx context.Context) (int, error) { return f(ctx) }

func fixed(n int) Counter {
	return countFunc(func(context.Context) (int, error) { return n, nil })
}

func TestDashboardService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	users.EXPECT().Count(gomock.Any()).Return(3, nil)

	svc := NewDashboardService(DashboardServiceOptions{
		Users: users, Templates: fixed(5), Menus: fixed(2), Forms: fixed(9),
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 5, stats.Templates)
	assert.Equal(t, 2, stats.Menus)
	assert.Equal(t, 9, stats.Forms)
}

func TestDashboardService_StatsError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewDashboardService(DashboardServiceOptions{
		Users:     fixed(1),
		Templates: countFunc(func(context.Context) (int, error) { return 0, boom }),
		Menus:     fixed(1),
		Forms:     fixed(1),
	})

	_, err := svc.Stats(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "count templates")
}

func TestNewDashboardService_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDashboardService(DashboardServiceOptions{Users: fixed(1)}) })
}

type memCache struct {
	data   map[string][]byte
	getErr error
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memCache) Delete(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	delete(m.data, key)
	return ok, nil
}

func TestDashboardService_Cache(t *testing.T) {
	calls := 0
	users := countFunc(func(context.Context) (int, error) {
		calls++
		return calls, nil
	})
	cache := &memCache{data: map[string][]byte{}}
	svc := NewDashboardService(DashboardServiceOptions{
		Users: users, Templates: fixed(1), Menus: fixed(1), Forms: fixed(1),
		Cache: cache, CacheTTL: time.Minute,
	})
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	second, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Users)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	require.NoError(t, svc.Invalidate(ctx))
	third, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Users)
}

func TestDashboardService_CacheFailureFallsThrough(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}, getErr: errors.New("redis down")}
	svc := NewDashboardService(DashboardServiceOptions{
		Users: fixed(4), Templates: fixed(1), Menus: fixed(1), Forms: fixed(1),
		Cache: cache, CacheTTL: time.Minute,
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Users)
}

func TestDashboardService_NoCacheWithoutTTL(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}}
	svc := NewDashboardService(DashboardServiceOptions{
		Users: fixed(1), Templates: fixed(1), Menus: fixed(1), Forms: fixed(1),
		Cache: cache,
	})

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cache.data)
	require.NoError(t, svc.Invalidate(context.Background()))
}
