package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRedisStore struct {
	mock.Mock
}

func (m *MockRedisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockRedisStore) Get(ctx context.Context, key string) (interface{}, error) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Error(1)
}

func (m *MockRedisStore) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockRedisStore) SAdd(ctx context.Context, key string, members ...interface{}) error {
	callArgs := make([]interface{}, 0, len(members)+2)
	callArgs = append(callArgs, ctx, key)
	callArgs = append(callArgs, members...)
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockRedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func sampleStats() *models.DashboardStats {
	return &models.DashboardStats{
		Totals: models.DashboardTotals{
			TotalLoans:     3,
			TotalPrincipal: 150000,
			TotalEMI:       15000,
			TotalCollected: 8000,
			CollectionRate: 53,
		},
		GeneratedAt: "2026-03-14T10:00:00Z",
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "dashboard:stats:admin:u-1", Key(consts.RoleAdmin, "u-1"))
	assert.Equal(t, "dashboard:stats:staff:u-2", Key(consts.RoleStaff, "u-2"))
}

func TestDashboardCache_GetHit(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	data, err := json.Marshal(sampleStats())
	require.NoError(t, err)

	mockStore.On("Get", ctx, "dashboard:stats:admin:u-1").Return(data, nil)

	stats, found := c.Get(ctx, "admin", "u-1")
	require.True(t, found)
	assert.Equal(t, int64(3), stats.Totals.TotalLoans)
	assert.Equal(t, 53, stats.Totals.CollectionRate)

	snapshot := statsWithKeys(ctx, t, c, mockStore)
	assert.Equal(t, int64(1), snapshot.Hits)
	assert.Equal(t, int64(0), snapshot.Misses)
}

func TestDashboardCache_GetMiss(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	mockStore.On("Get", ctx, "dashboard:stats:staff:u-2").Return(nil, errors.New("redis: nil"))

	stats, found := c.Get(ctx, "staff", "u-2")
	assert.False(t, found)
	assert.Nil(t, stats)

	snapshot := statsWithKeys(ctx, t, c, mockStore)
	assert.Equal(t, int64(1), snapshot.Misses)
}

func TestDashboardCache_GetCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	mockStore.On("Get", ctx, "dashboard:stats:admin:u-1").Return([]byte("{not json"), nil)

	stats, found := c.Get(ctx, "admin", "u-1")
	assert.False(t, found)
	assert.Nil(t, stats)
}

func TestDashboardCache_PutTracksKey(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	mockStore.On("Set", ctx, "dashboard:stats:admin:u-1", mock.Anything, mock.Anything).Return(nil)
	mockStore.On("SAdd", ctx, consts.DashboardCacheKeySet, "dashboard:stats:admin:u-1").Return(nil)

	err := c.Put(ctx, "admin", "u-1", sampleStats())
	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestDashboardCache_InvalidateDeletesTrackedKeysOnly(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	tracked := []string{"dashboard:stats:admin:u-1", "dashboard:stats:staff:u-2"}
	mockStore.On("SMembers", ctx, consts.DashboardCacheKeySet).Return(tracked, nil)
	mockStore.On("Delete", ctx, tracked[0], tracked[1]).Return(nil)
	mockStore.On("Delete", ctx, consts.DashboardCacheKeySet).Return(nil)

	err := c.Invalidate(ctx)
	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestDashboardCache_InvalidateEmpty(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRedisStore)
	c := NewDashboardCache(mockStore)

	mockStore.On("SMembers", ctx, consts.DashboardCacheKeySet).Return([]string{}, nil)
	mockStore.On("Delete", ctx, consts.DashboardCacheKeySet).Return(nil)

	err := c.Invalidate(ctx)
	require.NoError(t, err)
	// No bulk delete should have been attempted for entries
	mockStore.AssertNumberOfCalls(t, "Delete", 1)
}

func statsWithKeys(ctx context.Context, t *testing.T, c *DashboardCache, mockStore *MockRedisStore) CacheStats {
	t.Helper()
	mockStore.On("SMembers", ctx, consts.DashboardCacheKeySet).Return([]string{}, nil).Maybe()
	return c.Stats(ctx)
}
