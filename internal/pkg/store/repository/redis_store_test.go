package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// redisCommands is the slice of client behaviour the adapter forwards to.
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

type mockRedisCommands struct {
	mock.Mock
}

func (m *mockRedisCommands) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *mockRedisCommands) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockRedisCommands) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func (m *mockRedisCommands) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	args := m.Called(ctx, key, members)
	return args.Get(0).(*redis.IntCmd)
}

func (m *mockRedisCommands) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringSliceCmd)
}

// testableAdapter mirrors RedisStoreAdapter over the command interface so the
// forwarding logic can run against a mock.
type testableAdapter struct {
	client redisCommands
}

func (a *testableAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *testableAdapter) Get(ctx context.Context, key string) (interface{}, error) {
	return a.client.Get(ctx, key).Bytes()
}

func (a *testableAdapter) Delete(ctx context.Context, keys ...string) error {
	return a.client.Del(ctx, keys...).Err()
}

func (a *testableAdapter) SAdd(ctx context.Context, key string, members ...interface{}) error {
	return a.client.SAdd(ctx, key, members...).Err()
}

func (a *testableAdapter) SMembers(ctx context.Context, key string) ([]string, error) {
	return a.client.SMembers(ctx, key).Result()
}

func TestNewRedisStoreAdapter(t *testing.T) {
	client := &redis.Client{}
	adapter := NewRedisStoreAdapter(client)

	assert.NotNil(t, adapter)
	assert.Equal(t, client, adapter.client)
}

func TestRedisStoreAdapter_Set(t *testing.T) {
	tests := []struct {
		name        string
		expiration  time.Duration
		expectError bool
	}{
		{name: "set with ttl", expiration: 10 * time.Minute},
		{name: "set without expiry", expiration: 0},
		{name: "set surfaces client error", expiration: 10 * time.Minute, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockRedisCommands)
			adapter := &testableAdapter{client: client}

			cmd := &redis.StatusCmd{}
			if tt.expectError {
				cmd.SetErr(errors.New("connection refused"))
			} else {
				cmd.SetVal("OK")
			}
			client.On("Set", mock.Anything, "dashboard:stats:admin:u-1", []byte(`{}`), tt.expiration).Return(cmd)

			err := adapter.Set(context.Background(), "dashboard:stats:admin:u-1", []byte(`{}`), tt.expiration)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestRedisStoreAdapter_Get(t *testing.T) {
	t.Run("returns stored bytes", func(t *testing.T) {
		client := new(mockRedisCommands)
		adapter := &testableAdapter{client: client}

		cmd := &redis.StringCmd{}
		cmd.SetVal(`{"hits":1}`)
		client.On("Get", mock.Anything, "dashboard:stats:staff:u-2").Return(cmd)

		value, err := adapter.Get(context.Background(), "dashboard:stats:staff:u-2")

		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"hits":1}`), value)
		client.AssertExpectations(t)
	})

	t.Run("miss surfaces redis.Nil", func(t *testing.T) {
		client := new(mockRedisCommands)
		adapter := &testableAdapter{client: client}

		cmd := &redis.StringCmd{}
		cmd.SetErr(redis.Nil)
		client.On("Get", mock.Anything, "dashboard:stats:admin:gone").Return(cmd)

		value, err := adapter.Get(context.Background(), "dashboard:stats:admin:gone")

		assert.ErrorIs(t, err, redis.Nil)
		assert.Nil(t, value)
		client.AssertExpectations(t)
	})
}

func TestRedisStoreAdapter_Delete(t *testing.T) {
	client := new(mockRedisCommands)
	adapter := &testableAdapter{client: client}

	cmd := &redis.IntCmd{}
	cmd.SetVal(2)
	keys := []string{"dashboard:stats:admin:u-1", "dashboard:stats:staff:u-2"}
	client.On("Del", mock.Anything, keys).Return(cmd)

	err := adapter.Delete(context.Background(), keys...)

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRedisStoreAdapter_SAdd(t *testing.T) {
	client := new(mockRedisCommands)
	adapter := &testableAdapter{client: client}

	cmd := &redis.IntCmd{}
	cmd.SetVal(1)
	client.On("SAdd", mock.Anything, "dashboard:stats:keys", []interface{}{"dashboard:stats:admin:u-1"}).Return(cmd)

	err := adapter.SAdd(context.Background(), "dashboard:stats:keys", "dashboard:stats:admin:u-1")

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRedisStoreAdapter_SMembers(t *testing.T) {
	t.Run("lists tracked keys", func(t *testing.T) {
		client := new(mockRedisCommands)
		adapter := &testableAdapter{client: client}

		cmd := &redis.StringSliceCmd{}
		cmd.SetVal([]string{"dashboard:stats:admin:u-1"})
		client.On("SMembers", mock.Anything, "dashboard:stats:keys").Return(cmd)

		members, err := adapter.SMembers(context.Background(), "dashboard:stats:keys")

		assert.NoError(t, err)
		assert.Equal(t, []string{"dashboard:stats:admin:u-1"}, members)
		client.AssertExpectations(t)
	})

	t.Run("surfaces client error", func(t *testing.T) {
		client := new(mockRedisCommands)
		adapter := &testableAdapter{client: client}

		cmd := &redis.StringSliceCmd{}
		cmd.SetErr(errors.New("connection refused"))
		client.On("SMembers", mock.Anything, "dashboard:stats:keys").Return(cmd)

		_, err := adapter.SMembers(context.Background(), "dashboard:stats:keys")

		assert.Error(t, err)
		client.AssertExpectations(t)
	})
}
