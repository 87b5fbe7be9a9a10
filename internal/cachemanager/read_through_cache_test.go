package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mindtris/uitheme/internal/theme"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key string) (theme.VariableSet, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(theme.VariableSet), args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key string, value theme.VariableSet, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type resolveInput struct {
	preset string
}

func resolveFn(calls *int) func(context.Context, resolveInput) (theme.VariableSet, error) {
	return func(_ context.Context, in resolveInput) (theme.VariableSet, error) {
		*calls++
		return theme.VariableSet{"preset": in.preset}, nil
	}
}

func TestReadThroughCache_Get_Skipped(t *testing.T) {
	managerMock := &mockCacheManager{}
	calls := 0

	rtc := NewReadThroughCache[string, theme.VariableSet, resolveInput](managerMock, resolveFn(&calls), func() bool { return true })

	got, err := rtc.Get(context.Background(), "key", resolveInput{preset: "amber"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, theme.VariableSet{"preset": "amber"}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return(theme.VariableSet{"preset": "cached"}, true)
	calls := 0

	rtc := NewReadThroughCache[string, theme.VariableSet, resolveInput](managerMock, resolveFn(&calls), nil)

	got, err := rtc.Get(context.Background(), "key", resolveInput{preset: "amber"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, theme.VariableSet{"preset": "cached"}, got)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_EmptyCache(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return(theme.VariableSet(nil), false)
	managerMock.On("Set", mock.Anything, "key", theme.VariableSet{"preset": "amber"}, time.Minute).Return()
	calls := 0

	rtc := NewReadThroughCache[string, theme.VariableSet, resolveInput](managerMock, resolveFn(&calls), nil)

	got, err := rtc.Get(context.Background(), "key", resolveInput{preset: "amber"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, theme.VariableSet{"preset": "amber"}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_LoadError(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return(theme.VariableSet(nil), false)

	rtc := NewReadThroughCache[string, theme.VariableSet, resolveInput](
		managerMock,
		func(context.Context, resolveInput) (theme.VariableSet, error) {
			return nil, errors.New("unknown preset")
		},
		nil,
	)

	_, err := rtc.Get(context.Background(), "key", resolveInput{}, time.Minute)
	require.Error(t, err)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_InMemory(t *testing.T) {
	cache := NewInMemoryCacheManager[string, theme.VariableSet]("resolve", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, theme.VariableSet, resolveInput](cache, resolveFn(&calls), nil)

	for range 3 {
		_, err := rtc.Get(context.Background(), "amber/light", resolveInput{preset: "amber"}, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)
}
