package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/repositories/cache"
)

type MockProductReader struct {
	mock.Mock
}

var _ portsrepo.ProductReader = (*MockProductReader)(nil)

func (m *MockProductReader) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

// unreachable redis: every command fails immediately
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestProductCacheFallsBackWhenRedisIsDown(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()

	inner := new(MockProductReader)
	p := domain.Product{ProductID: "p1", Name: "Kibble", Kind: domain.KindProduct, SalePrice: decimal.NewFromInt(100), IsActive: true}
	inner.On("FindProductsByIDs", mock.Anything, []string{"p1"}).Return(map[string]domain.Product{"p1": p}, nil)

	c := cache.NewProductCache(rdb, inner, time.Minute)
	got, err := c.FindProductsByIDs(context.Background(), []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, "Kibble", got["p1"].Name)
	inner.AssertExpectations(t)
}

func TestProductCacheEmptyInput(t *testing.T) {
	inner := new(MockProductReader)
	c := cache.NewProductCache(deadRedis(), inner, time.Minute)

	got, err := c.FindProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	inner.AssertNotCalled(t, "FindProductsByIDs", mock.Anything, mock.Anything)
}

func TestProductKey(t *testing.T) {
	assert.Equal(t, "vetpos:product:p1", cache.ProductKey("p1"))
}
