package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func testCart(sessionID string) *domain.Cart {
	return &domain.Cart{
		SessionID: sessionID,
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "1", Name: "Phone", Price: 999}, Quantity: 2, SelectedColor: "Black"},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGet_Success(t *testing.T) {
	sut, mr := setupTestRedis(t)

	cart := testCart("s1")
	data, _ := json.Marshal(cart)
	mr.Set(cacheKey("s1"), string(data))

	result, err := sut.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", result.SessionID)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "1|Black|", result.Lines[0].LineID())
}

func TestGet_CacheMiss(t *testing.T) {
	sut, _ := setupTestRedis(t)

	result, err := sut.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	sut, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey("s1"), `{"sessionId": tru`))

	_, err := sut.Get(context.Background(), "s1")
	require.ErrorContains(t, err, "unmarshal cart failed")
}

func TestSet_StoresWithTTL(t *testing.T) {
	sut, mr := setupTestRedis(t)

	require.NoError(t, sut.Set(context.Background(), "s2", testCart("s2")))

	stored, err := mr.Get(cacheKey("s2"))
	require.NoError(t, err)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal([]byte(stored), &cart))
	assert.Equal(t, "s2", cart.SessionID)

	ttl := mr.TTL(cacheKey("s2"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	sut, mr := setupTestRedis(t)

	data, _ := json.Marshal(testCart("s3"))
	mr.Set(cacheKey("s3"), string(data))

	require.NoError(t, sut.Delete(context.Background(), "s3"))
	assert.False(t, mr.Exists(cacheKey("s3")))

	// Deleting an absent key is not an error.
	assert.NoError(t, sut.Delete(context.Background(), "s3"))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "cart:abc", cacheKey("abc"))
}
