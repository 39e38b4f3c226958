package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"talent-hive/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	data        map[string][]byte
	getErr      error
	deletedWith []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deletedWith = append(c.deletedWith, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type countingStore struct {
	rec       *resource.Record
	err       error
	finds     int
	upserts   int
	upsertErr error
}

func (s *countingStore) FindLatestMatching(context.Context, string, string) (*resource.Record, error) {
	s.finds++
	return s.rec, s.err
}

func (s *countingStore) Upsert(_ context.Context, rec resource.Record) error {
	s.upserts++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.rec = &rec
	return nil
}

func TestCachedRepository_MemoizesLookups(t *testing.T) {
	ts := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	next := &countingStore{rec: &resource.Record{CompanyName: "Acme Corp", JobTitle: "Engineer", Resources: []string{"x"}, LastUpdated: ts}}
	repo := NewCachedInterviewResourceRepository(next, newMemCache(), time.Hour, nil)
	ctx := context.Background()

	first, err := repo.FindLatestMatching(ctx, "Acme", "Engineer")
	require.NoError(t, err)
	second, err := repo.FindLatestMatching(ctx, "acme", "ENGINEER")
	require.NoError(t, err)

	assert.Equal(t, 1, next.finds)
	assert.Equal(t, first.Resources, second.Resources)
	assert.True(t, first.LastUpdated.Equal(second.LastUpdated))
}

func TestCachedRepository_DoesNotMemoizeMisses(t *testing.T) {
	next := &countingStore{}
	repo := NewCachedInterviewResourceRepository(next, newMemCache(), time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		rec, err := repo.FindLatestMatching(ctx, "Acme", "Engineer")
		require.NoError(t, err)
		assert.Nil(t, rec)
	}
	assert.Equal(t, 2, next.finds)
}

func TestCachedRepository_UpsertInvalidates(t *testing.T) {
	next := &countingStore{rec: &resource.Record{CompanyName: "Acme", JobTitle: "Engineer", Resources: []string{"old"}}}
	mc := newMemCache()
	repo := NewCachedInterviewResourceRepository(next, mc, time.Hour, nil)
	ctx := context.Background()

	_, err := repo.FindLatestMatching(ctx, "Acme", "Engineer")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, resource.Record{CompanyName: "Acme", JobTitle: "Engineer", Resources: []string{"new"}}))

	rec, err := repo.FindLatestMatching(ctx, "Acme", "Engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, rec.Resources)
	assert.Equal(t, []string{lookupKeyPrefix + "*"}, mc.deletedWith)
	assert.Equal(t, 2, next.finds)
}

func TestCachedRepository_UpsertErrorSkipsInvalidation(t *testing.T) {
	next := &countingStore{upsertErr: errors.New("db down")}
	mc := newMemCache()
	repo := NewCachedInterviewResourceRepository(next, mc, time.Hour, nil)

	err := repo.Upsert(context.Background(), resource.Record{CompanyName: "Acme", JobTitle: "Engineer"})
	require.Error(t, err)
	assert.Empty(t, mc.deletedWith)
}

func TestCachedRepository_CacheErrorFallsThrough(t *testing.T) {
	next := &countingStore{rec: &resource.Record{CompanyName: "Acme", JobTitle: "Engineer", Resources: []string{"x"}}}
	mc := newMemCache()
	mc.getErr = errors.New("redis timeout")
	repo := NewCachedInterviewResourceRepository(next, mc, time.Hour, nil)

	rec, err := repo.FindLatestMatching(context.Background(), "Acme", "Engineer")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, next.finds)
}

func TestInterviewLookupCacheKey(t *testing.T) {
	assert.Equal(t, InterviewLookupCacheKey("Acme", "Engineer"), InterviewLookupCacheKey("ACME", "engineer"))
	assert.NotEqual(t, InterviewLookupCacheKey("Acme", "Engineer"), InterviewLookupCacheKey("Acme Corp", "Engineer"))
	assert.NotEqual(t, InterviewLookupCacheKey("ab", "c"), InterviewLookupCacheKey("a", "bc"))
	assert.True(t, strings.HasPrefix(InterviewLookupCacheKey("a", "b"), lookupKeyPrefix))
}
