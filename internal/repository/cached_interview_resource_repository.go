package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"talent-hive/internal/domain/resource"
)

const lookupKeyPrefix = "interview:lookup:"

type lookupCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CachedInterviewResourceRepository memoizes lookup answers in front of a
// slower store. Any upsert can change the answer of a containment lookup, so
// every write drops all memoized answers.
type CachedInterviewResourceRepository struct {
	next   InterviewResourceStore
	cache  lookupCache
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedInterviewResourceRepository(next InterviewResourceStore, cache lookupCache, ttl time.Duration, logger *log.Logger) *CachedInterviewResourceRepository {
	return &CachedInterviewResourceRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedInterviewResourceRepository) FindLatestMatching(ctx context.Context, companyName, jobTitle string) (*resource.Record, error) {
	if r.cache == nil {
		return r.next.FindLatestMatching(ctx, companyName, jobTitle)
	}

	key := InterviewLookupCacheKey(companyName, jobTitle)
	var cached resource.Record
	hit, err := r.cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		if r.logger != nil {
			r.logger.Printf("[Resources] Cache HIT: %s", key)
		}
		return &cached, nil
	}

	rec, err := r.next.FindLatestMatching(ctx, companyName, jobTitle)
	if err != nil || rec == nil {
		return rec, err
	}

	if err := r.cache.SetJSON(ctx, key, rec, r.ttl); err != nil && r.logger != nil {
		r.logger.Printf("[Resources] Cache SET error key=%s err=%v", key, err)
	}
	return rec, nil
}

func (r *CachedInterviewResourceRepository) Upsert(ctx context.Context, rec resource.Record) error {
	if err := r.next.Upsert(ctx, rec); err != nil {
		return err
	}
	if r.cache == nil {
		return nil
	}
	if err := r.cache.DeleteByPattern(ctx, lookupKeyPrefix+"*"); err != nil && r.logger != nil {
		r.logger.Printf("[Resources] Cache invalidate error err=%v", err)
	}
	return nil
}

// InterviewLookupCacheKey is case insensitive, like the underlying lookup.
func InterviewLookupCacheKey(companyName, jobTitle string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(companyName) + "\x00" + strings.ToLower(jobTitle)))
	return lookupKeyPrefix + hex.EncodeToString(sum[:])
}

var _ InterviewResourceStore = (*CachedInterviewResourceRepository)(nil)
