package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"talent-hive/internal/domain/resource"
	"talent-hive/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStore is an in-memory store with the same containment lookup as the
// postgres repository, counting every call.
type spyStore struct {
	mu sync.Mutex

	records   []resource.Record
	finds     int
	upserts   int
	findErr   error
	upsertErr error
	panicOn   bool
}

func (s *spyStore) FindLatestMatching(_ context.Context, companyName, jobTitle string) (*resource.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.panicOn {
		panic("store exploded")
	}
	if s.findErr != nil {
		return nil, s.findErr
	}
	var best *resource.Record
	for i := range s.records {
		r := s.records[i]
		if !strings.Contains(strings.ToLower(r.CompanyName), strings.ToLower(companyName)) {
			continue
		}
		if !strings.Contains(strings.ToLower(r.JobTitle), strings.ToLower(jobTitle)) {
			continue
		}
		if best == nil || r.LastUpdated.After(best.LastUpdated) {
			cp := r
			best = &cp
		}
	}
	return best, nil
}

func (s *spyStore) Upsert(_ context.Context, rec resource.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	for i := range s.records {
		if s.records[i].CompanyName == rec.CompanyName && s.records[i].JobTitle == rec.JobTitle {
			s.records[i] = rec
			return nil
		}
	}
	s.records = append(s.records, rec)
	return nil
}

type countingSynth struct {
	inner *scraper.Synthesizer
	calls int
}

func (c *countingSynth) Synthesize(companyName, jobTitle string) []string {
	c.calls++
	return c.inner.Synthesize(companyName, jobTitle)
}

func newTestUsecase(store *spyStore, gens ...scraper.Generator) (*InterviewResources, *countingSynth) {
	synth := &countingSynth{inner: scraper.NewSynthesizer(nil, gens...)}
	uc := NewInterviewResourceUsecase(store, synth, 0, nil)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	return uc, synth
}

func failing(string, string) (string, error) { return "", errors.New("generation failed") }

func TestGetInterviewResources_SoftwareEngineer(t *testing.T) {
	uc, _ := newTestUsecase(&spyStore{})

	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")

	require.Len(t, got, 4)
	prefixes := []string{"Glassdoor", "LeetCode", "Indeed", "LinkedIn"}
	for i, p := range prefixes {
		assert.True(t, strings.HasPrefix(got[i], p), "entry %d = %q", i, got[i])
	}
	assert.Contains(t, got[0], "Acme-Corp")
	assert.Contains(t, got[1], "search=Software")
	assert.Contains(t, got[2], "Acme-Corp")
	assert.Contains(t, got[3], "Acme%20Corp")
}

func TestGetInterviewResources_GraphicDesigner(t *testing.T) {
	uc, _ := newTestUsecase(&spyStore{})

	got := uc.GetInterviewResources(context.Background(), "Graphic Designer", "Acme Corp")

	require.Len(t, got, 3)
	for _, r := range got {
		assert.False(t, strings.HasPrefix(r, "LeetCode"))
	}
}

func TestGetInterviewResources_NeverEmpty(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"Software Engineer", ""},
		{"", "Acme"},
		{"   ", "\t"},
		{"Developer\xff", "Bad\xfeCo"},
	}
	for _, in := range inputs {
		uc, _ := newTestUsecase(&spyStore{})
		got := uc.GetInterviewResources(context.Background(), in[0], in[1])
		assert.NotEmpty(t, got, "title=%q company=%q", in[0], in[1])
	}
}

func TestGetInterviewResources_LeetCodeOnlyForEngineeringTitles(t *testing.T) {
	titles := map[string]bool{
		"Backend ENGINEER":   true,
		"Web Developer":      true,
		"Marketing Lead":     false,
		"Sales Associate":    false,
		"software engineers": true,
	}
	for title, want := range titles {
		uc, _ := newTestUsecase(&spyStore{})
		got := uc.GetInterviewResources(context.Background(), title, "Acme")
		has := false
		for _, r := range got {
			if strings.HasPrefix(r, "LeetCode") {
				has = true
			}
		}
		assert.Equal(t, want, has, "title=%q", title)
	}
}

func TestGetInterviewResources_SecondCallIsCacheHit(t *testing.T) {
	store := &spyStore{}
	uc, synth := newTestUsecase(store)
	ctx := context.Background()

	first := uc.GetInterviewResources(ctx, "Software Engineer", "Acme Corp")
	second := uc.GetInterviewResources(ctx, "Software Engineer", "Acme Corp")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, 2, store.finds)
}

func TestGetInterviewResources_StaleRecordIsResynthesized(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := &spyStore{records: []resource.Record{{
		CompanyName: "Acme Corp",
		JobTitle:    "Software Engineer",
		Resources:   []string{"Old: https://example.com/old"},
		LastUpdated: now.Add(-8 * 24 * time.Hour),
	}}}
	uc, synth := newTestUsecase(store)

	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")

	require.Len(t, got, 4)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, now, store.records[0].LastUpdated)
	assert.Len(t, store.records, 1)
}

func TestGetInterviewResources_FreshnessBoundary(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cached := []string{"Cached: https://example.com/cached"}

	store := &spyStore{records: []resource.Record{{
		CompanyName: "Acme Corp",
		JobTitle:    "Software Engineer",
		Resources:   cached,
		LastUpdated: now.Add(-7*24*time.Hour + time.Second),
	}}}
	uc, synth := newTestUsecase(store)
	assert.Equal(t, cached, uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp"))
	assert.Equal(t, 0, synth.calls)

	store.records[0].LastUpdated = now.Add(-7 * 24 * time.Hour)
	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")
	assert.NotEqual(t, cached, got)
	assert.Equal(t, 1, synth.calls)
}

func TestGetInterviewResources_CaseInsensitivePartialMatch(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cached := []string{"Cached: https://example.com/acme"}
	store := &spyStore{records: []resource.Record{{
		CompanyName: "Acme Corp",
		JobTitle:    "Software Engineer",
		Resources:   cached,
		LastUpdated: now.Add(-time.Hour),
	}}}
	uc, synth := newTestUsecase(store)

	got := uc.GetInterviewResources(context.Background(), "software", "acme")

	assert.Equal(t, cached, got)
	assert.Equal(t, 0, synth.calls)
	assert.Equal(t, 0, store.upserts)
}

func TestGetInterviewResources_GlassdoorFailureIsolated(t *testing.T) {
	gens := scraper.DefaultGenerators()
	gens[0].Build = func(string, string) (string, error) { panic("glassdoor") }
	uc, _ := newTestUsecase(&spyStore{}, gens...)

	var got []string
	require.NotPanics(t, func() {
		got = uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")
	})

	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "LeetCode"))
	assert.True(t, strings.HasPrefix(got[1], "Indeed"))
	assert.True(t, strings.HasPrefix(got[2], "LinkedIn"))
}

func TestGetInterviewResources_AllGeneratorsFailServesFallbackWithoutCaching(t *testing.T) {
	gens := []scraper.Generator{
		{Platform: "glassdoor", Build: failing},
		{Platform: "leetcode", Build: failing},
		{Platform: "indeed", Build: failing},
		{Platform: "linkedin", Build: failing},
	}
	store := &spyStore{}
	uc, synth := newTestUsecase(store, gens...)
	ctx := context.Background()

	got := uc.GetInterviewResources(ctx, "Software Engineer", "Acme Corp")
	assert.Equal(t, scraper.FallbackResources(), got)
	assert.Equal(t, 0, store.upserts)

	_ = uc.GetInterviewResources(ctx, "Software Engineer", "Acme Corp")
	assert.Equal(t, 2, synth.calls)
}

func TestGetInterviewResources_StoreReadErrorIsMiss(t *testing.T) {
	store := &spyStore{findErr: errors.New("connection refused")}
	uc, synth := newTestUsecase(store)

	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")

	assert.Len(t, got, 4)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, 1, store.upserts)
}

func TestGetInterviewResources_StoreWriteErrorStillReturnsLinks(t *testing.T) {
	store := &spyStore{upsertErr: errors.New("disk full")}
	uc, _ := newTestUsecase(store)

	got := uc.GetInterviewResources(context.Background(), "Graphic Designer", "Acme Corp")

	assert.Len(t, got, 3)
	assert.Equal(t, 1, store.upserts)
}

func TestGetInterviewResources_PanicServesFallback(t *testing.T) {
	uc, _ := newTestUsecase(&spyStore{panicOn: true})

	var got []string
	require.NotPanics(t, func() {
		got = uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")
	})
	assert.Equal(t, scraper.FallbackResources(), got)
}

func TestGetInterviewResources_EmptyCachedRecordIsMiss(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := &spyStore{records: []resource.Record{{
		CompanyName: "Acme Corp",
		JobTitle:    "Software Engineer",
		Resources:   []string{},
		LastUpdated: now,
	}}}
	uc, synth := newTestUsecase(store)

	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")
	assert.Len(t, got, 4)
	assert.Equal(t, 1, synth.calls)
}

func TestGetInterviewResources_NilStore(t *testing.T) {
	uc := NewInterviewResourceUsecase(nil, nil, 0, nil)

	got := uc.GetInterviewResources(context.Background(), "Software Engineer", "Acme Corp")
	assert.Len(t, got, 4)
}

func TestRefreshInterviewResources_BypassesCache(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := &spyStore{records: []resource.Record{{
		CompanyName: "Acme Corp",
		JobTitle:    "Software Engineer",
		Resources:   []string{"Cached: https://example.com"},
		LastUpdated: now.Add(-time.Minute),
	}}}
	uc, synth := newTestUsecase(store)

	got := uc.RefreshInterviewResources(context.Background(), "Software Engineer", "Acme Corp")

	assert.Len(t, got, 4)
	assert.Equal(t, 0, store.finds)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, got, store.records[0].Resources)
}
