package usecase

import (
	"context"
	"log"
	"time"

	"talent-hive/internal/domain/resource"
	"talent-hive/internal/repository"
	"talent-hive/internal/scraper"
)

// InterviewResourceUsecase never fails: callers always get a non-empty list of
// "Label: URL" lines, falling back to generic links when nothing specific
// could be produced.
type InterviewResourceUsecase interface {
	GetInterviewResources(ctx context.Context, jobTitle, companyName string) []string
	RefreshInterviewResources(ctx context.Context, jobTitle, companyName string) []string
}

type resourceSynthesizer interface {
	Synthesize(companyName, jobTitle string) []string
}

type InterviewResources struct {
	store       repository.InterviewResourceStore
	synthesizer resourceSynthesizer
	window      time.Duration
	logger      *log.Logger
	now         func() time.Time
}

func NewInterviewResourceUsecase(store repository.InterviewResourceStore, synthesizer resourceSynthesizer, window time.Duration, logger *log.Logger) *InterviewResources {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	if synthesizer == nil {
		synthesizer = scraper.NewSynthesizer(logger)
	}
	return &InterviewResources{
		store:       store,
		synthesizer: synthesizer,
		window:      window,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *InterviewResources) GetInterviewResources(ctx context.Context, jobTitle, companyName string) (out []string) {
	defer u.contain(jobTitle, companyName, &out)

	if cached := u.lookup(ctx, companyName, jobTitle); cached != nil {
		return cached
	}
	return u.synthesizeAndStore(ctx, companyName, jobTitle)
}

// RefreshInterviewResources skips the cache read and always re-synthesizes.
func (u *InterviewResources) RefreshInterviewResources(ctx context.Context, jobTitle, companyName string) (out []string) {
	defer u.contain(jobTitle, companyName, &out)

	return u.synthesizeAndStore(ctx, companyName, jobTitle)
}

func (u *InterviewResources) contain(jobTitle, companyName string, out *[]string) {
	if r := recover(); r != nil {
		u.logf("[Resources] Lookup panicked company=%q title=%q err=%v", companyName, jobTitle, r)
		*out = scraper.FallbackResources()
		return
	}
	if len(*out) == 0 {
		*out = scraper.FallbackResources()
	}
}

func (u *InterviewResources) lookup(ctx context.Context, companyName, jobTitle string) []string {
	if u.store == nil {
		return nil
	}
	rec, err := u.store.FindLatestMatching(ctx, companyName, jobTitle)
	if err != nil {
		u.logf("[Resources] Cache read error company=%q title=%q err=%v", companyName, jobTitle, err)
		return nil
	}
	if rec == nil || len(rec.Resources) == 0 {
		u.logf("[Resources] Cache MISS company=%q title=%q", companyName, jobTitle)
		return nil
	}
	if !rec.FreshAt(u.now(), u.window) {
		u.logf("[Resources] Cache STALE company=%q title=%q last_updated=%s", companyName, jobTitle, rec.LastUpdated.UTC().Format(time.RFC3339))
		return nil
	}
	u.logf("[Resources] Cache HIT company=%q title=%q", companyName, jobTitle)
	return rec.Resources
}

// synthesizeAndStore persists only non-empty results; the fallback set is
// never written as the canonical answer for a pair.
func (u *InterviewResources) synthesizeAndStore(ctx context.Context, companyName, jobTitle string) []string {
	resources := u.synthesizer.Synthesize(companyName, jobTitle)
	if len(resources) == 0 {
		u.logf("[Resources] Synthesis empty, serving fallback company=%q title=%q", companyName, jobTitle)
		return nil
	}

	if u.store != nil {
		err := u.store.Upsert(ctx, resource.Record{
			CompanyName: companyName,
			JobTitle:    jobTitle,
			Resources:   resources,
			LastUpdated: u.now().UTC(),
		})
		if err != nil {
			u.logf("[Resources] Cache write error company=%q title=%q err=%v", companyName, jobTitle, err)
		}
	}
	return resources
}

func (u *InterviewResources) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

var _ InterviewResourceUsecase = (*InterviewResources)(nil)
