package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/maxaizer/ats-realtime/internal/events"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"slices"
	"strconv"
	"sync"
	"time"
)

type applicantRepository interface {
	GetByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error)
}

// CachedApplicants keeps per-job applicant lists. Lists are dropped whenever an
// applicant of the job is created or changes status.
type CachedApplicants struct {
	repo  applicantRepository
	cache *gocache.Cache

	mu          sync.Mutex
	generations map[int64]uint64
}

func NewCachedApplicants(repo applicantRepository, bus EventBus.Bus, ttl time.Duration) (*CachedApplicants, error) {
	c := &CachedApplicants{repo: repo, cache: gocache.New(ttl, 2*ttl), generations: make(map[int64]uint64)}

	if err := bus.Subscribe(events.ApplicantCreatedTopic, c.onApplicantCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ApplicantStatusChangedTopic, c.onApplicantStatusChanged); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CachedApplicants) GetByJob(ctx context.Context, jobID int64) ([]entities.Applicant, error) {
	key := cacheKey(jobID)
	if value, found := c.cache.Get(key); found {
		return slices.Clone(value.([]entities.Applicant)), nil
	}

	generation := c.generation(jobID)
	applicants, err := c.repo.GetByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	// a list loaded before an invalidation must not be cached
	c.mu.Lock()
	if c.generations[jobID] == generation {
		c.cache.Set(key, applicants, gocache.DefaultExpiration)
	}
	c.mu.Unlock()
	return slices.Clone(applicants), nil
}

func (c *CachedApplicants) Invalidate(jobID int64) {
	c.mu.Lock()
	c.generations[jobID]++
	c.cache.Delete(cacheKey(jobID))
	c.mu.Unlock()
	log.Debugf("applicants list of job %d invalidated", jobID)
}

func (c *CachedApplicants) generation(jobID int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[jobID]
}

func (c *CachedApplicants) onApplicantCreated(event events.ApplicantCreated) {
	c.Invalidate(event.Applicant.JobID)
}

func (c *CachedApplicants) onApplicantStatusChanged(event events.ApplicantStatusChanged) {
	c.Invalidate(event.Applicant.JobID)
}

func cacheKey(jobID int64) string {
	return "job:" + strconv.FormatInt(jobID, 10)
}
