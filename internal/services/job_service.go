package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
	"github.com/justsurfingit/automate/internal/storage"
)

var (
	ErrNoCachedJobs = errors.New("no job data found")
	ErrJobNotFound  = errors.New("job not found in cache")
)

// JobSearcher is the remote side of the job listing.
type JobSearcher interface {
	SearchJobs(ctx context.Context, req dtos.JobSearchRequest) ([]models.Job, error)
}

type JobService struct {
	Store           storage.Store
	Searcher        JobSearcher
	TTL             time.Duration
	DefaultSearch   string
	DefaultLocation string
	Now             func() time.Time
}

func NewJobService(store storage.Store, searcher JobSearcher, ttl time.Duration, search, location string) *JobService {
	return &JobService{
		Store:           store,
		Searcher:        searcher,
		TTL:             ttl,
		DefaultSearch:   search,
		DefaultLocation: location,
		Now:             time.Now,
	}
}

// List returns the cached listing while it is younger than TTL and fetches
// (and re-caches) the default search otherwise.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	jobs, fresh, err := s.readCache(ctx)
	if err != nil {
		log.Printf("⚠️ Job cache unreadable, fetching fresh data: %v", err)
	} else if fresh {
		log.Println("Using cached jobs data")
		return jobs, nil
	}

	return s.Search(ctx, s.DefaultSearch, s.DefaultLocation)
}

// Search always hits the remote API and overwrites the cache.
func (s *JobService) Search(ctx context.Context, search, location string) ([]models.Job, error) {
	now := s.Now()
	jobs, err := s.Searcher.SearchJobs(ctx, dtos.JobSearchRequest{Search: search, Location: location})
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	b, err := json.Marshal(jobs)
	if err != nil {
		return nil, fmt.Errorf("encode jobs: %w", err)
	}
	if err := s.Store.Set(ctx, storage.KeyCachedJobs, string(b)); err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, storage.KeyCachedJobsTimestamp, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return nil, err
	}
	log.Printf("📥 Jobs data cached (%d jobs)", len(jobs))
	return jobs, nil
}

// Cached returns whatever listing is stored, regardless of age. It never
// reaches the network.
func (s *JobService) Cached(ctx context.Context) ([]models.Job, error) {
	raw, ok, err := s.Store.Get(ctx, storage.KeyCachedJobs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoCachedJobs
	}
	var jobs []models.Job
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCachedJobs, err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	jobs, err := s.Cached(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCachedJobs) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i], nil
		}
	}
	return nil, ErrJobNotFound
}

func (s *JobService) readCache(ctx context.Context) ([]models.Job, bool, error) {
	rawJobs, okJobs, err := s.Store.Get(ctx, storage.KeyCachedJobs)
	if err != nil {
		return nil, false, err
	}
	rawTS, okTS, err := s.Store.Get(ctx, storage.KeyCachedJobsTimestamp)
	if err != nil {
		return nil, false, err
	}
	if !okJobs || !okTS {
		return nil, false, nil
	}

	cachedAt, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("parse cache timestamp: %w", err)
	}
	if s.Now().UnixMilli()-cachedAt >= s.TTL.Milliseconds() {
		log.Println("Cache expired, fetching fresh data")
		return nil, false, nil
	}

	var jobs []models.Job
	if err := json.Unmarshal([]byte(rawJobs), &jobs); err != nil {
		return nil, false, fmt.Errorf("parse cached jobs: %w", err)
	}
	return jobs, true, nil
}
