package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNoJobsSelected  = errors.New("no jobs selected")
	ErrSessionNotFound = errors.New("application session not found")
)

// ApplicationService owns the sequencers of the open applications pages.
// Sessions live in memory only and vanish when closed or on restart.
type ApplicationService struct {
	Jobs      *JobService
	Profiles  *ProfileService
	Submitter Submitter

	mu       sync.Mutex
	sessions map[string]*Sequencer
}

func NewApplicationService(jobs *JobService, profiles *ProfileService, submitter Submitter) *ApplicationService {
	return &ApplicationService{
		Jobs:      jobs,
		Profiles:  profiles,
		Submitter: submitter,
		sessions:  make(map[string]*Sequencer),
	}
}

// Create builds a session for the selected jobs from the cached listing and
// the cached profile.
func (s *ApplicationService) Create(ctx context.Context, jobIDs []string) (string, *Sequencer, error) {
	if len(jobIDs) == 0 {
		return "", nil, ErrNoJobsSelected
	}

	jobs, err := s.Jobs.Cached(ctx)
	if err != nil {
		return "", nil, err
	}
	profile, err := s.Profiles.Load(ctx)
	if err != nil {
		return "", nil, err
	}

	apps := BuildApplications(jobIDs, jobs)
	seq := NewSequencer(apps, profile, s.Submitter)
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = seq
	s.mu.Unlock()

	log.Printf("🆕 Application session %s opened with %d of %d selected jobs", id, len(apps), len(jobIDs))
	return id, seq, nil
}

func (s *ApplicationService) Get(id string) (*Sequencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return seq, nil
}

func (s *ApplicationService) Start(id string) (*Sequencer, error) {
	return s.do(id, (*Sequencer).Start)
}

func (s *ApplicationService) Advance(id string) (*Sequencer, error) {
	return s.do(id, (*Sequencer).Advance)
}

func (s *ApplicationService) Restart(id string) (*Sequencer, error) {
	return s.do(id, (*Sequencer).Restart)
}

// Close tears a session down; a submission still in flight is abandoned.
func (s *ApplicationService) Close(id string) error {
	s.mu.Lock()
	seq, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	seq.Close()
	log.Printf("🗑️  Application session %s closed", id)
	return nil
}

// CloseAll is called on shutdown.
func (s *ApplicationService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Sequencer)
	s.mu.Unlock()

	for _, seq := range sessions {
		seq.Close()
	}
}

func (s *ApplicationService) do(id string, op func(*Sequencer) error) (*Sequencer, error) {
	seq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := op(seq); err != nil {
		return seq, err
	}
	return seq, nil
}
