package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
)

// NotStarted is the cursor value before the first submission and after the
// last one.
const NotStarted = -1

const (
	MessageStarting        = "Starting application process"
	MessageConnectionError = "Error connecting to application server"
)

var (
	ErrSubmissionInFlight   = errors.New("an application is already being submitted")
	ErrSequenceActive       = errors.New("application sequence already started")
	ErrNothingPending       = errors.New("no pending applications")
	ErrNoCurrentApplication = errors.New("no application selected")
	ErrSequencerClosed      = errors.New("application sequence closed")
)

// Submitter sends one application to the remote applier.
type Submitter interface {
	Apply(ctx context.Context, req dtos.ApplyRequest) (*dtos.ApplyResponse, error)
}

type SequencerOption func(*Sequencer)

func WithClock(now func() time.Time) SequencerOption {
	return func(s *Sequencer) { s.now = now }
}

// Sequencer walks a fixed list of applications one submission at a time.
// The operator drives it: Start submits the first item, Advance moves on,
// Restart resubmits the selected one. Submissions run in the background and
// at most one is ever outstanding.
type Sequencer struct {
	mu        sync.Mutex
	apps      []models.JobApplication
	cursor    int
	inFlight  bool
	closed    bool
	done      chan struct{}
	profile   models.Profile
	submitter Submitter
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

type SequencerSnapshot struct {
	Applications []models.JobApplication
	Cursor       int
	Submitting   bool
	Progress     dtos.ApplicationProgress
}

func NewSequencer(apps []models.JobApplication, profile models.Profile, submitter Submitter, opts ...SequencerOption) *Sequencer {
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)

	s := &Sequencer{
		apps:      slices.Clone(apps),
		cursor:    NotStarted,
		done:      idle,
		profile:   profile,
		submitter: submitter,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildApplications turns a selection of job ids into pending applications,
// in selection order. Ids missing from jobs are skipped.
func BuildApplications(jobIDs []string, jobs []models.Job) []models.JobApplication {
	byID := make(map[string]*models.Job, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
	}

	apps := make([]models.JobApplication, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, ok := byID[id]
		if !ok {
			continue
		}
		apps = append(apps, models.JobApplication{
			ID:                job.ID,
			Company:           job.Company,
			PositionName:      job.PositionName,
			Status:            models.StatusPending,
			ExternalApplyLink: job.ExternalApplyLink,
			URL:               job.URL,
		})
	}
	return apps
}

// Start selects the first application and submits it.
func (s *Sequencer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.cursor != NotStarted {
		return ErrSequenceActive
	}
	if !slices.ContainsFunc(s.apps, func(a models.JobApplication) bool { return a.Status == models.StatusPending }) {
		return ErrNothingPending
	}

	s.cursor = 0
	s.processLocked()
	return nil
}

// ProcessCurrent submits the application under the cursor.
func (s *Sequencer) ProcessCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIdle(); err != nil {
		return err
	}
	if !s.validCursor() {
		return ErrNoCurrentApplication
	}
	s.processLocked()
	return nil
}

// Restart resubmits the selected application without moving the cursor.
func (s *Sequencer) Restart() error {
	return s.ProcessCurrent()
}

// Advance submits the next application, or finishes the sequence when the
// cursor is on the last one.
func (s *Sequencer) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIdle(); err != nil {
		return err
	}
	if !s.validCursor() {
		return ErrNoCurrentApplication
	}

	if s.cursor+1 < len(s.apps) {
		s.cursor++
		s.processLocked()
		return nil
	}
	s.cursor = NotStarted
	log.Println("🏁 Application sequence finished")
	return nil
}

// Wait blocks until no submission is outstanding.
func (s *Sequencer) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close abandons the sequence. An outstanding submission is cancelled and
// whatever it eventually returns is discarded.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cursor = NotStarted
	s.cancel()
}

func (s *Sequencer) Snapshot() SequencerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SequencerSnapshot{
		Applications: slices.Clone(s.apps),
		Cursor:       s.cursor,
		Submitting:   s.inFlight,
		Progress:     progressOf(s.apps),
	}
}

func (s *Sequencer) Progress() dtos.ApplicationProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progressOf(s.apps)
}

func (s *Sequencer) checkIdle() error {
	if s.closed {
		return ErrSequencerClosed
	}
	if s.inFlight {
		return ErrSubmissionInFlight
	}
	return nil
}

func (s *Sequencer) validCursor() bool {
	return s.cursor >= 0 && s.cursor < len(s.apps)
}

// processLocked marks the current item processing and submits it on a
// goroutine. Callers hold s.mu and have checked there is nothing in flight.
func (s *Sequencer) processLocked() {
	idx := s.cursor
	app := &s.apps[idx]

	appliedAt := s.now()
	app.Status = models.StatusProcessing
	app.StatusMessage = MessageStarting
	app.AppliedAt = &appliedAt

	applyURL := app.ExternalApplyLink
	if applyURL == "" {
		applyURL = app.URL
	}
	req := dtos.ApplyRequest{
		Job: dtos.ApplyJob{
			ID:           app.ID,
			Company:      app.Company,
			PositionName: app.PositionName,
			URL:          applyURL,
		},
		User: s.profile,
	}

	done := make(chan struct{})
	s.inFlight = true
	s.done = done

	log.Printf("%s 📤 Submitting application", logPrefix(*app))
	go s.submit(idx, req, done)
}

func (s *Sequencer) submit(idx int, req dtos.ApplyRequest, done chan struct{}) {
	defer close(done)

	resp, err := s.submitter.Apply(s.ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	// The cursor may have moved (or the sequence been closed) while the
	// request was outstanding; the result then belongs to nobody.
	if idx != s.cursor {
		log.Printf("⏹️  Dropping stale result for application #%d (cursor is %d)", idx, s.cursor)
		return
	}

	app := &s.apps[idx]
	prefix := logPrefix(*app)
	switch {
	case err != nil || resp == nil:
		app.Status = models.StatusFailed
		app.StatusMessage = MessageConnectionError
		log.Printf("%s ❌ Error processing application: %v", prefix, err)
	case resp.Success:
		app.Status = models.StatusSuccess
		app.StatusMessage = resp.Message
		log.Printf("%s ✅ %s", prefix, resp.Message)
	default:
		app.Status = models.StatusFailed
		app.StatusMessage = resp.Message
		log.Printf("%s ❌ Rejected: %s", prefix, resp.Message)
	}
}

func progressOf(apps []models.JobApplication) dtos.ApplicationProgress {
	p := dtos.ApplicationProgress{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case models.StatusPending:
			p.Pending++
		case models.StatusProcessing:
			p.Processing++
		case models.StatusSuccess:
			p.Success++
		case models.StatusFailed:
			p.Failed++
		}
	}
	p.Processed = p.Success + p.Failed
	return p
}

func logPrefix(app models.JobApplication) string {
	return fmt.Sprintf("[Apply: %s @ %s]", app.PositionName, app.Company)
}
