package uploads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"callsheet/internal/logging"
	"callsheet/internal/services"
	"callsheet/internal/storage"
)

// Orchestrator owns the upload job pool and serializes execution: at most
// one job transfers at a time, picked from the queued set in sequence order.
type Orchestrator struct {
	remote storage.Remote
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	jobs     map[string]*job
	pending  map[string]chan storage.Resolution
	activeID string
	nextSeq  uint64

	kick    chan struct{}
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewOrchestrator builds an orchestrator over the given remote. Call Start
// before submitting jobs.
func NewOrchestrator(remote storage.Remote, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		remote:  remote,
		logger:  logger.With(logging.FieldComponent, "uploads"),
		now:     time.Now,
		jobs:    make(map[string]*job),
		pending: make(map[string]chan storage.Resolution),
		kick:    make(chan struct{}, 1),
	}
}

// Start launches the scheduler. It returns immediately; jobs execute on a
// background goroutine until Stop is called or ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.stopped = make(chan struct{})
	go o.schedule(ctx)
}

// Stop cancels any in-flight transfer and waits for the scheduler to exit.
// The interrupted job is left paused with its cursor intact.
func (o *Orchestrator) Stop() {
	if o.cancel == nil {
		return
	}
	o.cancel()
	<-o.stopped
}

// Submit registers a new queued job and wakes the scheduler. onComplete, if
// non-nil, is invoked with the final snapshot when the job reaches done.
func (o *Orchestrator) Submit(files []File, folderID, folderLabel string, folderUpload bool, onComplete func(View)) (string, error) {
	if len(files) == 0 {
		return "", services.Wrap(services.ErrValidation, "uploads", "submit", "job has no files", nil)
	}
	if folderID == "" {
		return "", services.Wrap(services.ErrValidation, "uploads", "submit", "destination folder is required", nil)
	}

	now := o.now()
	j := &job{
		id:          uuid.NewString(),
		files:       files,
		folderID:    folderID,
		folderLabel: folderLabel,
		folderJob:   folderUpload,
		status:      StatusQueued,
		onComplete:  onComplete,
		createdAt:   now,
		updatedAt:   now,
	}

	o.mu.Lock()
	o.nextSeq++
	j.sequence = o.nextSeq
	o.jobs[j.id] = j
	o.mu.Unlock()

	o.logger.Info("job queued",
		logging.FieldJobID, j.id,
		"files", len(files),
		"folder", folderLabel,
		"folder_upload", folderUpload)
	o.wake()
	return j.id, nil
}

// Pause aborts the job's in-flight transfer. The run loop records the cursor
// and parks the job in paused.
func (o *Orchestrator) Pause(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	j, ok := o.jobs[id]
	if !ok {
		return jobNotFound("pause", id)
	}
	if o.activeID != id || j.cancel == nil {
		return services.Wrap(services.ErrValidation, "uploads", "pause",
			fmt.Sprintf("job is %s, not transferring", j.status), nil)
	}
	j.cancel()
	return nil
}

// Resume moves a paused job back into the queued pool, at the back.
func (o *Orchestrator) Resume(id string) error {
	o.mu.Lock()
	j, ok := o.jobs[id]
	if !ok {
		o.mu.Unlock()
		return jobNotFound("resume", id)
	}
	if j.status != StatusPaused {
		status := j.status
		o.mu.Unlock()
		return services.Wrap(services.ErrValidation, "uploads", "resume",
			fmt.Sprintf("job is %s, not paused", status), nil)
	}
	j.status = StatusQueued
	j.updatedAt = o.now()
	o.nextSeq++
	j.sequence = o.nextSeq
	cursor := j.currentIndex
	o.mu.Unlock()

	o.logger.Info("job resumed", logging.FieldJobID, id, "cursor", cursor)
	o.wake()
	return nil
}

// Dismiss cancels any in-flight work, force-resolves a pending conflict wait
// with skip, and removes the job.
func (o *Orchestrator) Dismiss(id string) error {
	o.mu.Lock()
	j, ok := o.jobs[id]
	if !ok {
		o.mu.Unlock()
		return jobNotFound("dismiss", id)
	}
	if ch, waiting := o.pending[id]; waiting {
		select {
		case ch <- storage.ResolutionSkip:
		default:
		}
	}
	if j.cancel != nil {
		j.cancel()
	}
	delete(o.jobs, id)
	o.mu.Unlock()

	o.logger.Info("job dismissed", logging.FieldJobID, id)
	o.wake()
	return nil
}

// ResolveConflict answers a per-file conflict wait. It is a no-op when the
// job has no pending conflict.
func (o *Orchestrator) ResolveConflict(id string, res storage.Resolution) error {
	return o.resolve("resolve_conflict", id, res, StatusConflict)
}

// ResolveBulk answers a pre-scan needs-resolution wait. It is a no-op when
// the job is not waiting on one.
func (o *Orchestrator) ResolveBulk(id string, res storage.Resolution) error {
	return o.resolve("resolve_bulk", id, res, StatusNeedsResolution)
}

func (o *Orchestrator) resolve(operation, id string, res storage.Resolution, want Status) error {
	if !res.Valid() {
		return services.Wrap(services.ErrValidation, "uploads", operation,
			fmt.Sprintf("unknown resolution %q", res), nil)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	j, ok := o.jobs[id]
	if !ok {
		return jobNotFound(operation, id)
	}
	ch, waiting := o.pending[id]
	if !waiting {
		return nil
	}
	// A bulk answer must not satisfy a per-file wait, or the reverse.
	if j.status != want {
		return services.Wrap(services.ErrValidation, "uploads", operation,
			fmt.Sprintf("job is %s, not %s", j.status, want), nil)
	}
	select {
	case ch <- res:
	default:
	}
	return nil
}

// Jobs returns snapshots of every job, oldest first.
func (o *Orchestrator) Jobs() []View {
	o.mu.Lock()
	defer o.mu.Unlock()

	views := make([]View, 0, len(o.jobs))
	for _, j := range o.jobs {
		views = append(views, j.view())
	}
	sort.Slice(views, func(i, k int) bool {
		if views[i].CreatedAt.Equal(views[k].CreatedAt) {
			return views[i].ID < views[k].ID
		}
		return views[i].CreatedAt.Before(views[k].CreatedAt)
	})
	return views
}

// Job returns a snapshot of a single job.
func (o *Orchestrator) Job(id string) (View, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	j, ok := o.jobs[id]
	if !ok {
		return View{}, false
	}
	return j.view(), true
}

func (o *Orchestrator) wake() {
	select {
	case o.kick <- struct{}{}:
	default:
	}
}

func (o *Orchestrator) schedule(ctx context.Context) {
	defer close(o.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.kick:
		}
		for {
			j, jobCtx := o.claimNext(ctx)
			if j == nil {
				break
			}
			o.run(jobCtx, j)
			o.releaseActive(j.id)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// claimNext picks the queued job with the lowest sequence number and makes
// it active, deriving its cancellation handle from the scheduler context.
func (o *Orchestrator) claimNext(ctx context.Context) (*job, context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.activeID != "" {
		return nil, nil
	}
	var next *job
	for _, j := range o.jobs {
		if j.status != StatusQueued {
			continue
		}
		if next == nil || j.sequence < next.sequence {
			next = j
		}
	}
	if next == nil {
		return nil, nil
	}

	jobCtx, cancel := context.WithCancel(ctx)
	next.cancel = cancel
	next.folders = map[string]string{}
	next.updatedAt = o.now()
	o.activeID = next.id
	return next, jobCtx
}

func (o *Orchestrator) releaseActive(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeID == id {
		o.activeID = ""
	}
	if j, ok := o.jobs[id]; ok {
		if j.cancel != nil {
			j.cancel()
			j.cancel = nil
		}
		j.folders = nil
	}
}

func jobNotFound(operation, id string) error {
	return services.Wrap(services.ErrNotFound, "uploads", operation,
		fmt.Sprintf("no upload job %s", id), nil)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
