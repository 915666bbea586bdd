package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"callsheet/internal/config"
	"callsheet/internal/logging"
	"callsheet/internal/pricing"
	"callsheet/internal/services"
	"callsheet/internal/storage"
	"callsheet/internal/store"
	"callsheet/internal/uploads"
)

// Service wires the store, pricing engine, and upload orchestrator into the
// operations the daemon's transports expose.
type Service struct {
	cfg    *config.Config
	store  *store.Store
	orch   *uploads.Orchestrator
	logger *slog.Logger
}

// NewService builds the shared operation surface.
func NewService(cfg *config.Config, st *store.Store, orch *uploads.Orchestrator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{cfg: cfg, store: st, orch: orch, logger: logger.With(logging.FieldComponent, "api")}
}

// Store exposes the underlying store for record CRUD passthroughs.
func (s *Service) Store() *store.Store {
	return s.store
}

// QuoteDeliverable prices a deliverable against the current rate table
// without persisting anything.
func (s *Service) QuoteDeliverable(ctx context.Context, input pricing.Deliverable) (Quote, error) {
	rates, err := s.store.RatesSnapshot(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Cost:     pricing.DeliverableCost(input, rates),
		Bracket:  input.Bracket(),
		Currency: s.cfg.Studio.Currency,
	}, nil
}

// QuoteShoot prices a shoot day against the current rate table without
// persisting anything.
func (s *Service) QuoteShoot(ctx context.Context, input pricing.Shoot) (Quote, error) {
	rates, err := s.store.RatesSnapshot(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Cost:     pricing.ShootCost(input, rates, s.cfg.Studio.TravelRatePerKm),
		Currency: s.cfg.Studio.Currency,
	}, nil
}

// SaveShoot persists a shoot day, computing its cost with the configured
// per-kilometre travel rate.
func (s *Service) SaveShoot(ctx context.Context, sh store.Shoot) (*store.Shoot, error) {
	return s.store.SaveShoot(ctx, sh, s.cfg.Studio.TravelRatePerKm)
}

// GenerateInvoice issues an invoice for a project in the studio currency.
func (s *Service) GenerateInvoice(ctx context.Context, projectID int64) (*store.Invoice, error) {
	return s.store.GenerateInvoice(ctx, projectID, s.cfg.Studio.Currency)
}

// SubmitUpload expands a local path against the configured include patterns
// and queues a transfer into the project's Drive folder (or an explicit
// folder ID when the project has none).
func (s *Service) SubmitUpload(ctx context.Context, localPath string, projectID int64, folderID string, folderUpload bool) (uploads.View, error) {
	path, err := config.ExpandPath(localPath)
	if err != nil {
		return uploads.View{}, services.Wrap(services.ErrValidation, "api", "submit_upload", "resolve upload path", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return uploads.View{}, services.Wrap(services.ErrValidation, "api", "submit_upload",
			fmt.Sprintf("upload path %s", localPath), err)
	}

	label := ""
	if projectID != 0 {
		project, err := s.store.GetProject(ctx, projectID)
		if err != nil {
			return uploads.View{}, err
		}
		label = project.Name
		if folderID == "" {
			folderID = project.DriveFolderID
		}
	}
	if folderID == "" {
		folderID = s.cfg.Drive.RootFolderID
	}

	var files []uploads.File
	if info.IsDir() {
		files, err = uploads.CollectFiles(path, s.cfg.Uploads.IncludePatterns)
	} else {
		var f uploads.File
		f, err = uploads.SingleFile(path)
		files = []uploads.File{f}
	}
	if err != nil {
		return uploads.View{}, err
	}
	if !folderUpload {
		// Flat jobs drop the local directory layout; every file keys on its
		// base name only.
		for i := range files {
			files[i].RelativePath = files[i].Name
		}
	}

	id, err := s.orch.Submit(files, folderID, label, folderUpload, nil)
	if err != nil {
		return uploads.View{}, err
	}
	view, _ := s.orch.Job(id)
	return view, nil
}

// Uploads returns the current job snapshots.
func (s *Service) Uploads() []uploads.View {
	return s.orch.Jobs()
}

// Upload returns one job snapshot.
func (s *Service) Upload(id string) (uploads.View, error) {
	view, ok := s.orch.Job(id)
	if !ok {
		return uploads.View{}, services.Wrap(services.ErrNotFound, "api", "upload",
			fmt.Sprintf("no upload job %s", id), nil)
	}
	return view, nil
}

// PauseUpload, ResumeUpload, and DismissUpload forward job control to the
// orchestrator.
func (s *Service) PauseUpload(id string) error   { return s.orch.Pause(id) }
func (s *Service) ResumeUpload(id string) error  { return s.orch.Resume(id) }
func (s *Service) DismissUpload(id string) error { return s.orch.Dismiss(id) }

// ResolveUpload answers a pending conflict: bulk answers the pre-scan wait,
// otherwise the per-file wait.
func (s *Service) ResolveUpload(id string, resolution string, bulk bool) error {
	res := parseResolution(resolution)
	if bulk {
		return s.orch.ResolveBulk(id, res)
	}
	return s.orch.ResolveConflict(id, res)
}

func parseResolution(raw string) storage.Resolution {
	// The orchestrator rejects unknown values; no normalization beyond the
	// obvious aliases.
	switch raw {
	case "replace":
		return storage.ResolutionOverwrite
	default:
		return storage.Resolution(raw)
	}
}

// Status assembles the daemon status summary.
func (s *Service) Status(ctx context.Context, pid int, lockPath string) DaemonStatus {
	status := DaemonStatus{
		Running:      true,
		PID:          pid,
		DatabasePath: s.store.Path(),
		LockPath:     lockPath,
		DriveEnabled: s.cfg.Drive.Enabled,
	}
	for _, v := range s.orch.Jobs() {
		switch {
		case v.Status == uploads.StatusQueued:
			status.QueuedJobs++
		case v.Status == uploads.StatusDone:
			status.FinishedJobs++
		case v.Status.Blocked():
			status.BlockedJobs++
		default:
			status.ActiveJobs++
		}
	}
	if clients, err := s.store.ListClients(ctx); err == nil {
		status.ClientCount = len(clients)
	}
	if projects, err := s.store.ListProjects(ctx, 0); err == nil {
		status.ProjectCount = len(projects)
	}
	if rates, err := s.store.RatesSnapshot(ctx); err == nil {
		status.RateCount = len(rates)
	}
	return status
}
