package uploads

import (
	"context"
	"log/slog"

	"callsheet/internal/logging"
	"callsheet/internal/storage"
)

// fileResult classifies a single file's outcome.
type fileResult int

const (
	resultSuccess fileResult = iota
	resultSkip
	resultError
)

// run executes one job end to end. It returns when the job is done, paused,
// or dismissed; the caller releases the active slot afterwards.
func (o *Orchestrator) run(ctx context.Context, j *job) {
	log := o.logger.With(logging.FieldJobID, j.id)

	children := newFolderCache(o.remote)

	o.mu.Lock()
	needsPreScan := !j.folderJob && j.bulkResolution == ""
	o.mu.Unlock()

	// Folder jobs and resumed jobs that already hold a bulk resolution go
	// straight to transferring.
	if needsPreScan {
		if !o.preScan(ctx, j, children, log) {
			return
		}
	} else {
		o.setStatus(j, StatusUploading)
	}

	for {
		o.mu.Lock()
		if o.jobs[j.id] == nil {
			o.mu.Unlock()
			return
		}
		idx := j.currentIndex
		total := len(j.files)
		o.mu.Unlock()

		if idx >= total {
			break
		}
		if ctx.Err() != nil {
			o.markPaused(j, idx, log)
			return
		}

		f := j.files[idx]
		result, removed, paused := o.processFile(ctx, j, f, children, log)
		if removed {
			return
		}
		if paused {
			o.markPaused(j, idx, log)
			return
		}

		o.mu.Lock()
		switch result {
		case resultSuccess:
			j.successCount++
		case resultSkip:
			j.skipCount++
		case resultError:
			j.errorCount++
		}
		j.currentIndex = idx + 1
		j.updatedAt = o.now()
		o.mu.Unlock()
	}

	o.complete(j, log)
}

// preScan lists the destination folder of a flat job and, when any job file
// name already exists remotely, parks the job in needs-resolution until the
// caller answers. Returns false when the run loop should exit.
func (o *Orchestrator) preScan(ctx context.Context, j *job, children *folderCache, log *slog.Logger) bool {
	o.setStatus(j, StatusChecking)

	existing, err := children.lookup(ctx, j.folderID)
	if err != nil {
		if isCanceled(err) {
			o.markPaused(j, j.currentIndex, log)
			return false
		}
		// Collisions will still surface per file, so a failed pre-scan
		// degrades to per-file conflict handling rather than failing the job.
		log.Warn("pre-scan listing failed", logging.FieldError, err)
		o.setStatus(j, StatusUploading)
		return true
	}

	var colliding []string
	for _, f := range j.files[j.currentIndex:] {
		if c, ok := existing[f.Name]; ok && !c.Folder {
			colliding = append(colliding, f.Name)
		}
	}
	if len(colliding) == 0 {
		o.setStatus(j, StatusUploading)
		return true
	}

	log.Info("name collisions found", "count", len(colliding))
	res, removed, canceled := o.awaitResolution(ctx, j, StatusNeedsResolution, "", colliding)
	if removed {
		return false
	}
	if canceled {
		// Pausing is not an answer; the resumed run pre-scans again.
		o.markPaused(j, j.currentIndex, log)
		return false
	}

	o.mu.Lock()
	j.bulkResolution = res
	if res == storage.ResolutionSkip {
		j.autoSkip = true
	}
	o.mu.Unlock()
	o.setStatus(j, StatusUploading)
	return true
}

// processFile materializes the file's target folder (folder jobs) and
// transfers it, resolving conflicts along the way. Flat jobs always land in
// the destination root regardless of the file's local directory.
func (o *Orchestrator) processFile(ctx context.Context, j *job, f File, children *folderCache, log *slog.Logger) (result fileResult, removed, paused bool) {
	targetID := j.folderID
	if j.folderJob {
		var err error
		targetID, err = o.materializeFolders(ctx, j, f)
		if err != nil {
			if isCanceled(err) {
				return 0, false, true
			}
			log.Warn("folder materialization failed",
				logging.FieldFileName, f.RelativePath, logging.FieldError, err)
			return resultError, false, false
		}
	}

	return o.transfer(ctx, j, f, targetID, children, log)
}

// materializeFolders walks the file's directory segments left to right,
// creating each remote folder on first encounter and caching its ID for the
// rest of the job.
func (o *Orchestrator) materializeFolders(ctx context.Context, j *job, f File) (string, error) {
	segments := f.DirSegments()
	if len(segments) == 0 {
		return j.folderID, nil
	}

	parentID := j.folderID
	path := ""
	for _, segment := range segments {
		if path == "" {
			path = segment
		} else {
			path = path + "/" + segment
		}
		if id, ok := j.folders[path]; ok {
			parentID = id
			continue
		}
		id, err := o.remote.CreateFolder(ctx, parentID, segment)
		if err != nil {
			return "", err
		}
		j.folders[path] = id
		parentID = id
	}
	return parentID, nil
}

// transfer uploads one file into targetID, applying the applicable conflict
// resolution or blocking for a per-file decision when none applies.
func (o *Orchestrator) transfer(ctx context.Context, j *job, f File, targetID string, children *folderCache, log *slog.Logger) (result fileResult, removed, paused bool) {
	existing, err := children.lookup(ctx, targetID)
	if err != nil {
		if isCanceled(err) {
			return 0, false, true
		}
		log.Warn("listing target folder failed",
			logging.FieldFileName, f.RelativePath, logging.FieldError, err)
		return resultError, false, false
	}

	conflict, taken := existing[f.Name]
	if taken && conflict.Folder {
		// A folder occupying the name cannot be overwritten or renamed away.
		log.Warn("name taken by a folder", logging.FieldFileName, f.RelativePath)
		return resultError, false, false
	}
	if !taken {
		return o.createFile(ctx, j, f, targetID, f.Name, children, log)
	}

	o.mu.Lock()
	res := storage.Resolution("")
	if j.autoSkip {
		res = storage.ResolutionSkip
	} else if j.bulkResolution != "" {
		res = j.bulkResolution
	}
	o.mu.Unlock()

	if res == "" {
		log.Info("file conflict", logging.FieldFileName, f.Name)
		answer, wasRemoved, canceled := o.awaitResolution(ctx, j, StatusConflict, f.Name, nil)
		if wasRemoved {
			return 0, true, false
		}
		if canceled {
			return 0, false, true
		}
		if answer == storage.ResolutionSkip {
			o.mu.Lock()
			j.autoSkip = true
			o.mu.Unlock()
		}
		o.setStatus(j, StatusUploading)
		res = answer
	}

	switch res {
	case storage.ResolutionSkip:
		return resultSkip, false, false
	case storage.ResolutionOverwrite:
		return o.overwriteFile(ctx, f, conflict, log)
	case storage.ResolutionRename:
		name := storage.RenameCandidate(f.Name, o.now(), func(candidate string) bool {
			_, used := existing[candidate]
			return used
		})
		return o.createFile(ctx, j, f, targetID, name, children, log)
	}
	return resultError, false, false
}

func (o *Orchestrator) createFile(ctx context.Context, j *job, f File, targetID, name string, children *folderCache, log *slog.Logger) (fileResult, bool, bool) {
	reader, err := f.Open()
	if err != nil {
		log.Warn("open failed", logging.FieldFileName, f.RelativePath, logging.FieldError, err)
		return resultError, false, false
	}
	defer reader.Close()

	created, err := o.remote.CreateFile(ctx, targetID, name, reader, f.Size)
	if err != nil {
		if isCanceled(err) || ctx.Err() != nil {
			return 0, false, true
		}
		log.Warn("upload failed", logging.FieldFileName, f.RelativePath, logging.FieldError, err)
		return resultError, false, false
	}

	children.record(targetID, created)
	log.Info("file uploaded", logging.FieldFileName, name, "bytes", f.Size)
	return resultSuccess, false, false
}

func (o *Orchestrator) overwriteFile(ctx context.Context, f File, existing storage.Child, log *slog.Logger) (fileResult, bool, bool) {
	reader, err := f.Open()
	if err != nil {
		log.Warn("open failed", logging.FieldFileName, f.RelativePath, logging.FieldError, err)
		return resultError, false, false
	}
	defer reader.Close()

	if _, err := o.remote.UpdateFile(ctx, existing.ID, reader, f.Size); err != nil {
		if isCanceled(err) || ctx.Err() != nil {
			return 0, false, true
		}
		log.Warn("overwrite failed", logging.FieldFileName, f.RelativePath, logging.FieldError, err)
		return resultError, false, false
	}
	log.Info("file overwritten", logging.FieldFileName, f.Name, "bytes", f.Size)
	return resultSuccess, false, false
}

// awaitResolution parks the job in a blocked status and waits for the caller
// to answer through ResolveConflict/ResolveBulk or Dismiss. Dismissal wakes
// the wait with an implicit skip; removed reports whether the job is gone.
// Cancellation (pause, daemon stop) interrupts the wait without an answer:
// canceled is set and res is empty, so the caller's decision stays open for
// the resumed run.
func (o *Orchestrator) awaitResolution(ctx context.Context, j *job, status Status, conflictFile string, colliding []string) (res storage.Resolution, removed, canceled bool) {
	o.mu.Lock()
	if o.jobs[j.id] == nil {
		o.mu.Unlock()
		return "", true, false
	}
	ch := make(chan storage.Resolution, 1)
	o.pending[j.id] = ch
	j.status = status
	j.conflictFile = conflictFile
	j.conflictingFiles = colliding
	j.updatedAt = o.now()
	o.mu.Unlock()

	select {
	case res = <-ch:
	case <-ctx.Done():
		// An answer that raced the cancellation still wins.
		select {
		case res = <-ch:
		default:
			canceled = true
		}
	}

	o.mu.Lock()
	delete(o.pending, j.id)
	removed = o.jobs[j.id] == nil
	if !removed {
		j.conflictFile = ""
		j.conflictingFiles = nil
		j.updatedAt = o.now()
	}
	o.mu.Unlock()
	return res, removed, canceled
}

// complete marks the job done, drops conflict leftovers, and fires the
// completion callback with the final snapshot.
func (o *Orchestrator) complete(j *job, log *slog.Logger) {
	o.mu.Lock()
	if o.jobs[j.id] == nil {
		o.mu.Unlock()
		return
	}
	j.status = StatusDone
	j.conflictFile = ""
	j.conflictingFiles = nil
	j.updatedAt = o.now()
	view := j.view()
	callback := j.onComplete
	o.mu.Unlock()

	log.Info("job finished",
		"uploaded", view.SuccessCount,
		"skipped", view.SkipCount,
		"errors", view.ErrorCount)
	if callback != nil {
		callback(view)
	}
}

func (o *Orchestrator) setStatus(j *job, status Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.jobs[j.id] == nil {
		return
	}
	j.status = status
	j.updatedAt = o.now()
}

func (o *Orchestrator) markPaused(j *job, index int, log *slog.Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.jobs[j.id] == nil {
		return
	}
	// Cursor, bulk resolution, and sticky skip all survive the pause.
	j.status = StatusPaused
	j.currentIndex = index
	j.updatedAt = o.now()
	log.Info("job paused", "cursor", index)
}

// folderCache memoizes one remote listing per folder for the lifetime of a
// single job run, updated as the job creates files.
type folderCache struct {
	remote   storage.Remote
	byFolder map[string]map[string]storage.Child
}

func newFolderCache(remote storage.Remote) *folderCache {
	return &folderCache{remote: remote, byFolder: map[string]map[string]storage.Child{}}
}

func (c *folderCache) lookup(ctx context.Context, folderID string) (map[string]storage.Child, error) {
	if names, ok := c.byFolder[folderID]; ok {
		return names, nil
	}
	children, err := c.remote.ListChildren(ctx, folderID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]storage.Child, len(children))
	for _, child := range children {
		names[child.Name] = child
	}
	c.byFolder[folderID] = names
	return names, nil
}

func (c *folderCache) record(folderID string, child storage.Child) {
	if names, ok := c.byFolder[folderID]; ok {
		names[child.Name] = child
	}
}
