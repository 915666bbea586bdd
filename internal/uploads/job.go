package uploads

import (
	"context"
	"time"

	"callsheet/internal/storage"
)

// Status is an upload job's lifecycle state.
type Status string

const (
	StatusQueued          Status = "queued"
	StatusChecking        Status = "checking"
	StatusNeedsResolution Status = "needs-resolution"
	StatusUploading       Status = "uploading"
	StatusConflict        Status = "conflict"
	StatusPaused          Status = "paused"
	StatusDone            Status = "done"
)

// Blocked reports whether the job is waiting on a caller decision.
func (s Status) Blocked() bool {
	return s == StatusNeedsResolution || s == StatusConflict
}

// job is the orchestrator's internal runtime record. All fields are guarded
// by the orchestrator's mutex except during the run loop's exclusive
// ownership of the transfer itself.
type job struct {
	id          string
	files       []File
	folderID    string
	folderLabel string
	folderJob   bool

	status       Status
	currentIndex int
	successCount int
	skipCount    int
	errorCount   int

	// conflictingFiles holds the pre-scan collision set while the job waits
	// for a bulk resolution; conflictFile names the single blocking file in
	// per-file conflict mode.
	conflictingFiles []string
	conflictFile     string

	// bulkResolution is the pre-scan decision for flat uploads; autoSkip is
	// the sticky-skip flag set once a caller skips any conflict in this job.
	bulkResolution storage.Resolution
	autoSkip       bool

	// sequence orders pickup among queued jobs. Resuming assigns a fresh
	// sequence so resumed jobs rejoin at the back of the pool.
	sequence uint64

	cancel     context.CancelFunc
	folders    map[string]string // relative dir path -> remote folder ID
	onComplete func(View)

	createdAt time.Time
	updatedAt time.Time
}

func (j *job) attempted() int {
	return j.successCount + j.skipCount + j.errorCount
}

// View is a read-only snapshot of a job for callers rendering progress.
type View struct {
	ID               string     `json:"id"`
	Status           Status     `json:"status"`
	FolderID         string     `json:"folderId"`
	FolderLabel      string     `json:"folderLabel"`
	FolderUpload     bool       `json:"folderUpload"`
	TotalFiles       int        `json:"totalFiles"`
	CurrentIndex     int        `json:"currentIndex"`
	CurrentFile      string     `json:"currentFile,omitempty"`
	SuccessCount     int        `json:"successCount"`
	SkipCount        int        `json:"skipCount"`
	ErrorCount       int        `json:"errorCount"`
	ConflictingFiles []string   `json:"conflictingFiles,omitempty"`
	ConflictFile     string     `json:"conflictFile,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (j *job) view() View {
	v := View{
		ID:           j.id,
		Status:       j.status,
		FolderID:     j.folderID,
		FolderLabel:  j.folderLabel,
		FolderUpload: j.folderJob,
		TotalFiles:   len(j.files),
		CurrentIndex: j.currentIndex,
		SuccessCount: j.successCount,
		SkipCount:    j.skipCount,
		ErrorCount:   j.errorCount,
		ConflictFile: j.conflictFile,
		CreatedAt:    j.createdAt,
		UpdatedAt:    j.updatedAt,
	}
	if len(j.conflictingFiles) > 0 {
		v.ConflictingFiles = append([]string(nil), j.conflictingFiles...)
	}
	if j.status == StatusUploading && j.currentIndex < len(j.files) {
		v.CurrentFile = j.files[j.currentIndex].Name
	}
	return v
}
