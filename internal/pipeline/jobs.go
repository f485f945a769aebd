package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docrender/internal/theme"
)

// JobStatus represents the state of a render job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single document render.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	ThemeName string    `json:"theme"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	theme    *theme.Theme
	result   []byte
	errors   []string
}

// Progress tracks rendering progress.
type Progress struct {
	NodesRendered int      `json:"nodes_rendered"`
	BlocksAdded   int      `json:"blocks_added"`
	Bytes         int      `json:"bytes"`
	Errors        []string `json:"errors"`
}

// NewJob creates a queued job for an upload. The theme name may be empty,
// in which case the worker uses its default theme.
func NewJob(filename, title, themeName string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		Title:       title,
		ThemeName:   themeName,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// Counts returns the number of stored jobs per status.
func (s *JobStore) Counts() map[JobStatus]int {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.Unlock()

	counts := make(map[JobStatus]int)
	for _, j := range jobs {
		counts[j.Snapshot().Status]++
	}
	return counts
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetProgress records the nodes dispatched and blocks added so far.
func (j *Job) SetProgress(nodes, blocks int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.NodesRendered = nodes
	j.Progress.BlocksAdded = blocks
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetTheme attaches an uploaded theme, which takes precedence over ThemeName.
func (j *Job) SetTheme(t theme.Theme) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.theme = &t
	if t.Name != "" {
		j.ThemeName = t.Name
	}
}

// Theme returns the uploaded theme, if any.
func (j *Job) Theme() (theme.Theme, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.theme == nil {
		return theme.Theme{}, false
	}
	return *j.theme, true
}

// complete stores the rendered package and releases the upload.
func (j *Job) complete(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.fileData = nil
	j.Progress.Bytes = len(data)
	j.Status = StatusCompleted
	j.Phase = "done"
	j.UpdatedAt = time.Now()
}

// Result returns the rendered .docx bytes once the job has completed.
func (j *Job) Result() ([]byte, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Status != StatusCompleted {
		return nil, false
	}
	return j.result, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ThemeName   string    `json:"theme"`
	ContentHash string    `json:"content_hash"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ThemeName:   j.ThemeName,
		ContentHash: j.ContentHash,
		Progress: Progress{
			NodesRendered: j.Progress.NodesRendered,
			BlocksAdded:   j.Progress.BlocksAdded,
			Bytes:         j.Progress.Bytes,
			Errors:        errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
