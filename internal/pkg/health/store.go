package health

import (
	"log/slog"
	"sync"
	"time"
)

// Run states reported by the status endpoint.
const (
	RunStateRunning = "running"
	RunStateOK      = "ok"
	RunStateFailed  = "failed"
)

// SubcategoryResult records one finished subcategory fetch within a run.
type SubcategoryResult struct {
	MainCategory string    `json:"main_category"`
	SubCategory  string    `json:"sub_category"`
	Events       int       `json:"events"`
	Rows         int       `json:"rows"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RunStatus describes one gather run, live or finished.
type RunStatus struct {
	RunID         string              `json:"run_id"`
	Source        string              `json:"source"`
	State         string              `json:"state"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    *time.Time          `json:"finished_at,omitempty"`
	Rows          int                 `json:"rows"`
	Error         string              `json:"error,omitempty"`
	Subcategories []SubcategoryResult `json:"subcategories"`
}

// StatusSnapshot is the status endpoint's payload: the run in flight, if
// any, and the last finished run.
type StatusSnapshot struct {
	Current *RunStatus `json:"current_run,omitempty"`
	Last    *RunStatus `json:"last_run,omitempty"`
}

// InMemoryRunStore keeps the current and last run statuses for the status
// endpoint.
type InMemoryRunStore struct {
	mu      sync.RWMutex
	current *RunStatus
	last    *RunStatus
}

var globalRunStore *InMemoryRunStore

func init() {
	globalRunStore = &InMemoryRunStore{}
}

// BeginRun opens a new run in the store. A still-open previous run is
// demoted to last with a failed state, which only happens when a run was
// aborted without FinishRun.
func BeginRun(runID, source string) {
	if globalRunStore == nil {
		return
	}
	globalRunStore.mu.Lock()
	defer globalRunStore.mu.Unlock()

	if cur := globalRunStore.current; cur != nil {
		cur.State = RunStateFailed
		if cur.Error == "" {
			cur.Error = "run abandoned"
		}
		globalRunStore.last = cur
	}
	globalRunStore.current = &RunStatus{
		RunID:     runID,
		Source:    source,
		State:     RunStateRunning,
		StartedAt: time.Now(),
	}
}

// SubcategoryDone records one finished subcategory fetch on the current run.
// Calls without an open run are dropped.
func SubcategoryDone(mainCategory, subCategory string, events, rows int) {
	if globalRunStore == nil {
		return
	}
	globalRunStore.mu.Lock()
	defer globalRunStore.mu.Unlock()

	cur := globalRunStore.current
	if cur == nil {
		return
	}
	cur.Subcategories = append(cur.Subcategories, SubcategoryResult{
		MainCategory: mainCategory,
		SubCategory:  subCategory,
		Events:       events,
		Rows:         rows,
		FinishedAt:   time.Now(),
	})
	slog.Debug("Subcategory recorded",
		"run_id", cur.RunID,
		"main_category", mainCategory,
		"sub_category", subCategory,
		"events", events,
		"rows", rows)
}

// FinishRun closes the current run with its final row count, or with the
// error that aborted it.
func FinishRun(rows int, runErr error) {
	if globalRunStore == nil {
		return
	}
	globalRunStore.mu.Lock()
	defer globalRunStore.mu.Unlock()

	cur := globalRunStore.current
	if cur == nil {
		return
	}
	now := time.Now()
	cur.FinishedAt = &now
	cur.Rows = rows
	if runErr != nil {
		cur.State = RunStateFailed
		cur.Error = runErr.Error()
	} else {
		cur.State = RunStateOK
	}
	globalRunStore.last = cur
	globalRunStore.current = nil
}

// Snapshot returns copies of the current and last run statuses.
func Snapshot() StatusSnapshot {
	if globalRunStore == nil {
		return StatusSnapshot{}
	}
	globalRunStore.mu.RLock()
	defer globalRunStore.mu.RUnlock()

	return StatusSnapshot{
		Current: copyRunStatus(globalRunStore.current),
		Last:    copyRunStatus(globalRunStore.last),
	}
}

func copyRunStatus(s *RunStatus) *RunStatus {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Subcategories = make([]SubcategoryResult, len(s.Subcategories))
	copy(cp.Subcategories, s.Subcategories)
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		cp.FinishedAt = &t
	}
	return &cp
}

// ResetRuns clears the store. Test helper.
func ResetRuns() {
	if globalRunStore == nil {
		return
	}
	globalRunStore.mu.Lock()
	defer globalRunStore.mu.Unlock()
	globalRunStore.current = nil
	globalRunStore.last = nil
}
