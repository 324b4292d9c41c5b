package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gigmate/marketplace-service/internal/model"
	"gigmate/marketplace-service/internal/status"
)

// Memory is a thread-safe in-memory Store. It backs the service tests and
// deliberately keeps the implementation simple; ordering guarantees match the
// PostgreSQL implementation.
type Memory struct {
	mu        sync.RWMutex
	nextID    int64
	jobs      map[string]model.Job
	jobOrder  []string
	apps      map[string]model.Application
	appOrder  []string
	events    []model.StatusEvent
	approvals map[string]model.ApprovalRequest
	apprOrder []string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID:    1,
		jobs:      make(map[string]model.Job),
		apps:      make(map[string]model.Application),
		approvals: make(map[string]model.ApprovalRequest),
	}
}

func (m *Memory) nextIDLocked() string {
	id := m.nextID
	m.nextID++
	return strconv.FormatInt(id, 10)
}

// ── JobStore ───────────────────────────────────────────────────────────────

func (m *Memory) CreateJob(_ context.Context, job model.Job) (model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.ID == "" {
		job.ID = m.nextIDLocked()
	} else if _, exists := m.jobs[job.ID]; exists {
		return model.Job{}, fmt.Errorf("job %s: %w", job.ID, ErrDuplicate)
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	m.jobs[job.ID] = job
	m.jobOrder = append(m.jobOrder, job.ID)
	return job, nil
}

func (m *Memory) GetJob(_ context.Context, id string) (model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return model.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return job, nil
}

func (m *Memory) ListOpenJobs(_ context.Context) ([]model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Job, 0)
	for i := len(m.jobOrder) - 1; i >= 0; i-- { // newest first
		job := m.jobs[m.jobOrder[i]]
		if job.Open {
			out = append(out, job)
		}
	}
	return out, nil
}

func (m *Memory) CloseJob(_ context.Context, id string) (model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return model.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	job.Open = false
	job.UpdatedAt = time.Now().UTC()
	m.jobs[id] = job
	return job, nil
}

// ── ApplicationStore ───────────────────────────────────────────────────────

func (m *Memory) CreateApplication(_ context.Context, app model.Application) (model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.apps {
		if existing.JobID == app.JobID && existing.EmployeeID == app.EmployeeID {
			return model.Application{}, fmt.Errorf("application for job %s by %s: %w", app.JobID, app.EmployeeID, ErrDuplicate)
		}
	}
	if app.ID == "" {
		app.ID = m.nextIDLocked()
	}
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	m.apps[app.ID] = app
	m.appOrder = append(m.appOrder, app.ID)
	return app, nil
}

func (m *Memory) GetApplication(_ context.Context, id string) (model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[id]
	if !ok {
		return model.Application{}, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return app, nil
}

func (m *Memory) ListApplicationsByEmployee(_ context.Context, employeeID string, f ApplicationFilter) ([]model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Application, 0)
	for _, id := range m.appOrder {
		app := m.apps[id]
		if app.EmployeeID != employeeID {
			continue
		}
		if f.Category != nil && app.Status.Category() != *f.Category {
			continue
		}
		if f.ActiveOnly && !app.Status.ShowInActiveJobs() {
			continue
		}
		out = append(out, app)
	}
	sortApplications(out)
	return out, nil
}

func (m *Memory) ListApplicationsByJob(_ context.Context, jobID string) ([]model.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Application, 0)
	for _, id := range m.appOrder {
		app := m.apps[id]
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	sortApplications(out)
	return out, nil
}

// sortApplications orders by status priority, most recently touched first
// within a priority band. Both implementations present listings this way.
func sortApplications(apps []model.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		pi, pj := apps[i].Status.Priority(), apps[j].Status.Priority()
		if pi != pj {
			return pi > pj
		}
		return apps[i].UpdatedAt.After(apps[j].UpdatedAt)
	})
}

func (m *Memory) TransitionApplication(_ context.Context, p TransitionParams) (model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[p.ApplicationID]
	if !ok {
		return model.Application{}, fmt.Errorf("application %s: %w", p.ApplicationID, ErrNotFound)
	}
	if app.Status != p.ExpectedStatus {
		return model.Application{}, fmt.Errorf("application %s is %s, expected %s: %w",
			p.ApplicationID, app.Status, p.ExpectedStatus, ErrConflict)
	}
	app.Status = p.NewStatus
	app.StatusLocked = p.Lock
	app.UpdatedAt = time.Now().UTC()
	m.apps[app.ID] = app

	ev := p.Event
	ev.ApplicationID = app.ID
	if ev.FromStatus == "" {
		ev.FromStatus = p.ExpectedStatus
	}
	if ev.ToStatus == "" {
		ev.ToStatus = p.NewStatus
	}
	m.appendEventLocked(ev)
	return app, nil
}

func (m *Memory) SummarizeEmployee(_ context.Context, employeeID string) (model.EmployeeSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sum := model.EmployeeSummary{TotalEarned: decimal.Zero}
	for _, app := range m.apps {
		if app.EmployeeID != employeeID {
			continue
		}
		switch app.Status.Category() {
		case status.CategoryPending:
			sum.Pending++
		case status.CategoryActive:
			sum.Active++
		case status.CategoryCompleted:
			sum.Completed++
		case status.CategoryRejected:
			sum.Rejected++
		}
		if app.Status == status.StatusCompleted {
			if job, ok := m.jobs[app.JobID]; ok {
				sum.TotalEarned = sum.TotalEarned.Add(job.PayAmount)
			}
		}
	}
	return sum, nil
}

// ── EventStore ─────────────────────────────────────────────────────────────

func (m *Memory) appendEventLocked(ev model.StatusEvent) model.StatusEvent {
	if ev.ID == "" {
		ev.ID = m.nextIDLocked()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	m.events = append(m.events, ev)
	return ev
}

func (m *Memory) AppendEvent(_ context.Context, ev model.StatusEvent) (model.StatusEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendEventLocked(ev), nil
}

func (m *Memory) ListEvents(_ context.Context, applicationID string) ([]model.StatusEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.StatusEvent, 0)
	for _, ev := range m.events {
		if ev.ApplicationID == applicationID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ── ApprovalStore ──────────────────────────────────────────────────────────

func (m *Memory) CreateApproval(_ context.Context, req model.ApprovalRequest) (model.ApprovalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.ID == "" {
		req.ID = m.nextIDLocked()
	}
	if req.State == "" {
		req.State = model.ApprovalPending
	}
	req.CreatedAt = time.Now().UTC()
	m.approvals[req.ID] = req
	m.apprOrder = append(m.apprOrder, req.ID)
	return req, nil
}

func (m *Memory) GetApproval(_ context.Context, id string) (model.ApprovalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.approvals[id]
	if !ok {
		return model.ApprovalRequest{}, fmt.Errorf("approval %s: %w", id, ErrNotFound)
	}
	return req, nil
}

func (m *Memory) ListApprovalsByState(_ context.Context, state model.ApprovalState) ([]model.ApprovalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ApprovalRequest, 0)
	for _, id := range m.apprOrder { // oldest first, queue order
		if req := m.approvals[id]; req.State == state {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *Memory) ResolveApproval(_ context.Context, id string, state model.ApprovalState, resolvedBy, note string) (model.ApprovalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.approvals[id]
	if !ok {
		return model.ApprovalRequest{}, fmt.Errorf("approval %s: %w", id, ErrNotFound)
	}
	if req.State != model.ApprovalPending {
		return model.ApprovalRequest{}, fmt.Errorf("approval %s already %s: %w", id, req.State, ErrConflict)
	}
	now := time.Now().UTC()
	req.State = state
	req.ResolvedAt = &now
	req.ResolvedBy = resolvedBy
	req.Note = note
	m.approvals[id] = req
	return req, nil
}

func (m *Memory) ExpireApprovals(_ context.Context, before time.Time) ([]model.ApprovalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := make([]model.ApprovalRequest, 0)
	now := time.Now().UTC()
	for _, id := range m.apprOrder {
		req := m.approvals[id]
		if req.State != model.ApprovalPending || !req.CreatedAt.Before(before) {
			continue
		}
		req.State = model.ApprovalExpired
		req.ResolvedAt = &now
		m.approvals[id] = req
		expired = append(expired, req)
	}
	return expired, nil
}
