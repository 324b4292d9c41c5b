// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"gigmate/marketplace-service/internal/db"
	"gigmate/marketplace-service/internal/model"
	"gigmate/marketplace-service/internal/status"
	"gigmate/marketplace-service/internal/store"
)

// Store implements store.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

const jobColumns = `id, employer_id, title, description, location,
       pay_amount::text, pay_currency, open, created_at, updated_at`

func scanJob(row pgx.Row) (model.Job, error) {
	var (
		j      model.Job
		amount string
	)
	if err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location,
		&amount, &j.PayCurrency, &j.Open, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return model.Job{}, err
	}
	pay, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Job{}, fmt.Errorf("parse pay_amount: %w", err)
	}
	j.PayAmount = pay
	return j, nil
}

func (s *Store) CreateJob(ctx context.Context, job model.Job) (model.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, location, pay_amount, pay_currency, open)
		 VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
		 RETURNING `+jobColumns,
		job.ID, job.EmployerID, job.Title, job.Description, job.Location,
		job.PayAmount.String(), job.PayCurrency, job.Open,
	)
	created, err := scanJob(row)
	if err != nil {
		return model.Job{}, fmt.Errorf("createJob: %w", err)
	}
	return created, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, fmt.Errorf("job %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("getJob: %w", err)
	}
	return job, nil
}

func (s *Store) ListOpenJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE open ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listOpenJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listOpenJobs scan: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *Store) CloseJob(ctx context.Context, id string) (model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE jobs SET open = false, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns, id)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Job{}, fmt.Errorf("job %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("closeJob: %w", err)
	}
	return job, nil
}

// ─── Applications ────────────────────────────────────────────────────────────

const appColumns = `id, job_id, employee_id, status, is_status_locked, applied_at, updated_at`

func scanApplication(row pgx.Row) (model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.EmployeeID, &a.Status, &a.StatusLocked,
		&a.AppliedAt, &a.UpdatedAt,
	)
	return a, err
}

func (s *Store) CreateApplication(ctx context.Context, app model.Application) (model.Application, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, employee_id, status, is_status_locked)
		 VALUES ($1, $2, $3, $4::application_status, $5)
		 ON CONFLICT (job_id, employee_id) DO NOTHING
		 RETURNING `+appColumns,
		app.ID, app.JobID, app.EmployeeID, string(app.Status), app.StatusLocked,
	)
	created, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, fmt.Errorf("application for job %s by %s: %w",
			app.JobID, app.EmployeeID, store.ErrDuplicate)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("createApplication: %w", err)
	}
	return created, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (model.Application, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, fmt.Errorf("application %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("getApplication: %w", err)
	}
	return app, nil
}

// priorityOrder mirrors status.Priority; keep the two in step.
const priorityOrder = `CASE a.status
		WHEN 'WORK_IN_PROGRESS' THEN 5
		WHEN 'ACCEPTED'         THEN 4
		WHEN 'SELECTED'         THEN 3
		WHEN 'APPLIED'          THEN 2
		WHEN 'COMPLETED'        THEN 1
		ELSE 0 END DESC, a.updated_at DESC`

func (s *Store) ListApplicationsByEmployee(ctx context.Context, employeeID string, f store.ApplicationFilter) ([]model.Application, error) {
	keep := make([]string, 0, 8)
	for _, st := range status.AllStatuses() {
		if f.Category != nil && st.Category() != *f.Category {
			continue
		}
		if f.ActiveOnly && !st.ShowInActiveJobs() {
			continue
		}
		keep = append(keep, string(st))
	}
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.employee_id, a.status, a.is_status_locked, a.applied_at, a.updated_at
		 FROM applications a
		 WHERE a.employee_id = $1 AND a.status = ANY($2::application_status[])
		 ORDER BY `+priorityOrder,
		employeeID, keep,
	)
	if err != nil {
		return nil, fmt.Errorf("listApplicationsByEmployee query: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.employee_id, a.status, a.is_status_locked, a.applied_at, a.updated_at
		 FROM applications a
		 WHERE a.job_id = $1
		 ORDER BY `+priorityOrder,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("listApplicationsByJob query: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]model.Application, error) {
	apps := make([]model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// TransitionApplication performs the conditional status write and appends the
// audit event in one transaction. A row that no longer carries the expected
// status yields ErrConflict and nothing is written.
func (s *Store) TransitionApplication(ctx context.Context, p store.TransitionParams) (model.Application, error) {
	var app model.Application
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE applications
			 SET status = $1::application_status,
			     is_status_locked = $2,
			     updated_at = NOW()
			 WHERE id = $3 AND status = $4::application_status
			 RETURNING `+appColumns,
			string(p.NewStatus), p.Lock, p.ApplicationID, string(p.ExpectedStatus),
		)
		updated, err := scanApplication(row)
		if errors.Is(err, pgx.ErrNoRows) {
			var current string
			if err := tx.QueryRow(ctx,
				`SELECT status FROM applications WHERE id = $1`, p.ApplicationID,
			).Scan(&current); err != nil {
				return fmt.Errorf("application %s: %w", p.ApplicationID, store.ErrNotFound)
			}
			return fmt.Errorf("application %s is %s, expected %s: %w",
				p.ApplicationID, current, p.ExpectedStatus, store.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("transitionApplication update: %w", err)
		}

		ev := p.Event
		ev.ApplicationID = p.ApplicationID
		if ev.FromStatus == "" {
			ev.FromStatus = p.ExpectedStatus
		}
		if ev.ToStatus == "" {
			ev.ToStatus = p.NewStatus
		}
		if _, err := insertEvent(ctx, tx, ev); err != nil {
			return err
		}
		app = updated
		return nil
	})
	if err != nil {
		return model.Application{}, err
	}
	return app, nil
}

// The category buckets below mirror status.Category; keep them in step.
func (s *Store) SummarizeEmployee(ctx context.Context, employeeID string) (model.EmployeeSummary, error) {
	var (
		sum    model.EmployeeSummary
		earned string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE a.status = 'APPLIED'),
		   COUNT(*) FILTER (WHERE a.status IN ('SELECTED', 'ACCEPTED', 'WORK_IN_PROGRESS')),
		   COUNT(*) FILTER (WHERE a.status = 'COMPLETED'),
		   COUNT(*) FILTER (WHERE a.status IN ('REJECTED', 'DECLINED', 'NOT_INTERESTED')),
		   COALESCE(SUM(j.pay_amount) FILTER (WHERE a.status = 'COMPLETED'), 0)::text
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.employee_id = $1`,
		employeeID,
	).Scan(&sum.Pending, &sum.Active, &sum.Completed, &sum.Rejected, &earned)
	if err != nil {
		return model.EmployeeSummary{}, fmt.Errorf("summarizeEmployee: %w", err)
	}
	total, err := decimal.NewFromString(earned)
	if err != nil {
		return model.EmployeeSummary{}, fmt.Errorf("parse total_earned: %w", err)
	}
	sum.TotalEarned = total
	return sum, nil
}

// ─── Status events ───────────────────────────────────────────────────────────

func insertEvent(ctx context.Context, q execer, ev model.StatusEvent) (model.StatusEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	var detail *string
	if ev.Detail != nil {
		b, _ := json.Marshal(ev.Detail)
		str := string(b)
		detail = &str
	}
	_, err := q.Exec(ctx,
		`INSERT INTO status_events (id, application_id, event_type, from_status, to_status, actor, actor_role, detail, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, CAST($8 AS jsonb), $9)`,
		ev.ID, ev.ApplicationID, ev.EventType, string(ev.FromStatus), string(ev.ToStatus),
		ev.Actor, string(ev.ActorRole), detail, ev.OccurredAt,
	)
	if err != nil {
		return model.StatusEvent{}, fmt.Errorf("insertEvent: %w", err)
	}
	return ev, nil
}

func (s *Store) AppendEvent(ctx context.Context, ev model.StatusEvent) (model.StatusEvent, error) {
	return insertEvent(ctx, s.pool, ev)
}

func (s *Store) ListEvents(ctx context.Context, applicationID string) ([]model.StatusEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, application_id, event_type, from_status, to_status, actor, actor_role, detail, occurred_at
		 FROM status_events
		 WHERE application_id = $1
		 ORDER BY occurred_at, id`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("listEvents query: %w", err)
	}
	defer rows.Close()

	events := make([]model.StatusEvent, 0)
	for rows.Next() {
		var (
			ev     model.StatusEvent
			detail []byte
		)
		if err := rows.Scan(
			&ev.ID, &ev.ApplicationID, &ev.EventType, &ev.FromStatus, &ev.ToStatus,
			&ev.Actor, &ev.ActorRole, &detail, &ev.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("listEvents scan: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &ev.Detail); err != nil {
				return nil, fmt.Errorf("listEvents detail: %w", err)
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ─── Approvals ───────────────────────────────────────────────────────────────

const approvalColumns = `id, application_id, from_status, to_status, reason,
       requested_by, requested_role, state, created_at, resolved_at, resolved_by, note`

func scanApproval(row pgx.Row) (model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	err := row.Scan(
		&req.ID, &req.ApplicationID, &req.FromStatus, &req.ToStatus, &req.Reason,
		&req.RequestedBy, &req.RequestedRole, &req.State, &req.CreatedAt,
		&req.ResolvedAt, &req.ResolvedBy, &req.Note,
	)
	return req, err
}

func (s *Store) CreateApproval(ctx context.Context, req model.ApprovalRequest) (model.ApprovalRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.State == "" {
		req.State = model.ApprovalPending
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO approval_requests
		   (id, application_id, from_status, to_status, reason, requested_by, requested_role, state)
		 VALUES ($1, $2, $3::application_status, $4::application_status, $5, $6, $7, $8::approval_state)
		 RETURNING `+approvalColumns,
		req.ID, req.ApplicationID, string(req.FromStatus), string(req.ToStatus),
		req.Reason, req.RequestedBy, string(req.RequestedRole), string(req.State),
	)
	created, err := scanApproval(row)
	if err != nil {
		return model.ApprovalRequest{}, fmt.Errorf("createApproval: %w", err)
	}
	return created, nil
}

func (s *Store) GetApproval(ctx context.Context, id string) (model.ApprovalRequest, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+approvalColumns+` FROM approval_requests WHERE id = $1`, id)
	req, err := scanApproval(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ApprovalRequest{}, fmt.Errorf("approval %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return model.ApprovalRequest{}, fmt.Errorf("getApproval: %w", err)
	}
	return req, nil
}

func (s *Store) ListApprovalsByState(ctx context.Context, state model.ApprovalState) ([]model.ApprovalRequest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+approvalColumns+`
		 FROM approval_requests
		 WHERE state = $1::approval_state
		 ORDER BY created_at, id`,
		string(state),
	)
	if err != nil {
		return nil, fmt.Errorf("listApprovalsByState query: %w", err)
	}
	defer rows.Close()

	out := make([]model.ApprovalRequest, 0)
	for rows.Next() {
		req, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("listApprovalsByState scan: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) ResolveApproval(ctx context.Context, id string, state model.ApprovalState, resolvedBy, note string) (model.ApprovalRequest, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE approval_requests
		 SET state = $2::approval_state, resolved_at = NOW(), resolved_by = $3, note = $4
		 WHERE id = $1 AND state = 'PENDING'
		 RETURNING `+approvalColumns,
		id, string(state), resolvedBy, note,
	)
	req, err := scanApproval(row)
	if errors.Is(err, pgx.ErrNoRows) {
		var current string
		if err := s.pool.QueryRow(ctx,
			`SELECT state FROM approval_requests WHERE id = $1`, id,
		).Scan(&current); err != nil {
			return model.ApprovalRequest{}, fmt.Errorf("approval %s: %w", id, store.ErrNotFound)
		}
		return model.ApprovalRequest{}, fmt.Errorf("approval %s already %s: %w", id, current, store.ErrConflict)
	}
	if err != nil {
		return model.ApprovalRequest{}, fmt.Errorf("resolveApproval: %w", err)
	}
	return req, nil
}

func (s *Store) ExpireApprovals(ctx context.Context, before time.Time) ([]model.ApprovalRequest, error) {
	rows, err := s.pool.Query(ctx,
		`UPDATE approval_requests
		 SET state = 'EXPIRED', resolved_at = NOW()
		 WHERE state = 'PENDING' AND created_at < $1
		 RETURNING `+approvalColumns,
		before,
	)
	if err != nil {
		return nil, fmt.Errorf("expireApprovals query: %w", err)
	}
	defer rows.Close()

	out := make([]model.ApprovalRequest, 0)
	for rows.Next() {
		req, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("expireApprovals scan: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
