package agentrun

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edops/edops/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type runRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &runRepoPG{pool: pool}
}

func (r *runRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const runCols = `id, care_task_id, workflow_name, status, run_input, run_output,
	error_message, total_latency_ms, created_at`

func (r *runRepoPG) scan(row pgx.Row) (*AgentRun, error) {
	var run AgentRun
	err := row.Scan(&run.ID, &run.CareTaskID, &run.WorkflowName, &run.Status,
		&run.RunInput, &run.RunOutput, &run.ErrorMessage, &run.TotalLatencyMs,
		&run.CreatedAt)
	return &run, err
}

func (r *runRepoPG) Create(ctx context.Context, run *AgentRun) error {
	run.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO agent_runs (id, care_task_id, workflow_name, status,
			run_input, run_output, error_message, total_latency_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		run.ID, run.CareTaskID, run.WorkflowName, run.Status,
		run.RunInput, run.RunOutput, run.ErrorMessage, run.TotalLatencyMs,
	).Scan(&run.CreatedAt)
}

func (r *runRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AgentRun, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+runCols+` FROM agent_runs WHERE id = $1`, id))
}

func (r *runRepoPG) ListRecent(ctx context.Context, filter ListFilter, limit int) ([]*AgentRun, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Status != nil {
		where += " AND status = " + next(*filter.Status)
	}
	if filter.WorkflowName != nil {
		where += " AND workflow_name = " + next(*filter.WorkflowName)
	}
	if filter.CareTaskID != nil {
		where += " AND care_task_id = " + next(*filter.CareTaskID)
	}
	if filter.CreatedFrom != nil {
		where += " AND created_at >= " + next(*filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		where += " AND created_at <= " + next(*filter.CreatedTo)
	}

	sql := `SELECT ` + runCols + ` FROM agent_runs` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + next(limit)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*AgentRun
	for rows.Next() {
		run, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *runRepoPG) OpsSummary(ctx context.Context, workflowName *string) (*OpsSummary, error) {
	where := ""
	args := []interface{}{}
	if workflowName != nil {
		where = " WHERE workflow_name = $1"
		args = append(args, *workflowName)
	}
	var summary OpsSummary
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM agent_runs`+where, args...,
	).Scan(&summary.TotalRuns, &summary.CompletedRuns, &summary.FailedRuns)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
