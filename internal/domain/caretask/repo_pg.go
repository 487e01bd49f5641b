package caretask

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

type careTaskRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &careTaskRepoPG{pool: pool}
}

func (r *careTaskRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const careTaskCols = `id, title, description, clinical_priority, specialty,
	patient_reference, sla_target_minutes, human_review_required, completed,
	created_at, updated_at`

func (r *careTaskRepoPG) scan(row pgx.Row) (*CareTask, error) {
	var t CareTask
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ClinicalPriority, &t.Specialty,
		&t.PatientReference, &t.SLATargetMinutes, &t.HumanReviewRequired, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *careTaskRepoPG) Create(ctx context.Context, t *CareTask) error {
	t.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO care_tasks (id, title, description, clinical_priority, specialty,
			patient_reference, sla_target_minutes, human_review_required, completed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		t.ID, t.Title, t.Description, t.ClinicalPriority, t.Specialty,
		t.PatientReference, t.SLATargetMinutes, t.HumanReviewRequired, t.Completed,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *careTaskRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CareTask, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+careTaskCols+` FROM care_tasks WHERE id = $1`, id))
}

func (r *careTaskRepoPG) Update(ctx context.Context, t *CareTask) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE care_tasks SET title=$2, description=$3, clinical_priority=$4,
			specialty=$5, patient_reference=$6, sla_target_minutes=$7,
			human_review_required=$8, completed=$9, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID, t.Title, t.Description, t.ClinicalPriority,
		t.Specialty, t.PatientReference, t.SLATargetMinutes,
		t.HumanReviewRequired, t.Completed,
	).Scan(&t.UpdatedAt)
}

func (r *careTaskRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM care_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *careTaskRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CareTask, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Completed != nil {
		where += " AND completed = " + next(*filter.Completed)
	}
	if filter.ClinicalPriority != nil {
		where += " AND clinical_priority = " + next(*filter.ClinicalPriority)
	}
	if filter.Specialty != nil {
		where += " AND specialty = " + next(*filter.Specialty)
	}
	if filter.PatientReference != nil {
		where += " AND patient_reference = " + next(*filter.PatientReference)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM care_tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `SELECT ` + careTaskCols + ` FROM care_tasks` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CareTask
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
