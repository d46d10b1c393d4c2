package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/SscSPs/opahours_backend/internal/models"
	"github.com/SscSPs/opahours_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	workLogColumns     = `id, person_id, client_id, work_date::text, notes, daily_additional_cents, status::text`
	workLogItemColumns = `id, work_log_id, location, start_at, end_at, break_minutes, hourly_rate_cents, additional_cents, notes, sort_order`
)

type PgxWorkLogRepository struct {
	BaseRepository
	now func() time.Time
}

func newPgxWorkLogRepository(base BaseRepository) *PgxWorkLogRepository {
	return &PgxWorkLogRepository{BaseRepository: base, now: time.Now}
}

var _ portsrepo.WorkLogRepositoryFacade = (*PgxWorkLogRepository)(nil)

func scanWorkLogRow(row pgx.Row) (models.WorkLog, error) {
	var m models.WorkLog
	err := row.Scan(&m.ID, &m.PersonID, &m.ClientID, &m.WorkDate, &m.Notes, &m.DailyAdditionalCents, &m.Status)
	return m, err
}

func scanWorkLogItemRow(row pgx.Row) (models.WorkLogItem, error) {
	var m models.WorkLogItem
	err := row.Scan(&m.ID, &m.WorkLogID, &m.Location, &m.StartAt, &m.EndAt, &m.BreakMinutes,
		&m.HourlyRateCents, &m.AdditionalCents, &m.Notes, &m.SortOrder)
	return m, err
}

// hydrate loads the items of headers and rebuilds the aggregates in header order.
func (r *PgxWorkLogRepository) hydrate(ctx context.Context, headers []models.WorkLog) ([]*domain.WorkLog, error) {
	if len(headers) == 0 {
		return []*domain.WorkLog{}, nil
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}

	rows, err := r.q(ctx).Query(ctx, `
        SELECT `+workLogItemColumns+`
        FROM work_log_items
        WHERE work_log_id = ANY($1)
        ORDER BY work_log_id, sort_order, id;
    `, ids)
	if err != nil {
		return nil, mapError(err, "failed to query work log items")
	}
	items, err := collect(rows, scanWorkLogItemRow)
	if err != nil {
		return nil, err
	}
	byLog := make(map[string][]models.WorkLogItem, len(headers))
	for _, item := range items {
		byLog[item.WorkLogID] = append(byLog[item.WorkLogID], item)
	}

	out := make([]*domain.WorkLog, len(headers))
	for i, h := range headers {
		wl, err := mapping.ToDomainWorkLog(h, byLog[h.ID])
		if err != nil {
			return nil, err
		}
		out[i] = wl
	}
	return out, nil
}

func (r *PgxWorkLogRepository) findOne(ctx context.Context, forUpdate bool, where string, args ...any) (*domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	query += `;`
	header, err := scanWorkLogRow(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "failed to find work log")
	}
	logs, err := r.hydrate(ctx, []models.WorkLog{header})
	if err != nil {
		return nil, err
	}
	return logs[0], nil
}

func (r *PgxWorkLogRepository) FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	return r.findOne(ctx, false, "id = $1", workLogID)
}

func (r *PgxWorkLogRepository) FindWorkLogByIDForUpdate(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	return r.findOne(ctx, true, "id = $1", workLogID)
}

func (r *PgxWorkLogRepository) FindWorkLogByPersonClientDate(ctx context.Context, personID, clientID, workDate string) (*domain.WorkLog, error) {
	return r.findOne(ctx, false, "person_id = $1 AND client_id = $2 AND work_date = $3::date", personID, clientID, workDate)
}

func (r *PgxWorkLogRepository) FindWorkLogsByIDs(ctx context.Context, workLogIDs []string) ([]*domain.WorkLog, error) {
	if len(workLogIDs) == 0 {
		return []*domain.WorkLog{}, nil
	}
	// row locks only hold inside a transaction; outside one this is a plain read
	rows, err := r.q(ctx).Query(ctx, `
        SELECT `+workLogColumns+`
        FROM work_logs
        WHERE id = ANY($1)
        ORDER BY id
        FOR UPDATE;
    `, workLogIDs)
	if err != nil {
		return nil, mapError(err, "failed to lock work logs")
	}
	headers, err := collect(rows, scanWorkLogRow)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, headers)
}

func (r *PgxWorkLogRepository) ListWorkLogs(ctx context.Context, filter portsrepo.WorkLogFilter) ([]*domain.WorkLog, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	add("person_id = $%d", filter.PersonID)
	if filter.ClientID != "" {
		add("client_id = $%d", filter.ClientID)
	}
	if filter.From != "" {
		add("work_date >= $%d::date", filter.From)
	}
	if filter.To != "" {
		add("work_date <= $%d::date", filter.To)
	}
	if filter.Status != "" {
		add("status = $%d::work_log_status", string(filter.Status))
	}
	if filter.AfterDate != "" && filter.AfterID != "" {
		args = append(args, filter.AfterDate, filter.AfterID)
		conds = append(conds, fmt.Sprintf("(work_date, id) > ($%d::date, $%d::uuid)", len(args)-1, len(args)))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
        SELECT %s
        FROM work_logs
        WHERE %s
        ORDER BY work_date, id
        LIMIT $%d;
    `, workLogColumns, strings.Join(conds, " AND "), len(args))

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list work logs")
	}
	headers, err := collect(rows, scanWorkLogRow)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, headers)
}

// SaveWorkLog upserts the header and rewrites the items in one transaction.
func (r *PgxWorkLogRepository) SaveWorkLog(ctx context.Context, workLog *domain.WorkLog) error {
	header, items := mapping.ToModelWorkLog(workLog, r.now().UTC())

	return r.RunInTx(ctx, func(ctx context.Context) error {
		q := r.q(ctx)
		_, err := q.Exec(ctx, `
            INSERT INTO work_logs (id, person_id, client_id, work_date, notes, daily_additional_cents, status,
                start_at, end_at, break_minutes, payable_minutes, total_cents, created_at, updated_at)
            VALUES ($1, $2, $3, $4::date, $5, $6, $7::work_log_status, $8, $9, $10, $11, $12, $13, $14)
            ON CONFLICT (id) DO UPDATE SET
                person_id = EXCLUDED.person_id,
                client_id = EXCLUDED.client_id,
                work_date = EXCLUDED.work_date,
                notes = EXCLUDED.notes,
                daily_additional_cents = EXCLUDED.daily_additional_cents,
                status = EXCLUDED.status,
                start_at = EXCLUDED.start_at,
                end_at = EXCLUDED.end_at,
                break_minutes = EXCLUDED.break_minutes,
                payable_minutes = EXCLUDED.payable_minutes,
                total_cents = EXCLUDED.total_cents,
                updated_at = EXCLUDED.updated_at;
        `,
			header.ID, header.PersonID, header.ClientID, header.WorkDate, header.Notes, header.DailyAdditionalCents,
			header.Status, header.StartAt, header.EndAt, header.BreakMinutes, header.PayableMinutes, header.TotalCents,
			header.CreatedAt, header.UpdatedAt,
		)
		if err != nil {
			return mapError(err, "failed to save work log")
		}

		if _, err := q.Exec(ctx, `DELETE FROM work_log_items WHERE work_log_id = $1;`, header.ID); err != nil {
			return mapError(err, "failed to clear work log items")
		}

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(`
                INSERT INTO work_log_items (`+workLogItemColumns+`, payable_minutes, total_cents)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
            `,
				item.ID, item.WorkLogID, item.Location, item.StartAt, item.EndAt, item.BreakMinutes,
				item.HourlyRateCents, item.AdditionalCents, item.Notes, item.SortOrder,
				item.PayableMinutes, item.TotalCents,
			)
		}
		return execBatch(ctx, q, batch, "failed to insert work log items")
	})
}

func (r *PgxWorkLogRepository) DeleteWorkLog(ctx context.Context, workLogID string) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM work_logs WHERE id = $1;`, workLogID)
	if err != nil {
		return mapError(err, "failed to delete work log")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
