package repositories

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// WorkLogFilter narrows ListWorkLogs. Empty fields are ignored.
type WorkLogFilter struct {
	PersonID string
	ClientID string
	From     string
	To       string
	Status   domain.WorkLogStatus
	Limit    int
	// After is the keyset cursor: rows strictly after (AfterDate, AfterID) in
	// (work_date, id) order.
	AfterDate string
	AfterID   string
}

// WorkLogReader defines read operations for work logs
type WorkLogReader interface {
	// FindWorkLogByID returns apperrors.ErrNotFound when absent.
	FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error)

	// FindWorkLogByIDForUpdate is FindWorkLogByID holding the row lock until the
	// surrounding transaction ends.
	FindWorkLogByIDForUpdate(ctx context.Context, workLogID string) (*domain.WorkLog, error)

	// FindWorkLogsByIDs loads the given logs and locks their rows until the
	// surrounding transaction ends. Missing ids are simply absent from the result.
	FindWorkLogsByIDs(ctx context.Context, workLogIDs []string) ([]*domain.WorkLog, error)

	// FindWorkLogByPersonClientDate returns apperrors.ErrNotFound when absent.
	FindWorkLogByPersonClientDate(ctx context.Context, personID, clientID, workDate string) (*domain.WorkLog, error)

	// ListWorkLogs returns logs ordered by (work_date, id).
	ListWorkLogs(ctx context.Context, filter WorkLogFilter) ([]*domain.WorkLog, error)
}

// WorkLogWriter defines write operations for work logs
type WorkLogWriter interface {
	// SaveWorkLog upserts the log and replaces its items. Returns
	// apperrors.ErrDuplicate when (person, client, date) is taken by another log.
	SaveWorkLog(ctx context.Context, workLog *domain.WorkLog) error

	// DeleteWorkLog returns apperrors.ErrNotFound when absent.
	DeleteWorkLog(ctx context.Context, workLogID string) error
}

// WorkLogRepositoryFacade combines all work log repository interfaces
type WorkLogRepositoryFacade interface {
	WorkLogReader
	WorkLogWriter
}
