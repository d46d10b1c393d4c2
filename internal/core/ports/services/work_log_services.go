package services

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/dto"
)

// WorkLogReaderSvc defines read operations for work logs
type WorkLogReaderSvc interface {
	GetWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error)

	// ListWorkLogs returns one page and the cursor of the next, nil on the last page.
	ListWorkLogs(ctx context.Context, query dto.ListWorkLogsQuery) ([]*domain.WorkLog, *string, error)
}

// WorkLogWriterSvc defines write operations for work logs
type WorkLogWriterSvc interface {
	CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest) (*domain.WorkLog, error)
	UpdateWorkLog(ctx context.Context, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error)
	DeleteWorkLog(ctx context.Context, workLogID string) error
}

// WorkLogSvcFacade combines all work log service interfaces
type WorkLogSvcFacade interface {
	WorkLogReaderSvc
	WorkLogWriterSvc
}
