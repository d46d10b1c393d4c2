package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// workLogService implements the WorkLogSvcFacade interface
type workLogService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	workLogRepo portsrepo.WorkLogRepositoryFacade
	personRepo  portsrepo.PersonRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
}

// NewWorkLogService creates a new work log service with the provided dependencies
func NewWorkLogService(
	txManager portsrepo.TransactionManager,
	workLogRepo portsrepo.WorkLogRepositoryFacade,
	personRepo portsrepo.PersonRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	opts ...ServiceOption,
) portssvc.WorkLogSvcFacade {
	return &workLogService{
		BaseService: newBaseService(opts),
		txManager:   txManager,
		workLogRepo: workLogRepo,
		personRepo:  personRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.WorkLogSvcFacade = (*workLogService)(nil)

// toDomainItems builds work log items, generating ids for new ones.
func toDomainItems(items []dto.WorkLogItemRequest) ([]*domain.WorkLogItem, error) {
	out := make([]*domain.WorkLogItem, 0, len(items))
	for _, item := range items {
		id := uuid.NewString()
		if item.ID != nil && *item.ID != "" {
			id = *item.ID
		}
		wli, err := domain.NewWorkLogItem(domain.WorkLogItemInput{
			ID:              id,
			Location:        item.Location,
			StartAt:         item.StartAt,
			EndAt:           item.EndAt,
			BreakMinutes:    item.BreakMinutes,
			HourlyRateCents: item.HourlyRateCents,
			AdditionalCents: item.AdditionalCents,
			Notes:           item.Notes,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, wli)
	}
	return out, nil
}

func (s *workLogService) ensurePersonAndClient(ctx context.Context, personID, clientID string) error {
	if _, err := s.personRepo.FindPersonByID(ctx, personID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Wrap(apperrors.CodePersonNotFound, err).WithDetails(map[string]any{"personId": personID})
		}
		return err
	}
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeClientNotFound, err).WithDetails(map[string]any{"clientId": clientID})
		}
		return err
	}
	return nil
}

// ensureUnique fails when another log already holds (person, client, date).
func (s *workLogService) ensureUnique(ctx context.Context, personID, clientID, workDate, selfID string) error {
	existing, err := s.workLogRepo.FindWorkLogByPersonClientDate(ctx, personID, clientID, workDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID() != selfID {
		return apperrors.New(apperrors.CodeWorkLogExists).WithDetails(map[string]any{
			"personId": personID,
			"clientId": clientID,
			"workDate": workDate,
		})
	}
	return nil
}

func (s *workLogService) findWorkLog(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	return s.wrapFind(ctx, workLogID)(s.workLogRepo.FindWorkLogByID(ctx, workLogID))
}

// lockWorkLog must run inside RunInTx; the row stays locked until commit.
func (s *workLogService) lockWorkLog(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	return s.wrapFind(ctx, workLogID)(s.workLogRepo.FindWorkLogByIDForUpdate(ctx, workLogID))
}

func (s *workLogService) wrapFind(ctx context.Context, workLogID string) func(*domain.WorkLog, error) (*domain.WorkLog, error) {
	return func(wl *domain.WorkLog, err error) (*domain.WorkLog, error) {
		if err == nil {
			return wl, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeWorkLogNotFound, err).WithDetails(map[string]any{"workLogId": workLogID})
		}
		s.LogError(ctx, err, "Failed to find work log", slog.String("work_log_id", workLogID))
		return nil, err
	}
}

func (s *workLogService) save(ctx context.Context, wl *domain.WorkLog) error {
	if err := s.workLogRepo.SaveWorkLog(ctx, wl); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.Wrap(apperrors.CodeWorkLogExists, err)
		}
		s.LogError(ctx, err, "Failed to save work log", slog.String("work_log_id", wl.ID()))
		return err
	}
	return nil
}

// CreateWorkLog records a new draft day of work.
func (s *workLogService) CreateWorkLog(ctx context.Context, req dto.CreateWorkLogRequest) (*domain.WorkLog, error) {
	if err := s.ensurePersonAndClient(ctx, req.PersonID, req.ClientID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, req.PersonID, req.ClientID, req.WorkDate, ""); err != nil {
		return nil, err
	}

	items, err := toDomainItems(req.Items)
	if err != nil {
		return nil, err
	}
	wl, err := domain.NewWorkLog(domain.WorkLogInput{
		ID:                   uuid.NewString(),
		PersonID:             req.PersonID,
		ClientID:             req.ClientID,
		WorkDate:             req.WorkDate,
		Notes:                req.Notes,
		DailyAdditionalCents: req.DailyAdditionalCents,
		Status:               domain.WorkLogStatusDraft,
	})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := wl.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, wl); err != nil {
		return nil, err
	}
	s.metrics.workLogSaved("create")
	s.LogInfo(ctx, "Work log created",
		slog.String("work_log_id", wl.ID()),
		slog.Int("items", len(items)),
		slog.Int64("total_cents", wl.TotalCents()))
	return wl, nil
}

// GetWorkLogByID retrieves a work log by its ID
func (s *workLogService) GetWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	return s.findWorkLog(ctx, workLogID)
}

// ListWorkLogs returns one page of a person's logs in (work_date, id) order.
func (s *workLogService) ListWorkLogs(ctx context.Context, query dto.ListWorkLogsQuery) ([]*domain.WorkLog, *string, error) {
	if query.From != "" && query.To != "" && query.From > query.To {
		return nil, nil, apperrors.New(apperrors.CodeValidation).WithDetails(map[string]any{
			"from": query.From,
			"to":   query.To,
		})
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.WorkLogFilter{
		PersonID: query.PersonID,
		ClientID: query.ClientID,
		From:     query.From,
		To:       query.To,
		Status:   domain.WorkLogStatus(query.Status),
		Limit:    limit + 1,
	}
	if query.NextToken != "" {
		date, id, err := pagination.DecodeDateIDToken(query.NextToken)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.CodeValidation, err).WithDetails(map[string]any{"nextToken": "invalid"})
		}
		filter.AfterDate, filter.AfterID = date, id
	}

	logs, err := s.workLogRepo.ListWorkLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list work logs", slog.String("person_id", query.PersonID))
		return nil, nil, err
	}

	var next *string
	if len(logs) > limit {
		logs = logs[:limit]
		last := logs[len(logs)-1]
		token := pagination.EncodeDateIDToken(last.WorkDate(), last.ID())
		next = &token
	}
	if logs == nil {
		logs = []*domain.WorkLog{}
	}
	return logs, next, nil
}

// UpdateWorkLog applies a partial update. A present items list replaces all items.
func (s *workLogService) UpdateWorkLog(ctx context.Context, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error) {
	if req.IsEmpty() {
		return nil, apperrors.New(apperrors.CodeValidation).WithDetails(map[string]any{"reason": "at least one field is required"})
	}

	var updated *domain.WorkLog
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.lockWorkLog(ctx, workLogID)
		if err != nil {
			return err
		}
		if current.IsLocked() {
			return domain.ErrWorkLogLocked
		}

		personID, clientID, workDate := current.PersonID(), current.ClientID(), current.WorkDate()
		if req.PersonID != nil {
			personID = *req.PersonID
		}
		if req.ClientID != nil {
			clientID = *req.ClientID
		}
		if req.WorkDate != nil {
			workDate = *req.WorkDate
		}
		if personID != current.PersonID() || clientID != current.ClientID() {
			if err := s.ensurePersonAndClient(ctx, personID, clientID); err != nil {
				return err
			}
		}
		if err := s.ensureUnique(ctx, personID, clientID, workDate, workLogID); err != nil {
			return err
		}

		items := current.Items()
		if req.Items != nil {
			if items, err = toDomainItems(*req.Items); err != nil {
				return err
			}
		}
		daily := current.DailyAdditionalCents()
		if req.DailyAdditionalCents != nil {
			daily = *req.DailyAdditionalCents
		}

		updated, err = domain.NewWorkLog(domain.WorkLogInput{
			ID:                   workLogID,
			PersonID:             personID,
			ClientID:             clientID,
			WorkDate:             workDate,
			Notes:                req.Notes.Ptr(current.Notes()),
			DailyAdditionalCents: daily,
			Status:               current.Status(),
			Items:                items,
		})
		if err != nil {
			return err
		}
		return s.save(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.workLogSaved("update")
	s.LogInfo(ctx, "Work log updated", slog.String("work_log_id", workLogID))
	return updated, nil
}

// DeleteWorkLog removes a log unless it has been invoiced.
func (s *workLogService) DeleteWorkLog(ctx context.Context, workLogID string) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.lockWorkLog(ctx, workLogID)
		if err != nil {
			return err
		}
		if current.IsLocked() {
			return domain.ErrWorkLogLocked
		}
		if err := s.workLogRepo.DeleteWorkLog(ctx, workLogID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.Wrap(apperrors.CodeWorkLogNotFound, err)
			}
			if errors.Is(err, apperrors.ErrInUse) {
				// a draft invoice still bills this log
				return apperrors.Wrap(apperrors.CodeConflict, err).WithDetails(map[string]any{"workLogId": workLogID})
			}
			s.LogError(ctx, err, "Failed to delete work log", slog.String("work_log_id", workLogID))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Work log deleted", slog.String("work_log_id", workLogID))
	return nil
}
