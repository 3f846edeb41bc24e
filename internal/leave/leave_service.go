package leave

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"leave-tracker/internal/events"
	leaveerrors "leave-tracker/internal/leave/errors"
	"leave-tracker/internal/shared/contextutil"
	"leave-tracker/internal/store"

	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]Leave, error)
	GetByUser(ctx context.Context, userID string) ([]Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	Create(ctx context.Context, req CreateLeaveRequest) (Leave, error)
	UpdateStatus(ctx context.Context, id, status string) (Leave, error)
	UpdateStatusBatch(ctx context.Context, ids []string, status string) (BatchResult, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (ClearResult, error)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithPublisher(repo, nil, logger...)
}

func NewServiceWithPublisher(repo Repository, publisher EventPublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{repo: repo, publisher: publisher, now: time.Now, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) publish(ctx context.Context, event events.LeaveEvent) {
	event.OccurredAt = s.now().UTC()
	if err := s.publisher.PublishLeaveEvent(ctx, event); err != nil {
		s.log(ctx).Warn("publish leave event failed",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
	}
}

func (s *service) GetAll(ctx context.Context) ([]Leave, error) {
	return s.repo.GetAllLeaves(ctx)
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]Leave, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, leaveerrors.ErrUserIDRequired
	}
	return s.repo.GetLeavesByUser(ctx, store.ParseID(userID))
}

func (s *service) GetByID(ctx context.Context, id string) (Leave, error) {
	if strings.TrimSpace(id) == "" {
		return Leave{}, leaveerrors.ErrLeaveIDRequired
	}
	l, err := s.repo.GetLeaveByID(ctx, store.ParseID(id))
	if err != nil {
		return Leave{}, err
	}
	if l == nil {
		return Leave{}, leaveerrors.ErrLeaveNotFound
	}
	return *l, nil
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (Leave, error) {
	log := s.log(ctx)
	log.Debug("create leave requested",
		zap.String("user_id", string(req.UserID)),
		zap.String("leave_type", req.LeaveType),
		zap.Strings("dates", req.Dates),
	)

	in, err := normalizeCreate(req)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return Leave{}, err
	}

	l, err := s.repo.CreateLeave(ctx, in)
	if err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return Leave{}, err
	}
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", l.UserID.String()),
		zap.Int("dates", len(l.Dates)),
	)

	s.publish(ctx, events.LeaveEvent{
		EventType: events.LeaveApplied,
		LeaveID:   l.ID.String(),
		UserID:    l.UserID.String(),
		Status:    l.Status,
		Dates:     l.Dates,
	})
	return *l, nil
}

// normalizeCreate validates and coerces the request: dates are trimmed,
// de-duplicated and sorted, and the half-day period is only kept for
// half-day leaves, where it is mandatory.
func normalizeCreate(req CreateLeaveRequest) (NewLeave, error) {
	userID := strings.TrimSpace(string(req.UserID))
	if userID == "" {
		return NewLeave{}, leaveerrors.ErrUserIDRequired
	}

	dates, err := normalizeDates(req.Dates)
	if err != nil {
		return NewLeave{}, err
	}

	officer := strings.TrimSpace(req.CoveringOfficer)
	if officer == "" {
		return NewLeave{}, leaveerrors.ErrCoveringOfficerRequired
	}

	in := NewLeave{
		UserID:          store.ParseID(userID),
		LeaveType:       req.LeaveType,
		LeaveDuration:   req.LeaveDuration,
		Dates:           dates,
		Reason:          req.Reason,
		CoveringOfficer: &officer,
	}
	if in.LeaveType == "" {
		in.LeaveType = TypeCasual
	}
	if in.LeaveDuration == "" {
		in.LeaveDuration = DurationFullDay
	}

	if in.LeaveDuration == DurationHalfDay {
		if req.HalfDayPeriod == nil || *req.HalfDayPeriod == "" {
			return NewLeave{}, leaveerrors.ErrHalfDayPeriodRequired
		}
		period := *req.HalfDayPeriod
		if period != PeriodMorning && period != PeriodEvening {
			return NewLeave{}, leaveerrors.ErrHalfDayPeriodRequired
		}
		in.HalfDayPeriod = &period
	}
	return in, nil
}

func normalizeDates(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, leaveerrors.ErrInvalidDateFormat
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, leaveerrors.ErrDatesRequired
	}
	sort.Strings(out)
	return out, nil
}

func validStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// UpdateStatus allows re-transitions between approved and rejected; setting
// the current status again only refreshes updated_at.
func (s *service) UpdateStatus(ctx context.Context, id, status string) (Leave, error) {
	log := s.log(ctx)
	log.Debug("update leave status requested", zap.String("leave_id", id), zap.String("status", status))

	if strings.TrimSpace(id) == "" {
		return Leave{}, leaveerrors.ErrLeaveIDRequired
	}
	if !validStatus(status) {
		return Leave{}, leaveerrors.ErrInvalidStatus
	}

	l, err := s.repo.UpdateLeaveStatus(ctx, store.ParseID(id), status)
	if err != nil {
		log.Error("update leave status persist failed", zap.String("leave_id", id), zap.Error(err))
		return Leave{}, err
	}
	if l == nil {
		log.Warn("update leave status: leave not found", zap.String("leave_id", id))
		return Leave{}, leaveerrors.ErrLeaveNotFound
	}
	log.Info("update leave status success", zap.String("leave_id", id), zap.String("status", status))

	s.publish(ctx, events.LeaveEvent{
		EventType: events.LeaveStatusChanged,
		LeaveID:   l.ID.String(),
		UserID:    l.UserID.String(),
		Status:    l.Status,
		Dates:     l.Dates,
	})
	return *l, nil
}

// UpdateStatusBatch issues one independent update per id. There is no
// transaction: earlier updates stay applied when later ones fail, and every
// outcome is reported.
func (s *service) UpdateStatusBatch(ctx context.Context, ids []string, status string) (BatchResult, error) {
	if len(ids) == 0 {
		return BatchResult{}, leaveerrors.ErrIDsRequired
	}
	if !validStatus(status) {
		return BatchResult{}, leaveerrors.ErrInvalidStatus
	}

	result := BatchResult{Status: status, Results: make([]BatchItemResult, 0, len(ids))}
	for _, id := range ids {
		item := BatchItemResult{ID: id}
		_, err := s.UpdateStatus(ctx, id, status)
		switch {
		case err == nil:
			item.Result = BatchUpdated
		case errors.Is(err, leaveerrors.ErrLeaveNotFound):
			item.Result = BatchNotFound
		default:
			item.Result = BatchError
			item.Error = err.Error()
		}
		result.Results = append(result.Results, item)
	}

	if !result.AllUpdated() {
		s.log(ctx).Warn("batch status update partially failed",
			zap.String("status", status),
			zap.Int("requested", len(ids)),
		)
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return leaveerrors.ErrLeaveIDRequired
	}
	deleted, err := s.repo.DeleteLeave(ctx, store.ParseID(id))
	if err != nil {
		return err
	}
	if !deleted {
		return leaveerrors.ErrLeaveNotFound
	}
	s.log(ctx).Info("delete leave success", zap.String("leave_id", id))
	s.publish(ctx, events.LeaveEvent{EventType: events.LeaveDeleted, LeaveID: id})
	return nil
}

func (s *service) Clear(ctx context.Context) (ClearResult, error) {
	res, err := s.repo.ClearLeaves(ctx)
	if err != nil {
		return ClearResult{}, err
	}
	s.log(ctx).Info("clear leaves success", zap.Int64("deleted_count", res.DeletedCount))
	if res.DeletedCount > 0 {
		s.publish(ctx, events.LeaveEvent{EventType: events.LeavesCleared, DeletedCount: res.DeletedCount})
	}
	return res, nil
}
