package submission

import (
	"context"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"

	"go.uber.org/zap"
)

//go:generate mockgen -source=submission_service.go -destination=mock/submission_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery) ([]Submission, error)
	Conflicts(ctx context.Context, req ConflictRequest) (ConflictResponse, error)
	UpdateStatus(ctx context.Context, ids []string, status string) (leave.BatchResult, error)
}

// LeaveSource is the slice of leave.Service this package reads from.
type LeaveSource interface {
	GetAll(ctx context.Context) ([]leave.Leave, error)
	UpdateStatusBatch(ctx context.Context, ids []string, status string) (leave.BatchResult, error)
}

type service struct {
	leaves LeaveSource
	logger *zap.Logger
}

func NewService(leaves LeaveSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("submission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.service")
	}
	return &service{leaves: leaves, logger: l}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]Submission, error) {
	all, err := s.leaves.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	userID := store.ParseID(q.UserID)
	records := make([]leave.Leave, 0, len(all))
	for _, l := range all {
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		if !userID.IsZero() && !l.UserID.Equal(userID) {
			continue
		}
		records = append(records, l)
	}

	if q.Clustering == ClusteringTransitive {
		return GroupTransitive(records), nil
	}
	return Group(records), nil
}

func (s *service) Conflicts(ctx context.Context, req ConflictRequest) (ConflictResponse, error) {
	all, err := s.leaves.GetAll(ctx)
	if err != nil {
		return ConflictResponse{}, err
	}

	c := Candidate{
		UserID:        store.ParseID(string(req.UserID)),
		Dates:         req.Dates,
		LeaveDuration: req.LeaveDuration,
		HalfDayPeriod: req.HalfDayPeriod,
	}
	conflicts := DetectConflicts(c, all)
	dates := ConflictDates(conflicts)
	if len(dates) > 0 {
		s.logger.Debug("conflicts detected",
			zap.String("user_id", c.UserID.String()),
			zap.Strings("dates", dates),
		)
	}
	return ConflictResponse{
		HasConflicts: len(dates) > 0,
		Dates:        dates,
		Conflicts:    conflicts,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, ids []string, status string) (leave.BatchResult, error) {
	return s.leaves.UpdateStatusBatch(ctx, ids, status)
}
