package employee

import (
	"context"
	"encoding/json"
	"time"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsKeyPrefix = "employees:options:"
	OptionsTTL       = time.Hour
)

// OptionsKey is scoped by storage mode: memory ids mean nothing to a durable
// backend and must not be served from a cache filled while degraded.
func OptionsKey(mode string) string {
	return OptionsKeyPrefix + mode
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetOptions(ctx context.Context) ([]leave.EmployeeOption, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService accepts a nil redis client; the cache is then skipped.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetOptions(ctx context.Context) ([]leave.EmployeeOption, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	cacheKey := OptionsKey(string(s.repo.StorageMode(ctx)))

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []leave.EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent misses into one store read.
	v, err, shared := s.sf.Do(cacheKey, func() (interface{}, error) {
		opts, err := s.repo.GetEmployeeOptions(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(opts); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(payload), OptionsTTL).Err(); err != nil {
					log.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return opts, nil
	})
	if err != nil {
		log.Error("get employee options failed", zap.Error(err))
		return nil, err
	}
	log.Debug("employee options loaded", zap.Bool("shared", shared))

	return v.([]leave.EmployeeOption), nil
}
