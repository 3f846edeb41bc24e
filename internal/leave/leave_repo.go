package leave

import (
	"context"
	"time"

	"leave-tracker/internal/store"

	"go.uber.org/zap"
)

// Store is the part of store.Adapter the repository depends on.
type Store interface {
	Mode(ctx context.Context) store.Mode
	Users(ctx context.Context) store.UserCollection
	Leaves(ctx context.Context) store.LeaveCollection
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	StorageMode(ctx context.Context) store.Mode
	GetEmployees(ctx context.Context) ([]Employee, error)
	GetEmployeeOptions(ctx context.Context) ([]EmployeeOption, error)
	GetUserByID(ctx context.Context, id store.ID) (*store.User, error)
	GetAllLeaves(ctx context.Context) ([]Leave, error)
	GetLeavesByUser(ctx context.Context, userID store.ID) ([]Leave, error)
	GetLeaveByID(ctx context.Context, id store.ID) (*Leave, error)
	CreateLeave(ctx context.Context, in NewLeave) (*Leave, error)
	UpdateLeaveStatus(ctx context.Context, id store.ID, status string) (*Leave, error)
	GetStats(ctx context.Context) Stats
	GetEmployeeStats(ctx context.Context) []EmployeeStats
	DeleteLeave(ctx context.Context, id store.ID) (bool, error)
	ClearLeaves(ctx context.Context) (ClearResult, error)
}

type repository struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

type RepositoryOption func(*repository)

func WithClock(now func() time.Time) RepositoryOption {
	return func(r *repository) { r.now = now }
}

func WithRepositoryLogger(l *zap.Logger) RepositoryOption {
	return func(r *repository) {
		if l != nil {
			r.logger = l.Named("leave.repository")
		}
	}
}

func NewRepository(s Store, opts ...RepositoryOption) Repository {
	r := &repository{
		store:  s,
		now:    time.Now,
		logger: zap.L().Named("leave.repository"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repository) StorageMode(ctx context.Context) store.Mode {
	return r.store.Mode(ctx)
}

// seedEmployees inserts the default employees into an empty durable users
// collection. The count check and the insert are not atomic.
func (r *repository) seedEmployees(ctx context.Context) error {
	if !r.store.Mode(ctx).Durable() {
		return nil
	}
	users := r.store.Users(ctx)
	count, err := users.CountDocuments(ctx, store.UserFilter{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := r.now().UTC()
	seed := make([]store.User, 0, len(store.DefaultEmployees))
	for _, name := range store.DefaultEmployees {
		seed = append(seed, store.User{Name: name, Role: store.RoleEmployee, CreatedAt: now})
	}
	if _, err := users.InsertMany(ctx, seed); err != nil {
		return err
	}
	r.logger.Info("seeded default employees", zap.Int("count", len(seed)))
	return nil
}

func (r *repository) GetEmployees(ctx context.Context) ([]Employee, error) {
	if err := r.seedEmployees(ctx); err != nil {
		r.logger.Error("seed employees failed", zap.Error(err))
		return nil, err
	}

	users, err := r.store.Users(ctx).Find(ctx, store.UserFilter{Role: store.RoleEmployee})
	if err != nil {
		r.logger.Error("find employees failed", zap.Error(err))
		return nil, err
	}

	out := make([]Employee, 0, len(users))
	for _, u := range users {
		out = append(out, Employee{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

func (r *repository) GetEmployeeOptions(ctx context.Context) ([]EmployeeOption, error) {
	users, err := r.store.Users(ctx).Find(ctx, store.UserFilter{Role: store.RoleEmployee})
	if err != nil {
		r.logger.Error("find employee options failed", zap.Error(err))
		return nil, err
	}

	out := make([]EmployeeOption, 0, len(users))
	for _, u := range users {
		opt := EmployeeOption{ID: u.ID, Name: u.Name}
		if u.PaysheetNumber != "" {
			p := u.PaysheetNumber
			opt.PaysheetNumber = &p
		}
		out = append(out, opt)
	}
	return out, nil
}

func (r *repository) GetUserByID(ctx context.Context, id store.ID) (*store.User, error) {
	return r.store.Users(ctx).FindOne(ctx, store.UserFilter{ID: id.Ptr()})
}

// nameIndex maps owner ids to names for the join.
func (r *repository) nameIndex(ctx context.Context) (map[string]string, error) {
	users, err := r.store.Users(ctx).Find(ctx, store.UserFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.String()] = u.Name
	}
	return names, nil
}

func joinLeave(l store.Leave, names map[string]string) Leave {
	name, ok := names[l.UserID.String()]
	if !ok || name == "" {
		name = UnknownEmployee
	}
	return Leave{
		ID:              l.ID,
		UserID:          l.UserID,
		EmployeeName:    name,
		LeaveType:       l.LeaveType,
		LeaveDuration:   l.LeaveDuration,
		HalfDayPeriod:   l.HalfDayPeriod,
		Dates:           store.DecodeDates(l.Dates),
		Reason:          l.Reason,
		CoveringOfficer: l.CoveringOfficer,
		Status:          l.Status,
		AppliedAt:       l.AppliedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func (r *repository) findJoined(ctx context.Context, filter store.LeaveFilter) ([]Leave, error) {
	rows, err := r.store.Leaves(ctx).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := r.nameIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Leave, 0, len(rows))
	for _, row := range rows {
		out = append(out, joinLeave(row, names))
	}
	return out, nil
}

func (r *repository) GetAllLeaves(ctx context.Context) ([]Leave, error) {
	leaves, err := r.findJoined(ctx, store.LeaveFilter{})
	if err != nil {
		r.logger.Error("get all leaves failed", zap.Error(err))
		return nil, err
	}
	return leaves, nil
}

func (r *repository) GetLeavesByUser(ctx context.Context, userID store.ID) ([]Leave, error) {
	leaves, err := r.findJoined(ctx, store.LeaveFilter{UserID: userID.Ptr()})
	if err != nil {
		r.logger.Error("get leaves by user failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	return leaves, nil
}

func (r *repository) GetLeaveByID(ctx context.Context, id store.ID) (*Leave, error) {
	row, err := r.store.Leaves(ctx).FindOne(ctx, store.LeaveFilter{ID: id.Ptr()})
	if err != nil {
		r.logger.Error("get leave by id failed", zap.String("leave_id", id.String()), zap.Error(err))
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	names := map[string]string{}
	owner, err := r.store.Users(ctx).FindOne(ctx, store.UserFilter{ID: row.UserID.Ptr()})
	if err != nil {
		return nil, err
	}
	if owner != nil {
		names[row.UserID.String()] = owner.Name
	}
	l := joinLeave(*row, names)
	return &l, nil
}

// CreateLeave applies defaults for every optional attribute and stores the
// leave as pending.
func (r *repository) CreateLeave(ctx context.Context, in NewLeave) (*Leave, error) {
	now := r.now().UTC()
	doc := store.Leave{
		UserID:          in.UserID,
		LeaveType:       in.LeaveType,
		LeaveDuration:   in.LeaveDuration,
		HalfDayPeriod:   in.HalfDayPeriod,
		Dates:           store.DecodeDates(in.Dates),
		Reason:          in.Reason,
		CoveringOfficer: in.CoveringOfficer,
		Status:          StatusPending,
		AppliedAt:       now,
		UpdatedAt:       now,
	}
	if doc.LeaveType == "" {
		doc.LeaveType = TypeCasual
	}
	if doc.LeaveDuration == "" {
		doc.LeaveDuration = DurationFullDay
	}
	if doc.LeaveDuration == DurationFullDay {
		doc.HalfDayPeriod = nil
	}

	id, err := r.store.Leaves(ctx).InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("insert leave failed", zap.String("user_id", in.UserID.String()), zap.Error(err))
		return nil, err
	}
	doc.ID = id

	names := map[string]string{}
	if owner, err := r.store.Users(ctx).FindOne(ctx, store.UserFilter{ID: doc.UserID.Ptr()}); err == nil && owner != nil {
		names[doc.UserID.String()] = owner.Name
	}
	l := joinLeave(doc, names)
	return &l, nil
}

func (r *repository) UpdateLeaveStatus(ctx context.Context, id store.ID, status string) (*Leave, error) {
	matched, err := r.store.Leaves(ctx).UpdateOne(ctx, id, store.LeaveUpdate{
		Status:    status,
		UpdatedAt: r.now().UTC(),
	})
	if err != nil {
		r.logger.Error("update leave status failed", zap.String("leave_id", id.String()), zap.Error(err))
		return nil, err
	}
	if !matched {
		return nil, nil
	}
	return r.GetLeaveByID(ctx, id)
}

// GetStats never fails; any backend error yields an all-zero snapshot.
func (r *repository) GetStats(ctx context.Context) Stats {
	employees, err := r.GetEmployees(ctx)
	if err != nil {
		r.logger.Warn("stats: employees unavailable", zap.Error(err))
		return Stats{}
	}
	leaves, err := r.store.Leaves(ctx).Find(ctx, store.LeaveFilter{})
	if err != nil {
		r.logger.Warn("stats: leaves unavailable", zap.Error(err))
		return Stats{}
	}

	s := Stats{TotalEmployees: len(employees), TotalLeaves: len(leaves)}
	for _, l := range leaves {
		switch l.Status {
		case StatusPending:
			s.PendingLeaves++
		case StatusApproved:
			s.ApprovedLeaves++
		case StatusRejected:
			s.RejectedLeaves++
		}
		countType(&s.LeaveTypeBreakdown, l.LeaveType)
	}
	return s
}

func countType(b *LeaveTypeBreakdown, leaveType string) {
	switch leaveType {
	case TypeCasual:
		b.Casual++
	case TypeMedical:
		b.Medical++
	case TypeHalfDay:
		b.HalfDay++
	case TypeShort:
		b.Short++
	}
}

// GetEmployeeStats returns an empty list on any backend error.
func (r *repository) GetEmployeeStats(ctx context.Context) []EmployeeStats {
	employees, err := r.GetEmployees(ctx)
	if err != nil {
		r.logger.Warn("employee stats: employees unavailable", zap.Error(err))
		return []EmployeeStats{}
	}
	leaves, err := r.store.Leaves(ctx).Find(ctx, store.LeaveFilter{})
	if err != nil {
		r.logger.Warn("employee stats: leaves unavailable", zap.Error(err))
		return []EmployeeStats{}
	}

	byUser := make(map[string][]store.Leave)
	for _, l := range leaves {
		key := l.UserID.String()
		byUser[key] = append(byUser[key], l)
	}

	out := make([]EmployeeStats, 0, len(employees))
	for _, e := range employees {
		es := EmployeeStats{ID: e.ID, Name: e.Name}
		for _, l := range byUser[e.ID.String()] {
			es.TotalLeaves++
			switch l.Status {
			case StatusApproved:
				es.ApprovedLeaves++
			case StatusPending:
				es.PendingLeaves++
			}
			switch l.LeaveType {
			case TypeCasual:
				es.CasualLeaves++
			case TypeMedical:
				es.MedicalLeaves++
			case TypeHalfDay:
				es.HalfDayLeaves++
			case TypeShort:
				es.ShortLeaves++
			}
		}
		out = append(out, es)
	}
	return out
}

func (r *repository) DeleteLeave(ctx context.Context, id store.ID) (bool, error) {
	deleted, err := r.store.Leaves(ctx).DeleteOne(ctx, id)
	if err != nil {
		r.logger.Error("delete leave failed", zap.String("leave_id", id.String()), zap.Error(err))
		return false, err
	}
	return deleted, nil
}

// ClearLeaves removes every leave from a durable backend. In memory mode the
// data is already ephemeral, so nothing is removed and a note is returned.
func (r *repository) ClearLeaves(ctx context.Context) (ClearResult, error) {
	if !r.store.Mode(ctx).Durable() {
		return ClearResult{DeletedCount: 0, Note: EphemeralNote}, nil
	}
	n, err := r.store.Leaves(ctx).DeleteMany(ctx)
	if err != nil {
		r.logger.Error("clear leaves failed", zap.Error(err))
		return ClearResult{}, err
	}
	r.logger.Info("cleared leaves", zap.Int64("deleted_count", n))
	return ClearResult{DeletedCount: n}, nil
}
