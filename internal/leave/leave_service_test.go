package leave_test

import (
	"context"
	"errors"
	"testing"

	"leave-tracker/internal/events"
	"leave-tracker/internal/leave"
	leaveerrors "leave-tracker/internal/leave/errors"
	"leave-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepository struct {
	storageModeFn       func(ctx context.Context) store.Mode
	getEmployeesFn      func(ctx context.Context) ([]leave.Employee, error)
	getEmployeeOptsFn   func(ctx context.Context) ([]leave.EmployeeOption, error)
	getUserByIDFn       func(ctx context.Context, id store.ID) (*store.User, error)
	getAllLeavesFn      func(ctx context.Context) ([]leave.Leave, error)
	getLeavesByUserFn   func(ctx context.Context, userID store.ID) ([]leave.Leave, error)
	getLeaveByIDFn      func(ctx context.Context, id store.ID) (*leave.Leave, error)
	createLeaveFn       func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error)
	updateLeaveStatusFn func(ctx context.Context, id store.ID, status string) (*leave.Leave, error)
	deleteLeaveFn       func(ctx context.Context, id store.ID) (bool, error)
	clearLeavesFn       func(ctx context.Context) (leave.ClearResult, error)
}

func (f *fakeLeaveRepository) StorageMode(ctx context.Context) store.Mode {
	if f.storageModeFn != nil {
		return f.storageModeFn(ctx)
	}
	return store.ModeMemory
}

func (f *fakeLeaveRepository) GetEmployees(ctx context.Context) ([]leave.Employee, error) {
	if f.getEmployeesFn != nil {
		return f.getEmployeesFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetEmployeeOptions(ctx context.Context) ([]leave.EmployeeOption, error) {
	if f.getEmployeeOptsFn != nil {
		return f.getEmployeeOptsFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetUserByID(ctx context.Context, id store.ID) (*store.User, error) {
	if f.getUserByIDFn != nil {
		return f.getUserByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetAllLeaves(ctx context.Context) ([]leave.Leave, error) {
	if f.getAllLeavesFn != nil {
		return f.getAllLeavesFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetLeavesByUser(ctx context.Context, userID store.ID) ([]leave.Leave, error) {
	if f.getLeavesByUserFn != nil {
		return f.getLeavesByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetLeaveByID(ctx context.Context, id store.ID) (*leave.Leave, error) {
	if f.getLeaveByIDFn != nil {
		return f.getLeaveByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) CreateLeave(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
	if f.createLeaveFn != nil {
		return f.createLeaveFn(ctx, in)
	}
	return &leave.Leave{}, nil
}

func (f *fakeLeaveRepository) UpdateLeaveStatus(ctx context.Context, id store.ID, status string) (*leave.Leave, error) {
	if f.updateLeaveStatusFn != nil {
		return f.updateLeaveStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) GetStats(ctx context.Context) leave.Stats {
	return leave.Stats{}
}

func (f *fakeLeaveRepository) GetEmployeeStats(ctx context.Context) []leave.EmployeeStats {
	return []leave.EmployeeStats{}
}

func (f *fakeLeaveRepository) DeleteLeave(ctx context.Context, id store.ID) (bool, error) {
	if f.deleteLeaveFn != nil {
		return f.deleteLeaveFn(ctx, id)
	}
	return false, nil
}

func (f *fakeLeaveRepository) ClearLeaves(ctx context.Context) (leave.ClearResult, error) {
	if f.clearLeavesFn != nil {
		return f.clearLeavesFn(ctx)
	}
	return leave.ClearResult{}, nil
}

type recordingPublisher struct {
	events []events.LeaveEvent
	err    error
}

func (p *recordingPublisher) PublishLeaveEvent(ctx context.Context, event events.LeaveEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func strPtr(s string) *string { return &s }

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success applies defaults and normalizes dates", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
				assert.Equal(t, "3", in.UserID.String())
				assert.Equal(t, leave.TypeCasual, in.LeaveType)
				assert.Equal(t, leave.DurationFullDay, in.LeaveDuration)
				assert.Nil(t, in.HalfDayPeriod)
				assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, in.Dates)
				require.NotNil(t, in.CoveringOfficer)
				assert.Equal(t, "Kasun", *in.CoveringOfficer)
				return &leave.Leave{
					ID:           store.IntID(1),
					UserID:       in.UserID,
					EmployeeName: "Anudi",
					Status:       leave.StatusPending,
					Dates:        in.Dates,
				}, nil
			},
		}
		svc := leave.NewServiceWithPublisher(repo, pub)

		got, err := svc.Create(ctx, leave.CreateLeaveRequest{
			UserID:          "3",
			Dates:           []string{"2025-06-02", " 2025-06-01", "2025-06-02"},
			CoveringOfficer: " Kasun ",
		})
		require.NoError(t, err)
		assert.Equal(t, "1", got.ID.String())
		assert.Equal(t, leave.StatusPending, got.Status)

		require.Len(t, pub.events, 1)
		assert.Equal(t, events.LeaveApplied, pub.events[0].EventType)
		assert.Equal(t, "1", pub.events[0].LeaveID)
		assert.False(t, pub.events[0].OccurredAt.IsZero())
	})

	t.Run("half day keeps period", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
				require.NotNil(t, in.HalfDayPeriod)
				assert.Equal(t, leave.PeriodEvening, *in.HalfDayPeriod)
				return &leave.Leave{ID: store.IntID(2), HalfDayPeriod: in.HalfDayPeriod, LeaveDuration: in.LeaveDuration}, nil
			},
		}
		svc := leave.NewService(repo)

		got, err := svc.Create(ctx, leave.CreateLeaveRequest{
			UserID:          "1",
			LeaveType:       leave.TypeHalfDay,
			LeaveDuration:   leave.DurationHalfDay,
			HalfDayPeriod:   strPtr(leave.PeriodEvening),
			Dates:           []string{"2025-06-01"},
			CoveringOfficer: "Kasun",
		})
		require.NoError(t, err)
		assert.True(t, got.IsHalfDay())
	})

	t.Run("full day drops period", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
				assert.Nil(t, in.HalfDayPeriod)
				return &leave.Leave{ID: store.IntID(3)}, nil
			},
		}
		svc := leave.NewService(repo)

		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			UserID:          "1",
			HalfDayPeriod:   strPtr(leave.PeriodMorning),
			Dates:           []string{"2025-06-01"},
			CoveringOfficer: "Kasun",
		})
		assert.NoError(t, err)
	})

	negatives := []struct {
		name string
		req  leave.CreateLeaveRequest
		want error
	}{
		{
			name: "negative missing user",
			req:  leave.CreateLeaveRequest{Dates: []string{"2025-06-01"}, CoveringOfficer: "Kasun"},
			want: leaveerrors.ErrUserIDRequired,
		},
		{
			name: "negative no dates",
			req:  leave.CreateLeaveRequest{UserID: "1", Dates: []string{}, CoveringOfficer: "Kasun"},
			want: leaveerrors.ErrDatesRequired,
		},
		{
			name: "negative bad date",
			req:  leave.CreateLeaveRequest{UserID: "1", Dates: []string{"01/06/2025"}, CoveringOfficer: "Kasun"},
			want: leaveerrors.ErrInvalidDateFormat,
		},
		{
			name: "negative blank covering officer",
			req:  leave.CreateLeaveRequest{UserID: "1", Dates: []string{"2025-06-01"}, CoveringOfficer: "  "},
			want: leaveerrors.ErrCoveringOfficerRequired,
		},
		{
			name: "negative half day without period",
			req: leave.CreateLeaveRequest{
				UserID:          "1",
				LeaveDuration:   leave.DurationHalfDay,
				Dates:           []string{"2025-06-01"},
				CoveringOfficer: "Kasun",
			},
			want: leaveerrors.ErrHalfDayPeriodRequired,
		},
	}
	for _, tc := range negatives {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeLeaveRepository{
				createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
					t.Fatal("repository must not be called")
					return nil, nil
				},
			}
			_, err := leave.NewService(repo).Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("negative repository error", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
				return nil, errors.New("insert failed")
			},
		}
		_, err := leave.NewServiceWithPublisher(repo, pub).Create(ctx, leave.CreateLeaveRequest{
			UserID: "1", Dates: []string{"2025-06-01"}, CoveringOfficer: "Kasun",
		})
		assert.EqualError(t, err, "insert failed")
		assert.Empty(t, pub.events)
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		repo := &fakeLeaveRepository{
			createLeaveFn: func(ctx context.Context, in leave.NewLeave) (*leave.Leave, error) {
				return &leave.Leave{ID: store.IntID(9)}, nil
			},
		}
		got, err := leave.NewServiceWithPublisher(repo, pub).Create(ctx, leave.CreateLeaveRequest{
			UserID: "1", Dates: []string{"2025-06-01"}, CoveringOfficer: "Kasun",
		})
		assert.NoError(t, err)
		assert.Equal(t, "9", got.ID.String())
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			updateLeaveStatusFn: func(ctx context.Context, id store.ID, status string) (*leave.Leave, error) {
				assert.Equal(t, "5", id.String())
				return &leave.Leave{ID: id, UserID: store.IntID(1), Status: status}, nil
			},
		}
		got, err := leave.NewServiceWithPublisher(repo, pub).UpdateStatus(ctx, "5", leave.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, got.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, events.LeaveStatusChanged, pub.events[0].EventType)
		assert.Equal(t, leave.StatusApproved, pub.events[0].Status)
	})

	t.Run("negative invalid status", func(t *testing.T) {
		_, err := leave.NewService(&fakeLeaveRepository{}).UpdateStatus(ctx, "5", leave.StatusPending)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
	})

	t.Run("negative missing id", func(t *testing.T) {
		_, err := leave.NewService(&fakeLeaveRepository{}).UpdateStatus(ctx, " ", leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveIDRequired)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			updateLeaveStatusFn: func(ctx context.Context, id store.ID, status string) (*leave.Leave, error) {
				return nil, nil
			},
		}
		_, err := leave.NewService(repo).UpdateStatus(ctx, "404", leave.StatusRejected)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_UpdateStatusBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("partial failure reports every id", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			updateLeaveStatusFn: func(ctx context.Context, id store.ID, status string) (*leave.Leave, error) {
				switch id.String() {
				case "1":
					return &leave.Leave{ID: id, Status: status}, nil
				case "2":
					return nil, nil
				default:
					return nil, errors.New("write timeout")
				}
			},
		}
		res, err := leave.NewService(repo).UpdateStatusBatch(ctx, []string{"1", "2", "3"}, leave.StatusApproved)
		require.NoError(t, err)
		assert.False(t, res.AllUpdated())
		assert.Equal(t, leave.StatusApproved, res.Status)
		require.Len(t, res.Results, 3)
		assert.Equal(t, leave.BatchUpdated, res.Results[0].Result)
		assert.Equal(t, leave.BatchNotFound, res.Results[1].Result)
		assert.Equal(t, leave.BatchError, res.Results[2].Result)
		assert.Equal(t, "write timeout", res.Results[2].Error)
	})

	t.Run("all updated", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			updateLeaveStatusFn: func(ctx context.Context, id store.ID, status string) (*leave.Leave, error) {
				return &leave.Leave{ID: id, Status: status}, nil
			},
		}
		res, err := leave.NewService(repo).UpdateStatusBatch(ctx, []string{"1", "2"}, leave.StatusRejected)
		require.NoError(t, err)
		assert.True(t, res.AllUpdated())
	})

	t.Run("negative empty ids", func(t *testing.T) {
		_, err := leave.NewService(&fakeLeaveRepository{}).UpdateStatusBatch(ctx, nil, leave.StatusApproved)
		assert.ErrorIs(t, err, leaveerrors.ErrIDsRequired)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			deleteLeaveFn: func(ctx context.Context, id store.ID) (bool, error) { return true, nil },
		}
		assert.NoError(t, leave.NewServiceWithPublisher(repo, pub).Delete(ctx, "7"))
		require.Len(t, pub.events, 1)
		assert.Equal(t, events.LeaveDeleted, pub.events[0].EventType)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeLeaveRepository{
			deleteLeaveFn: func(ctx context.Context, id store.ID) (bool, error) { return false, nil },
		}
		assert.ErrorIs(t, leave.NewService(repo).Delete(ctx, "7"), leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("memory mode returns note without event", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			clearLeavesFn: func(ctx context.Context) (leave.ClearResult, error) {
				return leave.ClearResult{Note: leave.EphemeralNote}, nil
			},
		}
		res, err := leave.NewServiceWithPublisher(repo, pub).Clear(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.DeletedCount)
		assert.Equal(t, leave.EphemeralNote, res.Note)
		assert.Empty(t, pub.events)
	})

	t.Run("durable mode publishes count", func(t *testing.T) {
		pub := &recordingPublisher{}
		repo := &fakeLeaveRepository{
			clearLeavesFn: func(ctx context.Context) (leave.ClearResult, error) {
				return leave.ClearResult{DeletedCount: 4}, nil
			},
		}
		_, err := leave.NewServiceWithPublisher(repo, pub).Clear(ctx)
		require.NoError(t, err)
		require.Len(t, pub.events, 1)
		assert.Equal(t, int64(4), pub.events[0].DeletedCount)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()

	repo := &fakeLeaveRepository{
		getLeaveByIDFn: func(ctx context.Context, id store.ID) (*leave.Leave, error) {
			if id.String() == "1" {
				return &leave.Leave{ID: id, EmployeeName: "Anudi"}, nil
			}
			return nil, nil
		},
	}
	svc := leave.NewService(repo)

	got, err := svc.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Anudi", got.EmployeeName)

	_, err = svc.GetByID(ctx, "2")
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}
