package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type pgUser struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)"`
	Name           string     `gorm:"not null"`
	Role           string     `gorm:"not null;index"`
	PaysheetNumber string     `gorm:"column:paysheet_number;index"`
	Email          string     `gorm:"index"`
	Password       *string    `gorm:"column:password"`
	FirstLogin     *bool      `gorm:"column:first_login"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (pgUser) TableName() string { return "users" }

func (u *pgUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u pgUser) toUser() User {
	out := User{
		ID:             ParseID(u.ID),
		Name:           u.Name,
		Role:           u.Role,
		PaysheetNumber: u.PaysheetNumber,
		Email:          u.Email,
		FirstLogin:     u.FirstLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.Password != nil {
		out.Password = *u.Password
	}
	return out
}

type pgLeave struct {
	ID              string         `gorm:"primaryKey;type:varchar(64)"`
	UserID          string         `gorm:"column:user_id;type:varchar(64);not null;index"`
	LeaveType       string         `gorm:"column:leave_type;not null"`
	LeaveDuration   string         `gorm:"column:leave_duration;not null"`
	HalfDayPeriod   *string        `gorm:"column:half_day_period"`
	Dates           datatypes.JSON `gorm:"type:jsonb;not null"`
	Reason          string         `gorm:"not null"`
	CoveringOfficer *string        `gorm:"column:covering_officer"`
	Status          string         `gorm:"not null;index"`
	AppliedAt       time.Time      `gorm:"column:applied_at;index"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (pgLeave) TableName() string { return "leaves" }

func (l *pgLeave) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l pgLeave) toLeave() Leave {
	return Leave{
		ID:              ParseID(l.ID),
		UserID:          ParseID(l.UserID),
		LeaveType:       l.LeaveType,
		LeaveDuration:   l.LeaveDuration,
		HalfDayPeriod:   l.HalfDayPeriod,
		Dates:           DecodeDates([]byte(l.Dates)),
		Reason:          l.Reason,
		CoveringOfficer: l.CoveringOfficer,
		Status:          l.Status,
		AppliedAt:       l.AppliedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type postgresBackend struct {
	db *gorm.DB
}

// NewPostgresBackend wraps an open gorm handle. Schema migration is the
// caller's job (see MigratePostgres).
func NewPostgresBackend(db *gorm.DB) Backend {
	return &postgresBackend{db: db}
}

// MigratePostgres creates or updates the users and leaves tables.
func MigratePostgres(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&pgUser{}, &pgLeave{})
}

func (b *postgresBackend) Mode() Mode              { return ModePostgres }
func (b *postgresBackend) Users() UserCollection   { return postgresUsers{db: b.db} }
func (b *postgresBackend) Leaves() LeaveCollection { return postgresLeaves{db: b.db} }

func (b *postgresBackend) Close(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type postgresUsers struct{ db *gorm.DB }

func (c postgresUsers) scope(ctx context.Context, f UserFilter) *gorm.DB {
	q := c.db.WithContext(ctx).Model(&pgUser{})
	if f.ID != nil {
		q = q.Where("id = ?", f.ID.normalize(ModePostgres))
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Email != "" {
		q = q.Where("LOWER(email) = ?", strings.ToLower(f.Email))
	}
	if f.PaysheetNumber != "" {
		q = q.Where("paysheet_number = ?", f.PaysheetNumber)
	}
	return q
}

func (c postgresUsers) Find(ctx context.Context, f UserFilter) ([]User, error) {
	var rows []pgUser
	if err := c.scope(ctx, f).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toUser())
	}
	return out, nil
}

func (c postgresUsers) FindOne(ctx context.Context, f UserFilter) (*User, error) {
	var rows []pgUser
	if err := c.scope(ctx, f).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u := rows[0].toUser()
	return &u, nil
}

func (c postgresUsers) InsertMany(ctx context.Context, users []User) ([]ID, error) {
	rows := make([]pgUser, 0, len(users))
	for _, u := range users {
		row := pgUser{
			Name:           u.Name,
			Role:           u.Role,
			PaysheetNumber: u.PaysheetNumber,
			Email:          strings.ToLower(u.Email),
			FirstLogin:     u.FirstLogin,
			CreatedAt:      u.CreatedAt,
		}
		if u.Password != "" {
			pw := u.Password
			row.Password = &pw
		}
		rows = append(rows, row)
	}
	if err := c.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, mapPostgresError(err)
	}
	ids := make([]ID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, ParseID(r.ID))
	}
	return ids, nil
}

func (c postgresUsers) UpdateOne(ctx context.Context, id ID, upd UserUpdate) (bool, error) {
	res := c.db.WithContext(ctx).Model(&pgUser{}).
		Where("id = ?", id.normalize(ModePostgres)).
		Updates(map[string]any{
			"password":    upd.Password,
			"first_login": upd.FirstLogin,
			"updated_at":  upd.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (c postgresUsers) CountDocuments(ctx context.Context, f UserFilter) (int64, error) {
	var n int64
	err := c.scope(ctx, f).Count(&n).Error
	return n, err
}

type postgresLeaves struct{ db *gorm.DB }

func (c postgresLeaves) scope(ctx context.Context, f LeaveFilter) *gorm.DB {
	q := c.db.WithContext(ctx).Model(&pgLeave{})
	if f.ID != nil {
		q = q.Where("id = ?", f.ID.normalize(ModePostgres))
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", f.UserID.normalize(ModePostgres))
	}
	return q
}

func (c postgresLeaves) Find(ctx context.Context, f LeaveFilter) ([]Leave, error) {
	var rows []pgLeave
	if err := c.scope(ctx, f).Order("applied_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Leave, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toLeave())
	}
	return out, nil
}

func (c postgresLeaves) FindOne(ctx context.Context, f LeaveFilter) (*Leave, error) {
	var rows []pgLeave
	if err := c.scope(ctx, f).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	l := rows[0].toLeave()
	return &l, nil
}

func (c postgresLeaves) InsertOne(ctx context.Context, l Leave) (ID, error) {
	dates, err := json.Marshal(DecodeDates(l.Dates))
	if err != nil {
		return ID{}, err
	}
	userID, _ := l.UserID.normalize(ModePostgres).(string)
	row := pgLeave{
		UserID:          userID,
		LeaveType:       l.LeaveType,
		LeaveDuration:   l.LeaveDuration,
		HalfDayPeriod:   l.HalfDayPeriod,
		Dates:           datatypes.JSON(dates),
		Reason:          l.Reason,
		CoveringOfficer: l.CoveringOfficer,
		Status:          l.Status,
		AppliedAt:       l.AppliedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ID{}, mapPostgresError(err)
	}
	return ParseID(row.ID), nil
}

func (c postgresLeaves) UpdateOne(ctx context.Context, id ID, upd LeaveUpdate) (bool, error) {
	res := c.db.WithContext(ctx).Model(&pgLeave{}).
		Where("id = ?", id.normalize(ModePostgres)).
		Updates(map[string]any{"status": upd.Status, "updated_at": upd.UpdatedAt})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (c postgresLeaves) DeleteOne(ctx context.Context, id ID) (bool, error) {
	res := c.db.WithContext(ctx).
		Where("id = ?", id.normalize(ModePostgres)).
		Delete(&pgLeave{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (c postgresLeaves) DeleteMany(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&pgLeave{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (c postgresLeaves) CountDocuments(ctx context.Context, f LeaveFilter) (int64, error) {
	var n int64
	err := c.scope(ctx, f).Count(&n).Error
	return n, err
}
