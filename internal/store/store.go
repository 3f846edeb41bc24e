// Package store is the document store adapter behind the leave tracker.
//
// Two named collections, users and leaves, are served by exactly one backend
// per process: MongoDB when a connection string is configured, PostgreSQL
// (through gorm) when only relational settings are present, and an in-process
// memory store otherwise. A failed connection degrades to memory for the rest
// of the process lifetime.
package store

import (
	"context"
	"errors"
	"time"
)

type Mode string

const (
	ModeMongo    Mode = "mongo"
	ModePostgres Mode = "postgres"
	ModeMemory   Mode = "memory"
)

// Durable reports whether writes survive a process restart.
func (m Mode) Durable() bool {
	return m == ModeMongo || m == ModePostgres
}

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

var ErrDuplicate = errors.New("store: duplicate key")

type User struct {
	ID             ID
	Name           string
	Role           string
	PaysheetNumber string
	Email          string
	Password       string
	// FirstLogin is nil when the attribute was never written.
	FirstLogin *bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// NeedsSetup is true until a password has been set through first login.
func (u User) NeedsSetup() bool {
	return u.FirstLogin == nil || *u.FirstLogin || u.Password == ""
}

type Leave struct {
	ID              ID
	UserID          ID
	LeaveType       string
	LeaveDuration   string
	HalfDayPeriod   *string
	Dates           []string
	Reason          string
	CoveringOfficer *string
	Status          string
	AppliedAt       time.Time
	UpdatedAt       time.Time
}

// UserFilter fields are ANDed; zero values are ignored.
type UserFilter struct {
	ID             *ID
	Role           string
	Email          string
	PaysheetNumber string
}

type LeaveFilter struct {
	ID     *ID
	UserID *ID
}

type UserUpdate struct {
	Password   string
	FirstLogin bool
	UpdatedAt  time.Time
}

type LeaveUpdate struct {
	Status    string
	UpdatedAt time.Time
}

// UserCollection mirrors the subset of document-store calls the service needs.
// FindOne returns nil, nil when nothing matches.
type UserCollection interface {
	Find(ctx context.Context, filter UserFilter) ([]User, error)
	FindOne(ctx context.Context, filter UserFilter) (*User, error)
	InsertMany(ctx context.Context, users []User) ([]ID, error)
	UpdateOne(ctx context.Context, id ID, update UserUpdate) (bool, error)
	CountDocuments(ctx context.Context, filter UserFilter) (int64, error)
}

// LeaveCollection.Find returns leaves ordered by applied_at, newest first.
type LeaveCollection interface {
	Find(ctx context.Context, filter LeaveFilter) ([]Leave, error)
	FindOne(ctx context.Context, filter LeaveFilter) (*Leave, error)
	InsertOne(ctx context.Context, leave Leave) (ID, error)
	UpdateOne(ctx context.Context, id ID, update LeaveUpdate) (bool, error)
	DeleteOne(ctx context.Context, id ID) (bool, error)
	DeleteMany(ctx context.Context) (int64, error)
	CountDocuments(ctx context.Context, filter LeaveFilter) (int64, error)
}

// Backend is one concrete storage engine.
type Backend interface {
	Mode() Mode
	Users() UserCollection
	Leaves() LeaveCollection
	Close(ctx context.Context) error
}

// DefaultEmployees seeds an empty users collection.
var DefaultEmployees = []string{"Anudi", "Savindi", "Senaka", "Apsara"}
