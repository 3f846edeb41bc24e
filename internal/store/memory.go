package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryBackend keeps both collections in process memory. The mutex only
// protects the Go maps; there is no isolation between callers and the last
// write wins.
type memoryBackend struct {
	mu          sync.Mutex
	users       []User
	leaves      []Leave
	nextUserID  int64
	nextLeaveID int64
}

// NewMemoryBackend returns a memory store seeded with the default employees
// under ids 1..n.
func NewMemoryBackend(now time.Time) Backend {
	b := &memoryBackend{nextUserID: 1, nextLeaveID: 1}
	for _, name := range DefaultEmployees {
		b.users = append(b.users, User{
			ID:        IntID(b.nextUserID),
			Name:      name,
			Role:      RoleEmployee,
			CreatedAt: now,
		})
		b.nextUserID++
	}
	return b
}

func (b *memoryBackend) Mode() Mode                      { return ModeMemory }
func (b *memoryBackend) Users() UserCollection           { return memoryUsers{b} }
func (b *memoryBackend) Leaves() LeaveCollection         { return memoryLeaves{b} }
func (b *memoryBackend) Close(ctx context.Context) error { return nil }

type memoryUsers struct{ b *memoryBackend }

func matchUser(u User, f UserFilter) bool {
	if f.ID != nil && u.ID.key(ModeMemory) != f.ID.key(ModeMemory) {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Email != "" && !strings.EqualFold(u.Email, f.Email) {
		return false
	}
	if f.PaysheetNumber != "" && u.PaysheetNumber != f.PaysheetNumber {
		return false
	}
	return true
}

func cloneUser(u User) User {
	if u.FirstLogin != nil {
		v := *u.FirstLogin
		u.FirstLogin = &v
	}
	if u.UpdatedAt != nil {
		v := *u.UpdatedAt
		u.UpdatedAt = &v
	}
	return u
}

func (c memoryUsers) Find(ctx context.Context, f UserFilter) ([]User, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	out := []User{}
	for _, u := range c.b.users {
		if matchUser(u, f) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (c memoryUsers) FindOne(ctx context.Context, f UserFilter) (*User, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	for _, u := range c.b.users {
		if matchUser(u, f) {
			cp := cloneUser(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (c memoryUsers) InsertMany(ctx context.Context, users []User) ([]ID, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	ids := make([]ID, 0, len(users))
	for _, u := range users {
		u.ID = IntID(c.b.nextUserID)
		c.b.nextUserID++
		c.b.users = append(c.b.users, cloneUser(u))
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (c memoryUsers) UpdateOne(ctx context.Context, id ID, upd UserUpdate) (bool, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	key := id.key(ModeMemory)
	for i := range c.b.users {
		if c.b.users[i].ID.key(ModeMemory) != key {
			continue
		}
		firstLogin := upd.FirstLogin
		updatedAt := upd.UpdatedAt
		c.b.users[i].Password = upd.Password
		c.b.users[i].FirstLogin = &firstLogin
		c.b.users[i].UpdatedAt = &updatedAt
		return true, nil
	}
	return false, nil
}

func (c memoryUsers) CountDocuments(ctx context.Context, f UserFilter) (int64, error) {
	users, _ := c.Find(ctx, f)
	return int64(len(users)), nil
}

type memoryLeaves struct{ b *memoryBackend }

func matchLeave(l Leave, f LeaveFilter) bool {
	if f.ID != nil && l.ID.key(ModeMemory) != f.ID.key(ModeMemory) {
		return false
	}
	if f.UserID != nil && l.UserID.key(ModeMemory) != f.UserID.key(ModeMemory) {
		return false
	}
	return true
}

func cloneLeave(l Leave) Leave {
	l.Dates = DecodeDates(l.Dates)
	if l.HalfDayPeriod != nil {
		v := *l.HalfDayPeriod
		l.HalfDayPeriod = &v
	}
	if l.CoveringOfficer != nil {
		v := *l.CoveringOfficer
		l.CoveringOfficer = &v
	}
	return l
}

func (c memoryLeaves) Find(ctx context.Context, f LeaveFilter) ([]Leave, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	out := []Leave{}
	for _, l := range c.b.leaves {
		if matchLeave(l, f) {
			out = append(out, cloneLeave(l))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}

func (c memoryLeaves) FindOne(ctx context.Context, f LeaveFilter) (*Leave, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	for _, l := range c.b.leaves {
		if matchLeave(l, f) {
			cp := cloneLeave(l)
			return &cp, nil
		}
	}
	return nil, nil
}

func (c memoryLeaves) InsertOne(ctx context.Context, l Leave) (ID, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	l.ID = IntID(c.b.nextLeaveID)
	c.b.nextLeaveID++
	l.UserID = ParseID(l.UserID.key(ModeMemory))
	c.b.leaves = append(c.b.leaves, cloneLeave(l))
	return l.ID, nil
}

func (c memoryLeaves) UpdateOne(ctx context.Context, id ID, upd LeaveUpdate) (bool, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	key := id.key(ModeMemory)
	for i := range c.b.leaves {
		if c.b.leaves[i].ID.key(ModeMemory) == key {
			c.b.leaves[i].Status = upd.Status
			c.b.leaves[i].UpdatedAt = upd.UpdatedAt
			return true, nil
		}
	}
	return false, nil
}

func (c memoryLeaves) DeleteOne(ctx context.Context, id ID) (bool, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	key := id.key(ModeMemory)
	for i := range c.b.leaves {
		if c.b.leaves[i].ID.key(ModeMemory) == key {
			c.b.leaves = append(c.b.leaves[:i], c.b.leaves[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (c memoryLeaves) DeleteMany(ctx context.Context) (int64, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	n := int64(len(c.b.leaves))
	c.b.leaves = nil
	return n, nil
}

func (c memoryLeaves) CountDocuments(ctx context.Context, f LeaveFilter) (int64, error) {
	leaves, _ := c.Find(ctx, f)
	return int64(len(leaves)), nil
}
