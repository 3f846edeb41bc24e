package store

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is a backend-neutral record identifier. Every backend speaks a different
// native form (ObjectID, UUID, integer) but callers only ever see strings.
type ID struct {
	s string
}

// ParseID builds an ID from external input. Invalid input is kept verbatim
// and will simply match nothing.
func ParseID(s string) ID {
	return ID{s: strings.TrimSpace(s)}
}

func ObjectID(oid primitive.ObjectID) ID {
	return ID{s: oid.Hex()}
}

func IntID(n int64) ID {
	return ID{s: strconv.FormatInt(n, 10)}
}

func (id ID) String() string { return id.s }

func (id ID) IsZero() bool { return id.s == "" }

// Equal compares canonical forms, so "01" matches 1 and hex case is ignored.
func (id ID) Equal(other ID) bool { return id.Canonical() == other.Canonical() }

// Canonical folds every native spelling of an identifier onto one string:
// lowercase hex for ObjectIDs and UUIDs, no leading zeros for integers.
// Anything else is returned as given.
func (id ID) Canonical() string {
	if oid, err := primitive.ObjectIDFromHex(id.s); err == nil {
		return oid.Hex()
	}
	if u, err := uuid.Parse(id.s); err == nil {
		return u.String()
	}
	if n, err := strconv.ParseInt(id.s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id.s
}

func (id ID) Ptr() *ID { return &id }

// normalize converts the ID to the native representation of a backend.
// It is the only place identifier coercion happens.
func (id ID) normalize(m Mode) any {
	switch m {
	case ModeMongo:
		if oid, err := primitive.ObjectIDFromHex(id.s); err == nil {
			return oid
		}
	case ModePostgres:
		if u, err := uuid.Parse(id.s); err == nil {
			return u.String()
		}
	case ModeMemory:
		if n, err := strconv.ParseInt(id.s, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return id.s
}

// key is the normalized string form used for comparisons inside a backend.
func (id ID) key(m Mode) string {
	switch v := id.normalize(m).(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	}
	return id.s
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.s)
}

// UnmarshalJSON accepts both strings and numbers; memory mode hands out integers.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ParseID(n.String())
	return nil
}
