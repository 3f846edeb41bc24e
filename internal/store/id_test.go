package store

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestID_Normalize(t *testing.T) {
	oid := primitive.NewObjectID()
	u := uuid.New()

	t.Run("mongo converts valid hex to ObjectID", func(t *testing.T) {
		assert.Equal(t, oid, ParseID(oid.Hex()).normalize(ModeMongo))
	})

	t.Run("mongo keeps invalid hex verbatim", func(t *testing.T) {
		assert.Equal(t, "not-an-oid", ParseID("not-an-oid").normalize(ModeMongo))
	})

	t.Run("postgres canonicalizes uuid", func(t *testing.T) {
		assert.Equal(t, u.String(), ParseID("  "+u.String()+" ").normalize(ModePostgres))
	})

	t.Run("memory canonicalizes integers", func(t *testing.T) {
		assert.Equal(t, "7", ParseID("007").normalize(ModeMemory))
		assert.Equal(t, "abc", ParseID("abc").normalize(ModeMemory))
	})

	t.Run("native constructors render strings", func(t *testing.T) {
		assert.Equal(t, oid.Hex(), ObjectID(oid).String())
		assert.Equal(t, "3", IntID(3).String())
		assert.True(t, IntID(3).Equal(ParseID("3")))
		assert.True(t, ID{}.IsZero())
	})
}

func TestID_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want bool
	}{
		{"ObjectID hex case", ParseID("65f1a2b3c4d5e6f7a8b9c03b"), ParseID("65F1A2B3C4D5E6F7A8B9C03B"), true},
		{"uuid case", ParseID("0b9f6c1e-3f1a-4c2b-9d7e-5a6b7c8d9e0f"), ParseID("0B9F6C1E-3F1A-4C2B-9D7E-5A6B7C8D9E0F"), true},
		{"integer leading zero", ParseID("01"), IntID(1), true},
		{"different integers", IntID(1), IntID(2), false},
		{"free text is exact", ParseID("abc"), ParseID("ABC"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.a.Canonical() == tt.b.Canonical())
		})
	}
}

func TestID_JSON(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"65a1","b":4,"c":null}`), &payload)
	assert.NoError(t, err)
	assert.Equal(t, "65a1", payload.A.String())
	assert.Equal(t, "4", payload.B.String())
	assert.True(t, payload.C.IsZero())

	out, err := json.Marshal(IntID(12))
	assert.NoError(t, err)
	assert.JSONEq(t, `"12"`, string(out))
}
