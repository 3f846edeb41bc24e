package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection  = "users"
	leavesCollection = "leaves"
)

type mongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoBackend wraps an already connected client.
func NewMongoBackend(client *mongo.Client, database string) Backend {
	return &mongoBackend{client: client, db: client.Database(database)}
}

func (b *mongoBackend) Mode() Mode { return ModeMongo }

func (b *mongoBackend) Users() UserCollection {
	return mongoUsers{coll: b.db.Collection(usersCollection)}
}

func (b *mongoBackend) Leaves() LeaveCollection {
	return mongoLeaves{coll: b.db.Collection(leavesCollection)}
}

func (b *mongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// rawString renders identifier-like attributes that may have been written as
// ObjectIDs, strings or numbers.
func rawString(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	}
	return ""
}

func rawDates(v bson.RawValue) []string {
	switch v.Type {
	case bson.TypeArray:
		var arr []any
		if err := v.Unmarshal(&arr); err != nil {
			return []string{}
		}
		return DecodeDates(arr)
	case bson.TypeString:
		return DecodeDates(v.StringValue())
	}
	return []string{}
}

type mongoUserDoc struct {
	ID             bson.RawValue `bson:"_id"`
	Name           string        `bson:"name"`
	Role           string        `bson:"role"`
	PaysheetNumber bson.RawValue `bson:"paysheet_number"`
	Email          string        `bson:"email"`
	Password       string        `bson:"password"`
	FirstLogin     *bool         `bson:"first_login"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      *time.Time    `bson:"updated_at"`
}

func (d mongoUserDoc) toUser() User {
	return User{
		ID:             ParseID(rawString(d.ID)),
		Name:           d.Name,
		Role:           d.Role,
		PaysheetNumber: rawString(d.PaysheetNumber),
		Email:          d.Email,
		Password:       d.Password,
		FirstLogin:     d.FirstLogin,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type mongoLeaveDoc struct {
	ID              bson.RawValue `bson:"_id"`
	UserID          bson.RawValue `bson:"user_id"`
	LeaveType       string        `bson:"leave_type"`
	LeaveDuration   string        `bson:"leave_duration"`
	HalfDayPeriod   *string       `bson:"half_day_period"`
	Dates           bson.RawValue `bson:"dates"`
	Reason          string        `bson:"reason"`
	CoveringOfficer *string       `bson:"covering_officer"`
	Status          string        `bson:"status"`
	AppliedAt       time.Time     `bson:"applied_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}

func (d mongoLeaveDoc) toLeave() Leave {
	return Leave{
		ID:              ParseID(rawString(d.ID)),
		UserID:          ParseID(rawString(d.UserID)),
		LeaveType:       d.LeaveType,
		LeaveDuration:   d.LeaveDuration,
		HalfDayPeriod:   d.HalfDayPeriod,
		Dates:           rawDates(d.Dates),
		Reason:          d.Reason,
		CoveringOfficer: d.CoveringOfficer,
		Status:          d.Status,
		AppliedAt:       d.AppliedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func insertedID(v any) ID {
	switch id := v.(type) {
	case primitive.ObjectID:
		return ObjectID(id)
	case string:
		return ParseID(id)
	}
	return ParseID(fmt.Sprint(v))
}

func mapMongoError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type mongoUsers struct{ coll *mongo.Collection }

func userFilterBSON(f UserFilter) bson.M {
	q := bson.M{}
	if f.ID != nil {
		q["_id"] = f.ID.normalize(ModeMongo)
	}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Email != "" {
		q["email"] = strings.ToLower(f.Email)
	}
	if f.PaysheetNumber != "" {
		q["paysheet_number"] = f.PaysheetNumber
	}
	return q
}

func (c mongoUsers) Find(ctx context.Context, f UserFilter) ([]User, error) {
	cur, err := c.coll.Find(ctx, userFilterBSON(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoUserDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toUser())
	}
	return out, nil
}

func (c mongoUsers) FindOne(ctx context.Context, f UserFilter) (*User, error) {
	var doc mongoUserDoc
	err := c.coll.FindOne(ctx, userFilterBSON(f)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := doc.toUser()
	return &u, nil
}

func (c mongoUsers) InsertMany(ctx context.Context, users []User) ([]ID, error) {
	docs := make([]any, 0, len(users))
	for _, u := range users {
		doc := bson.M{
			"name":       u.Name,
			"role":       u.Role,
			"created_at": u.CreatedAt,
		}
		if u.PaysheetNumber != "" {
			doc["paysheet_number"] = u.PaysheetNumber
		}
		if u.Email != "" {
			doc["email"] = strings.ToLower(u.Email)
		}
		if u.FirstLogin != nil {
			doc["first_login"] = *u.FirstLogin
		}
		docs = append(docs, doc)
	}
	res, err := c.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, mapMongoError(err)
	}
	ids := make([]ID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, insertedID(id))
	}
	return ids, nil
}

func (c mongoUsers) UpdateOne(ctx context.Context, id ID, upd UserUpdate) (bool, error) {
	res, err := c.coll.UpdateOne(ctx,
		bson.M{"_id": id.normalize(ModeMongo)},
		bson.M{"$set": bson.M{
			"password":    upd.Password,
			"first_login": upd.FirstLogin,
			"updated_at":  upd.UpdatedAt,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (c mongoUsers) CountDocuments(ctx context.Context, f UserFilter) (int64, error) {
	return c.coll.CountDocuments(ctx, userFilterBSON(f))
}

type mongoLeaves struct{ coll *mongo.Collection }

func leaveFilterBSON(f LeaveFilter) bson.M {
	q := bson.M{}
	if f.ID != nil {
		q["_id"] = f.ID.normalize(ModeMongo)
	}
	if f.UserID != nil {
		// user_id may have been written as an ObjectID or as its hex string.
		if oid, ok := f.UserID.normalize(ModeMongo).(primitive.ObjectID); ok {
			q["user_id"] = bson.M{"$in": bson.A{oid, oid.Hex()}}
		} else {
			q["user_id"] = f.UserID.String()
		}
	}
	return q
}

func (c mongoLeaves) Find(ctx context.Context, f LeaveFilter) ([]Leave, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}})
	cur, err := c.coll.Find(ctx, leaveFilterBSON(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoLeaveDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]Leave, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toLeave())
	}
	return out, nil
}

func (c mongoLeaves) FindOne(ctx context.Context, f LeaveFilter) (*Leave, error) {
	var doc mongoLeaveDoc
	err := c.coll.FindOne(ctx, leaveFilterBSON(f)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l := doc.toLeave()
	return &l, nil
}

func (c mongoLeaves) InsertOne(ctx context.Context, l Leave) (ID, error) {
	res, err := c.coll.InsertOne(ctx, bson.M{
		"user_id":          l.UserID.normalize(ModeMongo),
		"leave_type":       l.LeaveType,
		"leave_duration":   l.LeaveDuration,
		"half_day_period":  l.HalfDayPeriod,
		"dates":            l.Dates,
		"reason":           l.Reason,
		"covering_officer": l.CoveringOfficer,
		"status":           l.Status,
		"applied_at":       l.AppliedAt,
		"updated_at":       l.UpdatedAt,
	})
	if err != nil {
		return ID{}, mapMongoError(err)
	}
	return insertedID(res.InsertedID), nil
}

func (c mongoLeaves) UpdateOne(ctx context.Context, id ID, upd LeaveUpdate) (bool, error) {
	res, err := c.coll.UpdateOne(ctx,
		bson.M{"_id": id.normalize(ModeMongo)},
		bson.M{"$set": bson.M{"status": upd.Status, "updated_at": upd.UpdatedAt}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (c mongoLeaves) DeleteOne(ctx context.Context, id ID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.normalize(ModeMongo)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (c mongoLeaves) DeleteMany(ctx context.Context) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c mongoLeaves) CountDocuments(ctx context.Context, f LeaveFilter) (int64, error) {
	return c.coll.CountDocuments(ctx, leaveFilterBSON(f))
}
