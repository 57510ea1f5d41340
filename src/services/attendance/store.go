package attendance

import (
	"context"
	"time"

	"Backend-PunchSync/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store ที่เก็บการลงเวลา offline ของเครื่อง
type Store interface {
	Insert(ctx context.Context, rec *models.OfflineAttendanceRecord) error
	ListUnsynced(ctx context.Context) ([]models.OfflineAttendanceRecord, error)
	MarkSynced(ctx context.Context, id string) error
	PurgeSyncedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountUnsynced(ctx context.Context) (int64, error)
}

// MongoStore เก็บ record ลง collection offline_attendance
// ได้ handle มาจากคนประกอบระบบ ไม่มี singleton ภายใน package
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

// Insert upsert ด้วย _id เดิม ยิงซ้ำด้วย record เดิมก็ได้แถวเดียวเท่านั้น
func (s *MongoStore) Insert(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true),
	)
	return err
}

// ListUnsynced คืน record ที่ synced=false เรียงเวลาเก่าสุดก่อน
// เพื่อให้ replay ขึ้น server ตามลำดับเหตุการณ์จริง
func (s *MongoStore) ListUnsynced(ctx context.Context) ([]models.OfflineAttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := s.col.Find(ctx, bson.M{"synced": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.OfflineAttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkSynced ติดธง synced ถ้าไม่เจอ id ถือว่าเรียบร้อย (no-op)
func (s *MongoStore) MarkSynced(ctx context.Context, id string) error {
	now := time.Now()
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"synced": true, "syncedAt": now}},
	)
	return err
}

// PurgeSyncedOlderThan ลบเฉพาะ record ที่ sync แล้วและเก่ากว่า cutoff
// record ที่ยังไม่ sync จะไม่ถูกลบไม่ว่าจะเก่าแค่ไหน
func (s *MongoStore) PurgeSyncedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{
		"synced":    true,
		"timestamp": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountUnsynced ใช้ตัดสินว่าต้องยิง sync pass หรือไม่
func (s *MongoStore) CountUnsynced(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"synced": false})
}
