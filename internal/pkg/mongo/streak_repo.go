package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StreakRepo interface {
	GetUserStreak(ctx context.Context, userID, figureID uint64) (*StreakRecord, error)
	UpsertStreakPair(ctx context.Context, rec *StreakRecord) error
	ListUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*StreakRecord, error)
	ListFigureStreaks(ctx context.Context, figureID uint64, limit int64) ([]*StreakRecord, error)
}

type streakRepoImpl struct {
	userCol   *mongo.Collection
	figureCol *mongo.Collection
}

func NewStreakRepo(db *mongo.Database) StreakRepo {
	return &streakRepoImpl{
		userCol:   db.Collection(ColUserStreaks),
		figureCol: db.Collection(ColFigureStreaks),
	}
}

// GetUserStreak 读取用户侧副本，不存在时返回 nil
func (s *streakRepoImpl) GetUserStreak(ctx context.Context, userID, figureID uint64) (*StreakRecord, error) {
	var rec StreakRecord
	filter := bson.M{"user_id": userID, "figure_id": figureID}
	err := s.userCol.FindOne(ctx, filter).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// UpsertStreakPair 将同一份载荷同时写入用户侧与人物侧两个集合
// 必须在事务上下文内调用，保证两份副本不会出现只写一半
func (s *streakRepoImpl) UpsertStreakPair(ctx context.Context, rec *StreakRecord) error {
	filter := bson.M{"user_id": rec.UserID, "figure_id": rec.FigureID}
	update := bson.M{"$set": rec}
	opts := options.Update().SetUpsert(true)

	if _, err := s.userCol.UpdateOne(ctx, filter, update, opts); err != nil {
		return err
	}
	if _, err := s.figureCol.UpdateOne(ctx, filter, update, opts); err != nil {
		return err
	}
	return nil
}

// ListUserStreaks 用户的个人连击列表，按连击长度倒序
func (s *streakRepoImpl) ListUserStreaks(ctx context.Context, userID uint64, limit int64) ([]*StreakRecord, error) {
	return s.listStreaks(ctx, s.userCol, bson.M{"user_id": userID}, limit)
}

// ListFigureStreaks 人物的忠实粉丝列表，按连击长度倒序
func (s *streakRepoImpl) ListFigureStreaks(ctx context.Context, figureID uint64, limit int64) ([]*StreakRecord, error) {
	return s.listStreaks(ctx, s.figureCol, bson.M{"figure_id": figureID}, limit)
}

func (s *streakRepoImpl) listStreaks(ctx context.Context, col *mongo.Collection, filter bson.M, limit int64) ([]*StreakRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "current_streak", Value: -1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var records []*StreakRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
