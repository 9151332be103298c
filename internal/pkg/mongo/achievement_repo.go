package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AchievementRepo interface {
	GetGrant(ctx context.Context, userID, figureID uint64, achievementID string) (*AchievementGrant, error)
	CountFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit int64) (int64, error)
	InsertGrantPair(ctx context.Context, grant *AchievementGrant) error
	ListUserGrants(ctx context.Context, userID uint64) ([]*AchievementGrant, error)
	ListFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) ([]*AchievementGrant, error)
}

type achievementRepoImpl struct {
	userCol   *mongo.Collection
	figureCol *mongo.Collection
}

func NewAchievementRepo(db *mongo.Database) AchievementRepo {
	return &achievementRepoImpl{
		userCol:   db.Collection(ColUserAchievements),
		figureCol: db.Collection(ColFigureAchievements),
	}
}

// GetGrant 查询私有副本，不存在时返回 nil
func (s *achievementRepoImpl) GetGrant(ctx context.Context, userID, figureID uint64, achievementID string) (*AchievementGrant, error) {
	var grant AchievementGrant
	filter := bson.M{
		"user_id":        userID,
		"figure_id":      figureID,
		"achievement_id": achievementID,
	}
	err := s.userCol.FindOne(ctx, filter).Decode(&grant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

// CountFigureGrants 统计人物公开副本数量，limit 截断避免全量扫描
func (s *achievementRepoImpl) CountFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit int64) (int64, error) {
	filter := bson.M{"figure_id": figureID, "achievement_id": achievementID}
	return s.figureCol.CountDocuments(ctx, filter, options.Count().SetLimit(limit))
}

// InsertGrantPair 同一事务内写入私有与公开两份副本
// 两个集合的唯一索引保证并发重试下同一成就不会发放两次
func (s *achievementRepoImpl) InsertGrantPair(ctx context.Context, grant *AchievementGrant) error {
	if _, err := s.userCol.InsertOne(ctx, grant); err != nil {
		return err
	}
	_, err := s.figureCol.InsertOne(ctx, grant)
	return err
}

// IsDuplicateGrant 判断是否唯一索引冲突（成就已存在）
func IsDuplicateGrant(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// ListUserGrants 用户自己的成就列表，按解锁时间倒序
func (s *achievementRepoImpl) ListUserGrants(ctx context.Context, userID uint64) ([]*AchievementGrant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "unlocked_at", Value: -1}})

	cursor, err := s.userCol.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var grants []*AchievementGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// ListFigureGrants 人物的公开成就榜，按解锁时间正序（先到先得）
func (s *achievementRepoImpl) ListFigureGrants(ctx context.Context, figureID uint64, achievementID string, limit, offset int64) ([]*AchievementGrant, error) {
	filter := bson.M{"figure_id": figureID, "achievement_id": achievementID}
	opts := options.Find().
		SetSort(bson.D{{Key: "unlocked_at", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.figureCol.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var grants []*AchievementGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}
