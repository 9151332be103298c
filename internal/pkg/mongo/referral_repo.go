package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReferralRepo interface {
	CreateReferral(ctx context.Context, rec *ReferralRecord) error
	FindByReferredUser(ctx context.Context, referredID uint64) (*ReferralRecord, error)
	MarkVoted(ctx context.Context, referredID uint64) (bool, error)
	ListByReferrer(ctx context.Context, referrerID uint64, limit, offset int64) ([]*ReferralRecord, error)
}

type referralRepoImpl struct {
	col *mongo.Collection
}

func NewReferralRepo(db *mongo.Database) ReferralRepo {
	return &referralRepoImpl{
		col: db.Collection(ColReferrals),
	}
}

// CreateReferral 写入邀请记录，referred_id 唯一索引拦截重复认领
func (s *referralRepoImpl) CreateReferral(ctx context.Context, rec *ReferralRecord) error {
	_, err := s.col.InsertOne(ctx, rec)
	return err
}

// IsDuplicateReferral 判断唯一索引冲突（该用户已被邀请过）
func IsDuplicateReferral(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// FindByReferredUser 反查某用户是谁邀请来的，不存在时返回 nil
func (s *referralRepoImpl) FindByReferredUser(ctx context.Context, referredID uint64) (*ReferralRecord, error) {
	var rec ReferralRecord
	err := s.col.FindOne(ctx, bson.M{"referred_id": referredID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// MarkVoted 将 has_voted 从 false 置为 true，返回本次是否真的翻转
// 过滤条件里带 has_voted=false，并发下只有一个事务能匹配成功
func (s *referralRepoImpl) MarkVoted(ctx context.Context, referredID uint64) (bool, error) {
	filter := bson.M{"referred_id": referredID, "has_voted": false}
	update := bson.M{"$set": bson.M{"has_voted": true}}

	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// ListByReferrer 某用户发出的全部邀请，按时间倒序
func (s *referralRepoImpl) ListByReferrer(ctx context.Context, referrerID uint64, limit, offset int64) ([]*ReferralRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{"referrer_id": referrerID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var records []*ReferralRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
