package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StreakStatRepo interface {
	IncrBucket(ctx context.Context, figureID uint64, streakLength int, country, gender string, delta int64) error
	GetFigureStats(ctx context.Context, figureID uint64) ([]*StreakStatBucket, error)
}

type streakStatRepoImpl struct {
	col *mongo.Collection
}

func NewStreakStatRepo(db *mongo.Database) StreakStatRepo {
	return &streakStatRepoImpl{
		col: db.Collection(ColStreakStats),
	}
}

const BucketKeyUnknown = "unknown"

var countryKeyPattern = regexp.MustCompile(`^[A-Za-z]{2,3}$`)

// NormalizeCountry 将国家码收敛为合法的 Mongo 字段名
// 空值或非 ISO 形式一律归入 unknown 桶
func NormalizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if !countryKeyPattern.MatchString(country) {
		return BucketKeyUnknown
	}
	return strings.ToUpper(country)
}

// NormalizeGender 性别桶键：male / female / unknown
func NormalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return "male"
	case "female":
		return "female"
	default:
		return BucketKeyUnknown
	}
}

// IncrBucket 对 (figure, streakLength) 桶做原子加减
// 使用 $inc 而非读改写，并发事务命中同一桶文档时不会丢失更新
func (s *streakStatRepoImpl) IncrBucket(ctx context.Context, figureID uint64, streakLength int, country, gender string, delta int64) error {
	cc := NormalizeCountry(country)
	g := NormalizeGender(gender)

	filter := bson.M{"figure_id": figureID, "streak_length": streakLength}
	update := bson.M{
		"$inc": bson.M{
			fmt.Sprintf("countries.%s.total", cc): delta,
			fmt.Sprintf("countries.%s.%s", cc, g): delta,
		},
	}

	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetFigureStats 拉取人物全部连击长度桶，按长度升序
func (s *streakStatRepoImpl) GetFigureStats(ctx context.Context, figureID uint64) ([]*StreakStatBucket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "streak_length", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{"figure_id": figureID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var buckets []*StreakStatBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
