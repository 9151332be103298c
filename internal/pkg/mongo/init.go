package mongo

import (
	"WikiStars/internal/api/config"
	"WikiStars/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Client 与 Database 引用，同时初始化索引
// 事务依赖 Client 上开启的 Session，因此两者都需要对外暴露
func InitMongo(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(cfg.Database)

	if err = ensureIndexes(ctx, db); err != nil {
		return nil, nil, err
	}

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return client, db, nil
}

// ensureIndexes 建立核心集合的唯一索引
// 连击记录与成就记录的双份副本各自依赖唯一索引兜底，防止并发重试下重复写入
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		ColUserStreaks: {
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "figure_id", Value: 1}},
			Options: unique,
		},
		ColFigureStreaks: {
			Keys:    bson.D{{Key: "figure_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: unique,
		},
		ColStreakStats: {
			Keys:    bson.D{{Key: "figure_id", Value: 1}, {Key: "streak_length", Value: 1}},
			Options: unique,
		},
		ColUserAchievements: {
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "figure_id", Value: 1},
				{Key: "achievement_id", Value: 1},
			},
			Options: unique,
		},
		ColFigureAchievements: {
			Keys: bson.D{
				{Key: "figure_id", Value: 1},
				{Key: "achievement_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: unique,
		},
		ColReferrals: {
			Keys:    bson.D{{Key: "referred_id", Value: 1}},
			Options: unique,
		},
	}

	for col, idx := range indexes {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
