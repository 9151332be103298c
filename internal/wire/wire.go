package wire

import (
	"WikiStars/internal/api"
	"WikiStars/internal/api/config"
	"WikiStars/internal/api/handler"
	"WikiStars/internal/job"
	"WikiStars/internal/pkg/cron"
	"WikiStars/internal/pkg/kafka"
	wsmongo "WikiStars/internal/pkg/mongo"
	"WikiStars/internal/repository"
	"WikiStars/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoClient *mongo.Client, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userRolesRepo := repository.NewUserRolesRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	figureRepo := repository.NewFigureRepo(db)
	voteRepo := repository.NewVoteRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	campaignRepo := repository.NewCampaignRepo(db)
	figureMetricRepo := repository.NewFigureMetricRepository(db)

	txnRunner := wsmongo.NewTxnRunner(mongoClient)
	streakRepo := wsmongo.NewStreakRepo(mongoDB)
	streakStatRepo := wsmongo.NewStreakStatRepo(mongoDB)
	achievementRepo := wsmongo.NewAchievementRepo(mongoDB)
	referralRepo := wsmongo.NewReferralRepo(mongoDB)

	streakService := service.NewStreakService(txnRunner, streakRepo, streakStatRepo)
	achievementService := service.NewAchievementService(txnRunner, achievementRepo, referralRepo, userRepo)
	referralService := service.NewReferralService(referralRepo, userRepo, figureRepo)

	userService := service.NewUserService(userRepo, roleRepo, userRolesRepo, referralService)
	userRolesService := service.NewUserRolesService(userRolesRepo)
	smsService := service.NewSmsService()
	figureService := service.NewFigureService(figureRepo)
	voteService := service.NewVoteService(voteRepo, figureRepo, userRepo, streakService, achievementService)
	commentService := service.NewCommentService(commentRepo, figureRepo, userRepo, streakService)
	campaignService := service.NewCampaignService(campaignRepo)
	figureMetricService := service.NewFigureMetricService(figureMetricRepo, figureRepo, voteRepo, commentRepo)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService, userRolesService, smsService),
		FigureHandler:      handler.NewFigureHandler(figureService, figureMetricService),
		VoteHandler:        handler.NewVoteHandler(voteService),
		CommentHandler:     handler.NewCommentHandler(commentService),
		StreakHandler:      handler.NewStreakHandler(streakService),
		AchievementHandler: handler.NewAchievementHandler(achievementService),
		ReferralHandler:    handler.NewReferralHandler(referralService),
		CampaignHandler:    handler.NewCampaignHandler(campaignService),
		MediaHandler:       handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	figureMetricJob := job.NewFigureMetricJob(figureMetricService)
	campaignFlushJob := job.NewCampaignFlushJob(campaignService)
	cronMgr := cron.NewCronManager(figureMetricJob, campaignFlushJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
