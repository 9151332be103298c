package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/repository"
	"context"
	log "log/slog"
)

type CommentService interface {
	// CreateComment 发表评论，评论同样是推进连击的合格动作
	CreateComment(ctx context.Context, userID uint64, commentDTO *dto.CommentCreateDTO) (*dto.CommentResultDTO, error)
	GetFigureComments(ctx context.Context, figureID uint64, page, size int) (*dto.CommentListDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
}

type commentServiceImpl struct {
	commentRepo   repository.CommentRepo
	figureRepo    repository.FigureRepo
	userRepo      repository.UserRepo
	streakService StreakService
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	figureRepo repository.FigureRepo,
	userRepo repository.UserRepo,
	streakService StreakService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:   commentRepo,
		figureRepo:    figureRepo,
		userRepo:      userRepo,
		streakService: streakService,
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uint64, commentDTO *dto.CommentCreateDTO) (*dto.CommentResultDTO, error) {
	figure, err := s.figureRepo.GetFigureById(ctx, commentDTO.FigureID)
	if err != nil {
		return nil, err
	}
	if figure == nil {
		return nil, ErrFigureNotFound
	}
	if figure.Status != consts.FigureStatusNormal {
		return nil, ErrFigureHidden
	}

	detail, err := s.userRepo.GetUserHomeInfoById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrUserNotFound
	}

	comment := &model.Comment{
		FigureID: commentDTO.FigureID,
		UserID:   userID,
		Content:  commentDTO.Content,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	result := &dto.CommentResultDTO{CommentID: comment.ID}

	country := ""
	if detail.Country != nil {
		country = *detail.Country
	}

	// 评论已落库，连击失败只影响庆祝动画
	streakRes, err := s.streakService.RecordActivity(ctx, &dto.StreakActivityDTO{
		UserID:         userID,
		FigureID:       figure.ID,
		FigureName:     figure.Name,
		FigureImageURL: figure.ImageURL,
		UserNickname:   detail.Nickname,
		UserAvatarURL:  detail.AvatarURL,
		Country:        country,
		Gender:         genderBucketKey(detail.Gender),
	})
	if err == nil {
		result.Celebration = &dto.CelebrationDTO{
			StreakGained: streakRes.StreakGained,
			StreakCount:  streakRes.NewStreakCount,
		}
	} else {
		log.WarnContext(ctx, "评论连击记录失败", "user_id", userID, "figure_id", figure.ID, "err", err)
	}

	return result, nil
}

func (s *commentServiceImpl) GetFigureComments(ctx context.Context, figureID uint64, page, size int) (*dto.CommentListDTO, error) {
	comments, total, err := s.commentRepo.ListCommentsByFigure(ctx, figureID, page, size)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}

	details, err := s.userRepo.GetUserSimpleInfoByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	detailMap := make(map[uint64]*model.UserDetail, len(details))
	for _, d := range details {
		detailMap[d.UserID] = d
	}

	result := &dto.CommentListDTO{
		Total:    total,
		Comments: make([]*dto.CommentDTO, 0, len(comments)),
	}
	for _, comment := range comments {
		commentDTO := &dto.CommentDTO{
			ID:        comment.ID,
			FigureID:  comment.FigureID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if d, ok := detailMap[comment.UserID]; ok {
			commentDTO.UserNickname = d.Nickname
			commentDTO.UserAvatarURL = d.AvatarURL
		}
		result.Comments = append(result.Comments, commentDTO)
	}

	return result, nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	affected, err := s.commentRepo.DeleteComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
