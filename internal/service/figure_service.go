package service

import (
	"WikiStars/internal/api/dto"
	"WikiStars/internal/model"
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const figureCacheExpiration = 30 * time.Minute

type FigureService interface {
	CreateFigure(ctx context.Context, createDTO *dto.FigureCreateDTO) (*dto.FigureDTO, error)
	GetFigureDetail(ctx context.Context, id uint64) (*dto.FigureDTO, error)
	ListFigures(ctx context.Context, query *dto.FigureQueryDTO) (*dto.FigureListDTO, error)
	SearchFigures(ctx context.Context, keyword string) ([]*dto.FigureDTO, error)
	UpdateFigure(ctx context.Context, id uint64, updateDTO *dto.FigureUpdateDTO) error
	UpdateFigureStatus(ctx context.Context, id uint64, status int8) error
}

type figureServiceImpl struct {
	figureRepo repository.FigureRepo
}

func NewFigureService(figureRepo repository.FigureRepo) FigureService {
	return &figureServiceImpl{figureRepo: figureRepo}
}

func (s *figureServiceImpl) CreateFigure(ctx context.Context, createDTO *dto.FigureCreateDTO) (*dto.FigureDTO, error) {
	figure := &model.Figure{}
	if err := copier.Copy(figure, createDTO); err != nil {
		return nil, err
	}
	figure.Status = consts.FigureStatusNormal

	if err := s.figureRepo.CreateFigure(ctx, figure); err != nil {
		return nil, err
	}
	return toFigureDTO(figure), nil
}

func (s *figureServiceImpl) GetFigureDetail(ctx context.Context, id uint64) (*dto.FigureDTO, error) {
	cacheKey := consts.FigureDetailKey + strconv.FormatUint(id, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		figureDTO := &dto.FigureDTO{}
		if err = json.Unmarshal([]byte(cached), figureDTO); err == nil {
			return figureDTO, nil
		}
	}

	figure, err := s.figureRepo.GetFigureById(ctx, id)
	if err != nil {
		return nil, err
	}
	if figure == nil || figure.Status != consts.FigureStatusNormal {
		return nil, ErrFigureNotFound
	}

	figureDTO := toFigureDTO(figure)
	if data, err := json.Marshal(figureDTO); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, data, figureCacheExpiration)
	}
	return figureDTO, nil
}

func (s *figureServiceImpl) ListFigures(ctx context.Context, query *dto.FigureQueryDTO) (*dto.FigureListDTO, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.Size
	if size < 1 || size > 100 {
		size = 20
	}

	figures, total, err := s.figureRepo.ListFigures(ctx, query.Category, query.Country, page, size)
	if err != nil {
		return nil, err
	}

	result := &dto.FigureListDTO{
		Total:   total,
		Figures: make([]*dto.FigureDTO, 0, len(figures)),
	}
	for _, figure := range figures {
		result.Figures = append(result.Figures, toFigureDTO(figure))
	}
	return result, nil
}

func (s *figureServiceImpl) SearchFigures(ctx context.Context, keyword string) ([]*dto.FigureDTO, error) {
	if keyword == "" {
		return nil, ErrParamInvalid
	}

	figures, err := s.figureRepo.SearchFiguresByName(ctx, keyword, 20)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FigureDTO, 0, len(figures))
	for _, figure := range figures {
		result = append(result, toFigureDTO(figure))
	}
	return result, nil
}

func (s *figureServiceImpl) UpdateFigure(ctx context.Context, id uint64, updateDTO *dto.FigureUpdateDTO) error {
	figure, err := s.figureRepo.GetFigureById(ctx, id)
	if err != nil {
		return err
	}
	if figure == nil {
		return ErrFigureNotFound
	}

	update := &model.Figure{ID: id}
	if err = copier.Copy(update, updateDTO); err != nil {
		return err
	}
	if err = s.figureRepo.UpdateFigure(ctx, update); err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.FigureDetailKey+strconv.FormatUint(id, 10))
	return nil
}

func (s *figureServiceImpl) UpdateFigureStatus(ctx context.Context, id uint64, status int8) error {
	if status != consts.FigureStatusNormal && status != consts.FigureStatusHidden {
		return ErrParamInvalid
	}

	affected, err := s.figureRepo.UpdateFigureStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFigureNotFound
	}

	_ = redis.DeleteKey(ctx, consts.FigureDetailKey+strconv.FormatUint(id, 10))
	return nil
}

func toFigureDTO(figure *model.Figure) *dto.FigureDTO {
	return &dto.FigureDTO{
		ID:            figure.ID,
		Name:          figure.Name,
		Category:      figure.Category,
		Country:       figure.Country,
		Gender:        figure.Gender,
		Birthday:      figure.Birthday,
		ImageURL:      figure.ImageURL,
		Bio:           figure.Bio,
		VotesCount:    figure.VotesCount,
		CommentsCount: figure.CommentsCount,
		CreatedAt:     figure.CreatedAt,
	}
}
