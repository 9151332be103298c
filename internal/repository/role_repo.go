package repository

import (
	"WikiStars/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type RoleRepo interface {
	GetRoleByIDs(ctx context.Context, ids []uint64) ([]*model.Role, error)
}

type RoleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepo {
	return &RoleRepoImpl{
		db: db,
	}
}

func (s *RoleRepoImpl) GetRoleByIDs(ctx context.Context, ids []uint64) ([]*model.Role, error) {
	roles := make([]*model.Role, 0, len(ids))
	result := s.db.WithContext(ctx).Model(&model.Role{}).Where("id IN ?", ids).Find(&roles)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return roles, nil
}
