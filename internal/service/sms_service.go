package service

import (
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/pkg/util"
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type SmsService interface {
	SendSms(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone string, code string) (string, error)
	DelSmsRegToken(ctx context.Context, phone string) error
}

type SmsServiceImpl struct{}

func NewSmsService() SmsService {
	return &SmsServiceImpl{}
}

func (s *SmsServiceImpl) SendSms(ctx context.Context, phone string) error {
	// 同一手机号 60 秒内只发一条
	ok, err := redis.TryLock(ctx, consts.SmsCooldownKey+phone, 1, time.Minute, 1)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSmsTooFrequent
	}

	code := util.GenerateCode(6)
	if err = redis.SetWithExpiration(ctx, consts.SmsKey+phone, code, 10*time.Minute); err != nil {
		return err
	}
	return util.SendSms(phone, code)
}

func (s *SmsServiceImpl) CheckCode(ctx context.Context, phone string, code string) (string, error) {
	redisCode, err := redis.GetValue(ctx, consts.SmsKey+phone)
	if err != nil {
		return "", err
	}
	if redisCode != code {
		return "", ErrCodeIncorrect
	}
	_ = redis.DeleteKey(ctx, consts.SmsKey+phone)
	tempToken := strconv.Itoa(int(uuid.New().ID()))
	err = redis.SetWithExpiration(ctx, consts.SmsCheckTokenKey+phone, tempToken, 1*time.Hour)
	if err != nil {
		return "", err
	}
	return tempToken, nil
}

func (s *SmsServiceImpl) DelSmsRegToken(ctx context.Context, phone string) error {
	return redis.DeleteKey(ctx, consts.SmsCheckTokenKey+phone)
}
