package util

import (
	"WikiStars/internal/api/config"
	"fmt"
	log "log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const SuccessResp = "0"
const digits = "0123456789"

var smsClient = resty.New().SetTimeout(10 * time.Second)

func SendSms(phone string, code string) error {
	smsCfg := config.Cfg.SMS

	log.Info(fmt.Sprintf("发送给 %s 的验证码为 %s", phone, code))

	resp, err := smsClient.R().
		SetQueryParams(map[string]string{
			"u": smsCfg.Username,
			"p": smsCfg.ApiKey,
			"m": phone,
			"c": fmt.Sprintf("【WikiStars】您的验证码为 %s 。", code),
		}).
		Get(smsCfg.URL)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("sms send failed: %s", resp.Status())
	}
	if string(resp.Body()) != SuccessResp {
		return fmt.Errorf("sms send failed: response code %s", string(resp.Body()))
	}
	log.Info(fmt.Sprintf("短信接口响应: %s", string(resp.Body())))
	return nil
}

func GenerateCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[r.Intn(len(digits))]
	}
	return string(code)
}
