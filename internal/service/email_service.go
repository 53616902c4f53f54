package service

import (
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码，scope 为 register / reset
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}

	// 先写入pending键
	if err = s.rds.SetCodePending(scope, email, code); err != nil {
		return err
	}

	subject := "注册验证"
	if scope == "reset" {
		subject = "重置密码"
	}
	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject+"验证码", html); err != nil {
		return err
	}

	// 邮件发送后再将pending转为confirmed
	if err = s.rds.ConfirmCode(scope, email); err != nil {
		// 如果确认失败，清除pending键
		_ = s.rds.DeleteCodePending(scope, email)
		return err
	}

	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetCode(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
