package mail

import (
	"fmt"
	"net/url"

	"certshop/config"
	"certshop/internal/domain/service"
)

// NewAccountMail renders the verification message sent after registration.
// The link lands on GET /users/verify with the verify token in the query
// string (link-token mode).
func NewAccountMail(cfg *config.MailConfig, email, customerName, verifyToken string) service.AccountMail {
	link := joinLink(cfg, "/users/verify", verifyToken)

	return service.AccountMail{
		To:      email,
		Subject: fmt.Sprintf("%s - 帳號驗證信", senderName(cfg)),
		HTML: fmt.Sprintf(
			"<p>%s 您好，</p><p>請點擊以下連結啟用您的帳號：</p><p><a href=%q>%s</a></p>",
			customerName, link, link,
		),
	}
}

// ResetPasswordMail renders the password-recovery message. The link lands on
// the frontend reset page carrying the reset token.
func ResetPasswordMail(cfg *config.MailConfig, email, resetToken string) service.AccountMail {
	link := joinLink(cfg, "/reset-password", resetToken)

	return service.AccountMail{
		To:      email,
		Subject: fmt.Sprintf("%s - 重設密碼", senderName(cfg)),
		HTML: fmt.Sprintf(
			"<p>請點擊以下連結重設您的密碼：</p><p><a href=%q>%s</a></p><p>若您未曾提出此請求，請忽略本信件。</p>",
			link, link,
		),
	}
}

func senderName(cfg *config.MailConfig) string {
	if cfg != nil && cfg.FromName != "" {
		return cfg.FromName
	}

	return "CertShop"
}

func joinLink(cfg *config.MailConfig, path, token string) string {
	base := ""
	if cfg != nil {
		base = cfg.FrontendBaseURL
	}

	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}
