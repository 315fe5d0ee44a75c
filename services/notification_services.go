package services

import (
	"api/config"
	"fmt"
	"net/smtp"
	"strings"
)

type NotificationService struct {
	host     string
	port     string
	username string
	password string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		host:     config.MailHost,
		port:     config.MailPort,
		username: config.MailUsername,
		password: config.MailPassword,
	}
}

// SendWinnerNotification emails one winner about their prize and claim window
func (s *NotificationService) SendWinnerNotification(to, nickname, question string, amount float64, claimUrl string) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	htmlTemplate := strings.TrimSpace(`
To: %s
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"
Subject: You won a challenge prize!

<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Challenge Prize</title>
</head>
<body style="background-color: #f9fafb; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background: linear-gradient(to right, #1a1a1a, #2d2d2d); padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; margin-bottom: 30px; font-size: 24px;">Congratulations, %s!</h1>
                <p style="color: #9ca3af; margin-bottom: 30px; font-size: 16px;">Your prediction for &ldquo;%s&rdquo; won a prize of %.2f tokens.</p>
                <a href="%s" style="display: inline-block; background-color: #d97706; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold; margin-bottom: 30px;">Claim Your Prize</a>
                <p style="color: #9ca3af; font-size: 14px;">Prizes must be claimed before the claim window closes.</p>
            </td>
        </tr>
    </table>
</body>
</html>`)

	msg := fmt.Sprintf(htmlTemplate, to, nickname, question, amount, claimUrl)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, auth, s.username, []string{to}, []byte(msg))
}
