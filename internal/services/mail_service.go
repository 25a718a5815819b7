package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/hashtag-app/backend/internal/models"
)

// Mailer is the outbound email surface the services depend on
type Mailer interface {
	SendOTPEmail(to string, code int) error
	SendAccountCreatedEmail(user *models.User)
	SendPostCreatedEmail(post *models.Post)
}

// MailService sends email over SMTP. When the SMTP environment variables
// are missing the service is disabled and every send is a no-op.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Operator string
	Enabled  bool
}

// NewMailService builds a MailService from the SMTP_* environment variables
func NewMailService(operator string) *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Operator: operator,
		Enabled:  enabled,
	}
}

func (s *MailService) send(to []string, subject, body string) error {
	if !s.Enabled {
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Hashtag Team <%s>\r\n"+
		"Subject: %s\r\n\r\n%s", to[0], s.From, subject, body))

	return smtp.SendMail(addr, auth, s.From, to, msg)
}

func (s *MailService) sendAsync(to []string, subject, body string) {
	go func() {
		if err := s.send(to, subject, body); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		}
	}()
}

// SendOTPEmail delivers a verification code to the given address
func (s *MailService) SendOTPEmail(to string, code int) error {
	return s.send([]string{to}, "OTP Verification", fmt.Sprintf("Your OTP is %d", code))
}

// SendAccountCreatedEmail notifies the operator address that an account
// was created. Best-effort, never blocks the mutation.
func (s *MailService) SendAccountCreatedEmail(user *models.User) {
	if s.Operator == "" {
		return
	}
	body := fmt.Sprintf("New account created: %s %s (@%s, %s)", user.FirstName, user.LastName, user.UserName, user.Email)
	s.sendAsync([]string{s.Operator}, "Account created", body)
}

// SendPostCreatedEmail notifies the operator address that a post was
// created. Best-effort, never blocks the mutation.
func (s *MailService) SendPostCreatedEmail(post *models.Post) {
	if s.Operator == "" {
		return
	}
	body := fmt.Sprintf("New post %s by user %s:\n\n%s", post.ID, post.AuthorID, post.Content)
	s.sendAsync([]string{s.Operator}, "Post created", body)
}
