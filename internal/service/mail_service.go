package service

import (
	"fmt"
	"log"

	"djibtrade/config"
	"djibtrade/internal/models"

	"github.com/wneessen/go-mail"
)

// MailService sends transactional email over SMTP. Disabled (nil-safe)
// when no SMTP host is configured.
type MailService struct {
	cfg         *config.SMTPConfig
	frontendURL string
}

func NewMailService(cfg *config.SMTPConfig, frontendURL string) *MailService {
	if cfg.Host == "" {
		return nil
	}
	return &MailService{cfg: cfg, frontendURL: frontendURL}
}

// HandleUserCreated is the user.created subscriber (registered async so
// SMTP latency never blocks registration). Best effort: failures are logged.
func (s *MailService) HandleUserCreated(u *models.User) {
	if s == nil {
		return
	}
	if err := s.sendWelcome(u); err != nil {
		log.Printf("[mail] welcome email to %s failed: %v", u.Email, err)
		return
	}
	log.Printf("[mail] welcome email sent to %s", u.Email)
}

func (s *MailService) sendWelcome(u *models.User) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return err
	}
	if err := msg.To(u.Email); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur Djibtrade")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Bienvenue sur Djibtrade ! Nous sommes ravis de vous compter parmi nous.\n\n"+
			"Vous pouvez maintenant vous connecter et publier vos annonces :\n%s/login\n\n"+
			"À très bientôt,\nL'équipe Djibtrade\n",
		u.CompanyName, s.frontendURL))

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}
