package service

import (
	"fmt"
	"strings"
	"text/template"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"
	"eduground/internal/mail"

	"github.com/rs/zerolog"
)

const mailSubject = "EduGround"

// recipientContext is what title/body templates are evaluated against, e.g.
// "Hello {{.FirstName}}".
type recipientContext struct {
	FirstName string
	LastName  string
	Email     string
}

type NotificationService interface {
	Broadcast(req dto.NotificationRequest) (map[string]bool, error)
}

type notificationService struct {
	userRepo repository.UserRepository
	sender   mail.Sender
	logger   zerolog.Logger
}

func NewNotificationService(userRepo repository.UserRepository, sender mail.Sender, logger zerolog.Logger) NotificationService {
	return &notificationService{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// Broadcast renders title and body per recipient and sends one email each.
// Individual delivery failures are recorded as false in the result map and
// never abort the batch; partial delivery is acceptable for a broadcast.
func (s *notificationService) Broadcast(req dto.NotificationRequest) (map[string]bool, error) {
	titleTmpl, err := template.New("title").Parse(req.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	bodyTmpl, err := template.New("body").Parse(req.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}

	users, err := s.recipients(req.ForAdmin, req.ForStudent)
	if err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(users))
	for i := range users {
		user := &users[i]
		ctx := recipientContext{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		}

		title, terr := render(titleTmpl, ctx)
		body, berr := render(bodyTmpl, ctx)
		if terr != nil || berr != nil {
			s.logger.Warn().Str("to", user.Email).Msg("notification template failed for recipient")
			results[user.Email] = false
			continue
		}

		err := s.sender.Send(user.Email, mailSubject, renderHTML(title, body))
		if err != nil {
			s.logger.Warn().Err(err).Str("to", user.Email).Msg("notification delivery failed")
		}
		results[user.Email] = err == nil
	}

	return results, nil
}

// recipients picks the user set for the flag combination: one flag narrows to
// that group, both or neither means everyone.
func (s *notificationService) recipients(forAdmin, forStudent bool) ([]models.User, error) {
	switch {
	case forAdmin && !forStudent:
		return s.userRepo.ListByStaff(true)
	case forStudent && !forAdmin:
		return s.userRepo.ListByStaff(false)
	default:
		return s.userRepo.List()
	}
}

func render(tmpl *template.Template, ctx recipientContext) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderHTML(title, body string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">%s</h2>
				<p>%s</p>
				<p>Best regards,<br>The EduGround Team</p>
			</div>
		</body>
		</html>
	`, title, body)
}
