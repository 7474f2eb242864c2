package service

import (
	"strings"
	"testing"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSender mocks the mail.Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(toEmail, subject, htmlBody string) error {
	args := m.Called(toEmail, subject, htmlBody)
	return args.Error(0)
}

func TestBroadcast_AdminOnlyTargeting(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	notificationService := NewNotificationService(mockUserRepo, mockSender, zerolog.Nop())

	admins := []models.User{{Email: "admin@example.com", IsStaff: true}}
	mockUserRepo.On("ListByStaff", true).Return(admins, nil)
	mockSender.On("Send", "admin@example.com", "EduGround", mock.AnythingOfType("string")).Return(nil)

	results, err := notificationService.Broadcast(dto.NotificationRequest{
		Title:    "Maintenance",
		Body:     "The platform goes down tonight.",
		ForAdmin: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"admin@example.com": true}, results)
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "List")
	mockSender.AssertExpectations(t)
}

func TestBroadcast_BothFlagsMeansEveryone(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	notificationService := NewNotificationService(mockUserRepo, mockSender, zerolog.Nop())

	users := []models.User{
		{Email: "admin@example.com", IsStaff: true},
		{Email: "student@example.com"},
	}
	mockUserRepo.On("List").Return(users, nil)
	mockSender.On("Send", mock.AnythingOfType("string"), "EduGround", mock.AnythingOfType("string")).Return(nil)

	results, err := notificationService.Broadcast(dto.NotificationRequest{
		Title:      "News",
		Body:       "Hello everyone.",
		ForAdmin:   true,
		ForStudent: true,
	})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	mockUserRepo.AssertExpectations(t)
}

func TestBroadcast_DeliveryFailureDoesNotAbortBatch(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	notificationService := NewNotificationService(mockUserRepo, mockSender, zerolog.Nop())

	users := []models.User{
		{Email: "bounce@example.com"},
		{Email: "fine@example.com"},
	}
	mockUserRepo.On("ListByStaff", false).Return(users, nil)
	mockSender.On("Send", "bounce@example.com", "EduGround", mock.AnythingOfType("string")).
		Return(assert.AnError)
	mockSender.On("Send", "fine@example.com", "EduGround", mock.AnythingOfType("string")).
		Return(nil)

	results, err := notificationService.Broadcast(dto.NotificationRequest{
		Title:      "Update",
		Body:       "New lessons available.",
		ForStudent: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"bounce@example.com": false, "fine@example.com": true}, results)
	mockSender.AssertExpectations(t)
}

func TestBroadcast_TemplatePlaceholdersRenderedPerRecipient(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	notificationService := NewNotificationService(mockUserRepo, mockSender, zerolog.Nop())

	users := []models.User{{Email: "ada@example.com", FirstName: "Ada"}}
	mockUserRepo.On("ListByStaff", false).Return(users, nil)

	var sentBody string
	mockSender.On("Send", "ada@example.com", "EduGround", mock.AnythingOfType("string")).
		Return(nil).
		Run(func(args mock.Arguments) {
			sentBody = args.String(2)
		})

	results, err := notificationService.Broadcast(dto.NotificationRequest{
		Title:      "Hello {{.FirstName}}",
		Body:       "A new course is waiting for you, {{.FirstName}}.",
		ForStudent: true,
	})

	assert.NoError(t, err)
	assert.True(t, results["ada@example.com"])
	assert.True(t, strings.Contains(sentBody, "Hello Ada"))
	assert.True(t, strings.Contains(sentBody, "waiting for you, Ada"))
}

func TestBroadcast_BadTemplateRejected(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	notificationService := NewNotificationService(mockUserRepo, mockSender, zerolog.Nop())

	_, err := notificationService.Broadcast(dto.NotificationRequest{
		Title: "{{.Broken",
		Body:  "irrelevant",
	})

	assert.ErrorIs(t, err, ErrBadTemplate)
	mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "List")
}
