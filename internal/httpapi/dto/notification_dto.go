package dto

// NotificationRequest: payload for the admin broadcast endpoint. Title and
// body may contain template placeholders evaluated per recipient, e.g.
// "Hello {{.FirstName}}".
type NotificationRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body" binding:"required"`
	ForAdmin   bool   `json:"for_admin"`
	ForStudent bool   `json:"for_student"`
}
