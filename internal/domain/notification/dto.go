package notification

type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        string
	Title       string
	Message     string
	Data        map[string]string
}
