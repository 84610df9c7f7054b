package notify

// NotificationType represents the type of notification event
type NotificationType string

const (
	// TypeSuccess indicates a successful operation
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a failed operation
	TypeFailure NotificationType = "failure"
)

// Notification represents a single notification event to dispatch
type Notification struct {
	// Title is the notification title (e.g., "Update ready")
	Title string

	// Message is the notification body text
	Message string

	// NotificationType indicates the event type: success or failure
	NotificationType NotificationType
}

// NewNotification creates a new Notification with the given parameters
func NewNotification(title, message string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}
}
