package outbox

import (
	"encoding/json"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
)

// NotificationTopic is the broker topic carrying status change notifications.
const NotificationTopic = "tracking.status-changed"

// notificationPayload is the wire form of a status change notification.
// Status carries the wire stage name; delivered is not a stage and never
// appears here.
type notificationPayload struct {
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewNotificationMessage wraps a domain notification into an outbox message
// keyed by tracking number, so all notifications for one parcel stay ordered
// on a single partition.
func NewNotificationMessage(n *tracking.Notification, now time.Time) (*Message, error) {
	payload, err := json.Marshal(notificationPayload{
		TrackingNumber: n.TrackingNumber,
		Status:         n.Stage.String(),
		Timestamp:      n.Timestamp,
	})
	if err != nil {
		return nil, err
	}

	return NewMessage(kernel.NewUUID(), NotificationTopic, n.TrackingNumber, payload, now)
}
