package shared

import "time"

// Event types understood by the notification consumer.
const (
	EventOrderConfirmation   = "orderConfirmation"
	EventOrderStatusUpdate   = "orderStatusUpdate"
	EventLoyaltyPointsUpdate = "loyaltyPointsUpdate"
)

// Envelope is the wire contract with the notification collaborator. The
// receiving side owns template rendering and delivery.
type Envelope struct {
	EventType      string         `json:"eventType"`
	RecipientEmail string         `json:"recipientEmail"`
	Data           map[string]any `json:"data"`
	PublishedAt    time.Time      `json:"publishedAt"`
}
