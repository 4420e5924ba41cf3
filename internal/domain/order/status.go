package order

import (
	"errors"
	"fmt"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusProcessing     Status = "processing"
	StatusConfirmed      Status = "confirmed"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusPaymentFailed  Status = "payment_failed"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPendingPayment, StatusProcessing, StatusConfirmed, StatusShipped,
		StatusDelivered, StatusPaymentFailed, StatusCancelled, StatusRefunded:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Category groups statuses so side effects key on the kind of transition
// rather than exact states.
type Category string

const (
	CategoryActive    Category = "active"
	CategoryCompleted Category = "completed"
	CategoryCancelled Category = "cancelled"
	CategoryFailed    Category = "failed"
)

func (s Status) Category() Category {
	switch s {
	case StatusDelivered:
		return CategoryCompleted
	case StatusCancelled, StatusRefunded:
		return CategoryCancelled
	case StatusPaymentFailed:
		return CategoryFailed
	default:
		return CategoryActive
	}
}

// allowedTransitions is the full lifecycle graph. Cancellation and refund
// stay reachable after delivery so post-delivery disputes can be resolved.
var allowedTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusProcessing, StatusPaymentFailed, StatusCancelled},
	StatusProcessing:     {StatusConfirmed, StatusCancelled, StatusRefunded},
	StatusConfirmed:      {StatusShipped, StatusCancelled, StatusRefunded},
	StatusShipped:        {StatusDelivered, StatusCancelled, StatusRefunded},
	StatusDelivered:      {StatusCancelled, StatusRefunded},
	StatusPaymentFailed:  {},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
