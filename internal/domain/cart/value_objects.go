package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrIdentityRequired  = errors.New("cart identity requires a customer ID or a session ID")
	ErrIdentityAmbiguous = errors.New("cart identity cannot have both a customer ID and a session ID")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidUnitPrice  = errors.New("unit price cannot be negative")
	ErrLineNotFound      = errors.New("cart line not found")
)

// Identity is the owner of a cart: exactly one of customer or guest session.
type Identity struct {
	customerID *uuid.UUID
	sessionID  *string
}

func NewCustomerIdentity(customerID uuid.UUID) Identity {
	return Identity{customerID: &customerID}
}

func NewGuestIdentity(sessionID string) (Identity, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Identity{}, ErrIdentityRequired
	}
	return Identity{sessionID: &sessionID}, nil
}

func NewIdentity(customerID *uuid.UUID, sessionID *string) (Identity, error) {
	if customerID != nil && sessionID != nil {
		return Identity{}, ErrIdentityAmbiguous
	}
	if customerID != nil {
		return NewCustomerIdentity(*customerID), nil
	}
	if sessionID != nil {
		return NewGuestIdentity(*sessionID)
	}
	return Identity{}, ErrIdentityRequired
}

func (i Identity) IsCustomer() bool { return i.customerID != nil }
func (i Identity) IsGuest() bool    { return i.sessionID != nil }

func (i Identity) CustomerID() *uuid.UUID { return i.customerID }
func (i Identity) SessionID() *string     { return i.sessionID }

// Key is the storage key for the cart document.
func (i Identity) Key() string {
	if i.customerID != nil {
		return fmt.Sprintf("cart:customer:%s", i.customerID)
	}
	return fmt.Sprintf("cart:guest:%s", *i.sessionID)
}

// LineKey identifies a cart line by product and optional variant.
type LineKey struct {
	ProductID uuid.UUID
	VariantID *string
}

func (k LineKey) Equal(other LineKey) bool {
	if k.ProductID != other.ProductID {
		return false
	}
	if (k.VariantID == nil) != (other.VariantID == nil) {
		return false
	}
	return k.VariantID == nil || *k.VariantID == *other.VariantID
}
