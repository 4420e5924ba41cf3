package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shopcore/internal/domain/cart"
	"shopcore/internal/infra"
	"shopcore/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cartDoc is the stored representation of a cart: one JSON document per
// identity key, expiring after the configured TTL of inactivity.
type cartDoc struct {
	CustomerID *uuid.UUID    `json:"customer_id,omitempty"`
	SessionID  *string       `json:"session_id,omitempty"`
	Lines      []cartLineDoc `json:"lines"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type cartLineDoc struct {
	ProductID      uuid.UUID `json:"product_id"`
	VariantID      *string   `json:"variant_id,omitempty"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) commands.CartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

// Get returns nil without error when no cart exists for the identity.
func (s *RedisCartStore) Get(ctx context.Context, identity cart.Identity) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, identity.Key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read cart", err)
	}

	var doc cartDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal cart document", err)
	}

	lines := make([]cart.Line, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		line, err := cart.NewLine(l.ProductID, l.VariantID, l.Name, l.UnitPriceCents, l.Quantity)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt cart line", err)
		}
		lines = append(lines, line)
	}
	return cart.RestoreCart(identity, lines, doc.UpdatedAt), nil
}

func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	doc := cartDoc{
		CustomerID: c.Identity().CustomerID(),
		SessionID:  c.Identity().SessionID(),
		Lines:      make([]cartLineDoc, 0, len(c.Lines())),
		UpdatedAt:  c.UpdatedAt(),
	}
	for _, line := range c.Lines() {
		doc.Lines = append(doc.Lines, cartLineDoc{
			ProductID:      line.ProductID(),
			VariantID:      line.VariantID(),
			Name:           line.Name(),
			UnitPriceCents: line.UnitPriceCents(),
			Quantity:       line.Quantity(),
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal cart document", err)
	}

	if err := s.client.Set(ctx, c.Identity().Key(), raw, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to save cart", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, identity cart.Identity) error {
	if err := s.client.Del(ctx, identity.Key()).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete cart", err)
	}
	return nil
}
