package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shopcore/internal/infra"
	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/commands"

	"github.com/google/uuid"
)

// IdentityClient resolves customer profiles from the identity service.
type IdentityClient struct {
	baseURL string
	client  *http.Client
}

func NewIdentityClient(cfg config.GatewayConfig) commands.IdentityGateway {
	return &IdentityClient{
		baseURL: cfg.IdentityBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type profileResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func (c *IdentityClient) GetProfile(ctx context.Context, customerID uuid.UUID) (*commands.CustomerProfile, error) {
	url := fmt.Sprintf("%s/api/users/%s", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build profile request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "identity service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(fmt.Sprintf("identity service returned %d", resp.StatusCode))
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Wrap(err, "failed to decode profile response")
	}

	return &commands.CustomerProfile{
		ID:    body.ID,
		Email: body.Email,
		Name:  body.Name,
	}, nil
}

type guestRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (c *IdentityClient) FindOrCreateGuest(ctx context.Context, email, fullName string) (uuid.UUID, error) {
	url := fmt.Sprintf("%s/api/users/guest", c.baseURL)

	payload, err := json.Marshal(guestRequest{Email: email, FullName: fullName})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to encode guest request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to build guest request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "identity service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return uuid.Nil, errs.New(fmt.Sprintf("identity service returned %d", resp.StatusCode))
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to decode guest response")
	}
	return body.ID, nil
}
