package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shopcore/internal/domain/cart"
	"shopcore/internal/infra"
	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/commands"

	"github.com/google/uuid"
)

// CatalogClient talks to the catalog service, the authority on stock
// and current prices. Timeouts fail closed: an unreachable catalog
// means the checkout does not proceed.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(cfg config.GatewayConfig) commands.CatalogGateway {
	return &CatalogClient{
		baseURL: cfg.CatalogBaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type productResponse struct {
	ProductID  uuid.UUID `json:"productId"`
	VariantID  *string   `json:"variantId,omitempty"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Available  int       `json:"available"`
}

func (c *CatalogClient) GetProduct(ctx context.Context, productID uuid.UUID, variantID *string) (*commands.Product, error) {
	url := fmt.Sprintf("%s/api/products/%s", c.baseURL, productID)
	if variantID != nil {
		url += "?variant=" + *variantID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build product request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Wrap(err, "failed to decode product response")
	}

	return &commands.Product{
		ProductID:  body.ProductID,
		VariantID:  body.VariantID,
		Name:       body.Name,
		PriceCents: body.PriceCents,
		Available:  body.Available,
	}, nil
}

type validateStockRequest struct {
	Items []validateStockItem `json:"items"`
}

type validateStockItem struct {
	ProductID uuid.UUID `json:"productId"`
	VariantID *string   `json:"variantId,omitempty"`
	Quantity  int       `json:"quantity"`
}

type validateStockResponse struct {
	Items []validatedItemResponse `json:"items"`
}

type validatedItemResponse struct {
	ProductID  uuid.UUID `json:"productId"`
	VariantID  *string   `json:"variantId,omitempty"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Quantity   int       `json:"quantity"`
	InStock    bool      `json:"inStock"`
	Available  int       `json:"available"`
}

func (c *CatalogClient) ValidateItems(ctx context.Context, lines []cart.Line) ([]commands.ValidatedItem, error) {
	payload := validateStockRequest{Items: make([]validateStockItem, 0, len(lines))}
	for _, line := range lines {
		payload.Items = append(payload.Items, validateStockItem{
			ProductID: line.ProductID(),
			VariantID: line.VariantID(),
			Quantity:  line.Quantity(),
		})
	}

	var body validateStockResponse
	if err := c.post(ctx, "/api/products/validate-stock", payload, &body); err != nil {
		return nil, err
	}

	items := make([]commands.ValidatedItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.ValidatedItem{
			ProductID:      item.ProductID,
			VariantID:      item.VariantID,
			Name:           item.Name,
			UnitPriceCents: item.PriceCents,
			Quantity:       item.Quantity,
			InStock:        item.InStock,
			Available:      item.Available,
		})
	}
	return items, nil
}

func (c *CatalogClient) DecrementStock(ctx context.Context, items []commands.StockDecrement) error {
	payload := validateStockRequest{Items: make([]validateStockItem, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, validateStockItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return c.post(ctx, "/api/products/decrement-stock", payload, nil)
}

func (c *CatalogClient) post(ctx context.Context, path string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal catalog request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build catalog request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.New(fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode catalog response")
	}
	return nil
}
