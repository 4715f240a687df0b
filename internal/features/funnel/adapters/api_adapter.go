package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"funnel-storefront/internal/core/config"
	"funnel-storefront/internal/core/httpclient"
	"funnel-storefront/internal/features/funnel/domain"
)

// FunnelAPIAdapter implements the FunnelProvider port against the funnel
// backend's REST API.
type FunnelAPIAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the funnel backend connection details.
	config config.FunnelAPIConfig
}

// NewFunnelAPIAdapter creates a new instance of FunnelAPIAdapter.
func NewFunnelAPIAdapter(cfg config.FunnelAPIConfig) *FunnelAPIAdapter {
	return &FunnelAPIAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Code   int             `json:"code"`
	Data   json.RawMessage `json:"data"`
}

// funnelData is the payload of GET /api/funnel/{id}.
type funnelData struct {
	ID                  string                  `json:"id"`
	Product             domain.Product          `json:"product"`
	Theme               string                  `json:"theme"`
	Currency            string                  `json:"currency"`
	Blocks              []domain.Block          `json:"blocks"`
	PurchaseOptions     []domain.PurchaseOption `json:"purchase_options"`
	AcceptOnlinePayment bool                    `json:"accept_online_payment"`
}

// FetchFunnel retrieves a funnel from the backend and maps it to the domain entity.
func (a *FunnelAPIAdapter) FetchFunnel(ctx context.Context, id, lang string) (*domain.Funnel, error) {
	endpoint := fmt.Sprintf("%s/api/funnel/%s?lang=%s", a.config.URL, url.PathEscape(id), url.QueryEscape(lang))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrFunnelNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var data funnelData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode funnel data: %w", err)
	}

	funnel := &domain.Funnel{
		ID:                  data.ID,
		Product:             data.Product,
		Theme:               data.Theme,
		Currency:            data.Currency,
		Blocks:              data.Blocks,
		PurchaseOptions:     data.PurchaseOptions,
		AcceptOnlinePayment: data.AcceptOnlinePayment,
	}
	if funnel.ID == "" {
		funnel.ID = id
	}
	return funnel, nil
}

// SubmitOrder relays a confirmed order to the backend.
func (a *FunnelAPIAdapter) SubmitOrder(ctx context.Context, lang string, sub *domain.OrderSubmission) (*domain.OrderResult, error) {
	endpoint := fmt.Sprintf("%s/api/funnel/submit-order?lang=%s", a.config.URL, url.QueryEscape(lang))

	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var result domain.OrderResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode order result: %w", err)
	}
	return &result, nil
}

// authorize attaches the bearer token when one is configured.
func (a *FunnelAPIAdapter) authorize(req *http.Request) {
	if a.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	}
}
