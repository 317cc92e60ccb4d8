package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type PayPalConfig struct {
	APIBaseURL   string
	ClientID     string
	ClientSecret string
}

type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// PayPalProvider uses PayPal orders as checkout sessions: the order id is
// the session id and a captured order counts as paid.
type PayPalProvider struct {
	cfg    PayPalConfig
	client *http.Client
	tokens *tokenCache
}

func NewPayPalProvider(cfg PayPalConfig) *PayPalProvider {
	return &PayPalProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		tokens: &tokenCache{now: time.Now},
	}
}

func (p *PayPalProvider) Name() string { return "paypal" }

func (p *PayPalProvider) accessToken(ctx context.Context) (string, error) {
	return p.tokens.get(ctx, p.fetchAccessToken)
}

func (p *PayPalProvider) fetchAccessToken(ctx context.Context) (string, int, error) {
	reqBody := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/oauth2/token", p.cfg.APIBaseURL), reqBody)
	if err != nil {
		return "", 0, err
	}
	req.SetBasicAuth(p.cfg.ClientID, p.cfg.ClientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("failed to get access token, status: %s", resp.Status)
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", 0, err
	}
	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}

func (p *PayPalProvider) do(ctx context.Context, path string, payload interface{}, wantStatus int) (*PayPalOrder, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "paypal auth")
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIBaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paypal %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}

	var order PayPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, errors.Wrap(err, "decode paypal order")
	}
	return &order, nil
}

func (p *PayPalProvider) CreateSession(ctx context.Context, req CheckoutRequest) (string, error) {
	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"description": req.CourseName,
				"amount": map[string]string{
					"currency_code": req.Currency,
					"value":         fmt.Sprintf("%.2f", req.Amount),
				},
			},
		},
	}
	order, err := p.do(ctx, "/v2/checkout/orders", payload, http.StatusCreated)
	if err != nil {
		return "", err
	}
	return order.ID, nil
}

func (p *PayPalProvider) ConfirmSession(ctx context.Context, sessionID string) (bool, error) {
	order, err := p.do(ctx, fmt.Sprintf("/v2/checkout/orders/%s/capture", sessionID), nil, http.StatusCreated)
	if err != nil {
		return false, err
	}
	return order.Status == "COMPLETED", nil
}
