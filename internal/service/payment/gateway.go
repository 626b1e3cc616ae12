package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"handypro/internal/config"
)

// ErrGateway covers transport failures and unexpected response shapes
// from the payment provider.
var ErrGateway = errors.New("payment gateway request failed")

type GatewayPayment struct {
	PaymentID string
	PayURL    string
}

// Gateway is the Flouci-style payment provider contract.
type Gateway interface {
	GeneratePayment(ctx context.Context, amountMillimes int64, trackingID, successLink, failLink string) (*GatewayPayment, error)
	VerifyPayment(ctx context.Context, paymentID string) (bool, error)
}

type flouciGateway struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewFlouciGateway(cfg *config.Config) Gateway {
	return &flouciGateway{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
	}
}

type generatePaymentRequest struct {
	AppToken            string `json:"app_token"`
	AppSecret           string `json:"app_secret"`
	Amount              string `json:"amount"`
	AcceptCard          string `json:"accept_card"`
	SessionTimeoutSecs  string `json:"session_timeout_secs"`
	SuccessLink         string `json:"success_link"`
	FailLink            string `json:"fail_link"`
	DeveloperTrackingID string `json:"developer_tracking_id"`
}

type generatePaymentResponse struct {
	Result struct {
		Success   bool   `json:"success"`
		PaymentID string `json:"payment_id"`
		Link      string `json:"link"`
	} `json:"result"`
}

func (g *flouciGateway) GeneratePayment(ctx context.Context, amountMillimes int64, trackingID, successLink, failLink string) (*GatewayPayment, error) {
	payload := generatePaymentRequest{
		AppToken:            g.cfg.FlouciAppToken,
		AppSecret:           g.cfg.FlouciAppSecret,
		Amount:              strconv.FormatInt(amountMillimes, 10),
		AcceptCard:          "true",
		SessionTimeoutSecs:  "1200",
		SuccessLink:         successLink,
		FailLink:            failLink,
		DeveloperTrackingID: trackingID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.FlouciBaseURL+"/generate_payment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}

	var result generatePaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if result.Result.PaymentID == "" {
		return nil, fmt.Errorf("%w: missing payment id", ErrGateway)
	}

	return &GatewayPayment{
		PaymentID: result.Result.PaymentID,
		PayURL:    result.Result.Link,
	}, nil
}

type verifyPaymentResponse struct {
	Success bool `json:"success"`
}

func (g *flouciGateway) VerifyPayment(ctx context.Context, paymentID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.FlouciBaseURL+"/verify_payment/"+paymentID, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apppublic", g.cfg.FlouciAppToken)
	req.Header.Set("appsecret", g.cfg.FlouciAppSecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}

	var result verifyPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return result.Success, nil
}
