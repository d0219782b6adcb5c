// Package gateway wraps the SSLCommerz hosted-payment session API.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	sandboxAPIBase = "https://sandbox.sslcommerz.com"
	liveAPIBase    = "https://securepay.sslcommerz.com"

	sessionPath = "/gwprocess/v4/api.php"
)

// TransactionRequest carries the fields SSLCommerz needs to open a
// payment session. Field names follow the v4 form parameters.
type TransactionRequest struct {
	TotalAmount float64
	Currency    string
	TranID      string
	SuccessURL  string
	FailURL     string
	CancelURL   string
	IPNURL      string

	CustomerName     string
	CustomerEmail    string
	CustomerAddress  string
	CustomerCity     string
	CustomerState    string
	CustomerPostcode string
	CustomerCountry  string
	CustomerPhone    string

	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
}

// TransactionResponse is the subset of the session response we act on.
// Status is "SUCCESS" or "FAILED"; GatewayPageURL is where the user's
// browser must be sent to complete payment.
type TransactionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// Client talks to one SSLCommerz store, sandbox or live.
type Client struct {
	StoreID       string
	StorePassword string
	// APIBase is overridable in tests; NewClient sets it from the live
	// flag.
	APIBase string

	httpc *http.Client
}

func NewClient(storeID, storePassword string, live bool) *Client {
	base := sandboxAPIBase
	if live {
		base = liveAPIBase
	}
	return &Client{
		StoreID:       storeID,
		StorePassword: storePassword,
		APIBase:       base,
		httpc:         &http.Client{Timeout: 30 * time.Second},
	}
}

// InitiateTransaction opens a gateway session for one payment attempt.
// The caller owns persisting the booking; this call has no local side
// effects.
func (c *Client) InitiateTransaction(ctx context.Context, r TransactionRequest) (*TransactionResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.StoreID)
	form.Set("store_passwd", c.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", r.TotalAmount))
	form.Set("currency", r.Currency)
	form.Set("tran_id", r.TranID)
	form.Set("success_url", r.SuccessURL)
	form.Set("fail_url", r.FailURL)
	form.Set("cancel_url", r.CancelURL)
	form.Set("ipn_url", r.IPNURL)
	form.Set("shipping_method", r.ShippingMethod)
	form.Set("product_name", r.ProductName)
	form.Set("product_category", r.ProductCategory)
	form.Set("product_profile", r.ProductProfile)
	form.Set("cus_name", r.CustomerName)
	form.Set("cus_email", r.CustomerEmail)
	form.Set("cus_add1", r.CustomerAddress)
	form.Set("cus_add2", r.CustomerAddress)
	form.Set("cus_city", r.CustomerCity)
	form.Set("cus_state", r.CustomerState)
	form.Set("cus_postcode", r.CustomerPostcode)
	form.Set("cus_country", r.CustomerCountry)
	form.Set("cus_phone", r.CustomerPhone)
	form.Set("ship_name", r.CustomerName)
	form.Set("ship_add1", r.CustomerAddress)
	form.Set("ship_add2", r.CustomerAddress)
	form.Set("ship_city", r.CustomerCity)
	form.Set("ship_state", r.CustomerState)
	form.Set("ship_postcode", r.CustomerPostcode)
	form.Set("ship_country", r.CustomerCountry)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBase+sessionPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sslcommerz session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sslcommerz session request: unexpected status %d", resp.StatusCode)
	}

	var out TransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sslcommerz session response: %w", err)
	}
	return &out, nil
}
