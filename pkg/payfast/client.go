package payfast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	liveHost    = "https://www.payfast.co.za"
	sandboxHost = "https://sandbox.payfast.co.za"

	processPath  = "/eng/process"
	validatePath = "/eng/query/validate"
)

// Gateway field length limits.
const (
	MaxItemNameLength        = 100
	MaxItemDescriptionLength = 255
	MaxPaymentIDLength       = 100
	MaxNameLength            = 100
	MaxEmailLength           = 100
)

var ErrNotValid = errors.New("gateway did not confirm notification")

type Client interface {
	ProcessURL() string
	BuildPaymentRequest(req *PaymentRequest) (*PaymentRedirect, error)
	VerifySignature(fields map[string]string) bool
	ValidateNotification(ctx context.Context, fields map[string]string) error
}

type Config struct {
	MerchantID  string
	MerchantKey string
	Passphrase  string
	Sandbox     bool
	// BaseURL overrides the live/sandbox host, used in tests.
	BaseURL string
}

// PaymentRequest is everything needed for an outbound payment redirect.
type PaymentRequest struct {
	ReturnURL       string
	CancelURL       string
	NotifyURL       string
	FirstName       string
	EmailAddress    string
	PaymentID       string
	Amount          decimal.Decimal
	ItemName        string
	ItemDescription string
	OrderReference  string
}

type PaymentRedirect struct {
	URL    string            `json:"paymentUrl"`
	Fields map[string]string `json:"paymentFields"`
}

type client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) Client {

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = liveHost
		if cfg.Sandbox {
			baseURL = sandboxHost
		}
	}

	return &client{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *client) ProcessURL() string {
	return c.baseURL + processPath
}

func (c *client) BuildPaymentRequest(req *PaymentRequest) (*PaymentRedirect, error) {

	if req.PaymentID == "" {
		return nil, errors.New("payment id is required")
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", req.Amount.StringFixed(2))
	}

	fields := map[string]string{
		"merchant_id":      c.cfg.MerchantID,
		"merchant_key":     c.cfg.MerchantKey,
		"return_url":       req.ReturnURL,
		"cancel_url":       req.CancelURL,
		"notify_url":       req.NotifyURL,
		"name_first":       Truncate(req.FirstName, MaxNameLength),
		"email_address":    Truncate(req.EmailAddress, MaxEmailLength),
		"m_payment_id":     Truncate(req.PaymentID, MaxPaymentIDLength),
		"amount":           req.Amount.StringFixed(2),
		"item_name":        Truncate(req.ItemName, MaxItemNameLength),
		"item_description": Truncate(req.ItemDescription, MaxItemDescriptionLength),
		"custom_str1":      req.OrderReference,
	}

	for key, value := range fields {
		if strings.TrimSpace(value) == "" {
			delete(fields, key)
		}
	}

	fields[SignatureField] = Sign(fields, c.cfg.Passphrase)

	return &PaymentRedirect{URL: c.ProcessURL(), Fields: fields}, nil
}

func (c *client) VerifySignature(fields map[string]string) bool {
	return Verify(fields, c.cfg.Passphrase)
}

// ValidateNotification posts the received fields back to the gateway, which
// answers VALID only for notifications it actually sent.
func (c *client) ValidateNotification(ctx context.Context, fields map[string]string) error {

	form := url.Values{}
	for key, value := range fields {
		if key == SignatureField {
			continue
		}
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+validatePath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("failed to read validation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation endpoint returned status %d", resp.StatusCode)
	}

	if strings.TrimSpace(string(body)) != "VALID" {
		return ErrNotValid
	}

	return nil
}

// Truncate shortens s to at most limit runes.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
