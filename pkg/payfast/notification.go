package payfast

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Payment statuses reported by the gateway in a notification.
const (
	StatusComplete  = "COMPLETE"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
	StatusPending   = "PENDING"
)

const (
	FieldPaymentID     = "m_payment_id"
	FieldGatewayID     = "pf_payment_id"
	FieldPaymentStatus = "payment_status"
	FieldAmountGross   = "amount_gross"
	FieldAmountFee     = "amount_fee"
	FieldAmountNet     = "amount_net"
	FieldEmailAddress  = "email_address"
	FieldMerchantID    = "merchant_id"
)

var ErrMissingField = errors.New("missing required field")

var requiredNotificationFields = []string{FieldGatewayID, FieldPaymentID, FieldPaymentStatus, FieldAmountGross}

// Notification is the typed view of an inbound payment notification.
type Notification struct {
	PaymentID     string
	GatewayID     string
	PaymentStatus string
	AmountGross   decimal.Decimal
	AmountFee     decimal.Decimal
	AmountNet     decimal.Decimal
	EmailAddress  string
	MerchantID    string
	Fields        map[string]string
}

// FieldsFromForm flattens a parsed form into a single value per key.
func FieldsFromForm(values url.Values) map[string]string {
	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}
	return fields
}

func ParseNotification(fields map[string]string) (*Notification, error) {

	for _, name := range requiredNotificationFields {
		if strings.TrimSpace(fields[name]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	gross, err := decimal.NewFromString(strings.TrimSpace(fields[FieldAmountGross]))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", FieldAmountGross, fields[FieldAmountGross], err)
	}

	n := &Notification{
		PaymentID:     strings.TrimSpace(fields[FieldPaymentID]),
		GatewayID:     strings.TrimSpace(fields[FieldGatewayID]),
		PaymentStatus: strings.ToUpper(strings.TrimSpace(fields[FieldPaymentStatus])),
		AmountGross:   gross,
		EmailAddress:  fields[FieldEmailAddress],
		MerchantID:    fields[FieldMerchantID],
		Fields:        fields,
	}

	// Fee and net are informational, unparsable values are left at zero.
	n.AmountFee, _ = decimal.NewFromString(strings.TrimSpace(fields[FieldAmountFee]))
	n.AmountNet, _ = decimal.NewFromString(strings.TrimSpace(fields[FieldAmountNet]))

	return n, nil
}
