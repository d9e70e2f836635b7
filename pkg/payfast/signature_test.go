package payfast_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	"github.com/stretchr/testify/assert"
)

const testPassphrase = "jt7NOE43FZPn"

func sampleFields() map[string]string {
	return map[string]string{
		"merchant_id":  "10000100",
		"m_payment_id": "order-1",
		"amount":       "344.99",
		"item_name":    "Graduation Gown",
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Space becomes plus", input: "Graduation Gown", expected: "Graduation+Gown"},
		{name: "Tilde is percent-encoded", input: "a~b", expected: "a%7Eb"},
		{name: "Reserved characters upper-case hex", input: "a/b?c=d&e", expected: "a%2Fb%3Fc%3Dd%26e"},
		{name: "Unreserved characters untouched", input: "abc-_.123", expected: "abc-_.123"},
		{name: "URL value", input: "https://shop.example.com/ok", expected: "https%3A%2F%2Fshop.example.com%2Fok"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, payfast.Encode(tc.input))
		})
	}
}

func TestParamString(t *testing.T) {
	t.Run("Sorted keys, encoded values, passphrase last", func(t *testing.T) {
		got := payfast.ParamString(sampleFields(), testPassphrase)
		assert.Equal(t, "amount=344.99&item_name=Graduation+Gown&m_payment_id=order-1&merchant_id=10000100&passphrase=jt7NOE43FZPn", got)
	})

	t.Run("No passphrase leaves no trailing separator", func(t *testing.T) {
		got := payfast.ParamString(sampleFields(), "")
		assert.Equal(t, "amount=344.99&item_name=Graduation+Gown&m_payment_id=order-1&merchant_id=10000100", got)
	})

	t.Run("Signature and blank values are excluded", func(t *testing.T) {
		fields := sampleFields()
		fields["signature"] = "deadbeef"
		fields["name_last"] = "   "
		fields["custom_str1"] = ""

		got := payfast.ParamString(fields, "")
		assert.NotContains(t, got, "signature")
		assert.NotContains(t, got, "name_last")
		assert.NotContains(t, got, "custom_str1")
	})

	t.Run("Values are trimmed", func(t *testing.T) {
		got := payfast.ParamString(map[string]string{"amount": " 10.00 "}, "")
		assert.Equal(t, "amount=10.00", got)
	})

	t.Run("Only passphrase", func(t *testing.T) {
		assert.Equal(t, "passphrase=secret+phrase", payfast.ParamString(map[string]string{}, "secret phrase"))
	})
}

func TestSign(t *testing.T) {
	t.Run("Known digest with passphrase", func(t *testing.T) {
		assert.Equal(t, "ae05f3f313de7b30890a227f9ba4931c", payfast.Sign(sampleFields(), testPassphrase))
	})

	t.Run("Known digest without passphrase", func(t *testing.T) {
		assert.Equal(t, "776c04b2429ada40e01f0cd0a8025e67", payfast.Sign(sampleFields(), ""))
	})

	t.Run("Existing signature field does not affect digest", func(t *testing.T) {
		fields := sampleFields()
		fields["signature"] = "anything"
		assert.Equal(t, payfast.Sign(sampleFields(), testPassphrase), payfast.Sign(fields, testPassphrase))
	})
}

func TestVerify(t *testing.T) {
	signed := func() map[string]string {
		fields := sampleFields()
		fields["signature"] = payfast.Sign(fields, testPassphrase)
		return fields
	}

	t.Run("Success - Round trip", func(t *testing.T) {
		assert.True(t, payfast.Verify(signed(), testPassphrase))
	})

	t.Run("Success - Upper-case signature accepted", func(t *testing.T) {
		fields := signed()
		fields["signature"] = "AE05F3F313DE7B30890A227F9BA4931C"
		assert.True(t, payfast.Verify(fields, testPassphrase))
	})

	t.Run("Failure - Any single field changed", func(t *testing.T) {
		for key := range sampleFields() {
			fields := signed()
			fields[key] = fields[key] + "x"
			assert.False(t, payfast.Verify(fields, testPassphrase), "changing %s must break the signature", key)
		}
	})

	t.Run("Failure - Field added", func(t *testing.T) {
		fields := signed()
		fields["amount_fee"] = "-1.00"
		assert.False(t, payfast.Verify(fields, testPassphrase))
	})

	t.Run("Failure - Different passphrase", func(t *testing.T) {
		assert.False(t, payfast.Verify(signed(), "other-secret"))
	})

	t.Run("Failure - Missing signature", func(t *testing.T) {
		assert.False(t, payfast.Verify(sampleFields(), testPassphrase))
	})
}
