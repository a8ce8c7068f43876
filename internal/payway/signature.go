// Package payway builds signed ABA PayWay QR payment requests and submits
// them to the gateway.
package payway

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"romlerk-backend-go/internal/crypto"
)

// ReqTimeLayout is the gateway request time format (UTC).
const ReqTimeLayout = "20060102150405"

// FormatReqTime renders t as YYYYMMDDHHmmss in UTC.
func FormatReqTime(t time.Time) string {
	return t.UTC().Format(ReqTimeLayout)
}

// QRRequest carries the initiation fields after defaults have been applied.
// Empty strings and a nil Lifetime contribute nothing to the signature.
type QRRequest struct {
	ReqTime         string
	MerchantID      string
	TranID          string
	Amount          string
	Items           string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	PurchaseType    string
	PaymentOption   string
	CallbackURL     string // raw URL; encoded by BuildPayload
	ReturnDeeplink  string
	Currency        string
	CustomFields    string
	ReturnParams    string
	Payout          string
	Lifetime        *int
	QRImageTemplate string
}

// Payload is the JSON body posted to the gateway.
type Payload struct {
	ReqTime         string      `json:"req_time"`
	MerchantID      string      `json:"merchant_id"`
	TranID          string      `json:"tran_id"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Amount          json.Number `json:"amount"`
	PurchaseType    string      `json:"purchase_type"`
	PaymentOption   string      `json:"payment_option"`
	Items           string      `json:"items"`
	Currency        string      `json:"currency"`
	CallbackURL     string      `json:"callback_url"`
	ReturnDeeplink  string      `json:"return_deeplink"`
	CustomFields    string      `json:"custom_fields"`
	ReturnParams    string      `json:"return_params"`
	Payout          string      `json:"payout"`
	Lifetime        *int        `json:"lifetime"`
	QRImageTemplate string      `json:"qr_image_template"`
	Hash            string      `json:"hash"`
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// HashBase concatenates the signed fields in the order the gateway verifies them.
// encodedCallback must already be base64 encoded.
func HashBase(r QRRequest, encodedCallback string) string {
	var b strings.Builder
	for _, field := range []string{
		r.ReqTime,
		r.MerchantID,
		r.TranID,
		r.Amount,
		r.Items,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.PurchaseType,
		r.PaymentOption,
		encodedCallback,
		r.ReturnDeeplink,
		r.Currency,
		r.CustomFields,
		r.ReturnParams,
		r.Payout,
		optionalInt(r.Lifetime),
		r.QRImageTemplate,
	} {
		b.WriteString(field)
	}
	return b.String()
}

// Sign returns the base64 HMAC-SHA512 of the request's hash base.
func Sign(r QRRequest, apiKey string) (string, error) {
	return crypto.SignHMACSHA512(apiKey, HashBase(r, crypto.EncodeBase64(r.CallbackURL)))
}

// BuildPayload encodes the callback URL and signs the request.
func BuildPayload(r QRRequest, apiKey string) (Payload, error) {
	hash, err := Sign(r, apiKey)
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		ReqTime:         r.ReqTime,
		MerchantID:      r.MerchantID,
		TranID:          r.TranID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Amount:          json.Number(r.Amount),
		PurchaseType:    r.PurchaseType,
		PaymentOption:   r.PaymentOption,
		Items:           r.Items,
		Currency:        r.Currency,
		CallbackURL:     crypto.EncodeBase64(r.CallbackURL),
		ReturnDeeplink:  r.ReturnDeeplink,
		CustomFields:    r.CustomFields,
		ReturnParams:    r.ReturnParams,
		Payout:          r.Payout,
		Lifetime:        r.Lifetime,
		QRImageTemplate: r.QRImageTemplate,
		Hash:            hash,
	}, nil
}
