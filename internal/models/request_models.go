package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UpdateNameRequest is the body of PATCH /users/profile.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// UpdateSlotsRequest is the body of PATCH /users/slots. Nil fields are left unchanged.
type UpdateSlotsRequest struct {
	UsedSlots *int `json:"usedSlots,omitempty"`
	MaxSlots  *int `json:"maxSlots,omitempty"`
}

// ProfileRequest is the body of POST /profiles and PATCH /profiles/:id.
type ProfileRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// InitiatePaymentRequest is the body of POST /payment. Optional fields left
// empty fall back to server defaults.
type InitiatePaymentRequest struct {
	UID             string      `json:"uid"`
	TranID          string      `json:"tran_id"`
	Amount          json.Number `json:"amount"`
	ReqTime         string      `json:"req_time,omitempty"`
	CallbackURL     string      `json:"callback_url,omitempty"`
	Items           FreeForm    `json:"items,omitempty"`
	FirstName       string      `json:"first_name,omitempty"`
	LastName        string      `json:"last_name,omitempty"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Currency        string      `json:"currency,omitempty"`
	PurchaseType    string      `json:"purchase_type,omitempty"`
	PaymentOption   string      `json:"payment_option,omitempty"`
	ReturnDeeplink  string      `json:"return_deeplink,omitempty"`
	CustomFields    FreeForm    `json:"custom_fields,omitempty"`
	ReturnParams    FreeForm    `json:"return_params,omitempty"`
	Payout          FreeForm    `json:"payout,omitempty"`
	Lifetime        *int        `json:"lifetime,omitempty"`
	QRImageTemplate string      `json:"qr_image_template,omitempty"`
}

// CallbackPayload is what the gateway posts to the callback endpoint.
type CallbackPayload struct {
	TranID        FlexString `json:"tran_id" form:"tran_id"`
	Status        FlexString `json:"status" form:"status"`
	Apv           FlexString `json:"apv" form:"apv"`
	MerchantRefNo FlexString `json:"merchant_ref_no" form:"merchant_ref_no"`
	UID           FlexString `json:"uid" form:"uid"`
}

// FlexString decodes a JSON string or number into its textual form. The
// gateway sends status codes as either.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

// UnmarshalParam lets gin's form binding fill a FlexString.
func (f *FlexString) UnmarshalParam(param string) error {
	*f = FlexString(param)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// FreeForm accepts any JSON value for a gateway pass-through field. Strings
// keep their text; arrays, objects, numbers and booleans keep their compact
// JSON encoding; null is empty.
type FreeForm string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FreeForm) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FreeForm(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*f = FreeForm(buf.String())
	return nil
}

func (f FreeForm) String() string {
	return string(f)
}
