package models

// Gateway status codes as reported by PayWay callbacks.
const (
	PaymentStatusSuccess = "0"
	PaymentStatusPending = "1"
)

// Redirect states derived from a status code.
const (
	PaymentStateSuccess = "success"
	PaymentStatePending = "pending"
	PaymentStateFailed  = "fail"
)

// PaymentState maps a gateway status code to its redirect state. Anything
// other than success or pending is a terminal failure.
func PaymentState(status string) string {
	switch status {
	case PaymentStatusSuccess:
		return PaymentStateSuccess
	case PaymentStatusPending:
		return PaymentStatePending
	default:
		return PaymentStateFailed
	}
}

// Payment transaction field names, shared by writes and the tran_id lookup.
const (
	FieldTranID        = "tran_id"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldStatus        = "status"
	FieldApv           = "apv"
	FieldMerchantRefNo = "merchant_ref_no"
	FieldPaymentCreate = "created_at"
	FieldPaymentUpdate = "updated_at"
	FieldResponse      = "response"
)

// PendingPayment is the record written right after the gateway answered an initiation.
type PendingPayment struct {
	TranID    string
	Amount    float64
	Currency  string
	CreatedAt string
	Response  map[string]interface{}
}

// ToMap renders the record with status pending.
func (p PendingPayment) ToMap() map[string]interface{} {
	return map[string]interface{}{
		FieldTranID:        p.TranID,
		FieldAmount:        p.Amount,
		FieldCurrency:      p.Currency,
		FieldStatus:        PaymentStatusPending,
		FieldPaymentCreate: p.CreatedAt,
		FieldResponse:      p.Response,
	}
}

// PaymentOutcome is the part of a callback merged into the stored transaction.
// Apv and MerchantRefNo are stored as null when empty.
type PaymentOutcome struct {
	TranID        string
	Status        string
	Apv           string
	MerchantRefNo string
	UpdatedAt     string
}

// ToMap renders the merge fields.
func (o PaymentOutcome) ToMap() map[string]interface{} {
	return map[string]interface{}{
		FieldTranID:        o.TranID,
		FieldStatus:        o.Status,
		FieldApv:           emptyToNil(o.Apv),
		FieldMerchantRefNo: emptyToNil(o.MerchantRefNo),
		FieldPaymentUpdate: o.UpdatedAt,
	}
}

func emptyToNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
