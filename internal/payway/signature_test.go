package payway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRequest() QRRequest {
	return QRRequest{
		ReqTime:         "20250102030405",
		MerchantID:      "ec000001",
		TranID:          "T100",
		Amount:          "5.00",
		FirstName:       "Sok",
		LastName:        "Dara",
		Email:           "dara@example.com",
		Phone:           "012345678",
		PurchaseType:    "purchase",
		PaymentOption:   "abapay_khqr",
		CallbackURL:     "https://api.example.com/payment/callback",
		Currency:        "USD",
		Lifetime:        intPtr(6),
		QRImageTemplate: "template3_color",
	}
}

func reference(key, base string) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestFormatReqTime(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	ts := time.Date(2025, 1, 2, 10, 4, 5, 999, loc)
	assert.Equal(t, "20250102030405", FormatReqTime(ts))
}

func TestHashBase_FieldOrder(t *testing.T) {
	r := sampleRequest()
	r.Items = "W10="
	r.ReturnDeeplink = "romlerk://pay"
	r.CustomFields = "CF"
	r.ReturnParams = "RP"
	r.Payout = "PO"

	got := HashBase(r, "CB64")
	want := "20250102030405" + "ec000001" + "T100" + "5.00" + "W10=" + "Sok" + "Dara" +
		"dara@example.com" + "012345678" + "purchase" + "abapay_khqr" + "CB64" + "romlerk://pay" +
		"USD" + "CF" + "RP" + "PO" + "6" + "template3_color"
	assert.Equal(t, want, got)
}

func TestHashBase_AbsentFieldsContributeNothing(t *testing.T) {
	r := QRRequest{TranID: "T1", Amount: "1"}
	got := HashBase(r, "")
	assert.Equal(t, "T11", got)
	assert.NotContains(t, got, "null")
	assert.NotContains(t, got, "undefined")
	assert.NotContains(t, got, "<nil>")
}

func TestSign_MatchesReferenceAndIsDeterministic(t *testing.T) {
	r := sampleRequest()
	encoded := base64.StdEncoding.EncodeToString([]byte(r.CallbackURL))

	first, err := Sign(r, "api-secret")
	require.NoError(t, err)
	second, err := Sign(r, "api-secret")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, reference("api-secret", HashBase(r, encoded)), first)
}

func TestSign_UsesEncodedCallbackNotRawURL(t *testing.T) {
	r := sampleRequest()
	got, err := Sign(r, "k")
	require.NoError(t, err)
	assert.NotEqual(t, reference("k", HashBase(r, r.CallbackURL)), got)
}

func TestSign_EmptyKey(t *testing.T) {
	_, err := Sign(sampleRequest(), "")
	require.Error(t, err)
}

func TestBuildPayload(t *testing.T) {
	r := sampleRequest()
	p, err := BuildPayload(r, "api-secret")
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(r.CallbackURL)), p.CallbackURL)
	assert.NotContains(t, p.CallbackURL, "https://")
	want, err := Sign(r, "api-secret")
	require.NoError(t, err)
	assert.Equal(t, want, p.Hash)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, `"amount":5.00`)
	assert.Contains(t, body, `"lifetime":6`)
	assert.Contains(t, body, `"hash":"`+p.Hash+`"`)
	assert.False(t, strings.Contains(body, r.CallbackURL))
}

func TestBuildPayload_NilLifetimeIsNull(t *testing.T) {
	r := sampleRequest()
	r.Lifetime = nil
	p, err := BuildPayload(r, "k")
	require.NoError(t, err)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lifetime":null`)
	assert.NotContains(t, HashBase(r, p.CallbackURL), "null")
}
