package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romlerk-backend-go/internal/metrics"
	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

func callback(tranID, status string) models.CallbackPayload {
	return models.CallbackPayload{TranID: models.FlexString(tranID), Status: models.FlexString(status)}
}

func userPayment(uid, tranID string) database.Path {
	return database.Collection("users").Doc(uid).Collection("payments").Doc(tranID)
}

func TestRedirectURL_StatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"0", testBaseURL + "/payment/after?state=success&tran_id=T1"},
		{"1", testBaseURL + "/payment/after?state=pending&tran_id=T1"},
		{"2", testBaseURL + "/payment/fail?tran_id=T1"},
		{"99", testBaseURL + "/payment/fail?tran_id=T1"},
	}
	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			h := newHarness(database.NewMemoryStore())
			got, err := h.callbacks.HandleCallback(context.Background(), callback("T1", tc.status))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandleCallback_RequiresTranIDAndStatus(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	for _, p := range []models.CallbackPayload{callback("", "0"), callback("T1", ""), {}} {
		_, err := h.callbacks.HandleCallback(context.Background(), p)
		require.ErrorIs(t, err, ErrInvalidRequest)
	}
	assert.Equal(t, 0, h.store.Len())
}

func TestHandleCallback_UsesSuppliedUID(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	p := callback("T1", "0")
	p.UID = "u9"
	p.Apv = "123456"

	_, err := h.callbacks.HandleCallback(context.Background(), p)
	require.NoError(t, err)

	got, err := h.store.Get(context.Background(), userPayment("u9", "T1"))
	require.NoError(t, err)
	assert.Equal(t, "0", got["status"])
	assert.Equal(t, "123456", got["apv"])
	assert.Nil(t, got["merchant_ref_no"])
	assert.Equal(t, "2024-03-01T10:04:05.123Z", got["updated_at"])
}

func TestHandleCallback_ResolvesOwnerWithoutUID(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	ctx := context.Background()
	_, err := h.payments.Initiate(ctx, initiateRequest("T2"))
	require.NoError(t, err)

	_, err = h.callbacks.HandleCallback(ctx, callback("T2", "0"))
	require.NoError(t, err)

	got, err := h.store.Get(ctx, userPayment("u1", "T2"))
	require.NoError(t, err)
	assert.Equal(t, "0", got["status"])
	assert.Equal(t, 5.0, got["amount"], "initiation fields survive the merge")

	_, err = h.store.Get(ctx, database.Collection("payments").Doc("T2"))
	assert.ErrorIs(t, err, database.ErrNotFound, "no top-level duplicate")
}

func TestHandleCallback_OrphanFallsBackToTopLevel(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	ctx := context.Background()
	before := testutil.ToFloat64(metrics.PaymentOwnerFallback)

	got, err := h.callbacks.HandleCallback(ctx, callback("T404", "2"))
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/payment/fail?tran_id=T404", got)

	rec, err := h.store.Get(ctx, database.Collection("payments").Doc("T404"))
	require.NoError(t, err)
	assert.Equal(t, "2", rec["status"])
	assert.Equal(t, 1, h.store.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PaymentOwnerFallback))
}

func TestHandleCallback_Idempotent(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	ctx := context.Background()
	_, err := h.payments.Initiate(ctx, initiateRequest("T3"))
	require.NoError(t, err)

	p := callback("T3", "0")
	p.Apv = "A1"
	p.MerchantRefNo = "M1"

	first, err := h.callbacks.HandleCallback(ctx, p)
	require.NoError(t, err)
	once, err := h.store.Get(ctx, userPayment("u1", "T3"))
	require.NoError(t, err)

	second, err := h.callbacks.HandleCallback(ctx, p)
	require.NoError(t, err)
	twice, err := h.store.Get(ctx, userPayment("u1", "T3"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, field := range []string{"status", "apv", "merchant_ref_no", "tran_id", "amount"} {
		assert.Equal(t, once[field], twice[field], field)
	}
}

func TestHandleCallback_StoreFailure(t *testing.T) {
	h := newHarness(failingStore{})
	_, err := h.callbacks.HandleCallback(context.Background(), callback("T1", "0"))
	require.ErrorIs(t, err, ErrStoreUnavailable)

	p := callback("T1", "0")
	p.UID = "u1"
	_, err = h.callbacks.HandleCallback(context.Background(), p)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestHandleCallback_RejectsUIDWithSlash(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	p := callback("T1", "0")
	p.UID = "victim/documents/D1"

	target, err := h.callbacks.HandleCallback(context.Background(), p)
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, target)
	assert.Equal(t, 0, h.store.Len())
}

func TestPollStatus_RejectsUIDWithSlash(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	_, err := h.callbacks.PollStatus(context.Background(), "T1", "victim/documents/D1")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestPollStatus(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	ctx := context.Background()

	_, err := h.callbacks.PollStatus(ctx, "nope", "u1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = h.payments.Initiate(ctx, initiateRequest("T4"))
	require.NoError(t, err)

	got, err := h.callbacks.PollStatus(ctx, "T4", "u1")
	require.NoError(t, err)
	assert.Equal(t, "1", got["status"])

	_, err = h.callbacks.PollStatus(ctx, "T4", "")
	require.ErrorIs(t, err, ErrNotFound, "without uid only the top-level record is read")
}

func TestEndToEnd_T100(t *testing.T) {
	h := newHarness(database.NewMemoryStore())
	ctx := context.Background()

	_, err := h.payments.Initiate(ctx, models.InitiatePaymentRequest{
		UID: "u1", TranID: "T100", Amount: json.Number("5.00"), Currency: "USD",
	})
	require.NoError(t, err)

	stored, err := h.store.Get(ctx, userPayment("u1", "T100"))
	require.NoError(t, err)
	assert.Equal(t, "1", stored["status"])

	redirect, err := h.callbacks.HandleCallback(ctx, callback("T100", "0"))
	require.NoError(t, err)
	assert.Contains(t, redirect, "state=success&tran_id=T100")

	polled, err := h.callbacks.PollStatus(ctx, "T100", "u1")
	require.NoError(t, err)
	assert.Equal(t, "0", polled["status"])
}
