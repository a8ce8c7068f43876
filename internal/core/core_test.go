package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/payway"
	"romlerk-backend-go/pkg/database"
)

var fixedNow = time.Date(2024, 3, 1, 10, 4, 5, 123000000, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeGateway struct {
	payloads []payway.Payload
	result   map[string]interface{}
	err      error
}

func (g *fakeGateway) GenerateQR(_ context.Context, payload payway.Payload) (map[string]interface{}, error) {
	g.payloads = append(g.payloads, payload)
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// failingStore fails every call with a transport-style error.
type failingStore struct {
	database.DocumentStore
}

var errStoreDown = errors.New("rpc error: code = Unavailable")

func (failingStore) Get(context.Context, database.Path) (map[string]interface{}, error) {
	return nil, errStoreDown
}

func (failingStore) Set(context.Context, database.Path, map[string]interface{}, bool) error {
	return errStoreDown
}

func (failingStore) FindInGroup(context.Context, string, string, interface{}, int) ([]database.Snapshot, error) {
	return nil, errStoreDown
}

type harness struct {
	store     *database.MemoryStore
	gateway   *fakeGateway
	payments  *paymentService
	callbacks *callbackService
}

const testBaseURL = "https://api.romlerk.test"

func newHarness(store database.DocumentStore) *harness {
	mem, _ := store.(*database.MemoryStore)
	paymentsRepo, _ := db.NewPaymentRepository(store)
	owners, _ := db.NewOwnerResolver(store)
	gw := &fakeGateway{result: map[string]interface{}{
		"status": map[string]interface{}{"code": "0", "message": "Success."},
		"qrString": "000201010212",
	}}
	ps := NewPaymentService(gw, paymentsRepo, PaymentConfig{
		MerchantID:  "ec000002",
		APIKey:      "secret-key",
		CallbackURL: "https://api.romlerk.test/payment/callback",
	}, zap.NewNop()).(*paymentService)
	ps.now = fixedClock
	cs := NewCallbackService(paymentsRepo, owners, testBaseURL+"/", zap.NewNop()).(*callbackService)
	cs.now = fixedClock
	return &harness{store: mem, gateway: gw, payments: ps, callbacks: cs}
}
