package core

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/metrics"
	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/internal/payway"
)

// Initiation defaults applied to fields the caller left empty.
const (
	DefaultCurrency        = "USD"
	DefaultPurchaseType    = "purchase"
	DefaultPaymentOption   = "abapay_khqr"
	DefaultLifetime        = 6
	DefaultQRImageTemplate = "template3_color"
)

// Gateway submits signed QR requests.
type Gateway interface {
	GenerateQR(ctx context.Context, payload payway.Payload) (map[string]interface{}, error)
}

// PaymentConfig carries the merchant credentials from configuration.
type PaymentConfig struct {
	MerchantID  string
	APIKey      string
	CallbackURL string
}

type paymentService struct {
	gateway  Gateway
	payments db.PaymentRepository
	cfg      PaymentConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(gateway Gateway, payments db.PaymentRepository, cfg PaymentConfig, logger *zap.Logger) PaymentService {
	return &paymentService{gateway: gateway, payments: payments, cfg: cfg, logger: logger, now: time.Now}
}

// EnsureSameUser rejects a uid that names someone other than the token subject.
func EnsureSameUser(subject, uid string) error {
	if uid != "" && uid != subject {
		return forbidden("uid does not match the authenticated user")
	}
	return nil
}

func validTranID(tranID string) bool {
	return !strings.Contains(tranID, "/")
}

// validUID rejects uids that would add segments to a document path.
func validUID(uid string) bool {
	return !strings.Contains(uid, "/")
}

func (s *paymentService) Initiate(ctx context.Context, req models.InitiatePaymentRequest) (map[string]interface{}, error) {
	result, err := s.initiate(ctx, req)
	metrics.PaymentsInitiated.WithLabelValues(initiationResult(err)).Inc()
	return result, err
}

func (s *paymentService) initiate(ctx context.Context, req models.InitiatePaymentRequest) (map[string]interface{}, error) {
	if req.UID == "" {
		return nil, invalid("Missing user ID (uid)")
	}
	if !validUID(req.UID) {
		return nil, invalid("uid must not contain '/'")
	}
	now := s.now()
	applyDefaults(&req, now, s.cfg.CallbackURL)
	if s.cfg.MerchantID == "" || req.TranID == "" || req.Amount == "" || req.Currency == "" || req.PaymentOption == "" {
		return nil, invalid("Missing required parameters")
	}
	if !validTranID(req.TranID) {
		return nil, invalid("tran_id must not contain '/'")
	}
	amount, err := req.Amount.Float64()
	if err != nil || amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, invalid("amount must be a positive number")
	}

	payload, err := payway.BuildPayload(payway.QRRequest{
		ReqTime:         req.ReqTime,
		MerchantID:      s.cfg.MerchantID,
		TranID:          req.TranID,
		Amount:          req.Amount.String(),
		Items:           req.Items.String(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		PurchaseType:    req.PurchaseType,
		PaymentOption:   req.PaymentOption,
		CallbackURL:     req.CallbackURL,
		ReturnDeeplink:  req.ReturnDeeplink,
		Currency:        req.Currency,
		CustomFields:    req.CustomFields.String(),
		ReturnParams:    req.ReturnParams.String(),
		Payout:          req.Payout.String(),
		Lifetime:        req.Lifetime,
		QRImageTemplate: req.QRImageTemplate,
	}, s.cfg.APIKey)
	if err != nil {
		return nil, &Error{Kind: ErrGatewayUnavailable, Message: "Failed to generate payment QR", Details: err.Error(), Err: err}
	}

	s.logger.Info("Generating PayWay QR", zap.String("uid", req.UID), zap.String("tran_id", req.TranID), zap.String("req_time", payload.ReqTime))
	result, err := s.gateway.GenerateQR(ctx, payload)
	if err != nil {
		return nil, &Error{Kind: ErrGatewayUnavailable, Message: "Failed to generate payment QR", Details: gatewayDetails(err), Err: err}
	}

	pending := models.PendingPayment{
		TranID:    req.TranID,
		Amount:    amount,
		Currency:  req.Currency,
		CreatedAt: models.Timestamp(now),
		Response:  result,
	}
	if err := s.payments.SavePending(ctx, req.UID, pending); err != nil {
		// The gateway already issued the QR; nothing to roll back there.
		s.logger.Error("Payment QR issued but not recorded", zap.String("uid", req.UID), zap.String("tran_id", req.TranID), zap.Error(err))
		return nil, storeFailure("Failed to save payment", err)
	}
	s.logger.Info("Saved pending payment", zap.String("uid", req.UID), zap.String("tran_id", req.TranID))
	return result, nil
}

// applyDefaults fills the optional fields the caller left empty. The request
// time falls back to now and the callback URL to the configured one.
func applyDefaults(req *models.InitiatePaymentRequest, now time.Time, callbackURL string) {
	req.ReqTime = strings.TrimSpace(req.ReqTime)
	if req.ReqTime == "" {
		req.ReqTime = payway.FormatReqTime(now)
	}
	req.CallbackURL = strings.TrimSpace(req.CallbackURL)
	if req.CallbackURL == "" {
		req.CallbackURL = callbackURL
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	if req.PurchaseType == "" {
		req.PurchaseType = DefaultPurchaseType
	}
	if req.PaymentOption == "" {
		req.PaymentOption = DefaultPaymentOption
	}
	if req.Lifetime == nil {
		lifetime := DefaultLifetime
		req.Lifetime = &lifetime
	}
	if req.QRImageTemplate == "" {
		req.QRImageTemplate = DefaultQRImageTemplate
	}
}

// gatewayDetails prefers the upstream body, decoded when it is JSON.
func gatewayDetails(err error) interface{} {
	var gwErr *payway.GatewayError
	if errors.As(err, &gwErr) && gwErr.Body != "" {
		var body interface{}
		if json.Unmarshal([]byte(gwErr.Body), &body) == nil {
			return body
		}
		return gwErr.Body
	}
	return err.Error()
}

func initiationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInvalidRequest):
		return metrics.ResultInvalid
	case errors.Is(err, ErrGatewayUnavailable):
		return metrics.ResultGatewayFail
	default:
		return metrics.ResultStoreFail
	}
}
