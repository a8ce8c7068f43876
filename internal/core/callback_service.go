package core

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/metrics"
	"romlerk-backend-go/internal/models"
)

type callbackService struct {
	payments db.PaymentRepository
	owners   db.OwnerResolver
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewCallbackService creates a new CallbackService instance. baseURL prefixes
// the redirect targets handed back to the gateway.
func NewCallbackService(payments db.PaymentRepository, owners db.OwnerResolver, baseURL string, logger *zap.Logger) CallbackService {
	return &callbackService{
		payments: payments,
		owners:   owners,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		now:      time.Now,
	}
}

// RedirectURL builds the post-payment target for a redirect state.
func RedirectURL(baseURL, state, tranID string) string {
	if state == models.PaymentStateFailed {
		return baseURL + "/payment/fail?tran_id=" + url.QueryEscape(tranID)
	}
	return baseURL + "/payment/after?state=" + state + "&tran_id=" + url.QueryEscape(tranID)
}

func (s *callbackService) HandleCallback(ctx context.Context, payload models.CallbackPayload) (string, error) {
	tranID := strings.TrimSpace(payload.TranID.String())
	status := strings.TrimSpace(payload.Status.String())
	if tranID == "" || status == "" {
		return "", invalid("Missing required fields (tran_id or status)")
	}
	if !validTranID(tranID) {
		return "", invalid("tran_id must not contain '/'")
	}

	uid := strings.TrimSpace(payload.UID.String())
	if !validUID(uid) {
		return "", invalid("uid must not contain '/'")
	}
	if uid == "" {
		owner, found, err := s.owners.ResolveOwner(ctx, tranID)
		if err != nil {
			return "", storeFailure("Internal server error while handling callback", err)
		}
		if found {
			uid = owner
			s.logger.Info("Resolved payment owner", zap.String("tran_id", tranID), zap.String("uid", uid))
		} else {
			metrics.PaymentOwnerFallback.Inc()
			s.logger.Warn("No owner found for payment, writing top-level record", zap.String("tran_id", tranID))
		}
	}

	outcome := models.PaymentOutcome{
		TranID:        tranID,
		Status:        status,
		Apv:           payload.Apv.String(),
		MerchantRefNo: payload.MerchantRefNo.String(),
		UpdatedAt:     models.Timestamp(s.now()),
	}
	if err := s.payments.MergeOutcome(ctx, uid, outcome); err != nil {
		return "", storeFailure("Internal server error while handling callback", err)
	}

	state := models.PaymentState(status)
	metrics.PaymentCallbacks.WithLabelValues(state).Inc()
	s.logger.Info("Payment callback reconciled",
		zap.String("tran_id", tranID),
		zap.String("status", status),
		zap.String("state", state),
		zap.String("uid", uid),
	)
	return RedirectURL(s.baseURL, state, tranID), nil
}

func (s *callbackService) PollStatus(ctx context.Context, tranID, uid string) (map[string]interface{}, error) {
	if tranID == "" || !validTranID(tranID) {
		return nil, invalid("Missing or invalid tran_id")
	}
	if !validUID(uid) {
		return nil, invalid("uid must not contain '/'")
	}
	data, err := s.payments.Get(ctx, uid, tranID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("Payment not found", zap.String("tran_id", tranID), zap.String("uid", uid))
			return nil, notFound("Payment not found", err)
		}
		return nil, storeFailure("Failed to fetch payment status", err)
	}
	return data, nil
}
