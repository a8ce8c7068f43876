package api

import "romlerk-backend-go/internal/models"

// ErrorResponse is the error envelope.
type ErrorResponse = models.ErrorResponse

// SuccessResponse is returned by create and update routes.
type SuccessResponse struct {
	Message string      `json:"message"`
	ID      string      `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PaymentResponse wraps the gateway answer to an initiation.
type PaymentResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PaymentStatusResponse answers a status poll.
type PaymentStatusResponse struct {
	Success bool        `json:"success"`
	TranID  string      `json:"tran_id"`
	Data    interface{} `json:"data"`
}
