package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error payload with the request ID for
// debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the request correlation ID.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	}
}

// HashRequest defines the payload for the hash endpoint.
type HashRequest struct {
	Password string `json:"password" binding:"required"`
}

// HashResponse carries the derived hash for caller-side storage.
type HashResponse struct {
	Hash string `json:"hash"`
}

// VerifyRequest defines the payload for the verify endpoint. Hash is omitted
// when the caller's account lookup found nothing; the service then burns the
// equivalent hashing cost before answering.
type VerifyRequest struct {
	Password string `json:"password" binding:"required"`
	Hash     string `json:"hash"`
}

// VerifyResponse reports whether the password matched the stored hash.
type VerifyResponse struct {
	Match bool `json:"match"`
}

// GenerateRequest defines the payload for the generate endpoint. A zero
// length requests the policy default.
type GenerateRequest struct {
	Length int `json:"length"`
}

// GenerateResponse carries a freshly generated password.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}

// ValidateRequest defines the payload for the validate endpoint.
type ValidateRequest struct {
	Password string `json:"password" binding:"required"`
}

// ValidateResponse reports the policy verdict for a candidate password.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// PolicyResponse describes the active password policy.
type PolicyResponse struct {
	MinLength          int  `json:"min_length"`
	RequireDigit       bool `json:"require_digit"`
	RequirePunctuation bool `json:"require_punctuation"`
	GeneratedLength    int  `json:"generated_length"`
	MinStrengthScore   int  `json:"min_strength_score,omitempty"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
