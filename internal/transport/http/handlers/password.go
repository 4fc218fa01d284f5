package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/credguard/internal/infra/security"
	"github.com/arklim/credguard/internal/usecase"
)

// PasswordHandler exposes the password facade over HTTP: hashing,
// verification, generation, and validation.
type PasswordHandler struct {
	verifier *usecase.VerifierService
}

func NewPasswordHandler(verifier *usecase.VerifierService) *PasswordHandler {
	return &PasswordHandler{verifier: verifier}
}

// RegisterRoutes attaches the password endpoints to the given group.
func (h *PasswordHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/hash", h.Hash)
	group.POST("/verify", h.Verify)
	group.POST("/generate", h.Generate)
	group.POST("/validate", h.Validate)
}

// Hash godoc
// @Summary Hash a password
// @Description Derives a stored hash for the plaintext at the backend's default cost.
// @Tags Password
// @Accept json
// @Produce json
// @Param request body HashRequest true "Hash request"
// @Success 200 {object} HashResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/password/hash [post]
func (h *PasswordHandler) Hash(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "password handler not fully configured"))
		return
	}

	var req HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid hash payload"))
		return
	}

	encoded, err := h.verifier.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to hash password"))
		return
	}

	c.JSON(http.StatusOK, HashResponse{Hash: encoded})
}

// Verify godoc
// @Summary Verify a password against a stored hash
// @Description Compares the plaintext with the stored hash. When no hash is supplied the service performs a dummy hash of equivalent cost before answering false, so latency does not reveal account existence.
// @Tags Password
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify request"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/password/verify [post]
func (h *PasswordHandler) Verify(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "password handler not fully configured"))
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid verify payload"))
		return
	}

	match, err := h.verifier.CheckPassword(req.Password, req.Hash)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrVerification, Status: http.StatusInternalServerError, Message: "stored hash is malformed"},
		}, http.StatusInternalServerError, "failed to verify password")
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{Match: match})
}

// Generate godoc
// @Summary Generate a random password
// @Description Returns a cryptographically random password satisfying the composition policy. Omitting length uses the policy default.
// @Tags Password
// @Accept json
// @Produce json
// @Param request body GenerateRequest false "Generate request"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/password/generate [post]
func (h *PasswordHandler) Generate(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "password handler not fully configured"))
		return
	}

	req := GenerateRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid generate payload"))
			return
		}
	}

	password, err := h.verifier.GeneratePassword(req.Length)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: security.ErrInvalidLength, Status: http.StatusBadRequest, Message: "requested length below policy minimum"},
			{Err: security.ErrGenerationExhausted, Status: http.StatusInternalServerError, Message: "password generation exhausted retry budget"},
		}, http.StatusInternalServerError, "failed to generate password")
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{Password: password, Length: len(password)})
}

// Validate godoc
// @Summary Validate a password against the policy
// @Description Checks length and character composition; invalid passwords include a human-readable reason.
// @Tags Password
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Validate request"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/password/validate [post]
func (h *PasswordHandler) Validate(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "password handler not fully configured"))
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid validate payload"))
		return
	}

	result := h.verifier.ValidatePassword(req.Password)
	c.JSON(http.StatusOK, ValidateResponse{Valid: result.Valid, Reason: result.Reason})
}

// Policy godoc
// @Summary Describe the active password policy
// @Tags Password
// @Produce json
// @Success 200 {object} PolicyResponse
// @Router /api/v1/policy [get]
func (h *PasswordHandler) Policy(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "password handler not fully configured"))
		return
	}

	policy := h.verifier.Policy()
	c.JSON(http.StatusOK, PolicyResponse{
		MinLength:          policy.MinLength,
		RequireDigit:       policy.RequireDigit,
		RequirePunctuation: policy.RequirePunctuation,
		GeneratedLength:    policy.GeneratedLength,
		MinStrengthScore:   policy.MinStrengthScore,
	})
}
