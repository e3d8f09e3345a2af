package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"theroom/internal/middleware"
	"theroom/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates a hotel account and sends the verification link.
// @Summary		Register hotel
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		400,409	{object}	map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), RegisterInput{
		Name:         req.Name,
		AdminEmail:   req.AdminEmail,
		Password:     req.Password,
		CustomDomain: req.CustomDomain,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	message := "Registration complete. Please check your inbox to verify your email."
	if !result.VerificationSent {
		message = "Registration complete, but the verification email could not be sent. Please request a new link."
	}
	response.Success(c, http.StatusCreated, gin.H{
		"hotel":            result.Tenant.View(),
		"verificationSent": result.VerificationSent,
		"message":          message,
	})
}

// @Summary		Verify email
// @Tags		Auth
// @Produce		json
// @Param		token	query	string	true	"verification token"
// @Router		/auth/verify [get]
func (h *Handler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "token is required")
		return
	}

	result, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}

	message := "Your email has been verified. You can now log in."
	if result.AlreadyVerified {
		message = "Your account is already verified. You can log in."
	}
	response.Success(c, http.StatusOK, gin.H{
		"verified":        true,
		"alreadyVerified": result.AlreadyVerified,
		"message":         message,
	})
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ResendVerification(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "accepted"})
}

// @Summary		Login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.AdminEmail, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"hotel": result.Tenant.View(),
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset link sent to your email."})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Your password has been updated."})
}

func (h *Handler) Me(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	t, err := h.service.Get(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": t.View()})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateProfile(c.Request.Context(), hotelID, ProfilePatch{
		Name:         req.Name,
		CustomDomain: req.CustomDomain,
		Details:      req.Details,
		Facilities:   req.Facilities,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": t.View()})
}

func (h *Handler) UpdateSiteSettings(c *gin.Context) {
	hotelID, ok := middleware.RequireHotel(c)
	if !ok {
		return
	}
	var req UpdateSiteSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "siteSettings object is required")
		return
	}

	t, err := h.service.UpdateSiteSettings(c.Request.Context(), hotelID, *req.SiteSettings)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"siteSettings": t.View().SiteSettings})
}
