package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/audit"
	"github.com/healthify-app/healthify-api/internal/config"
	"github.com/healthify-app/healthify-api/internal/dto"
	"github.com/healthify-app/healthify-api/internal/httperr"
	"github.com/healthify-app/healthify-api/internal/mailer"
	"github.com/healthify-app/healthify-api/internal/middleware"
	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/otp"
	"github.com/healthify-app/healthify-api/internal/ratelimit"
	"github.com/healthify-app/healthify-api/internal/store"
	"github.com/healthify-app/healthify-api/internal/token"
)

type AuthHandler struct {
	users   *store.UserStore
	tokens  *token.Issuer
	mail    mailer.Mailer
	limiter *ratelimit.Limiter
	audit   *audit.Dispatcher
	config  *config.Config
}

func NewAuthHandler(
	users *store.UserStore,
	tokens *token.Issuer,
	mail mailer.Mailer,
	limiter *ratelimit.Limiter,
	auditor *audit.Dispatcher,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		users:   users,
		tokens:  tokens,
		mail:    mail,
		limiter: limiter,
		audit:   auditor,
		config:  cfg,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type AdminLoginRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"secret" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --------- Handlers ---------

// Register creates the account unverified and emails the OTP that
// completes registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := store.NormalizeEmail(req.Email)

	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		httperr.BadRequest(c, "already_registered", "User already registered. Please log in.")
		return
	}

	code, err := otp.Generate()
	if err != nil {
		writeError(c, err)
		return
	}
	expires := time.Now().Add(otp.TTL)

	user := models.User{
		Email:      email,
		Name:       req.Name,
		Role:       models.RolePatient,
		Verified:   false,
		OTP:        code,
		OTPExpires: &expires,
	}

	if err := h.users.Create(c.Request.Context(), &user, req.Password); err != nil {
		writeError(c, err)
		return
	}

	if err := h.mail.SendOTP(email, code, otp.PurposeRegister); err != nil {
		log.Printf("otp mail failed for %s: %v", email, err)
		httperr.Upstream(c, "mail_failed", "Could not send the OTP email. Please try again later.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "user_registered",
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"msg": "OTP sent to email. Please verify to complete registration.",
	})
}

// VerifyOTP flips the account to verified when the registration code
// matches and has not expired.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	email := store.NormalizeEmail(req.Email)

	if !h.limiter.Allow(ctx, "register", email) {
		httperr.TooManyRequests(c, "too_many_attempts", "Too many OTP attempts. Try again later.")
		return
	}

	user, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	if err := h.users.ConsumeOTP(user, otp.PurposeRegister, req.OTP); err != nil {
		writeError(c, err)
		return
	}

	user.Verified = true
	if err := h.users.Update(ctx, user); err != nil {
		writeError(c, err)
		return
	}

	h.limiter.Reset(ctx, "register", email)

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "user_verified",
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"msg": "OTP verified. Registration complete! You can now log in.",
	})
}

// Login checks the credentials, optionally pins the requested role,
// and installs the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	if !user.Verified {
		httperr.Unauthorized(c, "not_verified", "User is not registered or not verified")
		return
	}

	if !store.CheckPassword(user, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	if req.Role != "" && models.Role(req.Role) != user.Role {
		httperr.Unauthorized(c, "role_mismatch", "Account does not hold the requested role")
		return
	}

	h.issueSession(c, user, "user_login")
}

// AdminLogin exchanges the bootstrap secret for an admin session.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	if user.Role != models.RoleAdmin {
		httperr.Forbidden(c, "not_admin", "Account is not an admin")
		return
	}

	if h.config.AdminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.config.AdminSecret)) != 1 {
		httperr.Unauthorized(c, "bad_secret", "Invalid admin secret")
		return
	}

	h.issueSession(c, user, "admin_login")
}

// ForgotPassword issues a reset OTP to a known address.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	code, err := otp.Generate()
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.SetOTP(ctx, user, otp.PurposeReset, code, time.Now().Add(otp.TTL)); err != nil {
		writeError(c, err)
		return
	}

	if err := h.mail.SendOTP(user.Email, code, otp.PurposeReset); err != nil {
		log.Printf("reset mail failed for %s: %v", user.Email, err)
		httperr.Upstream(c, "mail_failed", "Could not send the OTP email. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "OTP sent to email. Please enter it to reset your password.",
	})
}

// ResetPassword consumes the reset OTP and stores the new password
// in the same write.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	email := store.NormalizeEmail(req.Email)

	if !h.limiter.Allow(ctx, "reset", email) {
		httperr.TooManyRequests(c, "too_many_attempts", "Too many OTP attempts. Try again later.")
		return
	}

	user, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	if err := h.users.ConsumeOTP(user, otp.PurposeReset, req.OTP); err != nil {
		writeError(c, err)
		return
	}

	if err := store.SetPassword(user, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.Update(ctx, user); err != nil {
		writeError(c, err)
		return
	}

	h.limiter.Reset(ctx, "reset", email)

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "password_reset",
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"msg": "Password reset successfully. You can now log in.",
	})
}

// Logout clears the session cookie. Tokens are stateless, so there
// is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.config.IsProduction())
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out successfully"})
}

// --------- Session ---------

func (h *AuthHandler) issueSession(c *gin.Context, user *models.User, action string) {
	signed, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "token_failed", "failed to generate token")
		return
	}

	middleware.SetSessionCookie(c, signed, h.config.IsProduction())

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: action,
		Entity: "user",
	})

	c.JSON(http.StatusOK, gin.H{
		"user": dto.NewUserSummary(user),
	})
}
