package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/massagehub/booking-api/internal/auth"
	"github.com/massagehub/booking-api/internal/config"
	"github.com/massagehub/booking-api/internal/httperr"
	"github.com/massagehub/booking-api/internal/mail"
	"github.com/massagehub/booking-api/internal/middleware"
	"github.com/massagehub/booking-api/internal/models"
	"github.com/massagehub/booking-api/internal/validators"
)

type AuthHandler struct {
	db        *gorm.DB
	config    *config.Config
	issuer    *auth.TokenIssuer
	blacklist auth.Blacklist
	mailer    mail.Mailer
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	blacklist auth.Blacklist,
	mailer mail.Mailer,
) *AuthHandler {
	return &AuthHandler{
		db:        db,
		config:    cfg,
		issuer:    issuer,
		blacklist: blacklist,
		mailer:    mailer,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", err.Error())
		return
	}

	if !validators.IsTelephoneValid(req.Telephone) {
		httperr.BadRequest(c, "validation_failed", "Please add a valid telephone number.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "This email is already registered.")
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register user.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Telephone:    req.Telephone,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not register user.")
		return
	}

	h.sendTokenResponse(c, &user, http.StatusOK)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", "Please provide an email and password.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.BadRequest(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	h.sendTokenResponse(c, &user, http.StatusOK)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user := c.MustGet(middleware.ContextUser).(*models.User)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, _ := c.Get(middleware.ContextTokenID)
	if jti, ok := tokenID.(string); ok && jti != "" {
		// revoke only for the token's remaining lifetime
		ttl := time.Duration(h.config.CookieExpireDays) * 24 * time.Hour
		if v, ok := c.Get(middleware.ContextTokenExpiry); ok {
			if exp, ok := v.(time.Time); ok && !exp.IsZero() {
				ttl = time.Until(exp)
			}
		}
		if err := h.blacklist.Revoke(c.Request.Context(), jti, ttl); err != nil {
			httperr.Internal(c, "logout_failed", "Could not revoke session.")
			return
		}
	}

	c.SetCookie(auth.CookieName, "none", 10, "/", "", h.config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", "Please provide an email.")
		return
	}

	genericOK := func() {
		// identical answer whether or not the account exists
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    "If that email is registered, a reset link has been sent.",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		genericOK()
		return
	}

	raw, hashed, err := auth.NewResetToken()
	if err != nil {
		httperr.Internal(c, "failed_to_create_token", "Could not start the password reset.")
		return
	}

	expire := time.Now().Add(auth.ResetTokenTTL)
	user.ResetPasswordToken = hashed
	user.ResetPasswordExpire = &expire
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_store_token", "Could not start the password reset.")
		return
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/auth/resetpassword/%s", scheme(c), c.Request.Host, raw)
	body := "You are receiving this email because a password reset was requested for your account.\n\n" +
		"Please make a PUT request to:\n\n" + resetURL +
		"\n\nThe link expires in 10 minutes."

	if err := h.mailer.Send(user.Email, "Password reset token", body); err != nil {
		// a broken mail path must not leave an active reset token behind
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if rbErr := h.db.Save(&user).Error; rbErr != nil {
			log.Printf("failed to clear reset token for user %d after mail failure: %v", user.ID, rbErr)
		}

		httperr.Internal(c, "email_not_sent", "Email could not be sent.")
		return
	}

	genericOK()
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_failed", "Please provide a new password.")
		return
	}

	rawToken := c.Param("token")
	hashedToken := auth.HashResetToken(rawToken)

	var user models.User
	if err := h.db.
		Where("reset_password_token = ?", hashedToken).
		First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired token.")
		return
	}

	if !auth.ResetTokenValid(rawToken, user.ResetPasswordToken, user.ResetPasswordExpire, time.Now()) {
		httperr.BadRequest(c, "invalid_token", "Invalid or expired token.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not reset password.")
		return
	}

	user.PasswordHash = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_store_password", "Could not reset password.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": "Password reset success."})
}

// --------- Token response ---------

func (h *AuthHandler) sendTokenResponse(c *gin.Context, user *models.User, status int) {
	token, claims, err := h.issuer.Issue(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign session token.")
		return
	}

	maxAge := int(time.Until(claims.Expires).Seconds())
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", h.config.IsProduction(), true)

	c.JSON(status, gin.H{
		"success": true,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

func scheme(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
