package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/log"
	"github.com/sneha-1019/PawfectHomes/internal/queue"
	"github.com/sneha-1019/PawfectHomes/internal/repo"
	"github.com/sneha-1019/PawfectHomes/internal/security"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register with email/password, step 1: send OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || !strings.Contains(email, "@") || len(in.Password) < 8 {
		fail(c, http.StatusBadRequest, "Name, valid email and a password of at least 8 characters are required")
		return
	}

	existing, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during registration")
		return
	}
	if existing != nil && existing.IsEmailVerified {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}

	otp, err := security.GenerateOTP()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during registration")
		return
	}
	expiry := security.OTPExpiry()

	var u *domain.User
	if existing != nil {
		// unverified account: reissue a fresh code on the same record
		if err := h.Store.SetUserOTP(c.Request.Context(), existing.ID, otp, expiry); err != nil {
			fail(c, http.StatusInternalServerError, "Server error during registration")
			return
		}
		u = existing
	} else {
		hash, err := security.HashPassword(in.Password)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Server error during registration")
			return
		}
		u = &domain.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			OTP:          otp,
			OTPExpiry:    expiry,
		}
		if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
			if repo.IsDup(err) {
				fail(c, http.StatusBadRequest, "User already exists")
				return
			}
			fail(c, http.StatusInternalServerError, "Server error during registration")
			return
		}
	}

	h.publish(c, queue.KeyEmailOTP, queue.EmailOTP{To: email, Name: name, OTP: otp})

	ok(c, http.StatusOK, gin.H{
		"message": "OTP sent to your email. Please verify to complete registration.",
		"userId":  u.ID,
	})
}

type verifyOTPReq struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

// VerifyOTP godoc
// @Summary Verify OTP, step 2: complete registration
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body verifyOTPReq true "verify"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/auth/verify-otp [post]
func (h *Handler) VerifyOTP(c *gin.Context) {
	var in verifyOTPReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during OTP verification")
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if u.OTP == "" {
		// already consumed; a used code is never replayable
		fail(c, http.StatusBadRequest, "Email already verified")
		return
	}
	if time.Now().After(u.OTPExpiry) {
		fail(c, http.StatusBadRequest, "OTP expired. Please request a new one.")
		return
	}
	if u.OTP != in.OTP {
		fail(c, http.StatusBadRequest, "Invalid OTP")
		return
	}

	admin := h.Cfg.AdminEmail != "" && u.Email == h.Cfg.AdminEmail
	if err := h.Store.MarkUserVerified(c.Request.Context(), u.ID, admin); err != nil {
		fail(c, http.StatusInternalServerError, "Server error during OTP verification")
		return
	}
	u.IsEmailVerified = true
	u.OTP = ""
	if admin {
		u.IsAdmin = true
	}

	h.publish(c, queue.KeyEmailWelcome, queue.EmailWelcome{To: u.Email, Name: u.Name})

	token, err := security.MakeAccess(h.Cfg.JWTSecret, u.ID.Hex(), u.Email, h.tokenTTL())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during OTP verification")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"token":   token,
		"user":    u.Public(h.Cfg.AdminEmail),
	})
}

type resendOTPReq struct {
	UserID string `json:"userId"`
}

// ResendOTP godoc
// @Summary Resend OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body resendOTPReq true "resend"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/auth/resend-otp [post]
func (h *Handler) ResendOTP(c *gin.Context) {
	var in resendOTPReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	otp, err := security.GenerateOTP()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.Store.SetUserOTP(c.Request.Context(), u.ID, otp, security.OTPExpiry()); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	h.publish(c, queue.KeyEmailOTP, queue.EmailOTP{To: u.Email, Name: u.Name, OTP: otp})

	ok(c, http.StatusOK, gin.H{"message": "OTP resent successfully"})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login with email/password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.TrimSpace(in.Email)

	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during login")
		return
	}
	if u == nil || u.PasswordHash == "" {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !u.IsEmailVerified {
		fail(c, http.StatusUnauthorized, "Please verify your email first")
		return
	}
	if !security.CheckPassword(u.PasswordHash, in.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := security.MakeAccess(h.Cfg.JWTSecret, u.ID.Hex(), u.Email, h.tokenTTL())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error during login")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"token": token,
		"user":  u.Public(h.Cfg.AdminEmail),
	})
}

type googleReq struct {
	Code string `json:"code"`
}

// GoogleAuth godoc
// @Summary Login via Google authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body googleReq true "code"
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/auth/google [post]
func (h *Handler) GoogleAuth(c *gin.Context) {
	var in googleReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Code == "" {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	gu, err := h.Google.ExchangeAndVerify(c.Request.Context(), in.Code)
	if err != nil {
		log.Errorf("google auth: %v", err)
		fail(c, http.StatusInternalServerError, "Google authentication failed")
		return
	}

	u, err := h.Store.FindUserByEmail(c.Request.Context(), gu.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Google authentication failed")
		return
	}
	admin := h.Cfg.AdminEmail != "" && gu.Email == h.Cfg.AdminEmail

	if u == nil {
		u = &domain.User{
			Name:            gu.Name,
			Email:           gu.Email,
			GoogleID:        gu.Sub,
			Avatar:          gu.Picture,
			IsEmailVerified: true,
			IsAdmin:         admin,
		}
		if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
			fail(c, http.StatusInternalServerError, "Google authentication failed")
			return
		}
		h.publish(c, queue.KeyEmailWelcome, queue.EmailWelcome{To: u.Email, Name: u.Name})
	} else {
		googleID := ""
		if u.GoogleID == "" {
			googleID = gu.Sub
			u.GoogleID = gu.Sub
		}
		if err := h.Store.LinkGoogle(c.Request.Context(), u.ID, googleID, admin); err != nil {
			fail(c, http.StatusInternalServerError, "Google authentication failed")
			return
		}
		u.IsEmailVerified = true
		if admin {
			u.IsAdmin = true
		}
	}

	token, err := security.MakeAccess(h.Cfg.JWTSecret, u.ID.Hex(), u.Email, h.tokenTTL())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Google authentication failed")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"token": token,
		"user":  u.Public(h.Cfg.AdminEmail),
	})
}

// Me godoc
// @Summary Current user with resolved saved pets
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		fail(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	saved, err := h.Store.FindPetsByIDs(c.Request.Context(), u.SavedPets)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if saved == nil {
		saved = []domain.Pet{}
	}
	pub := u.Public(h.Cfg.AdminEmail)
	ok(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":        pub.ID,
			"name":      pub.Name,
			"email":     pub.Email,
			"avatar":    pub.Avatar,
			"isAdmin":   pub.IsAdmin,
			"savedPets": saved,
		},
	})
}
