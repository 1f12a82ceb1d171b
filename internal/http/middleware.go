package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/metrics"
	"github.com/sneha-1019/PawfectHomes/internal/security"
)

const (
	ctxRequestID = "X-Request-ID"
	ctxUser      = "authUser"
	ctxIsAdmin   = "isAdmin"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ctxRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set(ctxRequestID, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "nomatch"
		}
		metrics.InFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthRequired parses the bearer token, then resolves the identity from the
// store so role and ownership checks see the current account state.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		hdr := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			abortFail(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		tok := strings.TrimSpace(hdr[len("Bearer "):])
		claims, err := security.ParseAccess(h.Cfg.JWTSecret, tok)
		if err != nil {
			abortFail(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UID)
		if err != nil {
			abortFail(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		u, err := h.Store.FindUserByID(c.Request.Context(), uid)
		if err != nil || u == nil {
			abortFail(c, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		c.Set(ctxUser, u)
		c.Set(ctxIsAdmin, domain.ResolveAdmin(u, h.Cfg.AdminEmail))
		c.Next()
	}
}

// AdminOnly must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsAdmin) {
			abortFail(c, http.StatusForbidden, "Admin access only")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
