package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sneha-1019/PawfectHomes/internal/config"
	"github.com/sneha-1019/PawfectHomes/internal/log"
	"github.com/sneha-1019/PawfectHomes/internal/metrics"
	"github.com/sneha-1019/PawfectHomes/internal/queue"
)

type Handler struct {
	Store    Store
	Pub      queue.Publisher
	Uploader Uploader
	Google   GoogleExchanger
	Cfg      config.Config
}

func NewHandler(store Store, pub queue.Publisher, up Uploader, g GoogleExchanger, cfg config.Config) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	return &Handler{Store: store, Pub: pub, Uploader: up, Google: g, Cfg: cfg}
}

func (h *Handler) tokenTTL() time.Duration {
	return time.Duration(h.Cfg.JWTTTLHours) * time.Hour
}

// publish sends a mail event to the broker. Delivery is best-effort across
// the board: failures are logged and counted, the request never fails.
func (h *Handler) publish(c *gin.Context, key string, event any) {
	if err := h.Pub.Publish(c.Request.Context(), key, event, c.GetString(ctxRequestID)); err != nil {
		log.Errorf("publish %s: %v", key, err)
		metrics.MailEventsTotal.WithLabelValues(key, "error").Inc()
		return
	}
	metrics.MailEventsTotal.WithLabelValues(key, "ok").Inc()
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
