// Package httpapi exposes session issuance and attendance validation over gin.
package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendify/internal/attendance"
	"attendify/internal/geo"
	"attendify/internal/metrics"
	"attendify/internal/qr"
	"attendify/internal/queue"
	"attendify/internal/session"
	"attendify/internal/store"
)

// Handler wires the issuer and validator to HTTP routes. issuer and validator
// are nil when the database was unreachable at startup and fail-soft mode is
// on; every storage-backed route then answers 500 without crashing.
type Handler struct {
	issuer    *session.Issuer
	validator *attendance.Validator
	events    queue.Queue
	db        *store.DB
	redis     *store.Redis
	baseURL   string
	qrSize    int
}

// Options configures a Handler.
type Options struct {
	Issuer    *session.Issuer
	Validator *attendance.Validator
	Events    queue.Queue
	DB        *store.DB
	Redis     *store.Redis
	BaseURL   string
	QRSize    int
}

// New creates a handler.
func New(opts Options) *Handler {
	return &Handler{
		issuer:    opts.Issuer,
		validator: opts.Validator,
		events:    opts.Events,
		db:        opts.DB,
		redis:     opts.Redis,
		baseURL:   opts.BaseURL,
		qrSize:    opts.QRSize,
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/healthz", h.Healthz)
	r.POST("/generate-qr", h.GenerateQR)
	r.POST("/api/attendance/mark", h.MarkAttendance)
	r.GET("/api/attendance/session/:token", h.SessionRoster)
}

// Home is the liveness blurb.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "attendify backend running"})
}

// Healthz reports dependency connectivity.
func (h *Handler) Healthz(c *gin.Context) {
	dbHealthy := h.db != nil
	redisHealthy := h.redis.Healthy(c.Request.Context())
	status := http.StatusOK
	if !dbHealthy || !redisHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
}

// GenerateQR creates a session and returns its token plus a QR image linking
// to the mark page.
func (h *Handler) GenerateQR(c *gin.Context) {
	if h.issuer == nil {
		h.storageUnavailable(c)
		return
	}

	var req struct {
		Payload *session.Payload `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.issuer.Create(c.Request.Context(), *req.Payload)
	if err != nil {
		if errors.Is(err, session.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("session insert failed: %v", err)
		h.storageUnavailable(c)
		return
	}

	markURL := h.resolveBaseURL(c) + "/mark.html?token=" + sess.Token
	img, err := qr.DataURL(markURL, h.qrSize)
	if err != nil {
		log.Printf("qr encode failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}

	metrics.SessionsCreated.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   sess.Token,
		"qr":      img,
	})
}

// MarkAttendance runs the validation pipeline and maps the outcome to HTTP:
// 200 for success, 403 for every business rejection, 500 for storage failure.
func (h *Handler) MarkAttendance(c *gin.Context) {
	if h.validator == nil {
		h.storageUnavailable(c)
		return
	}

	var req struct {
		Token           string     `json:"token" binding:"required"`
		DeviceID        string     `json:"device_id" binding:"required"`
		Name            string     `json:"name"`
		Roll            string     `json:"roll"`
		StudentLocation *geo.Point `json:"studentLocation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.validator.Mark(c.Request.Context(), attendance.MarkRequest{
		Token:           req.Token,
		DeviceID:        req.DeviceID,
		Name:            req.Name,
		Roll:            req.Roll,
		StudentLocation: *req.StudentLocation,
	})
	if err != nil {
		log.Printf("attendance mark failed: %v", err)
		h.storageUnavailable(c)
		return
	}

	metrics.MarkResults.WithLabelValues(string(res.Status)).Inc()

	if res.Status.OK() && h.events != nil && res.Record != nil {
		if msg, err := queue.MarkedMessage(*res.Record); err == nil {
			if err := h.events.Publish(c.Request.Context(), msg); err != nil {
				log.Printf("event publish failed: %v", err)
			}
		}
	}

	body := gin.H{"status": res.Status}
	if res.Distance != nil {
		body["distance"] = *res.Distance
	}
	code := http.StatusOK
	if !res.Status.OK() {
		code = http.StatusForbidden
	}
	c.JSON(code, body)
}

// SessionRoster lists the attendance records of one session.
func (h *Handler) SessionRoster(c *gin.Context) {
	if h.validator == nil {
		h.storageUnavailable(c)
		return
	}

	records, err := h.validator.Roster(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, attendance.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		log.Printf("roster fetch failed: %v", err)
		h.storageUnavailable(c)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) storageUnavailable(c *gin.Context) {
	metrics.StorageErrors.Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage not connected"})
}

// resolveBaseURL prefers the configured public base URL and falls back to the
// host the request arrived on.
func (h *Handler) resolveBaseURL(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
