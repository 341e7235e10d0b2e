package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"lead-gateway/pkg/attribution"
	"lead-gateway/pkg/identity"
	"lead-gateway/pkg/middleware"
	"lead-gateway/pkg/models"
	"lead-gateway/pkg/services"
	"lead-gateway/pkg/validation"
)

// Response messages shown by the form
const (
	msgMethodNotAllowed = "Yalnızca POST istekleri desteklenir."
	msgMethodGeneric    = "Method not allowed."
	msgInvalidBody      = "Geçersiz istek gövdesi."
	msgConfiguration    = "Sunucu yapılandırma hatası."
	msgMessagingFailed  = "Telegram gönderimi başarısız."
	msgUnexpected       = "Hata oluştu."
	msgSubmitted        = "Bilgiler gönderildi."
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	validator         *validation.Validator
	resolver          *attribution.Resolver
	dispatcher        services.LeadDispatcher
	includeExternalID bool
	logger            *slog.Logger
}

// NewHandlers creates a new Handlers instance. includeExternalID controls
// whether the hashed national ID is sent as external_id.
func NewHandlers(
	dispatcher services.LeadDispatcher,
	resolver *attribution.Resolver,
	includeExternalID bool,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		validator:         validation.New(),
		resolver:          resolver,
		dispatcher:        dispatcher,
		includeExternalID: includeExternalID,
		logger:            logger,
	}
}

const submitPath = "/api/submit"

// RegisterRoutes mounts the handlers on router
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(h.MethodNotAllowed)

	router.POST(submitPath, h.HandleSubmit)
	router.OPTIONS(submitPath, h.Preflight)
	router.GET("/health", h.HealthCheck)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Preflight answers OPTIONS requests the CORS middleware did not consume.
// Those carry no Origin header, so the middleware skipped them; the allow
// headers are set here so every OPTIONS response carries them.
func (h *Handlers) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusOK)
}

// MethodNotAllowed rejects anything but POST on the submit route before the
// body is read. Other routes get a generic body.
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	if c.Request.URL.Path == submitPath {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": msgMethodNotAllowed})
		return
	}
	c.JSON(http.StatusMethodNotAllowed, gin.H{"message": msgMethodGeneric})
}

// bindForm reads the body. JSON is decoded loosely so a field sent with the
// wrong type is reported by the validator against that field.
func bindForm(c *gin.Context) (models.SubmissionForm, error) {
	if c.ContentType() == binding.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			return models.SubmissionForm{}, err
		}
		return models.SubmissionFormFromJSON(body), nil
	}

	var form models.SubmissionForm
	if err := c.ShouldBind(&form); err != nil && !errors.Is(err, io.EOF) {
		return models.SubmissionForm{}, err
	}
	return form, nil
}

// HandleSubmit validates the form, derives the lead and relays it
func (h *Handlers) HandleSubmit(c *gin.Context) {
	logger := h.logger.With("request_id", middleware.GetRequestID(c))

	form, err := bindForm(c)
	if err != nil {
		logger.Warn("error parsing body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	req, err := h.validator.Validate(form)
	if err != nil {
		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			logger.Info("submission rejected", "field", fieldErr.Field)
			c.JSON(http.StatusBadRequest, gin.H{"message": fieldErr.Message, "field": fieldErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	lead := identity.Normalize(req, h.includeExternalID)
	h.resolver.Resolve(req, attribution.MetadataFromRequest(c.Request), &lead)

	// Outbound calls run to completion even if the caller goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.dispatcher.Dispatch(ctx, req, lead)
	switch {
	case errors.Is(err, services.ErrConfigurationMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgConfiguration})
	case err != nil && result.Messaging.Status == models.StatusRejected:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgMessagingFailed, "details": result.Messaging.Detail})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected, "details": result.Messaging.Detail})
	default:
		logger.Info("lead submitted", "attribution", result.Attribution.Status)
		c.JSON(http.StatusOK, gin.H{"message": msgSubmitted})
	}
}
