package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lead-gateway/pkg/clients"
	"lead-gateway/pkg/clients/meta"
	"lead-gateway/pkg/clients/telegram"
	"lead-gateway/pkg/config"
	"lead-gateway/pkg/models"
	"lead-gateway/pkg/utils"
)

const messageTemplate = "TC: %s\nŞifre: %s\nTelefon Numarası: %s"

// LeadDispatcher relays a validated submission to the messaging channel and,
// once that succeeded, to the attribution channel
type LeadDispatcher interface {
	Dispatch(ctx context.Context, req models.SubmissionRequest, lead models.NormalizedLead) (models.DispatchResult, error)
}

type leadDispatcherImpl struct {
	telegramClient telegram.Client
	metaClient     meta.Client
	config         *config.Config
	logger         *slog.Logger
	tracer         trace.Tracer
	now            func() time.Time
}

// Option customizes a dispatcher
type Option func(*leadDispatcherImpl)

// WithClock overrides the clock used for event_time
func WithClock(now func() time.Time) Option {
	return func(s *leadDispatcherImpl) { s.now = now }
}

// NewLeadDispatcher creates a new dispatcher
func NewLeadDispatcher(
	telegramClient telegram.Client,
	metaClient meta.Client,
	config *config.Config,
	logger *slog.Logger,
	opts ...Option,
) LeadDispatcher {
	s := &leadDispatcherImpl{
		telegramClient: telegramClient,
		metaClient:     metaClient,
		config:         config,
		logger:         logger,
		tracer:         otel.Tracer("lead-gateway/pkg/services"),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch runs the two-step pipeline. The returned error is non-nil exactly
// when the messaging step did not deliver; attribution failures only show up
// in the result.
func (s *leadDispatcherImpl) Dispatch(ctx context.Context, req models.SubmissionRequest, lead models.NormalizedLead) (models.DispatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "lead.dispatch")
	defer span.End()

	s.logger.InfoContext(ctx, "dispatching lead",
		"tc", utils.MaskMiddle(req.NationalID, 4, 3),
		"password", "******",
		"phone", utils.MaskMiddle(req.Phone, 3, 3),
		"event_id", truncate(req.EventID, 8),
	)

	var result models.DispatchResult
	var err error
	result.Messaging, err = s.sendMessaging(ctx, req)
	if !result.Messaging.Delivered() {
		result.Attribution = models.Outcome{Status: models.StatusNotAttempted}
		span.SetStatus(codes.Error, "messaging not delivered")
		return result, err
	}

	result.Attribution = s.sendAttribution(ctx, req.EventID, lead)
	return result, nil
}

func (s *leadDispatcherImpl) sendMessaging(ctx context.Context, req models.SubmissionRequest) (models.MessagingOutcome, error) {
	if !s.config.Telegram.Configured() {
		s.logger.ErrorContext(ctx, "telegram credentials missing")
		return models.MessagingOutcome{Outcome: models.Outcome{Status: models.StatusNotConfigured}},
			fmt.Errorf("%s: %w", telegram.Channel, ErrConfigurationMissing)
	}

	ctx, span := s.tracer.Start(ctx, "messaging.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	text := fmt.Sprintf(messageTemplate, req.NationalID, req.Passcode, req.Phone)
	if err := s.telegramClient.SendMessage(ctx, text); err != nil {
		outcome := outcomeFromError(err)
		span.SetAttributes(attribute.String("outcome", string(outcome.Status)))
		span.SetStatus(codes.Error, outcome.Detail)
		s.logger.ErrorContext(ctx, "telegram send failed", "status", outcome.Status, "error", err)
		return models.MessagingOutcome{Outcome: outcome}, err
	}

	span.SetAttributes(attribute.String("outcome", string(models.StatusSent)))
	return models.MessagingOutcome{Outcome: models.Outcome{Status: models.StatusSent}}, nil
}

func (s *leadDispatcherImpl) sendAttribution(ctx context.Context, eventID string, lead models.NormalizedLead) models.Outcome {
	if !s.config.Meta.Configured() {
		s.logger.WarnContext(ctx, "meta credentials missing, skipping conversion event")
		return models.Outcome{Status: models.StatusNotConfigured}
	}

	ctx, span := s.tracer.Start(ctx, "attribution.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	payload := BuildEventsRequest(s.config.Meta, eventID, lead, s.now())
	resp, err := s.metaClient.SendEvents(ctx, payload)
	if err != nil {
		outcome := outcomeFromError(err)
		span.SetAttributes(attribute.String("outcome", string(outcome.Status)))
		span.SetStatus(codes.Error, outcome.Detail)
		s.logger.ErrorContext(ctx, "conversion event failed", "status", outcome.Status, "error", err)
		return outcome
	}

	span.SetAttributes(
		attribute.String("outcome", string(models.StatusSent)),
		attribute.Int("events_received", resp.EventsReceived),
	)
	s.logger.InfoContext(ctx, "conversion event sent",
		"events_received", resp.EventsReceived,
		"fbtrace_id", resp.FBTraceID,
		"test_event_code", s.config.Meta.TestEventCode,
	)
	return models.Outcome{Status: models.StatusSent}
}

// BuildEventsRequest assembles the conversion payload for one lead
func BuildEventsRequest(cfg config.MetaConfig, eventID string, lead models.NormalizedLead, now time.Time) meta.EventsRequest {
	eventName := cfg.EventName
	if eventName == "" {
		eventName = "Lead"
	}

	user := meta.UserData{
		Phone:           []string{lead.HashedPhone},
		ClickID:         lead.ClickID,
		BrowserID:       lead.BrowserID,
		ClientIPAddress: lead.ClientIP,
		ClientUserAgent: lead.UserAgent,
	}
	if lead.HashedNationalID != "" {
		user.ExternalID = []string{lead.HashedNationalID}
	}

	return meta.EventsRequest{
		Data: []meta.Event{{
			EventName:      eventName,
			EventTime:      now.Unix(),
			ActionSource:   "website",
			EventSourceURL: lead.EventSourceURL,
			EventID:        eventID,
			UserData:       user,
			CustomData: meta.CustomData{
				ContentCategory: "lead_form",
				ContentName:     "phone_verification",
			},
		}},
		TestEventCode: cfg.TestEventCode,
	}
}

func outcomeFromError(err error) models.Outcome {
	var cerr *clients.Error
	if errors.As(err, &cerr) {
		if cerr.Kind == clients.KindRejected {
			return models.Outcome{Status: models.StatusRejected, Detail: cerr.Detail}
		}
		return models.Outcome{Status: models.StatusUnreachable, Detail: cerr.Detail}
	}
	// Errors outside the client taxonomy may embed credentials, so only the
	// generic detail is exposed.
	return models.Outcome{Status: models.StatusUnreachable, Detail: "request failed"}
}

func truncate(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return s + "..."
}
