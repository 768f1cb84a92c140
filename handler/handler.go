// Package handler adapts raw Lambda events to the skill service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"project-translate/internal/domain"
)

// SkillService is the pipeline entry point consumed by the handler.
type SkillService interface {
	HandleEvent(ctx context.Context, ev domain.Envelope) (domain.Response, error)
}

type Handler struct {
	svc SkillService
}

func New(svc SkillService) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: skill service must not be nil")
	}
	return &Handler{svc: svc}, nil
}

// Handle decodes the platform envelope and delegates to the skill service.
// Errors returned here propagate to the platform as a failed invocation.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (domain.Response, error) {
	var ev domain.Envelope
	if err := json.Unmarshal(raw, &ev); err != nil {
		return domain.Response{}, fmt.Errorf("handler: decode event: %w", err)
	}

	invocation := uuid.NewString()
	slog.InfoContext(ctx, "event received", "invocation", invocation, "type", ev.Request.Type)

	resp, err := h.svc.HandleEvent(ctx, ev)
	if err != nil {
		slog.ErrorContext(ctx, "event rejected", "invocation", invocation, "err", err)
		return domain.Response{}, err
	}
	return resp, nil
}
