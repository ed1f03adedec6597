package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	appErr "github.com/thesislink/engine/pkg/errors"
	"github.com/thesislink/engine/pkg/logger"
)

// Task type names routed by the worker mux.
const (
	TypeApplicationSubmitted = "notification:application_submitted"
	TypeApplicationStatus    = "notification:application_status"
)

// NotificationPayload is the shared payload for notification tasks.
type NotificationPayload struct {
	ApplicationID string `json:"application_id"`
}

// NewApplicationSubmittedTask notifies the project's company of a new
// application.
func NewApplicationSubmittedTask(applicationID uuid.UUID) *asynq.Task {
	payload, _ := json.Marshal(NotificationPayload{ApplicationID: applicationID.String()})
	return asynq.NewTask(TypeApplicationSubmitted, payload)
}

// NewApplicationStatusTask notifies the student of a status change.
func NewApplicationStatusTask(applicationID uuid.UUID) *asynq.Task {
	payload, _ := json.Marshal(NotificationPayload{ApplicationID: applicationID.String()})
	return asynq.NewTask(TypeApplicationStatus, payload)
}

// NotificationTaskHandler materialises Notification rows from queue tasks.
type NotificationTaskHandler struct {
	applications  repository.ApplicationRepository
	notifications repository.NotificationRepository
}

func NewNotificationTaskHandler(applications repository.ApplicationRepository, notifications repository.NotificationRepository) *NotificationTaskHandler {
	return &NotificationTaskHandler{applications: applications, notifications: notifications}
}

func (h *NotificationTaskHandler) HandleApplicationSubmitted(ctx context.Context, t *asynq.Task) error {
	a, err := h.load(ctx, t)
	if err != nil {
		return err
	}

	title := "a project"
	if a.Project != nil {
		title = fmt.Sprintf("%q", a.Project.Title)
	}
	student := "A student"
	if a.Student != nil {
		student = a.Student.Name
	}

	n := &models.Notification{
		UserID:  a.CompanyID,
		Kind:    models.NotificationApplicationSubmitted,
		Message: fmt.Sprintf("%s applied to %s", student, title),
	}
	if err := h.notifications.Create(ctx, n); err != nil {
		logger.L().Error("create notification failed", zap.Error(err))
		return err
	}
	return nil
}

func (h *NotificationTaskHandler) HandleApplicationStatus(ctx context.Context, t *asynq.Task) error {
	a, err := h.load(ctx, t)
	if err != nil {
		return err
	}

	title := "a project"
	if a.Project != nil {
		title = fmt.Sprintf("%q", a.Project.Title)
	}

	n := &models.Notification{
		UserID:  a.StudentID,
		Kind:    models.NotificationApplicationStatus,
		Message: fmt.Sprintf("Your application to %s is now %s", title, a.Status),
	}
	if err := h.notifications.Create(ctx, n); err != nil {
		logger.L().Error("create notification failed", zap.Error(err))
		return err
	}
	return nil
}

func (h *NotificationTaskHandler) load(ctx context.Context, t *asynq.Task) (*models.Application, error) {
	var p NotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid notification task payload", zap.Error(err))
		return nil, err
	}
	id, err := uuid.Parse(p.ApplicationID)
	if err != nil {
		logger.L().Error("invalid application id in task", zap.Error(err))
		return nil, err
	}
	var a models.Application
	if err := h.applications.GetWithRelations(ctx, id, &a); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			// Withdrawn before the worker ran; nothing to notify about.
			logger.L().Warn("application gone before notification", zap.String("application_id", id.String()))
			return nil, fmt.Errorf("application %s gone: %w", id, asynq.SkipRetry)
		}
		return nil, err
	}
	return &a, nil
}
