package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	// SendOrderConfirmation emails the buyer that order was paid. An empty
	// recipient falls back to the email on the order owner's account.
	SendOrderConfirmation(ctx context.Context, order *models.Order, recipient string) (*models.NotificationResponse, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	userRepo     repository.UserRepository
	emailService sendgrid.EmailService
	storeName    string
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, emailService sendgrid.EmailService, storeName string) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo, emailService: emailService, storeName: storeName}
}

// SendEmail implements NotificationService.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	return n.send(ctx, req, nil)
}

// SendOrderConfirmation implements NotificationService.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order, recipient string) (*models.NotificationResponse, error) {

	if recipient == "" {
		user, err := n.userRepo.GetUserById(ctx, order.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve confirmation recipient: %w", err)
		}
		recipient = user.Email
	}

	var text, markup strings.Builder

	fmt.Fprintf(&text, "Thank you for your order %s.\n\n", order.ID)
	fmt.Fprintf(&markup, "<p>Thank you for your order <strong>%s</strong>.</p><ul>", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&text, "%d x %s  %s\n", item.Quantity, item.ProductName, item.Price.StringFixed(2))
		fmt.Fprintf(&markup, "<li>%d x %s %s</li>", item.Quantity, html.EscapeString(item.ProductName), item.Price.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal paid: %s\n", order.TotalAmount.StringFixed(2))
	fmt.Fprintf(&markup, "</ul><p>Total paid: %s</p>", order.TotalAmount.StringFixed(2))

	req := &models.EmailNotificationRequest{
		To:          recipient,
		Subject:     fmt.Sprintf("%s: order %s confirmed", n.storeName, order.ID.String()[:8]),
		Content:     text.String(),
		HTMLContent: markup.String(),
		Metadata:    map[string]string{"order_id": order.ID.String()},
	}

	return n.send(ctx, req, &order.ID)
}

func (n *notificationService) send(ctx context.Context, req *models.EmailNotificationRequest, orderID *uuid.UUID) (*models.NotificationResponse, error) {

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}

		metadataJSON = metadataBytes
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		OrderID:   orderID,
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Save to the database
	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {

		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.ErrorMessage)

		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		Recipient: notification.Recipient,
		CreatedAt: notification.CreatedAt,
	}, nil
}
