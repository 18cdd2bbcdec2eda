package service

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
)

// OrderCreatedQueue is the Redis list consumed by the mailer worker.
const OrderCreatedQueue = "notifications:order_created"

// OrderCreatedEvent is the queue payload for a freshly placed order.
type OrderCreatedEvent struct {
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	ItemCount  int       `json:"item_count"`
	PlacedAt   time.Time `json:"placed_at"`
}

// NotificationService publishes best-effort domain events. Failures are
// logged and swallowed: a lost notification must never fail the request
// that produced it.
type NotificationService interface {
	OrderCreated(order *model.Order)
}

type notificationService struct {
	client *goredis.Client
}

// NewNotificationService accepts a nil client; events are then dropped
// with a debug log, which keeps local setups free of a Redis requirement.
func NewNotificationService(client *goredis.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) OrderCreated(order *model.Order) {
	if s.client == nil {
		logger.Debug("Notification skipped: redis not configured", map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	event := OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ItemCount:  len(order.Items),
		PlacedAt:   order.PlacedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order created event", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.LPush(ctx, OrderCreatedQueue, payload).Err(); err != nil {
		logger.Error("Failed to publish order created event", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	logger.Info("Order created event published", map[string]interface{}{
		"order_id": order.ID,
		"queue":    OrderCreatedQueue,
	})
}
