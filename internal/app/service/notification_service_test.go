package service

import (
	"testing"
	"time"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
)

func TestNotificationService_NilClientDropsEvent(t *testing.T) {
	svc := NewNotificationService(nil)

	// Must not panic or block when no broker is configured.
	svc.OrderCreated(&model.Order{
		ID:         1,
		CustomerID: 2,
		PlacedAt:   time.Now(),
		Items:      []model.OrderItem{{ProductID: 3, Quantity: 1, UnitPrice: 9.99}},
	})
}
