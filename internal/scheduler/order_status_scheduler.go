package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/nchoi/atelier-backend/internal/app/service"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

// OrderStatusScheduler moves orders along Processing -> Shipped ->
// Delivered on a fixed schedule.
type OrderStatusScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
}

func NewOrderStatusScheduler(orderService service.OrderService) *OrderStatusScheduler {
	return &OrderStatusScheduler{
		cron:         cron.New(),
		orderService: orderService,
	}
}

// Start registers the hourly progression job.
func (s *OrderStatusScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled order status progression", nil)

		advanced := s.orderService.AdvanceStatuses()

		logger.Info("Order status progression finished", map[string]interface{}{
			"advanced": advanced,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for order status progression", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order status scheduler started successfully (hourly)", nil)

	return nil
}

// Stop halts the scheduler.
func (s *OrderStatusScheduler) Stop() {
	logger.Info("Stopping order status scheduler...", nil)
	s.cron.Stop()
	logger.Info("Order status scheduler stopped", nil)
}
