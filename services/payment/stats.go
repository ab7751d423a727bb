package payment

import (
	"context"
	"encoding/json"
	"time"

	"petcare/models"
	"petcare/utils"

	"go.uber.org/zap"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 10 * time.Second
)

// GetAdminStats aggregates the dashboard counters: bookings created since
// local midnight, PENDING payments, total users and revenue over all PAID
// payments. The four values are computed independently; no snapshot
// isolation is provided. A short-lived Redis cache absorbs dashboard
// polling; cache failures fall through to the stores.
func (s *DefaultPaymentService) GetAdminStats(actor models.Actor) (*models.AdminStats, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}

	if cached := s.statsFromCache(); cached != nil {
		return cached, nil
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)

	todayBookings, err := s.BookingRepo.CountCreatedBetween(midnight, tomorrow)
	if err != nil {
		return nil, err
	}
	pendingPayments, err := s.Repo.CountByStatus(models.PaymentPending)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.Repo.SumAmountByStatus(models.PaymentPaid)
	if err != nil {
		return nil, err
	}

	stats := &models.AdminStats{
		TodayBookings:   todayBookings,
		PendingPayments: pendingPayments,
		TotalUsers:      totalUsers,
		TotalRevenue:    totalRevenue,
	}
	s.statsToCache(stats)
	return stats, nil
}

func (s *DefaultPaymentService) statsFromCache() *models.AdminStats {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, statsCacheKey).Result()
	if err != nil {
		return nil
	}
	var stats models.AdminStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *DefaultPaymentService) statsToCache(stats *models.AdminStats) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache admin stats", zap.Error(err))
	}
}
