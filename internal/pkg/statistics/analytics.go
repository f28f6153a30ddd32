package statistics

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/internal/pkg/cache"
	"github.com/FelixBraun92/PawPantry/internal/pkg/database"
)

const (
	CacheKeyOverview = "statistics:overview"
	CacheExpiration  = 30 * time.Minute
)

// Overview is the headline dashboard block. Revenue is booked order volume
// across all orders regardless of payment state; the paid-only view lives in
// the sales report.
type Overview struct {
	TotalUsers          int64   `json:"total_users"`
	TotalOrders         int64   `json:"total_orders"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalProducts       int64   `json:"total_products"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	PendingOrders       int64   `json:"pending_orders"`
}

// RevenuePoint is one day of paid revenue.
type RevenuePoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// ProductSales aggregates units and revenue per product.
type ProductSales struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Units     int64   `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// SpeciesTrend counts subscriptions per pet species.
type SpeciesTrend struct {
	Species       string `json:"species"`
	Subscriptions int64  `json:"subscriptions"`
}

// ChurnReport summarizes the subscription base by status. The churn rate is
// the cancelled share of the whole base as a 0-100 percentage.
type ChurnReport struct {
	Total            int64   `json:"total_subscriptions"`
	Active           int64   `json:"active"`
	Paused           int64   `json:"paused"`
	Cancelled        int64   `json:"cancelled"`
	ChurnRatePercent float64 `json:"churn_rate_percent"`
}

// SalesStats is the date-filtered admin sales report.
type SalesStats struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	OrderCount   int64          `json:"order_count"`
	TotalRevenue float64        `json:"total_revenue"`
	TopItems     []ProductSales `json:"top_items"`
}

// GetOverview returns the cached dashboard overview, recomputing it from
// the database when the cache is cold.
func GetOverview() (*Overview, error) {
	if raw, err := cache.Get(CacheKeyOverview); err == nil {
		var cached Overview
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	db := database.GetDB()
	var o Overview

	if err := db.Model(&models.User{}).Count(&o.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&o.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&o.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&o.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionActive).
		Count(&o.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).
		Count(&o.PendingOrders).Error; err != nil {
		return nil, err
	}

	if data, err := json.Marshal(o); err == nil {
		if err := cache.Set(CacheKeyOverview, string(data), CacheExpiration); err != nil {
			log.Printf("Error caching statistics overview: %v", err)
		}
	}

	return &o, nil
}

// GetRevenueSeries returns per-day paid revenue for the last n days.
func GetRevenueSeries(days int) ([]RevenuePoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var points []RevenuePoint
	err := database.GetDB().Model(&models.Order{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("payment_status = ? AND created_at >= ?", models.PaymentPaid, since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&points).Error
	return points, err
}

// GetTopProducts returns the best selling products by units across paid orders.
func GetTopProducts(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}

	var sales []ProductSales
	err := database.GetDB().Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS name, " +
			"SUM(order_items.quantity) AS units, " +
			"SUM(order_items.quantity * order_items.unit_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.payment_status = ?", models.PaymentPaid).
		Group("order_items.product_id, products.name").
		Order("units DESC").
		Limit(limit).
		Scan(&sales).Error
	return sales, err
}

// GetSpeciesTrends returns subscription counts grouped by the subscribed
// pet's species.
func GetSpeciesTrends() ([]SpeciesTrend, error) {
	var trends []SpeciesTrend
	err := database.GetDB().Model(&models.Subscription{}).
		Select("pets.species AS species, COUNT(subscriptions.id) AS subscriptions").
		Joins("JOIN pets ON pets.id = subscriptions.pet_id").
		Group("pets.species").
		Order("subscriptions DESC").
		Scan(&trends).Error
	return trends, err
}

// GetSubscriptionChurn returns the status breakdown of the subscription
// base with the cancelled share as a percentage.
func GetSubscriptionChurn() (*ChurnReport, error) {
	db := database.GetDB()
	var r ChurnReport

	if err := db.Model(&models.Subscription{}).Count(&r.Total).Error; err != nil {
		return nil, err
	}
	counts := map[models.SubscriptionStatus]*int64{
		models.SubscriptionActive:    &r.Active,
		models.SubscriptionPaused:    &r.Paused,
		models.SubscriptionCancelled: &r.Cancelled,
	}
	for status, dest := range counts {
		if err := db.Model(&models.Subscription{}).
			Where("status = ?", status).
			Count(dest).Error; err != nil {
			return nil, err
		}
	}

	r.ChurnRatePercent = churnRatePercent(r.Cancelled, r.Total)
	return &r, nil
}

// churnRatePercent is cancelled over total as a 0-100 percentage, rounded to
// two decimals. An empty base churns at zero.
func churnRatePercent(cancelled, total int64) float64 {
	if total == 0 {
		return 0
	}
	return models.Round2(float64(cancelled) / float64(total) * 100)
}

// GetSalesStats returns revenue and top items for paid orders inside the
// given window. Zero times leave that side of the window open.
func GetSalesStats(from, to time.Time) (*SalesStats, error) {
	db := database.GetDB()

	paidOrders := func() *gorm.DB {
		q := db.Model(&models.Order{}).Where("payment_status = ?", models.PaymentPaid)
		if !from.IsZero() {
			q = q.Where("created_at >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("created_at <= ?", to)
		}
		return q
	}

	stats := &SalesStats{}
	if !from.IsZero() {
		stats.From = from.Format("2006-01-02")
	}
	if !to.IsZero() {
		stats.To = to.Format("2006-01-02")
	}

	if err := paidOrders().Count(&stats.OrderCount).Error; err != nil {
		return nil, err
	}
	if err := paidOrders().Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	items := db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS name, "+
			"SUM(order_items.quantity) AS units, "+
			"SUM(order_items.quantity * order_items.unit_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.payment_status = ?", models.PaymentPaid)
	if !from.IsZero() {
		items = items.Where("orders.created_at >= ?", from)
	}
	if !to.IsZero() {
		items = items.Where("orders.created_at <= ?", to)
	}
	if err := items.
		Group("order_items.product_id, products.name").
		Order("units DESC").
		Limit(5).
		Scan(&stats.TopItems).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// InvalidateOverview drops the cached dashboard block.
func InvalidateOverview() {
	if err := cache.Delete(CacheKeyOverview); err != nil {
		log.Printf("Error invalidating statistics overview cache: %v", err)
	}
}
