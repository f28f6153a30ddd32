package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/statistics"
)

// HandleAdminListUsers lists all accounts.
func HandleAdminListUsers(c *fiber.Ctx) error {
	users, err := repository.GetGlobalFactory().GetUserRepository().List()
	if err != nil {
		log.Printf("admin user list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(users)
}

// HandleAdminDeleteUser removes an account.
func HandleAdminDeleteUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if err := repository.GetGlobalFactory().GetUserRepository().Delete(userID); err != nil {
		log.Printf("admin user delete failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleAdminListProducts lists the full catalog, unfiltered.
func HandleAdminListProducts(c *fiber.Ctx) error {
	products, err := repository.GetGlobalFactory().GetProductRepository().ListAll()
	if err != nil {
		log.Printf("admin product list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(products)
}

// HandleAdminLowStock lists products at or below the restock threshold.
func HandleAdminLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 5)
	products, err := repository.GetGlobalFactory().GetProductRepository().LowStock(threshold)
	if err != nil {
		log.Printf("low stock query failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{
		"threshold": threshold,
		"products":  products,
	})
}

// HandleAdminSalesStats returns the date-filtered sales report.
func HandleAdminSalesStats(c *fiber.Ctx) error {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid from date")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid to date")
		}
		// Include the whole end day.
		to = t.Add(24*time.Hour - time.Second)
	}

	stats, err := statistics.GetSalesStats(from, to)
	if err != nil {
		log.Printf("sales stats failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(stats)
}

// HandleAdminAnalyticsOverview returns the cached dashboard block.
func HandleAdminAnalyticsOverview(c *fiber.Ctx) error {
	overview, err := statistics.GetOverview()
	if err != nil {
		log.Printf("analytics overview failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(overview)
}

// HandleAdminAnalyticsRevenue returns per-day paid revenue.
func HandleAdminAnalyticsRevenue(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	points, err := statistics.GetRevenueSeries(days)
	if err != nil {
		log.Printf("revenue series failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(points)
}

// HandleAdminAnalyticsTopProducts returns the best sellers.
func HandleAdminAnalyticsTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	sales, err := statistics.GetTopProducts(limit)
	if err != nil {
		log.Printf("top products failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(sales)
}

// HandleAdminAnalyticsSpeciesTrends returns subscription counts per species.
func HandleAdminAnalyticsSpeciesTrends(c *fiber.Ctx) error {
	trends, err := statistics.GetSpeciesTrends()
	if err != nil {
		log.Printf("species trends failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(trends)
}

// HandleAdminAnalyticsChurn returns the subscription status breakdown.
func HandleAdminAnalyticsChurn(c *fiber.Ctx) error {
	report, err := statistics.GetSubscriptionChurn()
	if err != nil {
		log.Printf("subscription churn failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(report)
}
