package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/checkout"
	"github.com/FelixBraun92/PawPantry/internal/pkg/usercontext"
)

// HandleCreateOrder runs the checkout pipeline for the caller's cart.
func HandleCreateOrder(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var in checkout.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := checkoutService.CreateOrder(user, in)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidProduct):
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid product in order")
		case errors.Is(err, checkout.ErrOutOfStock):
			return jsonDetail(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("order create failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListMyOrders lists the caller's orders.
func HandleListMyOrders(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orders, err := repository.GetGlobalFactory().GetOrderRepository().GetByUserID(user.ID)
	if err != nil {
		log.Printf("order list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one order; foreign orders read as not found.
func HandleGetOrder(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := repository.GetGlobalFactory().GetOrderRepository().GetByID(orderID)
	if err != nil {
		return jsonDetail(c, fiber.StatusNotFound, "Order not found")
	}
	if order.UserID != user.ID && !usercontext.IsAdmin(c) {
		return jsonDetail(c, fiber.StatusNotFound, "Order not found")
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels a non-terminal order for its owner or an admin.
func HandleCancelOrder(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := checkoutService.Cancel(orderID, user.ID, usercontext.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrOrderNotFound):
			return jsonDetail(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, checkout.ErrInvalidTransition):
			return jsonDetail(c, fiber.StatusBadRequest, "Cannot cancel this order")
		default:
			log.Printf("order cancel failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}
	return c.JSON(order)
}

// HandleGetInvoice derives the invoice view of an order.
func HandleGetInvoice(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	invoice, err := checkoutService.Invoice(orderID, user.ID, usercontext.IsAdmin(c))
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("invoice failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(invoice)
}

// HandleAdminListOrders lists all orders.
func HandleAdminListOrders(c *fiber.Ctx) error {
	orders, err := repository.GetGlobalFactory().GetOrderRepository().List()
	if err != nil {
		log.Printf("admin order list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(orders)
}

// HandleAdminSetOrderStatus is the admin status override. Any valid status
// value is accepted, no transition checks.
func HandleAdminSetOrderStatus(c *fiber.Ctx) error {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := checkoutService.SetStatus(orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrOrderNotFound):
			return jsonDetail(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, checkout.ErrInvalidTransition):
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid order status")
		default:
			log.Printf("status override failed: %v", err)
			return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
	}
	return c.JSON(order)
}

// HandleAdminAutoCancel sweeps stale pending unpaid orders.
func HandleAdminAutoCancel(c *fiber.Ctx) error {
	olderThan := c.QueryInt("older_than_minutes", 60)
	count, err := checkoutService.AutoCancelUnpaid(olderThan)
	if err != nil {
		log.Printf("auto-cancel sweep failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"cancelled": count})
}
