package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/FelixBraun92/PawPantry/internal/pkg/payment"
)

// HandleCreateCheckout hands back a gateway redirect for an owned order.
func HandleCreateCheckout(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orderID := c.QueryInt("order_id", 0)
	if orderID <= 0 {
		return jsonDetail(c, fiber.StatusBadRequest, "order_id is required")
	}

	co, err := paymentService.CreateCheckout(user.ID, uint(orderID))
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("checkout create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(co)
}

// HandlePaymentWebhook ingests the gateway callback. The signature is
// verified over the raw body before anything is parsed.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()
	if err := paymentService.VerifyWebhook(body, c.Get("X-Signature")); err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Invalid webhook signature")
	}

	var p payment.WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if err := paymentService.ApplyWebhook(p); err != nil {
		log.Printf("webhook apply failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandlePaymentStatus reports the payment state of an owned order.
func HandlePaymentStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid order id")
	}

	order, err := paymentService.Status(user.ID, orderID)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			return jsonDetail(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("payment status failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{
		"order_id":       order.ID,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	})
}
