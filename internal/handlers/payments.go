package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"teabar/internal/models"
)

type createPaymentRequest struct {
	OrderID       string   `json:"orderId"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"paymentMethod"`
	TransactionID string   `json:"transactionId"`
	PaymentStatus string   `json:"paymentStatus"`
}

// CreatePayment records a payment against an order. A completed payment also
// flips the owning order's paymentStatus; the amount is not checked against
// the order total.
func CreatePayment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments"
		defer handlePanic(c, route)

		var req createPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "orderId, amount and paymentMethod are required", "MISSING_REQUIRED_FIELDS")
			return
		}

		if req.OrderID == "" || req.Amount == nil || req.PaymentMethod == "" {
			respondError(c, http.StatusBadRequest, "orderId, amount and paymentMethod are required", "MISSING_REQUIRED_FIELDS")
			return
		}
		if *req.Amount <= 0 {
			respondError(c, http.StatusBadRequest, "Amount must be a positive number", "INVALID_AMOUNT")
			return
		}
		if !isValidPaymentMethod(req.PaymentMethod) {
			respondError(c, http.StatusBadRequest, "paymentMethod must be bkash, nagad, or card", "INVALID_PAYMENT_METHOD")
			return
		}
		if req.PaymentStatus != "" && !isValidPaymentStatus(req.PaymentStatus) {
			respondError(c, http.StatusBadRequest, "paymentStatus must be pending or completed", "INVALID_PAYMENT_STATUS")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			respondError(c, http.StatusNotFound, "Order not found", "ORDER_NOT_FOUND")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("orders").CountDocuments(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		if count == 0 {
			respondError(c, http.StatusNotFound, "Order not found", "ORDER_NOT_FOUND")
			return
		}

		paymentStatus := req.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = "completed"
		}

		payment := models.Payment{
			OrderID:       orderID,
			Amount:        *req.Amount,
			PaymentMethod: req.PaymentMethod,
			TransactionID: strings.TrimSpace(req.TransactionID),
			PaymentStatus: paymentStatus,
			CreatedAt:     time.Now(),
		}

		res, err := db.Collection("payments").InsertOne(ctx, payment)
		if err != nil {
			log.Println("[PAYMENT] [ERROR] insert failed:", err)
			respondInternalError(c, route, err)
			return
		}
		payment.ID = res.InsertedID.(primitive.ObjectID)

		if paymentStatus == "completed" {
			_, err := db.Collection("orders").UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{
				"$set": bson.M{
					"paymentStatus": "completed",
					"updatedAt":     time.Now(),
				},
			})
			if err != nil {
				log.Println("[PAYMENT] [ERROR] order payment status update failed:", err)
				respondInternalError(c, route, err)
				return
			}
		}

		log.Println("[PAYMENT] [INFO] payment recorded for order:", orderID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"payment": payment,
			"message": "Payment recorded successfully",
		})
	}
}
