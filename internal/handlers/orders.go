package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teabar/internal/models"
)

type createOrderRequest struct {
	UserID        string             `json:"userId"`
	OrderType     string             `json:"orderType"`
	ScheduledDate string             `json:"scheduledDate"`
	PaymentMethod string             `json:"paymentMethod"`
	Department    string             `json:"department"`
	Items         []orderLineRequest `json:"items"`
}

type updateOrderRequest struct {
	OrderStatus   *string `json:"orderStatus"`
	PaymentStatus *string `json:"paymentStatus"`
	ScheduledDate *string `json:"scheduledDate"`
}

// orderResponse decorates a persisted order with its derived ready-time
// estimate. The estimate is recomputed on every request, never stored.
type orderResponse struct {
	models.Order
	EstimatedReadyTime *time.Time `json:"estimatedReadyTime,omitempty"`
}

/* =========================
   LIST ORDERS
========================= */

// GetOrders lists orders newest first, filtered by userId, status and
// orderType. Limit defaults to 50 and caps at 100.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}

		if userIDRaw := strings.TrimSpace(c.Query("userId")); userIDRaw != "" {
			userID, err := primitive.ObjectIDFromHex(userIDRaw)
			if err != nil {
				// Unknown user shape matches nothing, same as the filter
				// missing every row.
				c.JSON(http.StatusOK, []orderResponse{})
				return
			}
			filter["userId"] = userID
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["orderStatus"] = status
		}
		if orderType := strings.TrimSpace(c.Query("orderType")); orderType != "" {
			filter["orderType"] = orderType
		}

		limit := int64(50)
		if limitRaw := strings.TrimSpace(c.Query("limit")); limitRaw != "" {
			if parsed, err := strconv.ParseInt(limitRaw, 10, 64); err == nil {
				limit = parsed
			}
		}
		if limit > 100 {
			limit = 100
		}

		offset := int64(0)
		if offsetRaw := strings.TrimSpace(c.Query("offset")); offsetRaw != "" {
			if parsed, err := strconv.ParseInt(offsetRaw, 10, 64); err == nil {
				offset = parsed
			}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit).
			SetSkip(offset)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondInternalError(c, route, err)
			return
		}

		now := time.Now()
		responses := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			responses = append(responses, orderResponse{
				Order: order,
				EstimatedReadyTime: estimateReadyTime(etaByStatus, etaOrder{
					OrderType:   order.OrderType,
					OrderStatus: order.OrderStatus,
					CreatedAt:   order.CreatedAt,
				}, now),
			})
		}

		c.JSON(http.StatusOK, responses)
	}
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder validates the payload, prices every line against the current
// catalog (validate-then-commit: nothing is written until all lines pass),
// then persists the order and its items in one transaction.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "userId, orderType, paymentMethod, department and items are required", "MISSING_REQUIRED_FIELDS")
			return
		}

		if req.UserID == "" || req.OrderType == "" || req.PaymentMethod == "" || req.Department == "" || req.Items == nil {
			respondError(c, http.StatusBadRequest, "userId, orderType, paymentMethod, department and items are required", "MISSING_REQUIRED_FIELDS")
			return
		}
		if req.OrderType != "instant" && req.OrderType != "scheduled" {
			respondError(c, http.StatusBadRequest, "orderType must be instant or scheduled", "INVALID_ORDER_TYPE")
			return
		}
		if req.OrderType == "scheduled" && strings.TrimSpace(req.ScheduledDate) == "" {
			respondError(c, http.StatusBadRequest, "scheduledDate is required for scheduled orders", "MISSING_SCHEDULED_DATE")
			return
		}
		if !isValidPaymentMethod(req.PaymentMethod) {
			respondError(c, http.StatusBadRequest, "paymentMethod must be bkash, nagad, or card", "INVALID_PAYMENT_METHOD")
			return
		}
		if len(req.Items) == 0 {
			respondError(c, http.StatusBadRequest, "Order must contain at least one item", "EMPTY_ORDER")
			return
		}

		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid user ID is required", "INVALID_ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Reads only; the first failing line aborts the order before any write.
		priced, total, err := priceOrder(req.Items, func(menuItemID string) (*models.MenuItem, error) {
			id, err := primitive.ObjectIDFromHex(menuItemID)
			if err != nil {
				return nil, nil
			}
			var item models.MenuItem
			findErr := db.Collection("menu_items").FindOne(ctx, bson.M{"_id": id}).Decode(&item)
			if findErr == mongo.ErrNoDocuments {
				return nil, nil
			}
			if findErr != nil {
				return nil, findErr
			}
			return &item, nil
		})
		if err != nil {
			var notFound menuItemNotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":      "Menu item not found",
					"code":       "MENU_ITEM_NOT_FOUND",
					"menuItemId": notFound.MenuItemID,
				})
				return
			}
			var unavailable menuItemUnavailableError
			if errors.As(err, &unavailable) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":      "Menu item not available",
					"code":       "MENU_ITEM_UNAVAILABLE",
					"menuItemId": unavailable.MenuItemID,
				})
				return
			}
			var invalidQuantity invalidQuantityError
			if errors.As(err, &invalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":      "Quantity must be greater than zero",
					"code":       "INVALID_QUANTITY",
					"menuItemId": invalidQuantity.MenuItemID,
				})
				return
			}
			respondInternalError(c, route, err)
			return
		}

		now := time.Now()
		order := models.Order{
			UserID:        userID,
			OrderType:     req.OrderType,
			ScheduledDate: strings.TrimSpace(req.ScheduledDate),
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: "pending",
			OrderStatus:   "pending",
			Department:    req.Department,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		defer session.EndSession(ctx)

		var orderItems []models.OrderItem
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			orderID, _ := res.InsertedID.(primitive.ObjectID)
			order.ID = orderID

			orderItems = make([]models.OrderItem, 0, len(priced))
			for _, line := range priced {
				item := models.OrderItem{
					OrderID:    orderID,
					MenuItemID: line.MenuItem.ID,
					Quantity:   line.Quantity,
					Price:      line.Price,
					CreatedAt:  now,
				}
				itemRes, err := db.Collection("order_items").InsertOne(sessCtx, item)
				if err != nil {
					return nil, err
				}
				item.ID = itemRes.InsertedID.(primitive.ObjectID)
				orderItems = append(orderItems, item)
			}
			return nil, nil
		})
		if err != nil {
			log.Println("[ORDER] [ERROR] checkout transaction failed:", err)
			respondInternalError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"order":      order,
			"orderItems": orderItems,
		})
	}
}

/* =========================
   ORDER DETAIL
========================= */

// GetOrder returns the order, its lines joined with their menu items, the
// owning user without the password hash, and a confirmation-style ready-time
// estimate.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid order ID is required", "INVALID_ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found", "NOT_FOUND")
			return
		}
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		cursor, err := db.Collection("order_items").Find(ctx, bson.M{"orderId": id})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		var items []models.OrderItem
		if err := cursor.All(ctx, &items); err != nil {
			respondInternalError(c, route, err)
			return
		}

		details := make([]models.OrderItemDetail, 0, len(items))
		itemCount := 0
		itemNames := make([]string, 0, len(items))
		for _, item := range items {
			detail := models.OrderItemDetail{OrderItem: item}

			var menuItem models.MenuItemSummary
			findErr := db.Collection("menu_items").FindOne(ctx, bson.M{"_id": item.MenuItemID}).Decode(&menuItem)
			if findErr == nil {
				detail.MenuItem = &menuItem
				itemNames = append(itemNames, menuItem.Name)
			} else if findErr != mongo.ErrNoDocuments {
				respondInternalError(c, route, findErr)
				return
			}
			// A deleted menu item leaves menuItem null; the snapshotted price
			// on the line still stands.

			itemCount += item.Quantity
			details = append(details, detail)
		}

		var user models.User
		userErr := db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)

		var userView gin.H
		if userErr == nil {
			userView = gin.H{
				"id":         user.ID.Hex(),
				"email":      user.Email,
				"name":       user.Name,
				"department": user.Department,
			}
		}

		estimate := estimateReadyTime(etaByItems, etaOrder{
			OrderType: order.OrderType,
			ItemCount: itemCount,
			ItemNames: itemNames,
		}, time.Now())

		c.JSON(http.StatusOK, gin.H{
			"order":              order,
			"orderItems":         details,
			"user":               userView,
			"estimatedReadyTime": estimate,
		})
	}
}

/* =========================
   UPDATE ORDER
========================= */

// UpdateOrder patches orderStatus, paymentStatus and scheduledDate. Status
// transitions go through nextOrderStatus even though the graph is free today.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid order ID is required", "INVALID_ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found", "NOT_FOUND")
			return
		}
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid body", "")
			return
		}

		updates := bson.M{"updatedAt": time.Now()}

		if req.OrderStatus != nil {
			status, ok := nextOrderStatus(existing.OrderStatus, *req.OrderStatus)
			if !ok {
				respondError(c, http.StatusBadRequest, "Invalid order status", "INVALID_ORDER_STATUS")
				return
			}
			updates["orderStatus"] = status
		}
		if req.PaymentStatus != nil {
			if !isValidPaymentStatus(*req.PaymentStatus) {
				respondError(c, http.StatusBadRequest, "Invalid payment status", "INVALID_PAYMENT_STATUS")
				return
			}
			updates["paymentStatus"] = *req.PaymentStatus
		}
		if req.ScheduledDate != nil {
			updates["scheduledDate"] = *req.ScheduledDate
		}

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updates},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			log.Println("[ORDER] [ERROR] update failed:", err)
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
