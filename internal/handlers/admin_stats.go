package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type topItemStat struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// GetAdminStats aggregates order counts, paid revenue and the best selling
// items for the admin dashboard.
func GetAdminStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		orders := db.Collection("orders")

		totalOrders, err := orders.CountDocuments(ctx, bson.M{})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		pendingOrders, err := orders.CountDocuments(ctx, bson.M{"orderStatus": "pending"})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		// Revenue counts only orders whose payment went through.
		revenueCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"paymentStatus": "completed"}}},
			{{Key: "$group", Value: bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": "$totalAmount"},
			}}},
		})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		var revenueRows []struct {
			Total float64 `bson:"total"`
		}
		if err := revenueCursor.All(ctx, &revenueRows); err != nil {
			respondInternalError(c, route, err)
			return
		}
		totalRevenue := 0.0
		if len(revenueRows) > 0 {
			totalRevenue = revenueRows[0].Total
		}

		topCursor, err := db.Collection("order_items").Aggregate(ctx, mongo.Pipeline{
			{{Key: "$group", Value: bson.M{
				"_id":      "$menuItemId",
				"quantity": bson.M{"$sum": "$quantity"},
				"revenue":  bson.M{"$sum": bson.M{"$multiply": []string{"$price", "$quantity"}}},
			}}},
			{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
			{{Key: "$limit", Value: 5}},
			{{Key: "$lookup", Value: bson.M{
				"from":         "menu_items",
				"localField":   "_id",
				"foreignField": "_id",
				"as":           "menuItem",
			}}},
		})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		var topRows []struct {
			ID       primitive.ObjectID `bson:"_id"`
			Quantity int                `bson:"quantity"`
			Revenue  float64            `bson:"revenue"`
			MenuItem []struct {
				Name string `bson:"name"`
			} `bson:"menuItem"`
		}
		if err := topCursor.All(ctx, &topRows); err != nil {
			respondInternalError(c, route, err)
			return
		}

		topItems := make([]topItemStat, 0, len(topRows))
		for _, row := range topRows {
			stat := topItemStat{
				MenuItemID: row.ID.Hex(),
				Quantity:   row.Quantity,
				Revenue:    row.Revenue,
			}
			if len(row.MenuItem) > 0 {
				stat.Name = row.MenuItem[0].Name
			} else {
				stat.Name = "(deleted item)"
			}
			topItems = append(topItems, stat)
		}

		log.Println("[ADMIN] [INFO] stats computed, orders:", totalOrders)
		c.JSON(http.StatusOK, gin.H{
			"totalOrders":   totalOrders,
			"pendingOrders": pendingOrders,
			"totalRevenue":  totalRevenue,
			"topItems":      topItems,
		})
	}
}
