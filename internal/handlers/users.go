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
	"go.mongodb.org/mongo-driver/mongo/options"

	"teabar/internal/models"
)

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
	Phone       *string `json:"phone"`
}

// UpdateUserProfile patches the profile-completion fields. Empty strings are
// treated as "not provided", never as a request to clear a field.
func UpdateUserProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/users/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "User not found", "")
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid body", "")
			return
		}

		updates := bson.M{}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Designation != nil && strings.TrimSpace(*req.Designation) != "" {
			updates["designation"] = strings.TrimSpace(*req.Designation)
		}
		if req.Department != nil && strings.TrimSpace(*req.Department) != "" {
			updates["department"] = strings.TrimSpace(*req.Department)
		}
		if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
			updates["phone"] = strings.TrimSpace(*req.Phone)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		if len(updates) == 0 {
			// Nothing to change; still look the user up so an unknown id
			// yields 404.
			err = db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&updated)
		} else {
			err = db.Collection("users").FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": updates},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).Decode(&updated)
		}
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found", "")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] profile update failed:", err)
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
