package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"teabar/internal/auth"
	"teabar/internal/models"
)

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func sanitizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// validateRegistration returns the contract error for a registration payload,
// or empty strings when the payload is acceptable.
func validateRegistration(email, password, name string) (message, code string) {
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return "Email, password, and name are required", "MISSING_REQUIRED_FIELDS"
	}
	if !strings.Contains(sanitizeEmail(email), "@") {
		return "Invalid email or password format", "INVALID_FORMAT"
	}
	if len(password) < 6 {
		return "Invalid email or password format", "INVALID_FORMAT"
	}
	return "", ""
}

// Register creates a customer account. Self-registration never produces an
// admin.
func Register(db *mongo.Database, hasher auth.PasswordHasher, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"
		defer handlePanic(c, route)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Email, password, and name are required", "MISSING_REQUIRED_FIELDS")
			return
		}

		if message, code := validateRegistration(req.Email, req.Password, req.Name); code != "" {
			respondError(c, http.StatusBadRequest, message, code)
			return
		}

		email := sanitizeEmail(req.Email)
		name := strings.TrimSpace(req.Name)
		department := strings.TrimSpace(req.Department)
		if department == "" {
			department = "Not Specified"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			respondInternalError(c, route, err)
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			respondError(c, http.StatusConflict, "User with this email already exists", "USER_EXISTS")
			return
		}

		hash, err := hasher.Hash(req.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			respondInternalError(c, route, err)
			return
		}

		user := models.User{
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleCustomer,
			Name:         name,
			Department:   department,
			Phone:        strings.TrimSpace(req.Phone),
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			respondInternalError(c, route, err)
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)

		accessToken, err := issueAccessToken(user, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			respondInternalError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"user":        user,
			"message":     "Registration successful",
			"accessToken": accessToken,
		})
	}
}

// Login verifies credentials. Unknown email and wrong password produce the
// same body, so the response never reveals which half was wrong.
func Login(db *mongo.Database, hasher auth.PasswordHasher, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Email and password are required", "MISSING_CREDENTIALS")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(c, http.StatusBadRequest, "Email and password are required", "MISSING_CREDENTIALS")
			return
		}

		email := sanitizeEmail(req.Email)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] login invalid credentials")
			respondError(c, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			respondInternalError(c, route, err)
			return
		}

		if !hasher.Verify(req.Password, user.PasswordHash) {
			log.Println("[AUTH] [ERROR] login invalid credentials")
			respondError(c, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
			return
		}

		accessToken, err := issueAccessToken(user, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondInternalError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"user":        user,
			"message":     "Login successful",
			"accessToken": accessToken,
		})
	}
}

// GetMe returns the bearer's user record. Requires middleware.UserAuth.
func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("userId")
		if !ok {
			log.Println("[AUTH] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] get me failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func issueAccessToken(user models.User, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"role":   user.Role,
		"email":  user.Email,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// userIDFromHeader extracts the user identity from an optional bearer token.
// An absent header is a guest, not an error.
func userIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return nil, errors.New("userId claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, errors.New("invalid userId")
	}

	return &userID, nil
}
