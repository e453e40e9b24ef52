package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ice.edu/helpinghand/internal/bootstrap"
	"ice.edu/helpinghand/internal/middleware"
	"ice.edu/helpinghand/internal/modules/user/dto"
	userService "ice.edu/helpinghand/internal/modules/user/service"
	"ice.edu/helpinghand/pkg/ratelimiter"
	"ice.edu/helpinghand/pkg/response"
	"ice.edu/helpinghand/pkg/validator"
)

type AuthHandler struct {
	service      userService.UserService
	cookieMaxAge int
	secureCookie bool
}

func NewAuthHandler(service userService.UserService, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		if rateLimitErr, ok := err.(*ratelimiter.RateLimitError); ok {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, h.cookieMaxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me resolves the current session. Anonymous callers get a 200 with a null
// user rather than a 401, which is what the web client expects.
func (h *AuthHandler) Me(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	user := h.service.ResolveSession(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Seed(c *gin.Context) {
	created, err := h.service.Seed(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Admin already exists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database seeded successfully",
		"credentials": gin.H{
			"email":    bootstrap.DefaultAdminEmail,
			"password": bootstrap.DefaultAdminPassword,
		},
	})
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actorID, targetID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
