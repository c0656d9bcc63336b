package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service      *Service
	tokenTTL     time.Duration
	cookieSecure bool
}

func NewHandler(service *Service, tokenTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		service:      service,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// Register создаёт пользователя по email и паролю.
func (h *Handler) Register(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"detail": "Вы успешно зарегистрировались!"})
}

// Login выдаёт access_token в cookie и в теле ответа.
func (h *Handler) Login(c *gin.Context) {
	if err := h.service.EnsureAnonymous(middleware.AccessToken(c)); err != nil {
		response.Fail(c, err)
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, validator.Translate(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.cookieSecure, true)
	response.Success(c, http.StatusOK, LoginResponse{
		Detail:      "Успешный вход в систему!",
		AccessToken: token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.AccessTokenCookie)
	if err := h.service.Logout(token); err != nil {
		response.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{"detail": "Вы вышли из системы!"})
}
