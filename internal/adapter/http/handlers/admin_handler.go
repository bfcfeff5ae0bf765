package handlers

import (
	"net/http"

	request "laboratorio_dental/internal/adapter/http/dto/request"
	response "laboratorio_dental/internal/adapter/http/dto/response"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login and user management.
type AuthHandler struct {
	auth usecase.IAuthUseCase
}

func NewAuthHandler(auth usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    credentials  body      request.LoginRequest  true  "Credentials"
// @Success  200          {object}  response.LoginResponse
// @Failure  401          {object}  pkg.HTTPError
// @Failure  429          {object}  pkg.HTTPError
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if !bindJSON(c, &payload) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLogin(res))
}

// CreateUser godoc
// @Summary  Create a user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    user  body      request.CreateUserRequest  true  "User"
// @Success  201   {object}  response.UserResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  403   {object}  pkg.HTTPError
// @Failure  409   {object}  pkg.HTTPError
// @Router   /users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var payload request.CreateUserRequest
	if !bindJSON(c, &payload) {
		return
	}

	u, err := h.auth.CreateUser(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(u))
}

// SweepHandler triggers the background sweeps on demand.
type SweepHandler struct {
	sweeps usecase.ISweepUseCase
}

func NewSweepHandler(sweeps usecase.ISweepUseCase) *SweepHandler {
	return &SweepHandler{sweeps: sweeps}
}

// RunUnpaidCheck godoc
// @Summary  Notify completed orders still unpaid after the grace period
// @Tags     admin
// @Produce  json
// @Security Bearer
// @Success  200  {object}  response.CountResponse
// @Failure  403  {object}  pkg.HTTPError
// @Router   /admin/sweeps/unpaid [post]
func (h *SweepHandler) RunUnpaidCheck(c *gin.Context) {
	n, err := h.sweeps.CheckUnpaidOrders(c.Request.Context())
	if err != nil {
		writeError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}

// RunPurge godoc
// @Summary  Delete completed orders past the retention window
// @Tags     admin
// @Produce  json
// @Security Bearer
// @Success  200  {object}  response.CountResponse
// @Failure  403  {object}  pkg.HTTPError
// @Router   /admin/sweeps/purge [post]
func (h *SweepHandler) RunPurge(c *gin.Context) {
	n, err := h.sweeps.PurgeStaleOrders(c.Request.Context())
	if err != nil {
		writeError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}

// Ping godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
