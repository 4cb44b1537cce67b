package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajgh7/surprisevista/internal/adapter/api/dto"
	"github.com/rajgh7/surprisevista/internal/adapter/repository"
	"github.com/rajgh7/surprisevista/internal/domain/admin"
	"github.com/rajgh7/surprisevista/pkg/auth"
	"github.com/rajgh7/surprisevista/pkg/logger"
)

// AuthController authenticates panel operators and issues JWTs
type AuthController struct {
	admins     admin.Repository
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(admins admin.Repository, jwtService *auth.JWTService, log logger.Logger) *AuthController {
	return &AuthController{admins: admins, jwtService: jwtService, logger: log}
}

// Login godoc
// @Summary Admin login
// @Description Validates admin credentials and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			http.StatusBadRequest, "invalid payload", err.Error()))
		return
	}

	a, err := c.admins.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized, "invalid credentials", ""))
			return
		}
		c.logger.Error("admin lookup failed", "email", req.Email, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	if err := a.CheckPassword(req.Password); err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			http.StatusUnauthorized, "invalid credentials", ""))
		return
	}

	token, err := c.jwtService.GenerateToken(a)
	if err != nil {
		c.logger.Error("token generation failed", "email", req.Email, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError, "server_error", "please try again"))
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		Name:  a.Name,
		Email: a.Email,
	})
}
