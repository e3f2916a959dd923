package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartattend/internal/auth"
	"smartattend/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	ClassID  *uint  `json:"class_id" validate:"omitempty,gt=0"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup godoc
// @Summary Register a new student
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ClassID:  req.ClassID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

// Login godoc
// @Summary Login and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	accessToken, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   auth.TokenType,
	})
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return Unauthorized()
	}
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return Unauthorized()
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
