package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-list-api/internal/auth"
	"todo-list-api/internal/models"
	"todo-list-api/internal/response"
	"todo-list-api/internal/store"
)

// AuthHandler serves signup and signin.
type AuthHandler struct {
	users  *store.UserStore
	tokens *auth.TokenManager
}

func NewAuthHandler(users *store.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents the signin request payload
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username, email and password are required!")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Username, email and password are required!")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.users.FindByUsername(ctx, req.Username); err == nil {
		response.Error(c, http.StatusBadRequest, "Username already in use!")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "Some error occurred while creating the User.")
		return
	}

	if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
		response.Error(c, http.StatusBadRequest, "Email already in use!")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "Some error occurred while creating the User.")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Some error occurred while creating the User.")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := h.users.Create(ctx, &user); err != nil {
		response.Error(c, http.StatusInternalServerError, "Some error occurred while creating the User.")
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully!", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Signin handles POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required!")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Username and password are required!")
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "User not found!")
		} else {
			response.Error(c, http.StatusInternalServerError, "Some error occurred during login.")
		}
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		response.Error(c, http.StatusUnauthorized, "Invalid Password!")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Some error occurred during login.")
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"accessToken": token,
	})
}
