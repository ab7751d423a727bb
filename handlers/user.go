package handlers

import (
	"io"
	"net/http"

	"petcare/middleware"
	"petcare/services/user"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account and authentication endpoints.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterHandler creates a new account and returns an auth token.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Register(input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler authenticates a user and returns an auth token.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Authenticate(input.Username, input.Password)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler returns the caller's own profile.
func (h *UserHandler) MeHandler(c *gin.Context) {
	actor := middleware.GetActor(c)
	u, err := h.Service.GetUserByID(actor.ID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler applies a partial profile update; an optional
// multipart "image" part replaces the profile picture.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	actor := middleware.GetActor(c)

	input := user.UpdateProfileInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
	}
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read image", err.Error())
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read image", err.Error())
			return
		}
		input.Image = data
		input.ImageTyp = file.Header.Get("Content-Type")
	}

	updated, err := h.Service.UpdateProfile(actor, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}

// ChangePasswordHandler replaces the caller's password.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor := middleware.GetActor(c)
	if err := h.Service.ChangePassword(actor, input.CurrentPassword, input.NewPassword); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
