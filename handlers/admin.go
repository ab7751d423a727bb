package handlers

import (
	"net/http"

	"petcare/middleware"
	"petcare/services/payment"
	"petcare/services/user"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations: payment
// review/reconciliation, dashboard stats and user management.
type AdminHandler struct {
	Payments payment.PaymentService
	Users    user.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ps payment.PaymentService, us user.UserService) *AdminHandler {
	return &AdminHandler{Payments: ps, Users: us}
}

// GetStatsHandler returns the dashboard counters.
func (ah *AdminHandler) GetStatsHandler(c *gin.Context) {
	stats, err := ah.Payments.GetAdminStats(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPendingReviewHandler lists payments awaiting manual verification.
func (ah *AdminHandler) GetPendingReviewHandler(c *gin.Context) {
	reviews, err := ah.Payments.GetPendingForReview(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ApprovePaymentHandler approves the current payment for a booking.
func (ah *AdminHandler) ApprovePaymentHandler(c *gin.Context) {
	approved, err := ah.Payments.ApprovePayment(c.Param("id"), middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment approved successfully", "payment": approved})
}

// RejectPaymentHandler rejects the current payment for a booking so the
// user can resubmit.
func (ah *AdminHandler) RejectPaymentHandler(c *gin.Context) {
	if err := ah.Payments.RejectPayment(c.Param("id"), middleware.GetActor(c)); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment rejected successfully"})
}

// GetAllUsersHandler returns all accounts.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.Users.GetAllUsers(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ChangeRoleHandler sets a user's role.
func (ah *AdminHandler) ChangeRoleHandler(c *gin.Context) {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := ah.Users.ChangeRole(middleware.GetActor(c), c.Param("id"), input.Role)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "user": updated})
}

// DeleteUserHandler removes an account.
func (ah *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := ah.Users.DeleteUser(middleware.GetActor(c), c.Param("id")); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
