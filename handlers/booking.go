package handlers

import (
	"net/http"

	"petcare/middleware"
	"petcare/services/booking"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler creates a new PENDING booking for the caller.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.CreateBooking(middleware.GetActor(c), input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking Created Successfully.", "booking": created})
}

// GetBookingHandler returns one booking with payment state resolved.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	view, err := h.Service.GetBooking(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetMyBookingsHandler lists the caller's bookings.
func (h *BookingHandler) GetMyBookingsHandler(c *gin.Context) {
	views, err := h.Service.ListMine(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetAllBookingsHandler lists every booking. Admin only.
func (h *BookingHandler) GetAllBookingsHandler(c *gin.Context) {
	views, err := h.Service.ListAll(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateBookingStatusHandler sets a booking's status. Staff/admin only.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.UpdateStatus(middleware.GetActor(c), c.Param("id"), input.Status)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking Status Updated Successfully!", "booking": updated})
}

// CancelBookingHandler cancels a booking and reports the deletion deadline.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	result, err := h.Service.Cancel(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Booking Cancelled Successfully! Will be deleted in 15 minutes.",
		"booking":         result.Booking,
		"cancelExpiresAt": result.ExpiresAt,
	})
}

// UndoCancelHandler restores a cancelled booking within the grace window.
func (h *BookingHandler) UndoCancelHandler(c *gin.Context) {
	restored, err := h.Service.UndoCancel(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking Restored Successfully!", "booking": restored})
}
