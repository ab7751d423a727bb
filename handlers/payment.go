package handlers

import (
	"io"
	"net/http"

	"petcare/middleware"
	"petcare/services/payment"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePaymentHandler initiates a payment attempt for a booking.
func (h *PaymentHandler) CreatePaymentHandler(c *gin.Context) {
	var input payment.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.CreatePayment(middleware.GetActor(c), input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment created successfully", "payment": created})
}

// UploadSlipHandler attaches a slip image to a payment.
func (h *PaymentHandler) UploadSlipHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Image file is required", "")
		return
	}
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

	upload := payment.SlipUpload{
		Data:        data,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}
	slipURL, err := h.Service.AttachSlip(middleware.GetActor(c), c.Param("id"), upload)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slip uploaded", "slipUrl": slipURL})
}

// GetPaymentHandler returns a payment with its booking resolved.
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	view, err := h.Service.GetPayment(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetMyPaymentsHandler lists the caller's payments, newest first.
func (h *PaymentHandler) GetMyPaymentsHandler(c *gin.Context) {
	views, err := h.Service.ListMine(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetAllPaymentsHandler lists every payment with details. Admin only.
func (h *PaymentHandler) GetAllPaymentsHandler(c *gin.Context) {
	views, err := h.Service.ListAllAdmin(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdatePaymentStatusHandler sets a payment's status. Staff/admin only.
func (h *PaymentHandler) UpdatePaymentStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.SetStatus(middleware.GetActor(c), c.Param("id"), input.Status)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "payment": updated})
}
