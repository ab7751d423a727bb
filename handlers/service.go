package handlers

import (
	"io"
	"net/http"
	"strconv"

	"petcare/middleware"
	"petcare/services/catalog"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the service catalog endpoints.
type ServiceHandler struct {
	Service catalog.CatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(svc catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Service: svc}
}

// ListServicesHandler returns the catalog (active only for non-admins).
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Service.List(middleware.GetActor(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetServiceHandler returns a single catalog entry.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateServiceHandler adds a catalog entry from a multipart form.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	input, ok := h.bindServiceForm(c)
	if !ok {
		return
	}

	svc, err := h.Service.Create(middleware.GetActor(c), input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service Created Successfully", "service": svc})
}

// UpdateServiceHandler modifies a catalog entry from a multipart form.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	input, ok := h.bindServiceForm(c)
	if !ok {
		return
	}

	svc, err := h.Service.Update(middleware.GetActor(c), c.Param("id"), input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service Updated Successfully", "service": svc})
}

// DeleteServiceHandler removes a catalog entry.
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Service.Delete(middleware.GetActor(c), c.Param("id")); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service Deleted Successfully"})
}

func (h *ServiceHandler) bindServiceForm(c *gin.Context) (catalog.ServiceInput, bool) {
	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	duration, _ := strconv.Atoi(c.PostForm("duration"))

	input := catalog.ServiceInput{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		Price:           price,
		DurationMinutes: duration,
		Category:        c.PostForm("category"),
	}
	if v := c.PostForm("isActive"); v != "" {
		active := v == "true"
		input.IsActive = &active
	}

	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read image", err.Error())
			return input, false
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read image", err.Error())
			return input, false
		}
		input.Image = data
		input.ImageTyp = file.Header.Get("Content-Type")
	}
	return input, true
}
