package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gameplanhq/artwork-workflow-api/internal/database"
	"github.com/gameplanhq/artwork-workflow-api/internal/dto"
	apierrors "github.com/gameplanhq/artwork-workflow-api/internal/errors"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
)

// CatalogHandler serves the customer and artwork lookups the task forms need.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCustomers returns all customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.GetDB().Order("title ASC").Find(&customers).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch customers")
		return
	}

	items := make([]dto.CustomerDTO, len(customers))
	for i, customer := range customers {
		items[i] = dto.ToCustomerDTO(customer)
	}

	c.JSON(http.StatusOK, gin.H{"customers": items})
}

// CreateCustomer creates a customer
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	type CreateCustomerRequest struct {
		Title string `json:"title" binding:"required,max=255"`
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer := &models.Customer{Title: req.Title}
	if err := database.GetDB().Create(customer).Error; err != nil {
		apierrors.InternalError(c, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerDTO(*customer))
}

// ListArtworks returns artworks, optionally filtered by customer
func (h *CatalogHandler) ListArtworks(c *gin.Context) {
	var parseErr error
	customerID, parseErr := optionalIDQuery(c, "customer_id", parseErr)
	if parseErr != nil {
		apierrors.BadRequest(c, parseErr.Error())
		return
	}

	query := database.GetDB().Order("title ASC")
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var artworks []models.Artwork
	if err := query.Find(&artworks).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch artworks")
		return
	}

	items := make([]dto.ArtworkDTO, len(artworks))
	for i, artwork := range artworks {
		items[i] = dto.ToArtworkDTO(artwork)
	}

	c.JSON(http.StatusOK, gin.H{"artworks": items})
}

// CreateArtwork creates an artwork under a customer
func (h *CatalogHandler) CreateArtwork(c *gin.Context) {
	type CreateArtworkRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
		Priority    string `json:"priority" binding:"omitempty,taskpriority"`
		CustomerID  uint64 `json:"customer_id" binding:"required"`
	}

	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var customer models.Customer
	if err := database.GetDB().First(&customer, req.CustomerID).Error; err != nil {
		apierrors.NotFound(c, "Customer not found")
		return
	}

	artwork := &models.Artwork{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
		CustomerID:  req.CustomerID,
	}
	if artwork.Priority == "" {
		artwork.Priority = models.PriorityMedium
	}

	if err := database.GetDB().Create(artwork).Error; err != nil {
		apierrors.InternalError(c, "Failed to create artwork")
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtworkDTO(*artwork))
}
