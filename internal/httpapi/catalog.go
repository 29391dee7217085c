package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type CatalogHandler struct {
	svc *catalogapp.Service
}

func NewCatalogHandler(svc *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
}

type productPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int64   `json:"stock"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock.Count(),
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]productResponse, 0, len(products))
	for _, p := range products {
		views = append(views, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"data":    toProductResponse(p),
	})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(p)})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var req productPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    toProductResponse(p),
	})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
