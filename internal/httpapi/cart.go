package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartHandler struct {
	svc *cartapp.Service
}

func NewCartHandler(svc *cartapp.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

type cartItemView struct {
	CartItemID string  `json:"cart_item_id"`
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

type cartView struct {
	Items      []cartItemView `json:"items"`
	TotalPrice float64        `json:"total_price"`
	StaleLines int            `json:"stale_lines"`
}

func toCartView(cart domain.EnrichedCart) cartView {
	items := make([]cartItemView, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, cartItemView{
			CartItemID: l.LineID,
			ProductID:  l.ProductID,
			Name:       l.Name,
			Price:      l.UnitPrice,
			Quantity:   l.Quantity,
			Subtotal:   l.Subtotal,
		})
	}
	return cartView{
		Items:      items,
		TotalPrice: cart.GrandTotal,
		StaleLines: cart.StaleLines,
	}
}

func (h *CartHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.svc.AddItem(c.Request.Context(), c.Param("user_id"), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	if res.Outcome == cartapp.OutcomeMerged {
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart successfully"})
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.svc.GetCart(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, cartapp.ErrCartEmpty) {
			c.JSON(http.StatusOK, gin.H{"message": "User's cart is empty"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCartView(cart)})
}
