package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/internal/orders"
)

// orderLineRequest normalizes the product identity at the boundary: stored
// carts historically carry either "id_producto" or "id", and internal code
// must never branch on that again.
type orderLineRequest struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

func (r *orderLineRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		IDProducto     *uint           `json:"id_producto"`
		ID             *uint           `json:"id"`
		Cantidad       int             `json:"cantidad"`
		PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.IDProducto != nil:
		r.ProductID = *raw.IDProducto
	case raw.ID != nil:
		r.ProductID = *raw.ID
	}
	r.Quantity = raw.Cantidad
	r.UnitPrice = raw.PrecioUnitario
	return nil
}

func (a *api) placeOrder(c *gin.Context) {
	var req struct {
		IDCliente  uint               `json:"id_cliente"`
		Email      string             `json:"email"`
		Total      decimal.Decimal    `json:"total"`
		MetodoPago string             `json:"metodo_pago"`
		Productos  []orderLineRequest `json:"productos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos incompletos"})
		return
	}

	// The buyer arrives either as the stored profile's email or as a raw
	// customer id; both resolve through the directory.
	email := req.Email
	if email == "" {
		if req.IDCliente == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Datos incompletos"})
			return
		}
		customer, err := a.directory.FindByID(req.IDCliente)
		if err != nil {
			abortWithError(c, err)
			return
		}
		email = customer.Email
	}

	lines := make([]orders.Line, 0, len(req.Productos))
	for _, p := range req.Productos {
		lines = append(lines, orders.Line{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	receipt, err := a.orders.Place(email, lines, req.MetodoPago, req.Total)
	if err != nil {
		abortWithError(c, err)
		return
	}
	a.cache.Invalidate()
	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"id_pedido":      receipt.OrderID,
		"puntos_sumados": receipt.PointsAwarded,
	})
}

func (a *api) orderHistory(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el email"})
		return
	}
	history, err := a.orders.History(email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pedidos": history})
}

func (a *api) completeOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := a.orders.Complete(id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
		return
	}
	if errors.Is(err, apperr.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "El pedido no está pendiente"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
