package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mgvega/tienda-backend/internal/cart"
)

func (a *api) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, a.session.Snapshot())
}

// saveCart replaces the stored cart. Entries are run through the aggregate
// so duplicate product ids and zero quantities never reach disk.
func (a *api) saveCart(c *gin.Context) {
	var entries []cart.Entry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Carrito no válido"})
		return
	}
	cc := cart.FromEntries(entries)
	if err := a.session.SetCart(cc); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"carrito":   cc.Entries(),
		"total":     cc.Total(),
		"articulos": cc.ItemCount(),
	})
}

func (a *api) toggleFavorite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fav, err := a.session.ToggleFavorite(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id_producto": id, "favorito": fav})
}
