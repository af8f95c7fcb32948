package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/internal/catalog"
	"github.com/mgvega/tienda-backend/models"
)

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID no válido"})
		return 0, false
	}
	return uint(id), true
}

// listFilter builds the catalog filter from the query string. Unparseable
// numeric filters are ignored, as the original API did.
func listFilter(c *gin.Context) (catalog.Filter, catalog.Page) {
	var f catalog.Filter
	if v, err := strconv.ParseUint(c.Query("categoria"), 10, 32); err == nil && v != 0 {
		f.CategoryID = uint(v)
	}
	if v, err := decimal.NewFromString(c.Query("precioMin")); err == nil {
		f.PriceMin = &v
	}
	if v, err := decimal.NewFromString(c.Query("precioMax")); err == nil {
		f.PriceMax = &v
	}
	f.Brand = c.Query("marca")
	if v, err := strconv.Atoi(c.Query("stock")); err == nil {
		f.MinStock = &v
	}

	p := catalog.Page{Limit: catalog.DefaultLimit}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		p.Offset = v
	}
	return f, p
}

// unfiltered reports whether the request is the default listing, the only
// one the cache holds.
func unfiltered(f catalog.Filter, p catalog.Page) bool {
	return f.CategoryID == 0 && f.PriceMin == nil && f.PriceMax == nil &&
		f.Brand == "" && f.MinStock == nil &&
		p.Limit == catalog.DefaultLimit && p.Offset == 0
}

func (a *api) listProducts(c *gin.Context) {
	f, p := listFilter(c)

	load := func() (catalog.ListResult, error) { return a.catalog.List(f, p) }
	var res catalog.ListResult
	var err error
	if unfiltered(f, p) {
		res, err = a.cache.Get(load)
	} else {
		res, err = load()
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productos": res.Products, "total": res.Total})
}

func (a *api) createProduct(c *gin.Context) {
	var req struct {
		Nombre      string          `json:"nombre"`
		Descripcion string          `json:"descripcion"`
		Precio      decimal.Decimal `json:"precio"`
		Stock       *int            `json:"stock"`
		Categoria   uint            `json:"categoria"`
		Marca       string          `json:"marca"`
		Imagen      string          `json:"imagen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan campos obligatorios"})
		return
	}
	p, err := a.catalog.Create(catalog.CreateSpec{
		Name:        req.Nombre,
		Description: req.Descripcion,
		Price:       req.Precio,
		Stock:       req.Stock,
		CategoryID:  req.Categoria,
		Brand:       req.Marca,
		Image:       req.Imagen,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	a.cache.Invalidate()
	c.JSON(http.StatusCreated, gin.H{"success": true, "producto": p})
}

func (a *api) updateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Nombre string          `json:"nombre"`
		Precio decimal.Decimal `json:"precio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos no válidos"})
		return
	}
	changed, err := a.catalog.Update(id, req.Nombre, req.Precio)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No se realizaron cambios en el producto"})
		return
	}
	a.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Producto actualizado con éxito"})
}

func (a *api) deleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.catalog.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	a.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *api) getStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	stock, err := a.catalog.GetStock(id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

func (a *api) adjustStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Stock *int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID y stock válidos son obligatorios"})
		return
	}
	p, err := a.catalog.AdjustStock(id, *req.Stock)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	a.cache.Invalidate()
	c.JSON(http.StatusOK, p)
}

func (a *api) listCategories(c *gin.Context) {
	var categories []models.Category
	if err := a.db.Find(&categories).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *api) createCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	if err := a.db.Create(&category).Error; err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
