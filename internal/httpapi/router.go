// Package httpapi exposes the storefront over HTTP. Route shapes and field
// names follow the original storefront API (Spanish wire keys).
package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/internal/catalog"
	"github.com/mgvega/tienda-backend/internal/customers"
	"github.com/mgvega/tienda-backend/internal/orders"
	"github.com/mgvega/tienda-backend/internal/session"
)

// Listing results for the unfiltered default page are cached this long,
// matching the original storefront's product cache.
const productCacheTTL = 30 * time.Second

type api struct {
	db        *gorm.DB
	catalog   *catalog.Store
	cache     *catalog.Cache
	directory *customers.Directory
	orders    *orders.Service
	session   *session.Store
}

// SetupRouter wires every endpoint. sess may be nil to disable the session
// endpoints; admin guards the mutating product and fulfillment routes.
func SetupRouter(db *gorm.DB, sess *session.Store, admin gin.HandlerFunc) *gin.Engine {
	if admin == nil {
		admin = func(c *gin.Context) {}
	}
	directory := customers.NewDirectory(db)
	a := &api{
		db:        db,
		catalog:   catalog.NewStore(db),
		cache:     catalog.NewCache(productCacheTTL, nil),
		directory: directory,
		orders:    orders.NewService(db, directory),
		session:   sess,
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/productos", a.listProducts)
	r.GET("/api/productos/:id/stock", a.getStock)
	r.POST("/api/productos", admin, a.createProduct)
	r.PUT("/api/productos/:id", admin, a.updateProduct)
	r.DELETE("/api/productos/:id", admin, a.deleteProduct)
	r.PUT("/api/productos/:id/stock", admin, a.adjustStock)

	r.GET("/api/categorias", a.listCategories)
	r.POST("/api/categorias", admin, a.createCategory)

	r.GET("/api/clientes", a.findCustomer)
	r.POST("/api/clientes", a.createCustomer)
	r.PUT("/api/clientes/telefono", a.updatePhone)
	r.POST("/api/auth", a.auth)

	r.POST("/api/pedidos", a.placeOrder)
	r.GET("/api/pedidos", a.orderHistory)
	r.PUT("/api/pedidos/:id/completar", admin, a.completeOrder)

	if sess != nil {
		r.GET("/api/sesion", a.getSession)
		r.PUT("/api/sesion/carrito", a.saveCart)
		r.POST("/api/sesion/favoritos/:id", a.toggleFavorite)
	}

	return r
}

var errMessages = map[error]string{
	apperr.ErrNotFound:          "No encontrado",
	apperr.ErrCustomerNotFound:  "Usuario no encontrado",
	apperr.ErrEmptyCart:         "El carrito está vacío",
	apperr.ErrConflict:          "El correo ya está registrado",
	apperr.ErrInsufficientStock: "Stock insuficiente",
	apperr.ErrInvalidCredential: "Contraseña incorrecta",
	apperr.ErrInvalidPayment:    "Método de pago no válido",
	apperr.ErrInvalidTotal:      "Total no válido",
}

// abortWithError translates a service error into the response the storefront
// clients expect. Unexpected errors are logged and answered generically;
// internal error text never reaches a client.
func abortWithError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Error interno"})
		return
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, gin.H{"error": ve.Message})
		return
	}
	for sentinel, msg := range errMessages {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"error": msg})
			return
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
