package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/internal/session"
)

// findCustomer looks a customer up by email. An unknown address answers 200
// with a sentinel payload instead of 404 so the endpoint does not leak
// account existence through the status code.
func (a *api) findCustomer(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []any{})
		return
	}
	customer, err := a.directory.FindByEmail(email)
	if errors.Is(err, apperr.ErrCustomerNotFound) {
		c.JSON(http.StatusOK, gin.H{"message": "El correo no existe"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *api) createCustomer(c *gin.Context) {
	var req struct {
		Nombre    string `json:"nombre"`
		Apellidos string `json:"apellidos"`
		Email     string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan campos obligatorios"})
		return
	}
	customer, err := a.directory.Create(req.Nombre, req.Apellidos, req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id_cliente": customer.ID})
}

func (a *api) updatePhone(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Telefono string `json:"telefono"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan campos obligatorios"})
		return
	}
	customer, err := a.directory.UpdatePhone(req.Email, req.Telefono)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "telefono": customer.Phone})
}

// auth handles both registration and login behind one action discriminator,
// as the original storefront did.
func (a *api) auth(c *gin.Context) {
	var req struct {
		Action    string `json:"action"`
		Nombre    string `json:"nombre"`
		Apellidos string `json:"apellidos"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Faltan campos"})
		return
	}

	switch req.Action {
	case "register":
		if _, err := a.directory.Register(req.Nombre, req.Apellidos, req.Email, req.Password); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})

	case "login":
		customer, err := a.directory.Authenticate(req.Email, req.Password)
		if errors.Is(err, apperr.ErrCustomerNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Usuario no encontrado"})
			return
		}
		if err != nil {
			abortWithError(c, err)
			return
		}
		if a.session != nil {
			if err := a.session.SetUser(&session.Profile{
				CustomerID: customer.ID,
				Name:       customer.Name,
				Email:      customer.Email,
			}); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"id_cliente": customer.ID,
			"nombre":     customer.Name,
			"email":      customer.Email,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Acción no válida"})
	}
}
