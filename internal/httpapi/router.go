package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Catalog *CatalogHandler
	Cart    *CartHandler
	Users   *UserHandler
}

func NewRouter(log *zap.Logger, allowedOrigins string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	corsCfg := cors.DefaultConfig()
	if allowedOrigins == "" || allowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to our E-commerce API"})
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/products", h.Catalog.List)
	r.POST("/products", h.Catalog.Create)
	r.GET("/products/:id", h.Catalog.Get)
	r.PATCH("/products/:id", h.Catalog.Update)
	r.DELETE("/products/:id", h.Catalog.Delete)

	r.POST("/register", h.Users.Register)
	r.POST("/login", h.Users.Login)

	r.POST("/cart/:user_id", h.Cart.Add)
	r.GET("/cart/:user_id", h.Cart.Get)

	return r
}
