package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	pokemonH *PokemonHandler,
	contactH *ContactHandler,
	tradeH *TradeHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pokemon := r.Group("/pokemon")
	pokemon.GET("/random", pokemonH.GetRandomPokemon)
	pokemon.GET("/search", pokemonH.SearchPokemon)
	pokemon.GET("/catalog", pokemonH.GetCatalog)
	pokemon.DELETE("/cache", pokemonH.ClearCache)
	pokemon.GET("/:key", pokemonH.GetPokemon)

	contacts := r.Group("/contacts")
	contacts.GET("", contactH.ListContacts)
	contacts.POST("", contactH.CreateContact)
	contacts.POST("/batch-delete", contactH.BatchDeleteContacts)
	contacts.PUT("/:id", contactH.UpdateContact)
	contacts.DELETE("/:id", contactH.DeleteContact)
	contacts.PUT("/:id/pokemon", contactH.SaveAssociation)
	contacts.GET("/:id/pokemon", contactH.GetAssociation)
	contacts.DELETE("/:id/pokemon", contactH.DeleteAssociation)
	contacts.GET("/:id/matches", contactH.GetBestMatches)

	r.GET("/compatibility", contactH.GetCompatibility)

	trade := r.Group("/trade")
	trade.POST("/import", tradeH.ImportTrade)
	trade.GET("/:id", tradeH.ExportTrade)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
