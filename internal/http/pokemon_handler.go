package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokecontact/internal/pokeapi"
)

// PokemonHandler expone el catalogo remoto: perfiles, busqueda y cache.
type PokemonHandler struct {
	logger *zap.Logger
	client *pokeapi.Client
}

func NewPokemonHandler(logger *zap.Logger, client *pokeapi.Client) *PokemonHandler {
	return &PokemonHandler{logger: logger, client: client}
}

// GetPokemon maneja GET /pokemon/:key con id numerico o nombre.
func (h *PokemonHandler) GetPokemon(c *gin.Context) {
	p, err := h.client.FetchProfile(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.logger.Warn("pokemon fetch failed", zap.String("key", c.Param("key")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "pokemon not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": p})
}

// GetRandomPokemon maneja GET /pokemon/random.
func (h *PokemonHandler) GetRandomPokemon(c *gin.Context) {
	p, err := h.client.FetchRandomProfile(c.Request.Context())
	if err != nil {
		h.logger.Error("random pokemon fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch random pokemon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pokemon": p})
}

// SearchPokemon maneja GET /pokemon/search?q=.
func (h *PokemonHandler) SearchPokemon(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}
	results := h.client.SearchCatalog(c.Request.Context(), q)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetCatalog maneja GET /pokemon/catalog. Un fallo remoto degrada a lista
// vacia, nunca a error, para no romper las vistas de listado.
func (h *PokemonHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.client.FetchFullCatalog(c.Request.Context())})
}

// ClearCache maneja DELETE /pokemon/cache. Solo vacia la cache de
// perfiles; el catalogo completo conserva su ciclo de vida propio.
func (h *PokemonHandler) ClearCache(c *gin.Context) {
	h.client.ClearCache()
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
