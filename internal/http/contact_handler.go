package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokecontact/internal/compat"
	"pokecontact/internal/domain"
	"pokecontact/internal/pokeapi"
	"pokecontact/internal/repository"
	"pokecontact/internal/service"
)

// ContactHandler cubre los contactos, sus asociaciones con pokemon y las
// consultas de compatibilidad.
type ContactHandler struct {
	logger       *zap.Logger
	contacts     repository.ContactRepository
	associations *service.AssociationService
	matches      *service.MatchService
	pokeClient   *pokeapi.Client
}

func NewContactHandler(
	logger *zap.Logger,
	contacts repository.ContactRepository,
	associations *service.AssociationService,
	matches *service.MatchService,
	pokeClient *pokeapi.Client,
) *ContactHandler {
	return &ContactHandler{
		logger:       logger,
		contacts:     contacts,
		associations: associations,
		matches:      matches,
		pokeClient:   pokeClient,
	}
}

// ListContacts maneja GET /contacts: el listado fusionado, sin contactos
// huerfanos de asociacion.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contacts": h.associations.ListWithPokemon(c.Request.Context())})
}

// CreateContact maneja POST /contacts.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create contact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.contacts.Create(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.logger.Error("create contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create contact"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateContact maneja PUT /contacts/:id.
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.contacts.Update(c.Request.Context(), c.Param("id"), req.Name, req.Phone)
	if errors.Is(err, repository.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	if err != nil {
		h.logger.Error("update contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update contact"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

// DeleteContact maneja DELETE /contacts/:id. Elimina el contacto y su
// asociacion si la tuviera.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id := c.Param("id")
	err := h.contacts.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}
	if err != nil {
		h.logger.Error("delete contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete contact"})
		return
	}
	if err := h.associations.Remove(c.Request.Context(), id); err != nil {
		h.logger.Warn("association cleanup failed", zap.String("contact_id", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// BatchDeleteContacts maneja POST /contacts/batch-delete: a mejor
// esfuerzo, con desenlace por id.
func (h *ContactHandler) BatchDeleteContacts(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	outcomes := h.associations.RemoveMany(c.Request.Context(), req.IDs)
	results := make(map[string]string, len(outcomes))
	failures := 0
	for id, err := range outcomes {
		if err != nil {
			results[id] = err.Error()
			failures++
			continue
		}
		results[id] = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "failures": failures})
}

// SaveAssociation maneja PUT /contacts/:id/pokemon. Acepta un perfil
// completo o solo pokemonId, en cuyo caso lo resuelve contra el catalogo.
func (h *ContactHandler) SaveAssociation(c *gin.Context) {
	var req struct {
		PokemonID   int                 `json:"pokemonId"`
		Pokemon     *domain.Pokemon     `json:"pokemon"`
		CustomStats *domain.CustomStats `json:"customStats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id := c.Param("id")
	if _, err := h.contacts.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	var pokemon domain.Pokemon
	switch {
	case req.Pokemon != nil:
		pokemon = *req.Pokemon
	case req.PokemonID > 0:
		p, err := h.pokeClient.FetchProfile(c.Request.Context(), strconv.Itoa(req.PokemonID))
		if err != nil {
			h.logger.Warn("pokemon resolve failed", zap.Int("pokemon_id", req.PokemonID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "pokemon not found"})
			return
		}
		pokemon = p
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "pokemon or pokemonId required"})
		return
	}

	if err := h.associations.Save(c.Request.Context(), id, pokemon, req.CustomStats); err != nil {
		h.logger.Error("save association failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save association"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// GetAssociation maneja GET /contacts/:id/pokemon.
func (h *ContactHandler) GetAssociation(c *gin.Context) {
	a, ok, err := h.associations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("get association failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read association"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "association not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"association": a})
}

// DeleteAssociation maneja DELETE /contacts/:id/pokemon.
func (h *ContactHandler) DeleteAssociation(c *gin.Context) {
	if err := h.associations.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("remove association failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove association"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetCompatibility maneja GET /compatibility?a=&b=. Cuando alguno de los
// contactos no tiene asociacion el puntaje es null, no cero.
func (h *ContactHandler) GetCompatibility(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both a and b are required"})
		return
	}
	score, ok := h.matches.Compare(c.Request.Context(), a, b)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"compatibility": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"compatibility": score})
}

// GetBestMatches maneja GET /contacts/:id/matches con threshold y
// batchSize opcionales.
func (h *ContactHandler) GetBestMatches(c *gin.Context) {
	opts := compat.Options{
		Threshold: intQuery(c, "threshold"),
		BatchSize: intQuery(c, "batchSize"),
	}
	matches, err := h.matches.BestMatches(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		h.logger.Warn("best matches failed", zap.String("contact_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "contact has no association"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
