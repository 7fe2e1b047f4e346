package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokecontact/internal/service"
)

// TradeHandler expone el intercambio de asociaciones entre instalaciones.
type TradeHandler struct {
	logger *zap.Logger
	trades *service.TradeService
}

func NewTradeHandler(logger *zap.Logger, trades *service.TradeService) *TradeHandler {
	return &TradeHandler{logger: logger, trades: trades}
}

// ExportTrade maneja GET /trade/:id: el payload compartible de un contacto.
func (h *TradeHandler) ExportTrade(c *gin.Context) {
	payload, err := h.trades.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Warn("trade export failed", zap.String("contact_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "contact or association not found"})
		return
	}
	// El payload va sin envolver: es exactamente lo que se comparte.
	c.JSON(http.StatusOK, payload)
}

// ImportTrade maneja POST /trade/import con el payload crudo en el body.
func (h *TradeHandler) ImportTrade(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	payload, err := service.ParseTradePayload(body)
	if err != nil {
		h.logger.Warn("trade import rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade payload"})
		return
	}
	id, err := h.trades.Import(c.Request.Context(), payload)
	if err != nil {
		h.logger.Error("trade import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not import trade"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
