package stats

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/pkg/errs"
	"github.com/terravista/estate-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/stats")
	g.GET("", h.get)
	g.POST("", authMW, h.upsert)
}

// defaultStats is what GET renders before any admin has saved numbers.
// It deliberately carries no _id so clients cannot mistake it for a
// stored document.
type defaultStats struct {
	YearsOfExperience int `json:"yearsOfExperience"`
	HappyClients      int `json:"happyClients"`
	PlotsSold         int `json:"plotsSold"`
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		h.log.Error("stats get failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if s == nil {
		response.OK(c, defaultStats{})
		return
	}
	response.OK(c, s)
}

func (h *Handler) upsert(c *gin.Context) {
	var patch models.StatsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	s, err := h.svc.Upsert(c.Request.Context(), patch)
	if err != nil {
		if errs.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		h.log.Error("stats upsert failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, s)
}
