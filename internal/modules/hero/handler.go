package hero

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
	"github.com/terravista/estate-core/internal/pkg/errs"
	"github.com/terravista/estate-core/internal/pkg/form"
	"github.com/terravista/estate-core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/hero")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list slides", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get slide", zap.Error(err))
		response.InternalError(c)
		return
	}
	if s == nil {
		response.NotFoundMsg(c, "Slide not found")
		return
	}
	response.OK(c, s)
}

func (h *Handler) create(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	in := CreateInput{
		Title:    form.Str(f, "title"),
		Subtitle: form.Str(f, "subtitle"),
	}
	order, set, err := form.Int(f, "order")
	if err != nil {
		response.BadRequest(c, "Order must be a number")
		return
	}
	if set {
		in.Order = order
	}

	s, err := h.svc.Create(c.Request.Context(), in, imageFile(f))
	if err != nil {
		h.fail(c, "create slide", err)
		return
	}
	response.Created(c, s)
}

func (h *Handler) update(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	// Title and subtitle are optional with an empty default, so sending
	// them empty clears them; order parses when present.
	var patch models.HeroSlidePatch
	if form.Present(f, "title") {
		v := form.Str(f, "title")
		patch.Title = &v
	}
	if form.Present(f, "subtitle") {
		v := form.Str(f, "subtitle")
		patch.Subtitle = &v
	}
	order, set, err := form.Int(f, "order")
	if err != nil {
		response.BadRequest(c, "Order must be a number")
		return
	}
	if set {
		patch.Order = &order
	}

	s, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch, imageFile(f))
	if err != nil {
		h.fail(c, "update slide", err)
		return
	}
	if s == nil {
		response.NotFoundMsg(c, "Slide not found")
		return
	}
	response.OK(c, s)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete slide", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !ok {
		response.NotFoundMsg(c, "Slide not found")
		return
	}
	response.Message(c, "Slide deleted successfully")
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errs.IsValidation(err) || upload.IsRejected(err) {
		response.BadRequest(c, err.Error())
		return
	}
	h.log.Error(op, zap.Error(err))
	response.InternalError(c)
}

func imageFile(f *multipart.Form) *upload.Incoming {
	if in, ok := upload.FromForm(f, "image", upload.SlideImage); ok {
		return &in
	}
	return nil
}
