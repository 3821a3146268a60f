package testimonial

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
	g := rg.Group("/testimonials")
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
		h.log.Error("list testimonials", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get testimonial", zap.Error(err))
		response.InternalError(c)
		return
	}
	if t == nil {
		response.NotFoundMsg(c, "Testimonial not found")
		return
	}
	response.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	in := CreateInput{
		Name:        form.Str(f, "name"),
		Testimonial: form.Str(f, "testimonial"),
	}
	rating, set, err := form.Int(f, "rating")
	if err != nil {
		response.BadRequest(c, "Rating must be a number")
		return
	}
	in.Rating, in.RatingSet = rating, set

	t, err := h.svc.Create(c.Request.Context(), in, photoFile(f))
	if err != nil {
		h.fail(c, "create testimonial", err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) update(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	var patch models.TestimonialPatch
	if v := form.Str(f, "name"); v != "" {
		patch.Name = &v
	}
	if v := form.Str(f, "testimonial"); v != "" {
		patch.Testimonial = &v
	}
	rating, set, err := form.Int(f, "rating")
	if err != nil {
		response.BadRequest(c, "Rating must be a number")
		return
	}
	if set {
		patch.Rating = &rating
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch, photoFile(f))
	if err != nil {
		h.fail(c, "update testimonial", err)
		return
	}
	if t == nil {
		response.NotFoundMsg(c, "Testimonial not found")
		return
	}
	response.OK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete testimonial", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !ok {
		response.NotFoundMsg(c, "Testimonial not found")
		return
	}
	response.Message(c, "Testimonial deleted successfully")
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errs.IsValidation(err) || upload.IsRejected(err) {
		response.BadRequest(c, err.Error())
		return
	}
	h.log.Error(op, zap.Error(err))
	response.InternalError(c)
}

func photoFile(f *multipart.Form) []upload.Incoming {
	if in, ok := upload.FromForm(f, "photo", upload.Photo); ok {
		return []upload.Incoming{in}
	}
	return nil
}
