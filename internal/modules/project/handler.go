package project

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
	g := rg.Group("/projects")
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
		h.log.Error("list projects", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get project", zap.Error(err))
		response.InternalError(c)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Project not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), createInputFromForm(f), projectFiles(f))
	if err != nil {
		h.fail(c, "create project", err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	f, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Multipart form data is required")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patchFromForm(f), projectFiles(f))
	if err != nil {
		h.fail(c, "update project", err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Project not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete project", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !ok {
		response.NotFoundMsg(c, "Project not found")
		return
	}
	response.Message(c, "Project deleted successfully")
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errs.IsValidation(err) || upload.IsRejected(err) {
		response.BadRequest(c, err.Error())
		return
	}
	h.log.Error(op, zap.Error(err))
	response.InternalError(c)
}

// projectFiles gathers the optional image and brochure parts; both share
// the images+PDF allow-list.
func projectFiles(f *multipart.Form) []upload.Incoming {
	var files []upload.Incoming
	if in, ok := upload.FromForm(f, "image", upload.ProjectAssets); ok {
		files = append(files, in)
	}
	if in, ok := upload.FromForm(f, "brochure", upload.ProjectAssets); ok {
		files = append(files, in)
	}
	return files
}

// patchFromForm builds a presence-aware patch. Required text fields sent
// empty are treated as "not provided" (the admin form posts every key on
// save); the optional description may be cleared explicitly.
func patchFromForm(f *multipart.Form) models.ProjectPatch {
	var patch models.ProjectPatch
	patch.Name = requiredField(f, "name")
	patch.Size = requiredField(f, "size")
	patch.Location = requiredField(f, "location")
	patch.Price = requiredField(f, "price")
	patch.Facing = requiredField(f, "facing")
	patch.Status = requiredField(f, "status")
	if form.Present(f, "description") {
		v := form.Str(f, "description")
		patch.Description = &v
	}
	return patch
}

func requiredField(f *multipart.Form, key string) *string {
	if v := form.Str(f, key); v != "" {
		return &v
	}
	return nil
}
