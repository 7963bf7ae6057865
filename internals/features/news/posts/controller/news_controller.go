package controller

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/features/news/posts/dto"
	model "tabletennis_backend/internals/features/news/posts/model"
	"tabletennis_backend/internals/features/news/posts/service"
	helper "tabletennis_backend/internals/helpers"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/storage"
)

const imageDir = "news"

type NewsController struct {
	Service *service.NewsService
	Store   storage.BlobStore
}

func NewNewsController(db *gorm.DB, store storage.BlobStore) *NewsController {
	return &NewsController{Service: service.NewNewsService(db), Store: store}
}

// GET /api/news?status=&category=
func (ctrl *NewsController) GetAllNews(c *fiber.Ctx) error {
	rows, err := ctrl.Service.List(c.UserContext(), service.ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	})
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModels(rows))
}

// GET /api/news/:id
func (ctrl *NewsController) GetNewsByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "news")
	if err != nil {
		return err
	}
	m, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModel(m))
}

// POST /api/news (JSON or multipart with an "image" file)
func (ctrl *NewsController) CreateNews(c *fiber.Ctx) error {
	req, err := ctrl.parseRequest(c)
	if err != nil {
		return err
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return apperror.ValidationFields(map[string][]string{"title": {"required"}})
	}

	m, err := req.ToModel()
	if err != nil {
		return err
	}

	uploaded, err := ctrl.uploadImage(c)
	if err != nil {
		return err
	}
	if uploaded != nil {
		m.Image = uploaded
	}

	if err := ctrl.Service.Create(c.UserContext(), m); err != nil {
		if uploaded != nil {
			ctrl.removeImage(c.UserContext(), uploaded)
		}
		return err
	}
	return helper.JsonData(c, fiber.StatusCreated, dto.FromModel(m))
}

// PUT /api/news/:id
func (ctrl *NewsController) UpdateNews(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "news")
	if err != nil {
		return err
	}
	req, err := ctrl.parseRequest(c)
	if err != nil {
		return err
	}

	uploaded, err := ctrl.uploadImage(c)
	if err != nil {
		return err
	}

	m, oldImage, err := ctrl.Service.Update(c.UserContext(), id, func(m *model.NewsPostModel) error {
		if err := req.ApplyTo(m); err != nil {
			return err
		}
		if uploaded != nil {
			m.Image = uploaded
		}
		return nil
	})
	if err != nil {
		if uploaded != nil {
			ctrl.removeImage(c.UserContext(), uploaded)
		}
		return err
	}

	if oldImage != nil && (m.Image == nil || *m.Image != *oldImage) {
		ctrl.removeImage(c.UserContext(), oldImage)
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModel(m))
}

// DELETE /api/news/:id
func (ctrl *NewsController) DeleteNews(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "news")
	if err != nil {
		return err
	}
	m, err := ctrl.Service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	ctrl.removeImage(c.UserContext(), m.Image)
	return helper.JsonDeleted(c, "News deleted successfully", nil)
}

/* ============== request parsing ============== */

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

func (ctrl *NewsController) parseRequest(c *fiber.Ctx) (dto.NewsRequest, error) {
	var req dto.NewsRequest
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return req, apperror.Malformed("invalid multipart form", err)
		}
		str := func(key string) *string {
			if vs, ok := form.Value[key]; ok && len(vs) > 0 {
				v := vs[0]
				return &v
			}
			return nil
		}
		flag := func(key string) (*dto.FlexBool, error) {
			raw := str(key)
			if raw == nil {
				return nil, nil
			}
			b, err := dto.ParseFlexBool(*raw)
			if err != nil {
				return nil, apperror.ValidationFields(map[string][]string{key: {"boolean"}})
			}
			return &b, nil
		}

		req.Title = str("title")
		req.Content = str("content")
		req.Category = str("category")
		req.Status = str("status")
		req.Date = str("date")
		if _, hasFile := form.File["image"]; !hasFile {
			req.Image = str("image")
		}
		if req.IsBreaking, err = flag("isBreaking"); err != nil {
			return req, err
		}
		if req.IsHighlighted, err = flag("isHighlighted"); err != nil {
			return req, err
		}
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, apperror.Malformed("invalid request payload", err)
		}
	}

	if err := helper.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

/* ============== images ============== */

func (ctrl *NewsController) uploadImage(c *fiber.Ctx) (*string, error) {
	if !isMultipart(c) || ctrl.Store == nil {
		return nil, nil
	}
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return nil, nil
	}
	url, err := storage.UploadImage(c.UserContext(), ctrl.Store, imageDir, fh)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// best-effort
func (ctrl *NewsController) removeImage(ctx context.Context, url *string) {
	if url == nil || ctrl.Store == nil {
		return
	}
	if err := ctrl.Store.Delete(ctx, *url); err != nil {
		log.Printf("[WARN] delete image %s: %v", *url, err)
	}
}
