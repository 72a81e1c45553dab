package handler

import (
	"bytes"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"casevault/internal/model"
	"casevault/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app fiber.Router, store Pinger, svc service.CaseService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())
	app.Get("/categorize", CategorizePreview(svc))

	cases := app.Group("/cases")
	cases.Get("/", ListCases(svc))
	cases.Post("/", CreateCase(svc))
	cases.Get("/:id", GetCase(svc))
	cases.Put("/:id", SaveCase(svc))
	cases.Delete("/:id", DeleteCase(svc))
	cases.Get("/:id/summary", CaseSummary(svc))

	cases.Post("/:id/folders", CreateFolder(svc))
	cases.Delete("/:id/folders/:folderId", DeleteFolder(svc))
	cases.Post("/:id/folders/:folderId/documents", CaptureDocument(svc))
	cases.Patch("/:id/folders/:folderId/documents/:docId", RecategorizeDocument(svc))
	cases.Delete("/:id/folders/:folderId/documents/:docId", DeleteDocument(svc))

	registerItems(cases, "/:id/timeline", svc.Timeline)
	registerItems(cases, "/:id/voice-notes", svc.VoiceNotes)
	registerItems(cases, "/:id/witnesses", svc.Witnesses)
	registerItems(cases, "/:id/expenses", svc.Expenses)
	registerItems(cases, "/:id/deadlines", svc.Deadlines)
	registerItems(cases, "/:id/evidence", svc.Evidence)
}

func registerItems[T any](r fiber.Router, path string, items func() service.ItemService[T]) {
	r.Post(path, AddItem(items))
	r.Put(path+"/:itemId", UpdateItem(items))
	r.Delete(path+"/:itemId", DeleteItem(items))
}

// HealthCheck pings the store with a short timeout.
func HealthCheck(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

func ListCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cases, err := svc.ListCases(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cases)
	}
}

func CreateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CaseInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		created, err := svc.CreateCase(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func GetCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := svc.GetCase(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(found)
	}
}

// SaveCase replaces a whole case. The path id wins over any id in the body.
func SaveCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body model.Case
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		body.ID = c.Params("id")
		if err := svc.SaveCase(c.UserContext(), &body); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(body)
	}
}

func DeleteCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteCase(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CaseSummary serves the text report, or a PDF with ?format=pdf.
func CaseSummary(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		detailed := c.QueryBool("detailed", false)

		if c.Query("format") == "pdf" {
			var buf bytes.Buffer
			if err := svc.ExportPDF(c.UserContext(), &buf, id, detailed); err != nil {
				return writeServiceError(c, err)
			}
			c.Attachment(id + ".pdf")
			c.Type("pdf")
			return c.Send(buf.Bytes())
		}

		text, err := svc.Summary(c.UserContext(), id, detailed)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Type("txt", "utf-8")
		return c.SendString(text)
	}
}

type folderRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func CreateFolder(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req folderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		category, ok := model.ParseCategory(req.Category)
		if !ok {
			return writeServiceError(c, service.ErrInvalidCategory)
		}
		f, err := svc.CreateFolder(c.UserContext(), c.Params("id"), service.FolderInput{Name: req.Name, Category: category})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

func DeleteFolder(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteFolder(c.UserContext(), c.Params("id"), c.Params("folderId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type captureRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	URI         string   `json:"uri"`
	Tags        []string `json:"tags"`
	CustomName  string   `json:"customName"`
	Category    string   `json:"category"`
}

// CaptureDocument stores a new document. Category is optional; when absent
// it is derived from name and description.
func CaptureDocument(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req captureRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		in := service.CaptureInput{
			Name:        req.Name,
			Description: req.Description,
			Type:        model.DocumentType(req.Type),
			URI:         req.URI,
			Tags:        req.Tags,
			CustomName:  req.CustomName,
		}
		if req.Category != "" {
			category, ok := model.ParseCategory(req.Category)
			if !ok {
				return writeServiceError(c, service.ErrInvalidCategory)
			}
			in.Category = category
		}

		doc, err := svc.CaptureDocument(c.UserContext(), c.Params("id"), c.Params("folderId"), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func RecategorizeDocument(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Category string `json:"category"`
		}
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		category, ok := model.ParseCategory(req.Category)
		if !ok {
			return writeServiceError(c, service.ErrInvalidCategory)
		}
		doc, err := svc.RecategorizeDocument(c.UserContext(), c.Params("id"), c.Params("folderId"), c.Params("docId"), category)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

func DeleteDocument(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteDocument(c.UserContext(), c.Params("id"), c.Params("folderId"), c.Params("docId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CategorizePreview answers what category and name a capture would get now.
func CategorizePreview(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		description := c.Query("description")
		if name == "" && description == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name or description is required")
		}
		return c.JSON(svc.Preview(name, description, c.Query("customName")))
	}
}

func AddItem[T any](items func() service.ItemService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item T
		if err := c.BodyParser(&item); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		created, err := items().Add(c.UserContext(), c.Params("id"), item)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func UpdateItem[T any](items func() service.ItemService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item T
		if err := c.BodyParser(&item); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		updated, err := items().Update(c.UserContext(), c.Params("id"), c.Params("itemId"), item)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

func DeleteItem[T any](items func() service.ItemService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := items().Delete(c.UserContext(), c.Params("id"), c.Params("itemId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
