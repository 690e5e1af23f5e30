package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"photovault/internal/middleware"
	"photovault/internal/uploader"
)

type batchItemResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	PhotoID string `json:"photoId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type batchResult struct {
	Completed int               `json:"completed"`
	Failed    int               `json:"failed"`
	Items     []batchItemResult `json:"items"`
}

// BatchUpload handles POST /api/photos/batch: a multipart form with one or
// more "files" parts, optional "category" and "tags" fields. Items run
// through the upload queue with the configured concurrency cap; the
// response reports every item's terminal state.
func (h *PhotoHandler) BatchUpload(manager *uploader.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return jsonErr(c, fiber.StatusBadRequest, "multipart form required")
		}
		files := form.File["files"]
		if len(files) == 0 {
			return jsonErr(c, fiber.StatusBadRequest, "no files in batch")
		}
		category := c.FormValue("category")
		var tags []string
		if raw := c.FormValue("tags"); raw != "" {
			tags = strings.Split(raw, ",")
		}

		items := make([]*uploader.Item, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				items = append(items, &uploader.Item{Name: fh.Filename})
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				items = append(items, &uploader.Item{Name: fh.Filename})
				continue
			}
			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = http.DetectContentType(data)
			}
			items = append(items, &uploader.Item{
				Name:        fh.Filename,
				ContentType: ct,
				Category:    category,
				Tags:        tags,
				Data:        data,
			})
		}

		userID := middleware.UserID(c)
		events := manager.Run(c.Context(), items, h.photos.StoreFunc(userID))

		res := batchResult{Items: make([]batchItemResult, len(items))}
		for ev := range events {
			switch ev.Kind {
			case uploader.EventItemCompleted:
				res.Items[ev.Index] = batchItemResult{
					Name:    items[ev.Index].Name,
					Status:  string(uploader.StatusCompleted),
					PhotoID: ev.PhotoID,
				}
			case uploader.EventItemFailed:
				res.Items[ev.Index] = batchItemResult{
					Name:   items[ev.Index].Name,
					Status: string(uploader.StatusFailed),
					Error:  ev.Err.Error(),
				}
			case uploader.EventBatchDone:
				res.Completed = ev.Completed
				res.Failed = ev.Failed
			}
		}
		h.photos.NotifyBatchFinished(c.Context(), userID, res.Completed, res.Failed)
		return jsonOK(c, fiber.StatusOK, res)
	}
}
