package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"datalens/internal/dataset"
	apierrors "datalens/internal/errors"
)

// maxIngestBytes caps ingest payloads at 32 MiB.
const maxIngestBytes = 32 << 20

// defaultPreviewRows is used when the rows query parameter is absent.
const defaultPreviewRows = 10

// DatasetHandler handles dataset HTTP requests with RFC 7807 error responses.
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Ingest)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Get("/quality", h.Quality)
		r.Post("/clean", h.Clean)
		r.Get("/preview", h.Preview)
		r.Post("/analyze", h.Analyze)
		r.Get("/export", h.Export)
	})

	return r
}

// DatasetCtx validates the dataset ID path parameter.
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Dataset ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Ingest handles POST /api/datasets. It accepts either a multipart upload
// with a CSV file under the "file" field or a JSON body of the form
// {"data": [...]}.
func (h *DatasetHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIngestBytes)

	ds, err := h.parseIngest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Ingest(r.Context(), ds)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

func (h *DatasetHandler) parseIngest(r *http.Request) (*dataset.Dataset, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, apierrors.InvalidRequestWithError(fmt.Errorf("parsing content type: %w", err))
	}

	if mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, apierrors.ErrValidation("file", "A CSV file upload is required")
		}
		defer file.Close()

		ds, err := dataset.FromCSV(file)
		if err != nil {
			return nil, apierrors.InvalidRequestWithError(fmt.Errorf("parsing csv upload: %w", err))
		}
		return ds, nil
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierrors.InvalidRequestWithError(fmt.Errorf("parsing request body: %w", err))
	}
	if len(body.Data) == 0 {
		return nil, apierrors.ErrValidation("data", "The data field is required")
	}

	ds, err := dataset.DecodeJSON(bytes.NewReader(body.Data))
	if err != nil {
		return nil, apierrors.InvalidRequestWithError(fmt.Errorf("parsing data records: %w", err))
	}
	return ds, nil
}

// Get handles GET /api/datasets/{id}.
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Delete handles DELETE /api/datasets/{id}.
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// Quality handles GET /api/datasets/{id}/quality. The report is recomputed
// against the current working copy on every call.
func (h *DatasetHandler) Quality(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Quality(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// Clean handles POST /api/datasets/{id}/clean.
func (h *DatasetHandler) Clean(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Clean(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, outcome)
}

// Preview handles GET /api/datasets/{id}/preview?rows=N.
func (h *DatasetHandler) Preview(w http.ResponseWriter, r *http.Request) {
	rows := defaultPreviewRows
	if raw := r.URL.Query().Get("rows"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("rows", "rows must be an integer"))
			return
		}
		rows = parsed
	}

	preview, err := h.service.Preview(r.Context(), chi.URLParam(r, "id"), rows)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, preview)
}

// Analyze handles POST /api/datasets/{id}/analyze.
func (h *DatasetHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// Export handles GET /api/datasets/{id}/export?format=csv|xlsx. The body
// is streamed as a file attachment, so the export validates the format
// against the store before writing any response bytes.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")

	var buf bytes.Buffer
	filename, err := h.service.Export(r.Context(), id, format, &buf)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "writing export response",
			slog.String("dataset_id", id),
			slog.String("error", err.Error()))
	}
}
