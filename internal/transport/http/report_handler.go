package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "energyreport/internal/errors"
	"energyreport/internal/exporter"
	"energyreport/internal/files"
	appmiddleware "energyreport/internal/middleware"
	api "energyreport/pkg/contracts/api/v1"
)

// Multipart field names accepted by the report endpoints.
const (
	FieldVariables = "variables"
	FieldChart     = "chart"
	FieldTemplate  = "template"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory
// before spilling to temp files. The body itself is capped separately.
const multipartMemory = 8 << 20

// ReportHandlerConfig carries the dependencies of a ReportHandler
type ReportHandlerConfig struct {
	Service ReportServiceInterface
	// Files and DefaultTemplate supply the template when a request does not
	// upload one. An empty DefaultTemplate makes the upload mandatory.
	Files           *files.Manager
	DefaultTemplate string
	MaxUploadBytes  int64
	Validator       *appmiddleware.Validator
	ErrorHandler    *apierrors.ErrorHandler
	Logger          *slog.Logger
}

// ReportHandler handles report generation requests with RFC 7807 errors
type ReportHandler struct {
	service         ReportServiceInterface
	files           *files.Manager
	defaultTemplate string
	maxUploadBytes  int64
	validator       *appmiddleware.Validator
	errorHandler    *apierrors.ErrorHandler
	logger          *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(cfg ReportHandlerConfig) *ReportHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fm := cfg.Files
	if fm == nil {
		fm = files.NewManager("")
	}
	return &ReportHandler{
		service:         cfg.Service,
		files:           fm,
		defaultTemplate: cfg.DefaultTemplate,
		maxUploadBytes:  cfg.MaxUploadBytes,
		validator:       cfg.Validator,
		errorHandler:    cfg.ErrorHandler,
		logger:          logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(appmiddleware.ContentTypeValidator(h.errorHandler, "multipart/form-data"))

	r.Post("/", h.Generate)
	r.Post("/placeholders", h.Placeholders)

	return r
}

// Generate handles POST /api/reports. The variable sheet, chart sheet and
// template arrive as multipart uploads; the finished document is returned as
// text/html, or as application/pdf when format=pdf.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	if err := h.parseForm(w, r); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	opts, err := h.reportOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	in, err := h.readInputs(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	in.ChartTarget = opts.MPAN

	h.logger.InfoContext(ctx, "generating report",
		slog.String("request_id", reqID),
		slog.String("format", opts.Format),
		slog.Int("variables_bytes", len(in.Variables)),
		slog.Int("chart_bytes", len(in.Chart)),
		slog.Int("template_bytes", len(in.Template)),
	)

	result, err := h.service.Generate(ctx, in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	name := result.Name
	if opts.Name != "" {
		name = exporter.SanitizeFilename(opts.Name)
	}
	w.Header().Set("X-Report-ID", result.ID)
	w.Header().Set("X-Report-Name", name)

	if opts.Format == api.FormatPDF {
		pdf, err := h.service.RenderPDF(ctx, result)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.writeDocument(w, "application/pdf", name+".pdf", opts.Download, pdf)
		return
	}

	h.writeDocument(w, "text/html; charset=utf-8", name+".html", opts.Download, []byte(result.Document))
}

// Placeholders handles POST /api/reports/placeholders and returns the
// placeholder table built from the uploaded sheets without rendering.
func (h *ReportHandler) Placeholders(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	in, err := h.readInputs(r, false)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Placeholders(r.Context(), in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.PlaceholdersResponse{
		ID:           result.ID,
		Name:         result.Name,
		MPAN:         result.MPAN,
		Placeholders: result.Placeholders,
		Stats:        result.Stats,
	})
}

// parseForm caps the request body and parses the multipart form. A body over
// the cap surfaces as *http.MaxBytesError.
func (h *ReportHandler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return maxErr
		}
		return apierrors.InvalidRequestWithError(err)
	}
	return nil
}

func (h *ReportHandler) reportOptions(r *http.Request) (api.ReportGenerateRequest, error) {
	opts := api.ReportGenerateRequest{
		Format: r.FormValue("format"),
		Name:   r.FormValue("name"),
		MPAN:   r.FormValue("mpan"),
	}
	if v := r.FormValue("download"); v != "" {
		download, err := strconv.ParseBool(v)
		if err != nil {
			return opts, apierrors.ErrValidation("download", "must be a boolean")
		}
		opts.Download = download
	}

	if h.validator != nil {
		if err := h.validator.ValidateStruct(opts); err != nil {
			return opts, err
		}
	}
	if opts.Format == "" {
		opts.Format = api.FormatHTML
	}
	return opts, nil
}

// readInputs collects the uploaded files. The template is read only when
// withTemplate is set and falls back to the configured default template.
func (h *ReportHandler) readInputs(r *http.Request, withTemplate bool) (files.Inputs, error) {
	var in files.Inputs
	var err error

	if in.Variables, err = readUpload(r, FieldVariables); err != nil {
		return in, err
	}
	if in.Chart, err = readUpload(r, FieldChart); err != nil {
		return in, err
	}
	if !withTemplate {
		return in, nil
	}

	if _, uploaded := r.MultipartForm.File[FieldTemplate]; !uploaded && h.defaultTemplate != "" {
		data, err := h.files.ReadFile(h.defaultTemplate)
		if err != nil {
			return in, apierrors.NewStorageError("read default template", err).
				WithContext("path", h.defaultTemplate)
		}
		in.Template = string(data)
		return in, nil
	}

	template, err := readUpload(r, FieldTemplate)
	if err != nil {
		return in, err
	}
	in.Template = string(template)
	return in, nil
}

func readUpload(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, apierrors.MissingUpload(field)
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apierrors.InvalidRequestWithError(fmt.Errorf("read upload %q: %w", field, err))
	}
	return data, nil
}

func (h *ReportHandler) writeDocument(w http.ResponseWriter, contentType, fileName string, download bool, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if download {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
