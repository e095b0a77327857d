package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"energyreport/internal/dataprocessing"
	apierrors "energyreport/internal/errors"
	"energyreport/internal/exporter"
	"energyreport/internal/files"
	"energyreport/internal/infrastructure"
	"energyreport/internal/report"
	"energyreport/pkg/contracts/domain"
)

// Surfaces label report metrics by entry point.
const (
	SurfaceCLI  = "cli"
	SurfaceHTTP = "http"
)

// PDFRenderer prints a finished HTML document.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ReportServiceConfig carries the collaborators of a ReportService. Only
// Loader is needed for GenerateToDisk; Generate needs none of them.
type ReportServiceConfig struct {
	Loader     *files.Loader
	OutputDir  string
	PDF        PDFRenderer
	Disclaimer string
	Surface    string
	Tracer     trace.Tracer
	Metrics    *infrastructure.ReportMetrics
	Logger     *slog.Logger
}

// WriteOptions selects the extra artifacts GenerateToDisk produces next to
// the HTML document.
type WriteOptions struct {
	PDF              bool
	DumpPlaceholders bool
}

// ReportService turns a variable sheet, a chart sheet and an HTML template
// into a finished report.
type ReportService struct {
	loader     *files.Loader
	documents  *exporter.DocumentWriter
	csv        *exporter.CSVWriter
	pdf        PDFRenderer
	disclaimer string
	surface    string
	tracer     trace.Tracer
	metrics    *infrastructure.ReportMetrics
	logger     *slog.Logger
}

// NewReportService creates a report service from cfg, filling defaults for
// the optional collaborators.
func NewReportService(cfg ReportServiceConfig) *ReportService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "report_service")

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.InstrumentationName)
	}

	surface := cfg.Surface
	if surface == "" {
		surface = SurfaceCLI
	}

	return &ReportService{
		loader:     cfg.Loader,
		documents:  exporter.NewDocumentWriter(cfg.OutputDir, logger),
		csv:        exporter.NewCSVWriter(cfg.OutputDir),
		pdf:        cfg.PDF,
		disclaimer: cfg.Disclaimer,
		surface:    surface,
		tracer:     tracer,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

// Generate runs the report pipeline on in-memory inputs: decode both sheets,
// build the record map, derive cost bands and the chart series for the
// site's MPAN, assemble the placeholders and substitute them into the
// template. Nothing is written.
func (s *ReportService) Generate(ctx context.Context, in files.Inputs) (*domain.ReportResult, error) {
	return s.run(ctx, "report.generate", in, true)
}

// Placeholders runs the pipeline up to the placeholder table and skips
// template substitution, so in.Template may be empty and the result has no
// Document.
func (s *ReportService) Placeholders(ctx context.Context, in files.Inputs) (*domain.ReportResult, error) {
	return s.run(ctx, "report.placeholders", in, false)
}

func (s *ReportService) run(ctx context.Context, spanName string, in files.Inputs, render bool) (result *domain.ReportResult, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("report.surface", s.surface)))
	defer func() {
		finishSpan(span, err)
		s.metrics.RecordReport(ctx, s.surface, time.Since(start), err)
	}()

	result, err = s.generate(ctx, in, render)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "report generation failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("report.name", result.Name),
		attribute.Int("report.placeholders", result.Stats.Placeholders),
	)
	s.logger.InfoContext(ctx, "report generated",
		slog.String("name", result.Name),
		slog.String("mpan", result.MPAN),
		slog.Int("placeholders", result.Stats.Placeholders),
		slog.Bool("rendered", render),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *ReportService) generate(ctx context.Context, in files.Inputs, render bool) (*domain.ReportResult, error) {
	if render && in.Template == "" {
		return nil, apierrors.NewTemplateError("template is empty", nil)
	}

	variables, chartTable, err := s.parse(ctx, in)
	if err != nil {
		return nil, err
	}

	_, buildSpan := s.tracer.Start(ctx, "report.build")
	values, err := report.BuildValues(variables)
	if err != nil {
		finishSpan(buildSpan, err)
		return nil, classifyBuildError(err)
	}

	mpan := exporter.FormatMPAN(values.Lookup("mpan"))
	bands := report.ComputeCostBands(values)
	target := mpan
	if in.ChartTarget != "" {
		target = exporter.FormatMPAN(in.ChartTarget)
	}
	chart := report.SeriesFromTable(chartTable, target)
	placeholders, err := report.BuildPlaceholders(values, bands, chart, report.PlaceholderOptions{Disclaimer: s.disclaimer})
	if err != nil {
		finishSpan(buildSpan, err)
		return nil, fmt.Errorf("build placeholders: %w", err)
	}
	buildSpan.SetAttributes(
		attribute.Int("report.value_keys", values.Len()),
		attribute.Int("report.series", len(chart.Keys)),
	)
	finishSpan(buildSpan, nil)

	retained := len(chart.Years)
	if len(chart.Keys) > 0 {
		retained = len(chart.Series[chart.Keys[0]])
	}
	s.logger.DebugContext(ctx, "record map built",
		slog.Int("value_keys", values.Len()),
		slog.String("mpan", mpan),
		slog.String("chart_target", target),
		slog.Int("chart_rows_retained", retained),
		slog.Int("series", len(chart.Keys)),
	)

	var document string
	if render {
		document = s.render(ctx, in.Template, placeholders)
	}

	return &domain.ReportResult{
		ID:           infrastructure.GetTraceID(ctx),
		Name:         report.OutputName(values),
		MPAN:         mpan,
		Document:     document,
		Placeholders: placeholders.Entries(),
		CostBands:    bands,
		Chart:        chart,
		Stats: domain.ReportStats{
			VariableRows:       len(variables.Records),
			VariablesDelimiter: delimiterName(variables.Delimiter),
			ValueKeys:          values.Len(),
			ChartRows:          len(chartTable.Records),
			ChartRowsRetained:  retained,
			ChartDelimiter:     delimiterName(chartTable.Delimiter),
			SeriesCount:        len(chart.Keys),
			Placeholders:       placeholders.Len(),
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// render substitutes placeholders into template and reports tokens that no
// placeholder matched.
func (s *ReportService) render(ctx context.Context, template string, placeholders *report.Placeholders) string {
	_, span := s.tracer.Start(ctx, "report.render")
	defer span.End()

	document := report.ApplyPlaceholders(template, placeholders)
	unresolved := report.UnresolvedTokens(document)
	span.SetAttributes(attribute.Int("report.unresolved_tokens", len(unresolved)))

	if len(unresolved) > 0 {
		s.metrics.RecordUnresolved(ctx, len(unresolved))
		s.logger.WarnContext(ctx, "template tokens left unresolved",
			slog.Int("count", len(unresolved)),
			slog.Any("tokens", unresolved),
		)
	}
	return document
}

// parse decodes both sheets, each either delimited text or an .xlsx workbook.
func (s *ReportService) parse(ctx context.Context, in files.Inputs) (*dataprocessing.Table, *dataprocessing.Table, error) {
	ctx, span := s.tracer.Start(ctx, "report.parse")

	variables, err := dataprocessing.DecodeAuto(in.Variables)
	if err != nil {
		err = apierrors.NewParsingError("decode variables sheet", err).WithContext("input", "variables")
		finishSpan(span, err)
		return nil, nil, err
	}

	chart, err := dataprocessing.DecodeAuto(in.Chart)
	if err != nil {
		err = apierrors.NewParsingError("decode chart sheet", err).WithContext("input", "chart")
		finishSpan(span, err)
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("report.variable_rows", len(variables.Records)),
		attribute.Int("report.chart_rows", len(chart.Records)),
	)
	finishSpan(span, nil)

	s.metrics.RecordRows(ctx, "variables", len(variables.Records))
	s.metrics.RecordRows(ctx, "chart", len(chart.Records))
	s.logger.DebugContext(ctx, "inputs parsed",
		slog.Int("variable_rows", len(variables.Records)),
		slog.String("variables_delimiter", delimiterName(variables.Delimiter)),
		slog.Int("chart_rows", len(chart.Records)),
		slog.String("chart_delimiter", delimiterName(chart.Delimiter)),
	)

	return variables, chart, nil
}

// GenerateToDisk loads the inputs named by paths, generates the report and
// writes <name>.html into the output directory, plus <name>.pdf and
// <name>.placeholders.csv when opts asks for them.
func (s *ReportService) GenerateToDisk(ctx context.Context, paths files.InputPaths, opts WriteOptions) (*domain.ReportResult, error) {
	if s.loader == nil {
		return nil, apierrors.NewConfigError("report service has no input loader", nil)
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	loadCtx, loadSpan := s.tracer.Start(ctx, "report.load")
	in, err := s.loader.LoadInputs(loadCtx, paths)
	finishSpan(loadSpan, err)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "failed to load inputs")
		return nil, err
	}

	result, err := s.Generate(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.write(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReportService) write(ctx context.Context, result *domain.ReportResult, opts WriteOptions) (err error) {
	ctx, span := s.tracer.Start(ctx, "report.write")
	defer func() { finishSpan(span, err) }()

	result.HTMLPath, err = s.documents.WriteHTML(result.Name, result.Document)
	if err != nil {
		return apierrors.NewStorageError("write html document", err)
	}

	if opts.DumpPlaceholders {
		tokens := make([]string, len(result.Placeholders))
		texts := make([]string, len(result.Placeholders))
		for i, p := range result.Placeholders {
			tokens[i], texts[i] = p.Token, p.Value
		}
		result.PlaceholderPath, err = s.csv.WritePlaceholders(result.Name+".placeholders.csv", tokens, texts)
		if err != nil {
			return apierrors.NewStorageError("write placeholder dump", err)
		}
	}

	if opts.PDF {
		pdf, err := s.RenderPDF(ctx, result)
		if err != nil {
			return err
		}
		result.PDFPath, err = s.documents.WriteBytes(result.Name+".pdf", pdf)
		if err != nil {
			return apierrors.NewStorageError("write pdf document", err)
		}
	}

	s.logger.InfoContext(ctx, "report written",
		slog.String("html_path", result.HTMLPath),
		slog.String("pdf_path", result.PDFPath),
		slog.String("placeholder_path", result.PlaceholderPath),
	)
	return nil
}

// RenderPDF prints the generated document.
func (s *ReportService) RenderPDF(ctx context.Context, result *domain.ReportResult) ([]byte, error) {
	if s.pdf == nil {
		return nil, apierrors.NewConfigError("pdf rendering is not configured", nil)
	}

	ctx, span := s.tracer.Start(ctx, "report.pdf")
	pdf, err := s.pdf.Render(ctx, result.Document)
	finishSpan(span, err)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, apierrors.NewRenderingError("render pdf", err)
	}
	return pdf, nil
}

func classifyBuildError(err error) error {
	var conflict *report.PathConflictError
	if errors.As(err, &conflict) {
		return apierrors.NewAppError(apierrors.ErrTypeValidation, "variable sheet has conflicting keys", err).
			WithContext("variable", conflict.Variable).
			WithContext("path", conflict.Path)
	}
	return fmt.Errorf("build record map: %w", err)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func delimiterName(d rune) string {
	switch d {
	case ',':
		return "comma"
	case '\t':
		return "tab"
	case ';':
		return "semicolon"
	case 0:
		return "workbook"
	default:
		return string(d)
	}
}
