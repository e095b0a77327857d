package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	apierrors "energyreport/internal/errors"
)

// InputPaths names the three files one report is generated from.
type InputPaths struct {
	Variables string
	Chart     string
	Template  string
}

// Inputs holds the raw bytes of one report's inputs. Sheets may be delimited
// text or .xlsx workbooks; the template is UTF-8 HTML.
type Inputs struct {
	Variables []byte
	Chart     []byte
	Template  string

	// ChartTarget overrides the MPAN used to filter chart rows.
	ChartTarget string
}

// Loader reads report inputs from disk.
type Loader struct {
	manager *Manager
	logger  *slog.Logger
}

// NewLoader creates a loader reading through manager.
func NewLoader(manager *Manager, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		manager: manager,
		logger:  logger.With(slog.String("component", "input_loader")),
	}
}

// LoadInputs reads the variables sheet, chart sheet and template
// concurrently. The first failure cancels the remaining reads. A missing
// file yields an ErrTypeNotFound app error that still matches fs.ErrNotExist.
func (l *Loader) LoadInputs(ctx context.Context, paths InputPaths) (Inputs, error) {
	var (
		in       Inputs
		template []byte
	)

	g, ctx := errgroup.WithContext(ctx)

	reads := []struct {
		name string
		path string
		dst  *[]byte
	}{
		{name: "variables", path: paths.Variables, dst: &in.Variables},
		{name: "chart", path: paths.Chart, dst: &in.Chart},
		{name: "template", path: paths.Template, dst: &template},
	}

	for _, rd := range reads {
		g.Go(func() error {
			if strings.TrimSpace(rd.path) == "" {
				return apierrors.NewConfigError(fmt.Sprintf("no %s path configured", rd.name), nil)
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := l.manager.ReadFile(rd.path)
			if err != nil {
				return classifyReadError(rd.name, l.manager.CleanPath(rd.path), err)
			}

			*rd.dst = data
			l.logger.DebugContext(ctx, "input loaded",
				slog.String("input", rd.name),
				slog.String("path", rd.path),
				slog.Int("bytes", len(data)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}

	in.Template = string(template)
	return in, nil
}

func classifyReadError(name, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return apierrors.NewAppError(apierrors.ErrTypeNotFound,
			fmt.Sprintf("%s input %s not found", name, path), err).
			WithContext("input", name)
	}
	return apierrors.NewStorageError(fmt.Sprintf("read %s input %s", name, path), err).
		WithContext("input", name)
}
