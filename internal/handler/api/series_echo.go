package api

import (
	"errors"
	"net/http"

	models "PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/ingest"
	"PortfolioPulse/internal/portfolio"
	"PortfolioPulse/internal/repository"
	"PortfolioPulse/internal/series"
	"PortfolioPulse/internal/usecase"
	xhttp "PortfolioPulse/pkg/http"
	xlogger "PortfolioPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SeriesEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type SeriesEchoHandler struct {
	logger       *xlogger.Logger
	assets       *usecase.AssetSeriesUseCase
	combined     *usecase.CombinedUseCase
	store        *repository.SeriesStore
	defaultAsset string
	defaultFreq  string
}

func NewSeriesEchoHandler(logger *xlogger.Logger, assets *usecase.AssetSeriesUseCase, combined *usecase.CombinedUseCase, store *repository.SeriesStore, defaultAsset, defaultFreq string) *SeriesEchoHandler {
	return &SeriesEchoHandler{
		logger:       logger,
		assets:       assets,
		combined:     combined,
		store:        store,
		defaultAsset: defaultAsset,
		defaultFreq:  defaultFreq,
	}
}

func (h *SeriesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/data", h.Data)
	g.GET("/combined", h.Combined)
}

// Home lists the configured assets so callers can discover valid
// values for the data endpoint.
func (h *SeriesEchoHandler) Home(c echo.Context) error {
	return xhttp.SuccessResponse(c, echo.Map{
		"assets":    h.store.Assets(),
		"endpoints": []string{"/api/data", "/api/combined", "/healthz"},
	})
}

func (h *SeriesEchoHandler) Data(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Asset == "" {
		req.Asset = h.defaultAsset
	}
	if req.Freq == "" {
		req.Freq = h.defaultFreq
	}

	res, err := h.assets.Get(c.Request().Context(), req.Asset, req.Freq)
	if err != nil {
		h.logger.Error("asset series usecase error", xlogger.String("asset", req.Asset), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapPipelineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SeriesEchoHandler) Combined(c echo.Context) error {
	req := &models.CombinedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Freq == "" {
		req.Freq = h.defaultFreq
	}

	res, err := h.combined.Get(c.Request().Context(), req.Freq)
	if err != nil {
		h.logger.Error("combined usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapPipelineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Health reports per-source readability without running the pipeline.
func (h *SeriesEchoHandler) Health(c echo.Context) error {
	status := http.StatusOK
	sources := make(map[string]string)
	for asset, err := range h.store.Health(c.Request().Context()) {
		if err != nil {
			status = http.StatusServiceUnavailable
			sources[asset] = err.Error()
			continue
		}
		sources[asset] = "ok"
	}
	return xhttp.DataResponse(c, status, echo.Map{"sources": sources})
}

// mapPipelineError translates pipeline failures into transport errors:
// unknown assets are 404, data that cannot be served is 422, the rest
// stays internal.
func mapPipelineError(err error) error {
	var unknown *repository.UnknownAssetError
	if errors.As(err, &unknown) {
		return xhttp.NotFoundErrorf("unknown asset %q", unknown.Asset).WithParam("known", unknown.Known).WithError(err)
	}

	var ingErr *ingest.IngestError
	if errors.As(err, &ingErr) {
		return xhttp.UnprocessableErrorf("source not readable: %s", ingErr.Kind).WithError(err)
	}
	var empty *series.EmptySeriesError
	if errors.As(err, &empty) {
		return xhttp.UnprocessableError("no parsable rows in source").WithError(err)
	}
	var base *series.UndefinedBaseError
	if errors.As(err, &base) {
		return xhttp.UnprocessableError("first observation is zero, base-100 rescale undefined").WithError(err)
	}
	var overlap *portfolio.InsufficientOverlapError
	if errors.As(err, &overlap) {
		return xhttp.UnprocessableError("constituent series share no common dates").WithError(err)
	}

	return xhttp.InternalError("pipeline failure").WithError(err)
}
