package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/robinjoseph08/golib/logger"
)

// Searcher is the part of the catalog the screens and handlers depend on.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Volume, error)
	Volume(ctx context.Context, id string) (*Volume, error)
}

type handler struct {
	catalog Searcher
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	volumes, err := h.catalog.Search(ctx, params.Query, params.Limit)
	if err != nil {
		return translateFetchError(ctx, err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, SearchResponse{Volumes: volumes}))
}

func (h *handler) volume(c echo.Context) error {
	ctx := c.Request().Context()

	volume, err := h.catalog.Volume(ctx, c.Param("id"))
	if err != nil {
		return translateFetchError(ctx, err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, volume))
}

func translateFetchError(ctx context.Context, err error) error {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return errors.WithStack(err)
	}
	if fetchErr.NotFound() {
		return errcodes.NotFound("Volume")
	}
	logger.FromContext(ctx).Err(err).Error("catalog fetch failed")
	return errcodes.UpstreamUnavailable("Catalog")
}
