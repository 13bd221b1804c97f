package fetcher

import (
	"context"
	"errors"

	"stockwatch/internal/model"
)

// ErrPriceUnavailable is returned when the source page loads but no
// price could be extracted from it.
var ErrPriceUnavailable = errors.New("price unavailable")

// Source supplies the current price plus a display label for a symbol,
// and historical daily closes. Historical fetches are best-effort: on
// a mid-paging error the samples collected so far are returned.
type Source interface {
	FetchCurrent(ctx context.Context, symbol string) (price int, label string, err error)
	FetchHistorical(ctx context.Context, symbol string, pages int) (model.Series, error)
	Name() string
}
