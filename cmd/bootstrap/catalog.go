package bootstrap

import (
	"library-lending/internal/infra/catalog"
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/shared"

	"go.uber.org/fx"
)

var CatalogModule = fx.Module("catalog",
	fx.Provide(
		fx.Annotate(
			NewCatalogLookup,
			fx.As(new(shared.CatalogLookup)),
		),
	),
)

func NewCatalogLookup(cfg config.Config) *catalog.GoogleBooksClient {
	return catalog.NewGoogleBooksClient(cfg.Catalog)
}
