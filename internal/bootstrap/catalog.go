package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/satchel/internal/catalog"
	"github.com/osse101/satchel/internal/config"
)

// LoadCatalog loads the item catalog named by cfg.CatalogPath, or the
// embedded default catalog when no path is configured. The file is
// schema-checked and validated before use.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	source := cfg.CatalogPath
	if source == "" {
		source = "embedded"
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.NewLoader().Load(cfg.CatalogPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCat, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"source", source,
		"version", cat.Version(),
		"items", len(cat.Items()),
		"base_slots", cat.BaseSlotCount())
	return cat, nil
}
