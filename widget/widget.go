// Package widget mounts one filter widget: a store, its apply-mode
// controller and a render context adapter, configured once at mount time.
package widget

import (
	"fmt"
	"net/url"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	ApplyMode     filters.ApplyMode
	RenderContext filters.RenderContext

	// CurrentURL is the page the widget is mounted on. ServerPage widgets
	// seed their selection from its query.
	CurrentURL string

	// Products backs ClientBlock rendering.
	Products  []filters.Product
	Renderer  filters.Renderer
	Navigator filters.Navigator
	Logger    *zap.Logger
}

// ConfigFromSettings reads the mount defaults from the environment settings.
func ConfigFromSettings(s *config.Settings) (Config, error) {
	mode, err := filters.ParseApplyMode(s.WidgetApplyMode)
	if err != nil {
		return Config{}, fmt.Errorf("WIDGET_APPLY_MODE: %w", err)
	}
	rc, err := filters.ParseRenderContext(s.CatalogRenderContext)
	if err != nil {
		return Config{}, fmt.Errorf("CATALOG_RENDER_CONTEXT: %w", err)
	}
	return Config{ApplyMode: mode, RenderContext: rc}, nil
}

type Widget struct {
	ID         uuid.UUID
	Store      *filters.Store
	Controller *filters.Controller
	Adapter    *filters.Adapter

	// Rejected lists URL parameters ignored while seeding.
	Rejected []string
}

func Mount(cfg Config) (*Widget, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	current, err := url.Parse(cfg.CurrentURL)
	if err != nil {
		return nil, fmt.Errorf("parse current url: %w", err)
	}

	id := uuid.New()
	log = log.With(zap.String("widget", id.String()), zap.Stringer("context", cfg.RenderContext))

	seed := filters.NewSelection()
	var rejected []string
	if cfg.RenderContext == filters.ServerPage {
		var decodeErr error
		seed, decodeErr = filters.DecodeLenient(current.RawQuery)
		if decodeErr != nil {
			rejected = filters.MalformedParams(decodeErr)
			log.Warn("⚠️ ignoring malformed filter params", zap.Strings("params", rejected), zap.Error(decodeErr))
		}
	}

	store := filters.NewStore(filters.WithInitialSelection(seed), filters.WithStoreLogger(log))
	adapter := filters.NewAdapter(
		filters.WithProducts(cfg.Products),
		filters.WithRenderer(cfg.Renderer),
		filters.WithNavigator(cfg.Navigator),
		filters.WithCurrentURL(current),
		filters.WithAdapterLogger(log),
	)
	controller := filters.NewController(cfg.ApplyMode, cfg.RenderContext, store, adapter,
		filters.WithControllerLogger(log))

	log.Debug("widget mounted", zap.Stringer("mode", cfg.ApplyMode), zap.String("selection", filters.Encode(seed)))
	return &Widget{
		ID:         id,
		Store:      store,
		Controller: controller,
		Adapter:    adapter,
		Rejected:   rejected,
	}, nil
}
