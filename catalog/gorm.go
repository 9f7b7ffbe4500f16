package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// GormRepository lists products from the Postgres catalog.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// BuildConditions translates sel into a WHERE clause over products aliased
// as p. Categories combine with AND; terms of one attribute follow its match
// mode.
func BuildConditions(sel filters.Selection) (string, []any) {
	conditions := []string{"p.status = 'Active'"}
	args := []any{}

	for _, key := range sel.Categories() {
		switch key {
		case filters.PriceCategory:
			price, _ := sel.Price()
			if price.Min != "" {
				conditions = append(conditions, "p.price >= ?")
				args = append(args, price.Min.Float())
			}
			if price.Max != "" {
				conditions = append(conditions, "p.price <= ?")
				args = append(args, price.Max.Float())
			}

		case filters.StockCategory:
			stock := sel.Stock()
			conditions = append(conditions, fmt.Sprintf("p.stock_status IN (%s)", placeholders(len(stock))))
			for _, st := range stock {
				args = append(args, string(st))
			}

		default:
			slug, _ := key.AttributeSlug()
			f, _ := sel.Attribute(slug)
			if f.Mode == filters.MatchAny {
				conditions = append(conditions, attributeExists(fmt.Sprintf("term IN (%s)", placeholders(len(f.Terms)))))
				args = append(args, slug)
				for _, t := range f.Terms {
					args = append(args, t)
				}
				continue
			}
			for _, t := range f.Terms {
				conditions = append(conditions, attributeExists("term = ?"))
				args = append(args, slug, t)
			}
		}
	}

	return strings.Join(conditions, " AND "), args
}

func attributeExists(termCond string) string {
	return `EXISTS (
		SELECT 1
		FROM jsonb_array_elements(p.attributes) AS attr,
		     jsonb_array_elements_text(attr->'terms') AS term
		WHERE attr->>'slug' = ? AND ` + termCond + `
	)`
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func (r *GormRepository) List(ctx context.Context, sel filters.Selection, page, limit int) ([]models.Product, int, error) {
	whereClause, args := BuildConditions(sel)
	offset := (page - 1) * limit

	countQuery := fmt.Sprintf(`
		SELECT COUNT(DISTINCT p.id)
		FROM products p
		WHERE %s
	`, whereClause)

	var totalCount int64
	if err := r.db.WithContext(ctx).Raw(countQuery, args...).Scan(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`
		SELECT p.*
		FROM products p
		WHERE %s
		ORDER BY p.created_at ASC
		LIMIT ? OFFSET ?
	`, whereClause)

	dataArgs := append(args, limit, offset)
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Raw(dataQuery, dataArgs...).Scan(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, int(totalCount), nil
}

// Metadata runs the availability, attribute and price queries concurrently.
func (r *GormRepository) Metadata(ctx context.Context) (*models.FilterMetadata, error) {
	meta := &models.FilterMetadata{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var rows []struct {
			Value string
			Count int
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT stock_status AS value, COUNT(*)::int AS count
			FROM products
			WHERE status = 'Active'
			GROUP BY stock_status
			ORDER BY stock_status
		`).Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("availability counts: %w", err)
		}
		meta.Availability = make([]models.FilterOption, 0, len(rows))
		for _, row := range rows {
			meta.Availability = append(meta.Availability, models.FilterOption{
				Label: stockLabels[filters.StockStatus(row.Value)], Value: row.Value, Count: row.Count,
			})
		}
		return nil
	})

	g.Go(func() error {
		var rows []struct {
			Slug  string
			Term  string
			Count int
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT attr->>'slug' AS slug, term, COUNT(DISTINCT p.id)::int AS count
			FROM products p,
			     jsonb_array_elements(p.attributes) AS attr,
			     jsonb_array_elements_text(attr->'terms') AS term
			WHERE p.status = 'Active'
			GROUP BY attr->>'slug', term
			ORDER BY slug, term
		`).Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("attribute terms: %w", err)
		}
		meta.Attributes = []models.AttributeData{}
		for _, row := range rows {
			n := len(meta.Attributes)
			if n == 0 || meta.Attributes[n-1].Slug != row.Slug {
				meta.Attributes = append(meta.Attributes, models.AttributeData{Slug: row.Slug})
				n++
			}
			meta.Attributes[n-1].Terms = append(meta.Attributes[n-1].Terms,
				models.FilterOption{Label: row.Term, Value: row.Term, Count: row.Count})
		}
		return nil
	})

	g.Go(func() error {
		var priceRange models.PriceRangeData
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(MIN(price), 0)::float8 as min,
				COALESCE(MAX(price), 1000)::float8 as max
			FROM products
			WHERE status = 'Active'
				AND price > 0
		`).Scan(&priceRange).Error
		if err != nil {
			return fmt.Errorf("price range: %w", err)
		}
		meta.PriceRange = &priceRange
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meta, nil
}
