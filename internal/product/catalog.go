package product

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sutra-be/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Catalog is the read-only product source consulted by the cart and the API.
type Catalog interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

type catalog struct {
	products []Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewCatalog validates the fixture set and indexes it. Default variant
// indexes outside the variant range are reset to 0.
func NewCatalog(products []Product) (Catalog, error) {
	c := &catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, ErrMissingProductID
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup && p.Slug != "" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.Slug)
		}

		skus := make(map[string]struct{}, len(p.Variants))
		for _, v := range p.Variants {
			if v.Price < 0 {
				return nil, fmt.Errorf("%w: product %s variant %s", ErrNegativePrice, p.ID, v.Weight)
			}
			if v.SKU == "" {
				continue
			}
			if _, dup := skus[v.SKU]; dup {
				return nil, fmt.Errorf("%w: product %s sku %s", ErrDuplicateSKU, p.ID, v.SKU)
			}
			skus[v.SKU] = struct{}{}
		}

		if p.DefaultVariantIndex < 0 || p.DefaultVariantIndex >= len(p.Variants) {
			p.DefaultVariantIndex = 0
		}

		c.byID[p.ID] = len(c.products)
		if p.Slug != "" {
			c.bySlug[p.Slug] = len(c.products)
		}
		c.products = append(c.products, p)
	}

	return c, nil
}

func (c *catalog) GetProductByID(ctx context.Context, id string) (*Product, error) {
	i, ok := c.byID[id]
	if !ok {
		logger.FromCtx(ctx).Debug("product lookup miss",
			zap.String("layer", "catalog"),
			zap.String("product_id", id),
		)
		return nil, ErrProductNotFound
	}
	p := c.products[i]
	return &p, nil
}

func (c *catalog) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		logger.FromCtx(ctx).Debug("product lookup miss",
			zap.String("layer", "catalog"),
			zap.String("slug", slug),
		)
		return nil, ErrProductNotFound
	}
	p := c.products[i]
	return &p, nil
}

func (c *catalog) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	} else if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	matched := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	switch opts.SortField {
	case SortFieldName:
		sort.SliceStable(matched, func(i, j int) bool {
			if opts.SortDir == SortDirectionDesc {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	case SortFieldPrice:
		sort.SliceStable(matched, func(i, j int) bool {
			pi, pj := startingPrice(matched[i]), startingPrice(matched[j])
			if opts.SortDir == SortDirectionDesc {
				return pi > pj
			}
			return pi < pj
		})
	}

	total := len(matched)
	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	logger.FromCtx(ctx).Debug("catalog list",
		zap.String("category", opts.Category),
		zap.String("search", opts.Search),
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
		zap.Int("total", total),
	)

	return &ListResult{
		Items:      matched[start:end],
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
	}, nil
}

// startingPrice is the price of the default variant, the one shown on listings.
func startingPrice(p Product) float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	return p.Variants[p.DefaultVariantIndex].Price
}
