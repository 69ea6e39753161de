package product

type Image struct {
	URL  string `json:"url"`
	Hint string `json:"hint,omitempty"`
}

// Variant is one purchasable size of a product.
type Variant struct {
	Weight       string  `json:"weight"`
	Price        float64 `json:"price"`
	PricePerUnit string  `json:"pricePerUnit,omitempty"`
	SKU          string  `json:"sku,omitempty"`
}

type Product struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Description         string    `json:"description"`
	LongDescription     string    `json:"longDescription,omitempty"`
	Images              []Image   `json:"images"`
	Category            string    `json:"category,omitempty"`
	Variants            []Variant `json:"variants"`
	DefaultVariantIndex int       `json:"defaultVariantIndex"`
}

// ImageURL is the primary image, or "" when the product has none.
func (p Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// HasVariant reports whether v is one of the product's variants, matched by
// SKU when v carries one and by weight label otherwise.
func (p Product) HasVariant(v Variant) bool {
	for _, own := range p.Variants {
		if v.SKU != "" {
			if own.SKU == v.SKU {
				return true
			}
			continue
		}
		if own.Weight == v.Weight {
			return true
		}
	}
	return false
}

type SortField string

const (
	SortFieldName  SortField = "name"
	SortFieldPrice SortField = "price"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

type ListOptions struct {
	Category  string
	Search    string
	SortField SortField
	SortDir   SortDirection
	Page      int
	Limit     int
}

type ListResult struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}
