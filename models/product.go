package models

import (
	"encoding/json"
	"time"
)

type Variant struct {
	ID       int     `json:"id,omitempty"`
	RAM      string  `json:"ram"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type ProductImage struct {
	ID       int    `json:"id,omitempty"`
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	Alt      string `json:"alt"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Product struct {
	ID              int            `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	SubCategoryID   int            `json:"sub_category_id"`
	SubCategoryName string         `json:"sub_category_name,omitempty"`
	CategoryID      int            `json:"category_id"`
	CategoryName    string         `json:"category_name,omitempty"`
	Variants        []Variant      `json:"variants"`
	Images          []ProductImage `json:"images"`
	Rating          Rating         `json:"rating"`
	IsActive        bool           `json:"is_active"`
	CreatedBy       int            `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TotalStock sums quantities across all variants.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}

// PriceRange returns the min and max variant price, {0,0} without variants.
func (p *Product) PriceRange() PriceRange {
	if len(p.Variants) == 0 {
		return PriceRange{}
	}
	pr := PriceRange{Min: p.Variants[0].Price, Max: p.Variants[0].Price}
	for _, v := range p.Variants[1:] {
		if v.Price < pr.Min {
			pr.Min = v.Price
		}
		if v.Price > pr.Max {
			pr.Max = v.Price
		}
	}
	return pr
}

// MarshalJSON serializes the derived totals alongside the stored fields, the
// way the API has always exposed them.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		TotalStock int        `json:"total_stock"`
		PriceRange PriceRange `json:"price_range"`
	}{
		alias:      alias(p),
		TotalStock: p.TotalStock(),
		PriceRange: p.PriceRange(),
	})
}
