package product

// DefaultProducts is the static storefront catalog.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:              "1",
			Name:            "Andhra Chilli Paste",
			Slug:            "andhra-chilli-paste",
			Description:     "A fiery and aromatic paste capturing the essence of Andhra cuisine.",
			LongDescription: "Made from sun-dried Guntur chillies and a blend of spices. Good in curries, stir-fries or as a marinade.",
			Images:          placeholderImages("chilli paste"),
			Category:        "Spicy",
			Variants: []Variant{
				{Weight: "100g", Price: 5.99, SKU: "ACP-100"},
				{Weight: "250g", Price: 12.99, SKU: "ACP-250"},
				{Weight: "500g", Price: 23.99, SKU: "ACP-500"},
			},
			DefaultVariantIndex: 1,
		},
		{
			ID:              "2",
			Name:            "Kerala Coconut Curry Paste",
			Slug:            "kerala-coconut-curry-paste",
			Description:     "Rich and creamy paste infused with fresh coconut and traditional Kerala spices.",
			LongDescription: "Grated coconut, ginger, garlic, cardamom and cloves. Suited to fish curries, vegetable stews and chicken.",
			Images:          placeholderImages("coconut curry"),
			Category:        "Mild",
			Variants: []Variant{
				{Weight: "250g", Price: 14.50, SKU: "KCC-250"},
				{Weight: "500g", Price: 27.00, SKU: "KCC-500"},
			},
		},
		{
			ID:              "3",
			Name:            "Tamilian Tamarind Paste",
			Slug:            "tamilian-tamarind-paste",
			Description:     "Tangy and savory tamarind paste, a staple in Tamil Nadu cooking.",
			LongDescription: "Pure tamarind pulp blended with traditional spices for sambar, rasam and gravies.",
			Images:          placeholderImages("tamarind paste"),
			Category:        "Tangy",
			Variants: []Variant{
				{Weight: "200g", Price: 10.99, SKU: "TTP-200"},
				{Weight: "400g", Price: 19.99, SKU: "TTP-400"},
			},
		},
		{
			ID:              "4",
			Name:            "Karnataka Garlic-Ginger Paste",
			Slug:            "karnataka-garlic-ginger-paste",
			Description:     "Aromatic and pungent paste combining fresh garlic and ginger from Karnataka.",
			LongDescription: "Freshly ground garlic and ginger, the base of countless South Indian dishes.",
			Images:          placeholderImages("garlic ginger paste"),
			Category:        "Aromatic",
			Variants: []Variant{
				{Weight: "200g", Price: 9.99},
			},
		},
	}
}

func placeholderImages(hint string) []Image {
	return []Image{
		{URL: "https://placehold.co/600x400.png", Hint: hint + " main"},
		{URL: "https://placehold.co/600x400.png", Hint: hint + " closeup"},
		{URL: "https://placehold.co/600x400.png", Hint: hint + " jar"},
	}
}
