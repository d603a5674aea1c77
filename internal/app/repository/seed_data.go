package repository

import "github.com/nchoi/atelier-backend/internal/app/model"

func price(v float64) *float64 { return &v }

// SeedProducts is the built-in catalog used when no catalog file is
// configured.
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:            1,
			Name:          "Premium Cotton T-Shirt",
			Price:         49.99,
			OriginalPrice: price(69.99),
			Image:         "/premium-white-cotton-t-shirt-on-model.jpg",
			Category:      "Men's Tops",
			IsOnSale:      true,
			Rating:        4.8,
			ReviewCount:   124,
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			Colors:        []string{"White", "Black", "Navy"},
			Material:      "100% Organic Cotton",
		},
		{
			ID:          2,
			Name:        "Elegant Midi Dress",
			Price:       129.99,
			Image:       "/elegant-black-midi-dress-on-model.jpg",
			Category:    "Women's Dresses",
			Rating:      4.9,
			ReviewCount: 89,
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Black", "Burgundy"},
			Material:    "Viscose Blend",
		},
		{
			ID:          3,
			Name:        "Classic Denim Jacket",
			Price:       89.99,
			Image:       "/classic-blue-denim-jacket-on-model.jpg",
			Category:    "Men's Tops",
			Rating:      4.7,
			ReviewCount: 156,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Light Wash", "Dark Wash"},
			Material:    "Cotton Denim",
		},
		{
			ID:            4,
			Name:          "Silk Blouse",
			Price:         79.99,
			OriginalPrice: price(99.99),
			Image:         "/elegant-silk-blouse-on-model.jpg",
			Category:      "Women's Tops",
			IsOnSale:      true,
			Rating:        4.6,
			ReviewCount:   73,
			Sizes:         []string{"XS", "S", "M", "L"},
			Colors:        []string{"Ivory", "Blush"},
			Material:      "Mulberry Silk",
		},
		{
			ID:          5,
			Name:        "Tailored Wool Trousers",
			Price:       119.99,
			Image:       "/tailored-grey-wool-trousers.jpg",
			Category:    "Men's Bottoms",
			Rating:      4.5,
			ReviewCount: 41,
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []string{"Charcoal", "Navy"},
			Material:    "Merino Wool",
		},
		{
			ID:            6,
			Name:          "Leather Crossbody Bag",
			Price:         149.99,
			OriginalPrice: price(189.99),
			Image:         "/leather-crossbody-bag.jpg",
			Category:      "Accessories",
			IsOnSale:      true,
			Rating:        4.9,
			ReviewCount:   212,
			Colors:        []string{"Tan", "Black"},
			Material:      "Full-Grain Leather",
		},
		{
			ID:          7,
			Name:        "Linen Summer Shirt",
			Price:       64.99,
			Image:       "/linen-summer-shirt.jpg",
			Category:    "Men's Tops",
			Rating:      4.4,
			ReviewCount: 58,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White", "Sage", "Sand"},
			Material:    "European Linen",
		},
		{
			ID:          8,
			Name:        "Pleated Midi Skirt",
			Price:       94.99,
			Image:       "/pleated-midi-skirt.jpg",
			Category:    "Women's Bottoms",
			Rating:      4.7,
			ReviewCount: 96,
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Emerald", "Black"},
			Material:    "Recycled Polyester",
		},
	}
}
