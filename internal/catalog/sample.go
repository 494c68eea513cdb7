package catalog

import "github.com/fashionkart/storefront/internal/domain"

// SampleProducts is the canned catalog served when the platform API is
// unreachable. Ordered oldest-first; ids are stable so cart and wishlist
// entries created offline stay valid.
var SampleProducts = []domain.Product{
	{
		ID:          "smpl-classic-white-tee",
		Name:        "Classic White T-Shirt",
		Price:       "499",
		Brand:       "Roadways",
		Category:    "Men",
		Description: "Regular-fit crew neck t-shirt in pure combed cotton.",
		Image:       "/images/sample/classic-white-tee.jpg",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"White", "Black", "Navy"},
		Rating:      4.2,
		Reviews:     861,
		InStock:     true,
	},
	{
		ID:          "smpl-slim-denim-jeans",
		Name:        "Slim Fit Denim Jeans",
		Price:       "1299",
		Brand:       "Urban Drift",
		Category:    "Men",
		Description: "Mid-rise stretchable denim with a clean faded wash.",
		Image:       "/images/sample/slim-denim-jeans.jpg",
		Sizes:       []string{"30", "32", "34", "36"},
		Colors:      []string{"Indigo", "Charcoal"},
		Rating:      4.4,
		Reviews:     1204,
		Discount:    20,
		InStock:     true,
	},
	{
		ID:          "smpl-floral-summer-dress",
		Name:        "Floral Summer Dress",
		Price:       "1599",
		Brand:       "Meadowlane",
		Category:    "Women",
		Description: "A-line midi dress in a breathable floral print rayon.",
		Image:       "/images/sample/floral-summer-dress.jpg",
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Yellow", "Teal"},
		Rating:      4.6,
		Reviews:     742,
		Discount:    15,
		InStock:     true,
	},
	{
		ID:          "smpl-ethnic-kurta-set",
		Name:        "Embroidered Kurta Set",
		Price:       "2199",
		Brand:       "Taanabaana",
		Category:    "Women",
		Description: "Straight-cut kurta with palazzo, thread embroidery on yoke.",
		Image:       "/images/sample/ethnic-kurta-set.jpg",
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Colors:      []string{"Maroon", "Emerald"},
		Rating:      4.5,
		Reviews:     389,
		InStock:     true,
	},
	{
		ID:          "smpl-kids-dino-hoodie",
		Name:        "Dino Print Hoodie",
		Price:       "799",
		Brand:       "Little Sprout",
		Category:    "Kids",
		Description: "Fleece-lined pullover hoodie with an all-over dino print.",
		Image:       "/images/sample/kids-dino-hoodie.jpg",
		Sizes:       []string{"4-5Y", "6-7Y", "8-9Y"},
		Colors:      []string{"Green", "Grey"},
		Rating:      4.3,
		Reviews:     216,
		Discount:    10,
		InStock:     true,
	},
	{
		ID:          "smpl-running-sneakers",
		Name:        "Featherlite Running Sneakers",
		Price:       "2499",
		Brand:       "Stridex",
		Category:    "Footwear",
		Description: "Knit-upper running shoes with a responsive foam midsole.",
		Image:       "/images/sample/running-sneakers.jpg",
		Sizes:       []string{"7", "8", "9", "10", "11"},
		Colors:      []string{"Black", "Volt"},
		Rating:      4.7,
		Reviews:     1987,
		Discount:    25,
		InStock:     true,
	},
	{
		ID:          "smpl-leather-tote",
		Name:        "Vegan Leather Tote Bag",
		Price:       "1899",
		Brand:       "Meadowlane",
		Category:    "Accessories",
		Description: "Structured tote with a zip pocket and laptop sleeve.",
		Image:       "/images/sample/leather-tote.jpg",
		Colors:      []string{"Tan", "Black"},
		Rating:      4.1,
		Reviews:     154,
		InStock:     true,
	},
	{
		ID:          "smpl-oversized-flannel",
		Name:        "Oversized Check Flannel Shirt",
		Price:       "1099",
		Brand:       "Urban Drift",
		Category:    "Women",
		Description: "Brushed cotton flannel in an oversized boyfriend fit.",
		Image:       "/images/sample/oversized-flannel.jpg",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Red Check", "Green Check"},
		Rating:      4.0,
		Reviews:     98,
		InStock:     true,
	},
	{
		ID:          "smpl-linen-blazer",
		Name:        "Unstructured Linen Blazer",
		Price:       "3499",
		Brand:       "Roadways",
		Category:    "Men",
		Description: "Single-breasted linen-blend blazer, half-lined.",
		Image:       "/images/sample/linen-blazer.jpg",
		Sizes:       []string{"38", "40", "42", "44"},
		Colors:      []string{"Beige", "Slate"},
		Rating:      4.8,
		Reviews:     67,
		Discount:    30,
		InStock:     false,
	},
	{
		ID:          "smpl-winter-puffer",
		Name:        "Quilted Winter Puffer Jacket",
		Price:       "2999",
		Brand:       "Stridex",
		Category:    "Men",
		Description: "Water-repellent puffer with a detachable hood.",
		Image:       "/images/sample/winter-puffer.jpg",
		Sizes:       []string{"M", "L", "XL"},
		Colors:      []string{"Navy", "Olive"},
		Rating:      4.5,
		Reviews:     433,
		Discount:    35,
		InStock:     true,
	},
}
