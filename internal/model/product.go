package model

// ProductType is one of the fixed set of sellable farm products.
type ProductType string

const (
	ProductMilkCow     ProductType = "MILK_COW"
	ProductMilkBuffalo ProductType = "MILK_BUFFALO"
	ProductMilkGoat    ProductType = "MILK_GOAT"
	ProductButter      ProductType = "BUTTER"
	ProductHenEggs     ProductType = "HEN_EGGS"
	ProductDuckEggs    ProductType = "DUCK_EGGS"
)

var productCatalog = map[ProductType]struct{}{
	ProductMilkCow:     {},
	ProductMilkBuffalo: {},
	ProductMilkGoat:    {},
	ProductButter:      {},
	ProductHenEggs:     {},
	ProductDuckEggs:    {},
}

// Valid reports whether p is part of the product catalog.
func (p ProductType) Valid() bool {
	_, ok := productCatalog[p]
	return ok
}
