package specification

import "gorm.io/gorm"

// ByCategory filters products by category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByBrand filters products by brand
type ByBrand struct {
	Brand string
}

func (s ByBrand) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("brand = ?", s.Brand)
}

// InStockOnly filters out products that are not available
type InStockOnly struct{}

func (s InStockOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("in_stock = ?", true)
}

// ByProductId filters embeddings by their parent product
type ByProductId struct {
	ProductId interface{}
}

func (s ByProductId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductId)
}
