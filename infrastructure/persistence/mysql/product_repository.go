package mysql

import (
	"context"
	"errors"
	"strings"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, product)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, product)
	})
}

func (r *ProductRepository) saveWithTx(tx *gorm.DB, product *catalog.Product) error {
	productPO, variantPOs, err := po.FromProductDomain(product)
	if err != nil {
		return err
	}

	if product.IsNew() {
		if err := tx.Create(productPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return catalog.NewDuplicateNameError(product.Name())
			}
			return err
		}
		if len(variantPOs) > 0 {
			if err := tx.Create(&variantPOs).Error; err != nil {
				return err
			}
		}
	} else {
		expectedVersion := product.Version()

		// Strict optimistic lock: the aggregate's loaded version is the
		// update condition, a lost race never silently overwrites.
		result := tx.Model(&po.ProductPO{}).
			Where("id = ? AND version = ?", product.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"slug":        productPO.Slug,
				"name":        productPO.Name,
				"description": productPO.Description,
				"brand":       productPO.Brand,
				"tags":        productPO.Tags,
				"images":      productPO.Images,
				"is_featured": productPO.IsFeatured,
				"base_price":  productPO.BasePrice,
				"version":     expectedVersion + 1,
				"updated_at":  productPO.UpdatedAt,
			})

		if result.Error != nil {
			if isDuplicateKeyError(result.Error) {
				return catalog.NewDuplicateNameError(product.Name())
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ProductPO{}).Where("id = ?", product.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return catalog.NewProductNotFoundError(product.ID())
			}
			return catalog.NewConcurrentModificationError(product.ID())
		}

		// Variants are replaced wholesale under the same lock.
		if err := tx.Where("product_id = ?", product.ID()).Delete(&po.ProductVariantPO{}).Error; err != nil {
			return err
		}
		if len(variantPOs) > 0 {
			if err := tx.Create(&variantPOs).Error; err != nil {
				return err
			}
		}

		product.IncrementVersionForSave()
	}
	product.ClearNewFlag()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *ProductRepository) findOne(ctx context.Context, query string, arg string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(arg)
		}
		return nil, result.Error
	}

	variantPOs, err := r.loadVariants(ctx, []string{productPO.ID})
	if err != nil {
		return nil, err
	}
	return productPO.ToDomain(variantPOs[productPO.ID]), nil
}

func (r *ProductRepository) loadVariants(ctx context.Context, productIDs []string) (map[string][]po.ProductVariantPO, error) {
	var variantPOs []po.ProductVariantPO
	err := r.getDB(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id, position").
		Find(&variantPOs).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]po.ProductVariantPO, len(productIDs))
	for _, vp := range variantPOs {
		byProduct[vp.ProductID] = append(byProduct[vp.ProductID], vp)
	}
	return byProduct, nil
}

func (r *ProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) NameExists(ctx context.Context, name string, excludeID string) (bool, error) {
	db := r.getDB(ctx).Model(&po.ProductPO{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		db = db.Where("id != ?", excludeID)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, int64, error) {
	db := r.getDB(ctx).Model(&po.ProductPO{})
	db = applyProductFilter(db, filter)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	var productPOs []po.ProductPO
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&productPOs).Error
	if err != nil {
		return nil, 0, err
	}
	if len(productPOs) == 0 {
		return []*catalog.Product{}, total, nil
	}

	ids := make([]string, len(productPOs))
	for i, p := range productPOs {
		ids[i] = p.ID
	}
	variantsByProduct, err := r.loadVariants(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(productPOs))
	for i, p := range productPOs {
		products[i] = p.ToDomain(variantsByProduct[p.ID])
	}
	return products, total, nil
}

func applyProductFilter(db *gorm.DB, filter catalog.ListFilter) *gorm.DB {
	if filter.Brand != "" {
		db = db.Where("LOWER(brand) = LOWER(?)", filter.Brand)
	}
	if filter.MinPrice != nil {
		db = db.Where("base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		db = db.Where("base_price <= ?", *filter.MaxPrice)
	}
	if filter.IsFeatured != nil {
		db = db.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.InStock != nil {
		sub := "EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND v.stock > 0)"
		if *filter.InStock {
			db = db.Where(sub)
		} else {
			db = db.Where("NOT " + sub)
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name LIKE ? OR slug LIKE ?", pattern, pattern)
	}
	return db
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	removeTx := func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&po.ProductPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.NewProductNotFoundError(id)
		}
		return tx.Where("product_id = ?", id).Delete(&po.ProductVariantPO{}).Error
	}

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return removeTx(tx)
	}
	return r.db.WithContext(ctx).Transaction(removeTx)
}

var _ catalog.Repository = (*ProductRepository)(nil)
