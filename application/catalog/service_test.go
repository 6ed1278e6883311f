package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence/memory"
)

func newService() *ApplicationService {
	return NewApplicationService(memory.NewProductRepository(), memory.NewUnitOfWorkFactory())
}

func createRequest(name string) CreateProductRequest {
	return CreateProductRequest{
		Name:        name,
		Description: "Lightweight trail running shoe",
		Brand:       "Atlas",
		Variants: []VariantRequest{
			{SKU: "TR-42", Name: "Size 42", Price: 8900, Stock: 5, IsDefault: true},
			{SKU: "TR-43", Name: "Size 43", Price: 9200, Stock: 3},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	s := newService()

	resp, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if resp.Slug != "trail-runner" {
		t.Errorf("expected slug trail-runner, got %s", resp.Slug)
	}
	if resp.BasePrice != 8900 {
		t.Errorf("expected base price from default variant, got %d", resp.BasePrice)
	}
	if !resp.InStock {
		t.Error("expected product in stock")
	}
	if len(resp.Variants) != 2 || !resp.Variants[0].IsDefault {
		t.Errorf("unexpected variants: %+v", resp.Variants)
	}
}

func TestCreateProductSlugDeduplication(t *testing.T) {
	s := newService()

	if _, err := s.CreateProduct(context.Background(), createRequest("Trail Runner")); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// A distinct name that slugs to the same base gets a numeric suffix.
	second := createRequest("Trail Runner!")
	resp, err := s.CreateProduct(context.Background(), second)
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if resp.Slug != "trail-runner-2" {
		t.Errorf("expected slug trail-runner-2, got %s", resp.Slug)
	}
}

func TestCreateProductDuplicateName(t *testing.T) {
	s := newService()

	if _, err := s.CreateProduct(context.Background(), createRequest("Trail Runner")); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	_, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateProductNoVariants(t *testing.T) {
	s := newService()

	req := createRequest("Trail Runner")
	req.Variants = nil
	_, err := s.CreateProduct(context.Background(), req)
	if !errors.Is(err, catalog.ErrNoVariants) {
		t.Fatalf("expected ErrNoVariants, got %v", err)
	}
}

func TestUpdateProductKeepsSlugWhenNameUnchanged(t *testing.T) {
	s := newService()

	created, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	resp, err := s.UpdateProduct(context.Background(), created.ID, UpdateProductRequest{
		Name:        "Trail Runner",
		Description: "Updated description",
		Variants: []VariantRequest{
			{SKU: "TR-42", Name: "Size 42", Price: 9500, Stock: 5, IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if resp.Slug != "trail-runner" {
		t.Errorf("expected slug unchanged, got %s", resp.Slug)
	}
	if resp.BasePrice != 9500 {
		t.Errorf("expected base price recomputed to 9500, got %d", resp.BasePrice)
	}
}

func TestUpdateProductRenameRegeneratesSlug(t *testing.T) {
	s := newService()

	created, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	req := UpdateProductRequest{
		Name:        "Road Runner",
		Description: created.Description,
		Variants:    createRequest("x").Variants,
	}
	resp, err := s.UpdateProduct(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if resp.Slug != "road-runner" {
		t.Errorf("expected regenerated slug road-runner, got %s", resp.Slug)
	}
}

func TestUpdateProductRenameToTakenName(t *testing.T) {
	s := newService()

	if _, err := s.CreateProduct(context.Background(), createRequest("Trail Runner")); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	other, err := s.CreateProduct(context.Background(), createRequest("Road Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	req := UpdateProductRequest{
		Name:        "trail runner",
		Description: other.Description,
		Variants:    createRequest("x").Variants,
	}
	_, err = s.UpdateProduct(context.Background(), other.ID, req)
	if !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	s := newService()

	created, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if err := s.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := s.GetProduct(context.Background(), created.ID); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
}

func TestGetProductBySlug(t *testing.T) {
	s := newService()

	created, err := s.CreateProduct(context.Background(), createRequest("Trail Runner"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	resp, err := s.GetProductBySlug(context.Background(), "trail-runner")
	if err != nil {
		t.Fatalf("GetProductBySlug failed: %v", err)
	}
	if resp.ID != created.ID {
		t.Errorf("expected product %s, got %s", created.ID, resp.ID)
	}
}

func TestListProducts(t *testing.T) {
	s := newService()

	if _, err := s.CreateProduct(context.Background(), createRequest("Trail Runner")); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	featured := createRequest("City Sneaker")
	featured.Brand = "Metro"
	featured.IsFeatured = true
	if _, err := s.CreateProduct(context.Background(), featured); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	all, err := s.ListProducts(context.Background(), ListProductsRequest{})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if all.Total != 2 || all.PageSize != 12 {
		t.Errorf("expected 2 products with default page size 12, got total=%d size=%d", all.Total, all.PageSize)
	}

	byBrand, err := s.ListProducts(context.Background(), ListProductsRequest{Brand: "metro"})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if byBrand.Total != 1 || byBrand.Products[0].Brand != "Metro" {
		t.Errorf("expected the Metro product, got %+v", byBrand)
	}

	isFeatured := true
	onlyFeatured, err := s.ListProducts(context.Background(), ListProductsRequest{IsFeatured: &isFeatured})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if onlyFeatured.Total != 1 || !onlyFeatured.Products[0].IsFeatured {
		t.Errorf("expected one featured product, got %+v", onlyFeatured)
	}

	search, err := s.ListProducts(context.Background(), ListProductsRequest{Search: "sneaker"})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if search.Total != 1 || search.Products[0].Name != "City Sneaker" {
		t.Errorf("expected search to match City Sneaker, got %+v", search)
	}
}
