package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository/memrepo"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

type productFixture struct {
	svc      ProductService
	products *memrepo.Products
	entries  *memrepo.LogEntries
	images   *fakeImages
}

func newProductFixture() productFixture {
	f := productFixture{
		products: memrepo.NewProducts(),
		entries:  memrepo.NewLogEntries(),
		images:   &fakeImages{},
	}
	f.svc = NewProductService(memrepo.DB{}, f.products, f.images, newTestAudit(f.entries))
	return f
}

func addParams(sku string) AddProductParams {
	return AddProductParams{
		Name:            "ThinkPad X1",
		Category:        model.CategoryLaptop,
		Brand:           "Lenovo",
		Sku:             sku,
		QuantityInStock: 3,
		Price:           1499.99,
		BaseURL:         "http://localhost:8080",
	}
}

func TestProductService_AddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create the product and log it once", func(t *testing.T) {
		f := newProductFixture()
		params := addParams("TP-X1")
		params.Images = []upload.Image{pngImage("a.png"), pngImage("b.png")}

		product, err := f.svc.AddProduct(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, model.ConditionNew, product.Condition)
		assert.Equal(t, []string{
			"http://localhost:8080/uploads/a.png",
			"http://localhost:8080/uploads/b.png",
		}, product.Images)
		assert.Equal(t, 1, f.products.Len())

		entries := f.entries.All()
		require.Len(t, entries, 1)
		assert.Equal(t, model.OpAddProduct, entries[0].Operation)
		assert.Equal(t, product.ID, decodeSnapshot[model.Product](t, entries[0]).ID)
	})

	t.Run("Should keep an empty image list when none are sent", func(t *testing.T) {
		f := newProductFixture()

		product, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)
		assert.NotNil(t, product.Images)
		assert.Empty(t, product.Images)
	})

	t.Run("Should reject a duplicate sku and leave inventory unchanged", func(t *testing.T) {
		f := newProductFixture()
		_, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)

		params := addParams("TP-X1")
		params.Images = []upload.Image{pngImage("a.png")}
		_, err = f.svc.AddProduct(ctx, params)

		requireCode(t, err, "PRODUCT_ALREADY_EXISTS")
		assert.Equal(t, 1, f.products.Len())
		assert.Len(t, f.entries.All(), 1)
		assert.Empty(t, f.images.stored)
	})

	t.Run("Should not log a failed insert", func(t *testing.T) {
		f := newProductFixture()
		f.images.err = errBoom
		params := addParams("TP-X1")
		params.Images = []upload.Image{pngImage("a.png")}

		_, err := f.svc.AddProduct(ctx, params)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, f.products.Len())
		assert.Empty(t, f.entries.All())
	})

	t.Run("Should succeed even when the audit log fails", func(t *testing.T) {
		f := newProductFixture()
		f.entries.Err = errBoom

		_, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)
		assert.Equal(t, 1, f.products.Len())
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should change only the supplied fields and log once", func(t *testing.T) {
		f := newProductFixture()
		created, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)

		updated, err := f.svc.UpdateProduct(ctx, created.ID, UpdateProductParams{
			Price:           ptr.New(1299.0),
			QuantityInStock: ptr.New(0),
		})
		require.NoError(t, err)

		assert.Equal(t, 1299.0, updated.Price)
		assert.Equal(t, 0, updated.QuantityInStock)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Sku, updated.Sku)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		entries := f.entries.All()
		require.Len(t, entries, 2)
		assert.Equal(t, model.OpUpdateProduct, entries[1].Operation)
		assert.Equal(t, 1299.0, decodeSnapshot[model.Product](t, entries[1]).Price)
	})

	t.Run("Should set and clear the supplier reference", func(t *testing.T) {
		f := newProductFixture()
		created, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)

		supplierID := uuid.New()
		updated, err := f.svc.UpdateProduct(ctx, created.ID, UpdateProductParams{SupplierID: &supplierID})
		require.NoError(t, err)
		require.NotNil(t, updated.SupplierID)
		assert.Equal(t, supplierID, *updated.SupplierID)

		updated, err = f.svc.UpdateProduct(ctx, created.ID, UpdateProductParams{Name: ptr.New("X1 Carbon")})
		require.NoError(t, err)
		assert.NotNil(t, updated.SupplierID)

		updated, err = f.svc.UpdateProduct(ctx, created.ID, UpdateProductParams{ClearSupplier: true})
		require.NoError(t, err)
		assert.Nil(t, updated.SupplierID)
	})

	t.Run("Should replace the image list when images are supplied", func(t *testing.T) {
		f := newProductFixture()
		params := addParams("TP-X1")
		params.Images = []upload.Image{pngImage("old.png")}
		created, err := f.svc.AddProduct(ctx, params)
		require.NoError(t, err)

		updated, err := f.svc.UpdateProduct(ctx, created.ID, UpdateProductParams{
			Images:  []upload.Image{pngImage("new.png")},
			BaseURL: "http://localhost:8080",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:8080/uploads/new.png"}, updated.Images)
	})

	t.Run("Should report a missing product", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.svc.UpdateProduct(ctx, uuid.New(), UpdateProductParams{Name: ptr.New("x")})
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
		assert.Empty(t, f.entries.All())
	})

	t.Run("Should reject taking another product's sku", func(t *testing.T) {
		f := newProductFixture()
		_, err := f.svc.AddProduct(ctx, addParams("A"))
		require.NoError(t, err)
		b, err := f.svc.AddProduct(ctx, addParams("B"))
		require.NoError(t, err)

		_, err = f.svc.UpdateProduct(ctx, b.ID, UpdateProductParams{
			Sku:    ptr.New("A"),
			Images: []upload.Image{pngImage("n.png")},
		})
		requireCode(t, err, "PRODUCT_ALREADY_EXISTS")
		assert.Len(t, f.entries.All(), 2)
		assert.Equal(t, f.images.stored, f.images.discarded)

		got, err := f.svc.GetProduct(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Sku)
	})
}

func TestProductService_RemoveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete and log the pre-deletion snapshot", func(t *testing.T) {
		f := newProductFixture()
		created, err := f.svc.AddProduct(ctx, addParams("TP-X1"))
		require.NoError(t, err)

		removed, err := f.svc.RemoveProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, removed.ID)
		assert.Equal(t, 0, f.products.Len())

		entries := f.entries.All()
		require.Len(t, entries, 2)
		assert.Equal(t, model.OpRemoveProduct, entries[1].Operation)
		assert.Equal(t, "TP-X1", decodeSnapshot[model.Product](t, entries[1]).Sku)
	})

	t.Run("Should report a missing product without logging", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.svc.RemoveProduct(ctx, uuid.New())
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
		assert.Empty(t, f.entries.All())
	})
}

func TestProductService_Queries(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	for i, p := range []struct{ name, brand, sku string }{
		{"ThinkPad X1", "Lenovo", "L1"},
		{"Galaxy S24", "Samsung", "S1"},
		{"MacBook Air", "Apple", "A1"},
	} {
		params := addParams(p.sku)
		params.Name, params.Brand = p.name, p.brand
		if i == 1 {
			params.Category = model.CategoryMobile
		}
		_, err := f.svc.AddProduct(ctx, params)
		require.NoError(t, err)
	}

	t.Run("Should paginate with ceil total pages", func(t *testing.T) {
		page := model.PageParams{Page: 2, Limit: 2}

		products, total, err := f.svc.ListProducts(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, products, 1)
		assert.Equal(t, 2, page.TotalPages(total))
	})

	t.Run("Should return an empty page past the end", func(t *testing.T) {
		products, _, err := f.svc.ListProducts(ctx, model.PageParams{Page: 5, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should reject invalid pages", func(t *testing.T) {
		_, _, err := f.svc.ListProducts(ctx, model.PageParams{Page: 1, Limit: 0})
		assert.ErrorIs(t, err, apperr.InvalidPaginationErr)
	})

	t.Run("Should search case-insensitively over name, category and brand", func(t *testing.T) {
		byName, err := f.svc.SearchProducts(ctx, "thinkpad")
		require.NoError(t, err)
		assert.Len(t, byName, 1)

		byCategory, err := f.svc.SearchProducts(ctx, "MOBILE")
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "S1", byCategory[0].Sku)

		byBrand, err := f.svc.SearchProducts(ctx, "apple")
		require.NoError(t, err)
		assert.Len(t, byBrand, 1)
	})

	t.Run("Should match everything on an empty query", func(t *testing.T) {
		all, err := f.svc.SearchProducts(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Should report an unknown product", func(t *testing.T) {
		_, err := f.svc.GetProduct(ctx, uuid.New())
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}
