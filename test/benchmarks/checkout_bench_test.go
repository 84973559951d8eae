// test/benchmarks/checkout_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/clementech/checkout-be/internal/adapters/filestore"
	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/services"
	"github.com/clementech/checkout-be/test/helpers"
)

func benchService(b *testing.B, catalogSize int) (*services.CheckoutService, *filestore.CatalogRepository) {
	b.Helper()

	dir := b.TempDir()
	logger := helpers.TestLogger()
	catalog := filestore.NewCatalogRepository(filepath.Join(dir, "items.json"), logger)
	bills := filestore.NewBillRepository(filepath.Join(dir, "bills.json"), logger)

	items := helpers.CreateTestItems(catalogSize)
	for i := range items {
		items[i].StockQuantity = 1 << 30
	}
	if err := catalog.SaveAll(context.Background(), items); err != nil {
		b.Fatal(err)
	}

	seq := services.NewSequenceAllocator()
	return services.NewCheckoutService(catalog, bills, seq, nil, nil, logger), catalog
}

func BenchmarkFinalize(b *testing.B) {
	service, catalogRepo := benchService(b, 100)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		items, err := catalogRepo.LoadAll(ctx)
		if err != nil {
			b.Fatal(err)
		}
		catalog := domain.NewCatalog(items)
		cart := domain.NewCart()
		if err := cart.AddItem("A1", catalog); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()

		if _, err := service.Finalize(ctx, cart, "Bench Buyer", "bench"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchItems(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("catalog_%d", size), func(b *testing.B) {
			service, _ := benchService(b, size)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := service.SearchItems(ctx, "Test Item 5"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCatalogSaveAll(b *testing.B) {
	for _, size := range []int{100, 1000} {
		b.Run(fmt.Sprintf("items_%d", size), func(b *testing.B) {
			dir := b.TempDir()
			repo := filestore.NewCatalogRepository(filepath.Join(dir, "items.json"), helpers.TestLogger())
			items := helpers.CreateTestItems(size)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := repo.SaveAll(ctx, items); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReceiptRender(b *testing.B) {
	dir := b.TempDir()
	writer := filestore.NewReceiptWriter(filepath.Join(dir, "bills"), helpers.TestLogger())

	items := helpers.CreateTestItems(20)
	bill := helpers.CreateTestBill(1, items...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := writer.Write(*bill); err != nil {
			b.Fatal(err)
		}
	}
}
