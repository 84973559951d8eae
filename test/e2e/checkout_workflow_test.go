// test/e2e/checkout_workflow_test.go
package e2e_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/services"
	"github.com/clementech/checkout-be/internal/workers"
	"github.com/clementech/checkout-be/test/helpers"
)

// CheckoutWorkflowSuite drives the whole engine against the file backend:
// catalog seed, cart, finalize, receipt, restart, line removal.
type CheckoutWorkflowSuite struct {
	suite.Suite
	repos   *helpers.FileRepos
	service *services.CheckoutService
	seq     *services.SequenceAllocator
	ctx     context.Context
}

func (s *CheckoutWorkflowSuite) SetupTest() {
	s.repos = helpers.NewFileRepos(s.T())
	s.ctx = context.Background()
	s.seq = services.NewSequenceAllocator()
	s.service = services.NewCheckoutService(
		s.repos.Catalog, s.repos.Bills, s.seq, nil, nil, helpers.TestLogger())

	items := []domain.Item{
		*helpers.CreateTestItem(func(i *domain.Item) {
			i.ItemID = "A1"
			i.Name = "Nokia 3310"
			i.SellingPrice = decimal.NewFromInt(100)
			i.DiscountPercentage = decimal.NewFromInt(10)
			i.StockQuantity = 2
		}),
		*helpers.CreateTestItem(func(i *domain.Item) {
			i.ItemID = "B2"
			i.Name = "ThinkPad X1"
			i.Sector = domain.SectorLaptops
			i.SellingPrice = decimal.NewFromInt(1200)
			i.StockQuantity = 5
		}),
	}
	s.Require().NoError(s.repos.Catalog.SaveAll(s.ctx, items))
}

func (s *CheckoutWorkflowSuite) fillCart(quantities map[string]int) *domain.Cart {
	catalog, err := s.service.Catalog(s.ctx)
	s.Require().NoError(err)

	cart := domain.NewCart()
	for itemID, qty := range quantities {
		for i := 0; i < qty; i++ {
			s.Require().NoError(cart.AddItem(itemID, catalog))
		}
	}
	return cart
}

func (s *CheckoutWorkflowSuite) TestFullCheckout() {
	cart := s.fillCart(map[string]int{"A1": 2, "B2": 1})

	bill, err := s.service.Finalize(s.ctx, cart, "Jane Doe", "operator1")
	s.Require().NoError(err)

	s.Equal(int64(1), bill.BillNumber)
	s.Equal(3, bill.UnitCount())
	// 2x100 + 1200 = 1400, 10% off the two phone units = 20.
	s.True(bill.Subtotal.Equal(decimal.NewFromInt(1400)))
	s.True(bill.DiscountAmount.Equal(decimal.NewFromInt(20)))
	s.True(bill.Total.Equal(decimal.NewFromInt(1380)))

	// The stock decrement landed on disk.
	phone, err := s.repos.Catalog.FindByID(s.ctx, "A1")
	s.Require().NoError(err)
	s.Equal(0, phone.StockQuantity)
	s.Equal(2, phone.NumberSold)
	s.Require().NotNil(phone.DateSold)

	// So did the bill.
	stored, err := s.repos.Bills.FindByNumber(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.True(stored.Total.Equal(bill.Total))
}

func (s *CheckoutWorkflowSuite) TestReceiptRendering() {
	cart := s.fillCart(map[string]int{"A1": 1})
	bill, err := s.service.Finalize(s.ctx, cart, "Jane Doe", "operator1")
	s.Require().NoError(err)

	// Receipt rendering runs as a background task in production; drive the
	// processor directly here.
	processor := workers.NewReceiptProcessor(s.repos.Bills, s.repos.Receipts, helpers.TestLogger())
	task, err := workers.NewReceiptRenderTask(bill.BillNumber)
	s.Require().NoError(err)
	s.Require().NoError(processor.ProcessReceipt(s.ctx, task))

	path, err := s.repos.Receipts.Write(*bill)
	s.Require().NoError(err)
	content, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(content), "Bill #1")
	s.Contains(string(content), "Nokia 3310")
}

func (s *CheckoutWorkflowSuite) TestOversellRejectedWholesale() {
	cart := s.fillCart(map[string]int{"A1": 2})

	// Stock drops to 1 behind the cart's back.
	items, err := s.repos.Catalog.LoadAll(s.ctx)
	s.Require().NoError(err)
	catalog := domain.NewCatalog(items)
	catalog.FindByID("A1").StockQuantity = 1
	s.Require().NoError(s.repos.Catalog.SaveAll(s.ctx, catalog.Items()))

	_, err = s.service.Finalize(s.ctx, cart, "Jane Doe", "operator1")
	s.Require().ErrorIs(err, domain.ErrOutOfStock)

	// Nothing sold, nothing billed: the failure is all-or-nothing.
	phone, err := s.repos.Catalog.FindByID(s.ctx, "A1")
	s.Require().NoError(err)
	s.Equal(1, phone.StockQuantity)
	s.Equal(0, phone.NumberSold)

	bills, err := s.repos.Bills.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(bills)
}

func (s *CheckoutWorkflowSuite) TestBillNumbersSurviveRestart() {
	_, err := s.service.Finalize(s.ctx, s.fillCart(map[string]int{"B2": 1}), "Jane Doe", "operator1")
	s.Require().NoError(err)
	_, err = s.service.Finalize(s.ctx, s.fillCart(map[string]int{"B2": 1}), "John Doe", "operator1")
	s.Require().NoError(err)

	// Simulate a process restart: a fresh allocator initialized from the
	// persisted history must continue after the highest committed number.
	max, err := s.repos.Bills.MaxBillNumber(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), max)

	restarted := services.NewSequenceAllocator()
	restarted.Initialize(max)
	restartedService := services.NewCheckoutService(
		s.repos.Catalog, s.repos.Bills, restarted, nil, nil, helpers.TestLogger())

	bill, err := restartedService.Finalize(s.ctx, s.fillCart(map[string]int{"B2": 1}), "Jane Doe", "operator1")
	s.Require().NoError(err)
	s.Equal(int64(3), bill.BillNumber)
}

func (s *CheckoutWorkflowSuite) TestRemoveBillLineRestoresStock() {
	bill, err := s.service.Finalize(s.ctx, s.fillCart(map[string]int{"A1": 2}), "Jane Doe", "operator1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveBillLine(s.ctx, bill, "A1"))

	s.Equal(1, bill.UnitsOf("A1"))
	s.True(bill.Total.Equal(decimal.NewFromInt(90)))

	phone, err := s.repos.Catalog.FindByID(s.ctx, "A1")
	s.Require().NoError(err)
	s.Equal(1, phone.StockQuantity)
	s.Equal(1, phone.NumberSold)
	s.NotNil(phone.DateSold, "a unit is still sold")

	stored, err := s.repos.Bills.FindByNumber(s.ctx, bill.BillNumber)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(1, stored.UnitCount())
	s.True(stored.Total.Equal(decimal.NewFromInt(90)))
}

func (s *CheckoutWorkflowSuite) TestSearch() {
	found, err := s.service.SearchItems(s.ctx, "think")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("B2", found[0].ItemID)

	all, err := s.service.SearchItems(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestCheckoutWorkflowSuite(t *testing.T) {
	suite.Run(t, new(CheckoutWorkflowSuite))
}
