//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/clementech/checkout-be/internal/adapters/db"
	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
	"github.com/clementech/checkout-be/test/helpers"
)

type RepositorySuite struct {
	suite.Suite
	testDB  *helpers.TestDB
	catalog ports.CatalogRepository
	bills   ports.BillRepository
	ctx     context.Context
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.catalog = db.NewCatalogRepository(s.testDB.Database, helpers.TestLogger())
	s.bills = db.NewBillRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *RepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.Database)
}

func (s *RepositorySuite) TestCatalog_SaveAllLoadAll_RoundTrip() {
	items := helpers.CreateTestItems(3)

	s.NoError(s.catalog.SaveAll(s.ctx, items))

	loaded, err := s.catalog.LoadAll(s.ctx)
	s.NoError(err)
	s.Len(loaded, 3)
	s.Equal("A1", loaded[0].ItemID)
	s.True(items[1].SellingPrice.Equal(loaded[1].SellingPrice))
	s.Equal(items[2].StockQuantity, loaded[2].StockQuantity)
}

func (s *RepositorySuite) TestCatalog_SaveAll_ReplacesWholeCollection() {
	s.NoError(s.catalog.SaveAll(s.ctx, helpers.CreateTestItems(5)))
	s.NoError(s.catalog.SaveAll(s.ctx, helpers.CreateTestItems(2)))

	loaded, err := s.catalog.LoadAll(s.ctx)
	s.NoError(err)
	s.Len(loaded, 2)
}

func (s *RepositorySuite) TestCatalog_FindByID_CaseInsensitive() {
	s.NoError(s.catalog.SaveAll(s.ctx, helpers.CreateTestItems(2)))

	item, err := s.catalog.FindByID(s.ctx, "a2")
	s.NoError(err)
	s.Equal("A2", item.ItemID)

	_, err = s.catalog.FindByID(s.ctx, "Z9")
	s.ErrorIs(err, domain.ErrItemNotFound)
}

func (s *RepositorySuite) TestCatalog_PreservesDates() {
	sold := time.Now().Truncate(time.Second)
	item := helpers.CreateTestItem(func(i *domain.Item) {
		i.NumberSold = 2
		i.DateSold = &sold
	})

	s.NoError(s.catalog.SaveAll(s.ctx, []domain.Item{*item}))

	loaded, err := s.catalog.FindByID(s.ctx, "A1")
	s.NoError(err)
	s.Require().NotNil(loaded.DateSold)
	s.WithinDuration(sold, *loaded.DateSold, time.Second)
	s.Equal(2, loaded.NumberSold)
}

func (s *RepositorySuite) TestBills_AppendAndFind() {
	item := helpers.CreateTestItem()
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(1, *item)))
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(2, *item, *item)))

	found, err := s.bills.FindByNumber(s.ctx, 2)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(2, found.UnitCount())
	s.True(found.Total.Equal(decimal.NewFromInt(200)))

	missing, err := s.bills.FindByNumber(s.ctx, 99)
	s.NoError(err)
	s.Nil(missing)
}

func (s *RepositorySuite) TestBills_LinesKeepOrder() {
	items := helpers.CreateTestItems(3)
	bill := helpers.CreateTestBill(1, items[0], items[1], items[2])
	s.NoError(s.bills.Append(s.ctx, *bill))

	found, err := s.bills.FindByNumber(s.ctx, 1)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal("A1", found.Lines[0].ItemID)
	s.Equal("A2", found.Lines[1].ItemID)
	s.Equal("A3", found.Lines[2].ItemID)
}

func (s *RepositorySuite) TestBills_MaxBillNumber() {
	max, err := s.bills.MaxBillNumber(s.ctx)
	s.NoError(err)
	s.Equal(int64(0), max)

	item := helpers.CreateTestItem()
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(7, *item)))
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(3, *item)))

	max, err = s.bills.MaxBillNumber(s.ctx)
	s.NoError(err)
	s.Equal(int64(7), max)
}

func (s *RepositorySuite) TestBills_BillsOnDate() {
	item := helpers.CreateTestItem()
	today := helpers.CreateTestBill(1, *item)
	yesterday := helpers.CreateTestBill(2, *item)
	yesterday.DateCreated = time.Now().AddDate(0, 0, -1)

	s.NoError(s.bills.SaveAll(s.ctx, []domain.Bill{*today, *yesterday}))

	bills, err := s.bills.BillsOnDate(s.ctx, time.Now())
	s.NoError(err)
	s.Require().Len(bills, 1)
	s.Equal(int64(1), bills[0].BillNumber)
}

func (s *RepositorySuite) TestBills_SaveAll_ReplacesHistory() {
	item := helpers.CreateTestItem()
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(1, *item)))
	s.NoError(s.bills.Append(s.ctx, *helpers.CreateTestBill(2, *item)))

	shrunk := helpers.CreateTestBill(1, *item)
	s.NoError(s.bills.SaveAll(s.ctx, []domain.Bill{*shrunk}))

	bills, err := s.bills.LoadAll(s.ctx)
	s.NoError(err)
	s.Len(bills, 1)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}
