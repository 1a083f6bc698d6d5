//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/test/helpers"
)

type DocumentStoreSuite struct {
	suite.Suite
	testDB *helpers.TestDB
	store  ports.DocumentStore
	ctx    context.Context
}

func (s *DocumentStoreSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.store = s.testDB.Store
	s.ctx = context.Background()
}

func (s *DocumentStoreSuite) SetupTest() {
	helpers.TruncateDocuments(s.T(), s.testDB.Database)
}

func (s *DocumentStoreSuite) TestSetAndGet() {
	item := helpers.CreateTestInventoryItem()
	s.Require().NoError(s.store.SetOne(s.ctx, ports.CollectionInventory, item.ID, item.Fields()))

	doc, err := s.store.GetOne(s.ctx, ports.CollectionInventory, item.ID)
	s.Require().NoError(err)
	s.Require().NotNil(doc)
	s.Equal(item.ID, ports.DocumentID(doc))

	decoded, err := domain.DecodeInventoryItem(doc)
	s.Require().NoError(err)
	s.Equal(item.Name, decoded.Name)
	s.Equal(item.Quantity, decoded.Quantity)
	s.True(item.PricePerPiece.Equal(decoded.PricePerPiece))
	s.Equal(item.Status, decoded.Status)
}

func (s *DocumentStoreSuite) TestGetOne_Missing() {
	doc, err := s.store.GetOne(s.ctx, ports.CollectionInventory, "INV-999")
	s.NoError(err)
	s.Nil(doc)
}

func (s *DocumentStoreSuite) TestGetAll_ScopedToCollection() {
	helpers.SeedItems(s.T(), s.store, helpers.CreateTestInventoryItems(3)...)
	helpers.SeedSuppliers(s.T(), s.store, helpers.CreateTestSupplier())

	docs, err := s.store.GetAll(s.ctx, ports.CollectionInventory)
	s.Require().NoError(err)
	s.Require().Len(docs, 3)
	s.Equal("INV-001", ports.DocumentID(docs[0]))
	s.Equal("INV-003", ports.DocumentID(docs[2]))
}

func (s *DocumentStoreSuite) TestUpdateOne_SetAndUnset() {
	archivedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	item := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.Archived = true
		i.ArchivedAt = &archivedAt
	})
	helpers.SeedItems(s.T(), s.store, item)

	err := s.store.UpdateOne(s.ctx, ports.CollectionInventory, item.ID, ports.Patch{
		Set:   ports.Document{"archived": false},
		Unset: []string{"archivedAt"},
	})
	s.Require().NoError(err)

	got := helpers.LoadItem(s.T(), s.store, item.ID)
	s.False(got.Archived)
	s.Nil(got.ArchivedAt)
	s.Equal(item.Name, got.Name)
}

func (s *DocumentStoreSuite) TestUpdateOne_NilUnsetKeepsDocument() {
	item := helpers.CreateTestInventoryItem()
	helpers.SeedItems(s.T(), s.store, item)

	err := s.store.UpdateOne(s.ctx, ports.CollectionInventory, item.ID, ports.Patch{
		Set: ports.Document{"quantity": 3},
	})
	s.Require().NoError(err)

	got := helpers.LoadItem(s.T(), s.store, item.ID)
	s.Equal(3, got.Quantity)
	s.Equal(item.Name, got.Name)
}

func (s *DocumentStoreSuite) TestUpdateAndDelete_Missing() {
	err := s.store.UpdateOne(s.ctx, ports.CollectionInventory, "INV-404", ports.Patch{Set: ports.Document{"quantity": 1}})
	s.ErrorIs(err, ports.ErrDocumentNotFound)

	err = s.store.DeleteOne(s.ctx, ports.CollectionInventory, "INV-404")
	s.ErrorIs(err, ports.ErrDocumentNotFound)
}

func (s *DocumentStoreSuite) TestBatchWrite_AllOrNothing() {
	items := helpers.CreateTestInventoryItems(2)
	helpers.SeedItems(s.T(), s.store, items...)

	err := s.store.BatchWrite(s.ctx, []ports.WriteOp{
		{Kind: ports.WriteUpdate, Collection: ports.CollectionInventory, ID: "INV-001", Fields: ports.Document{"archived": true}},
		{Kind: ports.WriteDelete, Collection: ports.CollectionInventory, ID: "INV-404"},
	})
	s.ErrorIs(err, ports.ErrDocumentNotFound)

	got := helpers.LoadItem(s.T(), s.store, "INV-001")
	s.False(got.Archived, "failed batch must not leave partial writes")

	err = s.store.BatchWrite(s.ctx, []ports.WriteOp{
		{Kind: ports.WriteUpdate, Collection: ports.CollectionInventory, ID: "INV-001", Fields: ports.Document{"archived": true}},
		{Kind: ports.WriteDelete, Collection: ports.CollectionInventory, ID: "INV-002"},
		{Kind: ports.WriteSet, Collection: ports.CollectionSuppliers, ID: "SUP-001", Fields: helpers.CreateTestSupplier().Fields()},
	})
	s.Require().NoError(err)

	s.True(helpers.LoadItem(s.T(), s.store, "INV-001").Archived)
	doc, err := s.store.GetOne(s.ctx, ports.CollectionInventory, "INV-002")
	s.NoError(err)
	s.Nil(doc)
}

func TestDocumentStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DocumentStoreSuite))
}
