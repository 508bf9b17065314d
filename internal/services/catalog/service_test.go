package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage/memory"
	"github.com/mcoot/pizzeria/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) product(name string) *model.Product {
	p, err := s.service.CreateProduct(s.ctx, model.Product{Name: name, Price: 10})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) record(name string, typ model.RecordType) *model.Record {
	r, err := s.service.CreateRecord(s.ctx, model.Record{Name: name, Type: typ, Price: 2})
	s.Require().NoError(err)
	return r
}

// Product tests

func (s *ServiceSuite) TestProductCRUD() {
	p := s.product("Margherita")

	got, err := s.service.GetProduct(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Margherita", got.Name)

	updated, err := s.service.UpdateProduct(s.ctx, p.ID, func(p *model.Product) { p.Price = 15 })
	s.Require().NoError(err)
	s.InDelta(15.0, updated.Price, 1e-9)
	s.Equal("Margherita", updated.Name)

	s.Require().NoError(s.service.DeleteProduct(s.ctx, p.ID))
	_, err = s.service.GetProduct(s.ctx, p.ID)
	s.ErrorIs(err, model.ErrProductNotFound)
}

func (s *ServiceSuite) TestUpdateProductCannotChangeID() {
	p := s.product("Margherita")

	updated, err := s.service.UpdateProduct(s.ctx, p.ID, func(p *model.Product) { p.ID = 999 })
	s.Require().NoError(err)
	s.Equal(p.ID, updated.ID)
}

func (s *ServiceSuite) TestMissingProduct() {
	_, err := s.service.UpdateProduct(s.ctx, 404, func(*model.Product) {})
	s.ErrorIs(err, model.ErrProductNotFound)
	s.ErrorIs(s.service.DeleteProduct(s.ctx, 404), model.ErrProductNotFound)
}

func (s *ServiceSuite) TestListProducts() {
	s.product("A")
	s.product("B")

	list, err := s.service.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

// Promotion tests

func (s *ServiceSuite) TestCreatePromotion() {
	p := s.product("Margherita")
	large := s.record("Large", model.RecordTypeSize)

	promo, err := s.service.CreatePromotion(s.ctx, model.Promotion{
		Name:      "Large for less",
		Discount:  0.2,
		ProductID: p.ID,
		SizeID:    large.ID,
	})
	s.Require().NoError(err)
	s.NotZero(promo.ID)
}

func (s *ServiceSuite) TestCreatePromotionUnknownProduct() {
	large := s.record("Large", model.RecordTypeSize)

	_, err := s.service.CreatePromotion(s.ctx, model.Promotion{ProductID: 404, SizeID: large.ID})
	s.ErrorIs(err, ErrInvalidPromotion)
	s.ErrorIs(err, model.ErrProductNotFound)
}

func (s *ServiceSuite) TestCreatePromotionUnknownSize() {
	p := s.product("Margherita")

	_, err := s.service.CreatePromotion(s.ctx, model.Promotion{ProductID: p.ID, SizeID: 404})
	s.ErrorIs(err, ErrInvalidPromotion)
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *ServiceSuite) TestCreatePromotionSizeMustBeSizeRecord() {
	p := s.product("Margherita")
	bbq := s.record("BBQ", model.RecordTypeSauce)

	_, err := s.service.CreatePromotion(s.ctx, model.Promotion{ProductID: p.ID, SizeID: bbq.ID})
	s.ErrorIs(err, ErrInvalidPromotion)
	s.ErrorIs(err, model.ErrNotASize)

	list, _ := s.service.ListPromotions(s.ctx)
	s.Empty(list)
}

func (s *ServiceSuite) TestUpdatePromotionRechecksRefs() {
	p := s.product("Margherita")
	large := s.record("Large", model.RecordTypeSize)
	bbq := s.record("BBQ", model.RecordTypeSauce)

	promo, err := s.service.CreatePromotion(s.ctx, model.Promotion{ProductID: p.ID, SizeID: large.ID})
	s.Require().NoError(err)

	_, err = s.service.UpdatePromotion(s.ctx, promo.ID, func(p *model.Promotion) { p.SizeID = bbq.ID })
	s.ErrorIs(err, model.ErrNotASize)

	stored, err := s.service.GetPromotion(s.ctx, promo.ID)
	s.Require().NoError(err)
	s.Equal(large.ID, stored.SizeID)

	updated, err := s.service.UpdatePromotion(s.ctx, promo.ID, func(p *model.Promotion) { p.Discount = 0.5 })
	s.Require().NoError(err)
	s.InDelta(0.5, updated.Discount, 1e-9)
}

func (s *ServiceSuite) TestDeletePromotion() {
	p := s.product("Margherita")
	large := s.record("Large", model.RecordTypeSize)
	promo, _ := s.service.CreatePromotion(s.ctx, model.Promotion{ProductID: p.ID, SizeID: large.ID})

	s.Require().NoError(s.service.DeletePromotion(s.ctx, promo.ID))
	s.ErrorIs(s.service.DeletePromotion(s.ctx, promo.ID), model.ErrPromotionNotFound)
}

// Record tests

func (s *ServiceSuite) TestRecordCRUD() {
	r := s.record("Mozzarella", model.RecordTypeCheese)

	updated, err := s.service.UpdateRecord(s.ctx, r.ID, func(r *model.Record) { r.Price = 3 })
	s.Require().NoError(err)
	s.InDelta(3.0, updated.Price, 1e-9)

	list, err := s.service.ListRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(s.service.DeleteRecord(s.ctx, r.ID))
	_, err = s.service.GetRecord(s.ctx, r.ID)
	s.ErrorIs(err, model.ErrRecordNotFound)
}
