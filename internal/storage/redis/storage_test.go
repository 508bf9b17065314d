package redis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pizzeria/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) createAccount(email string) *model.Account {
	account := &model.Account{Email: email, Name: "Test", Role: model.RoleStandard, Credential: "aa.bb"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))
	return account
}

// Account tests

func (s *StorageSuite) TestCreateAndGetAccount() {
	account := s.createAccount("alice@example.com")
	s.NotZero(account.ID)

	retrieved, err := s.storage.GetAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", retrieved.Email)
	s.Equal("aa.bb", retrieved.Credential)
	s.Equal(model.RoleStandard, retrieved.Role)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, 999)
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestCreateAccountDuplicateEmail() {
	s.createAccount("alice@example.com")

	err := s.storage.CreateAccount(s.ctx, &model.Account{Email: "alice@example.com"})
	s.ErrorIs(err, model.ErrEmailTaken)
}

func (s *StorageSuite) TestCreateAccountConcurrentDuplicates() {
	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.storage.CreateAccount(s.ctx, &model.Account{Email: "race@example.com"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrEmailTaken)
		}
	}
	s.Equal(1, succeeded)
}

func (s *StorageSuite) TestFindAccountsByEmail() {
	account := s.createAccount("alice@example.com")

	found, err := s.storage.FindAccountsByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(account.ID, found[0].ID)
}

func (s *StorageSuite) TestFindAccountsByEmailNone() {
	found, err := s.storage.FindAccountsByEmail(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

func (s *StorageSuite) TestFindAccountsByEmailDanglingClaim() {
	s.mini.Set(emailIndexKey("ghost@example.com"), "42")

	found, err := s.storage.FindAccountsByEmail(s.ctx, "ghost@example.com")
	s.Require().NoError(err)
	s.Empty(found)
}

// Address tests

func (s *StorageSuite) TestAddressLifecycle() {
	alice := s.createAccount("alice@example.com")
	bob := s.createAccount("bob@example.com")

	home := &model.Address{AccountID: alice.ID, Name: "Home", Lat: -33.86, Lng: 151.2, IsDefault: true}
	s.Require().NoError(s.storage.CreateAddress(s.ctx, home))
	work := &model.Address{AccountID: alice.ID, Name: "Work"}
	s.Require().NoError(s.storage.CreateAddress(s.ctx, work))
	s.Require().NoError(s.storage.CreateAddress(s.ctx, &model.Address{AccountID: bob.ID, Name: "Bob's"}))

	list, err := s.storage.ListAddresses(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Home", list[0].Name)
	s.Equal("Work", list[1].Name)
	s.InDelta(-33.86, list[0].Lat, 1e-9)
	s.True(list[0].IsDefault)

	s.Require().NoError(s.storage.DeleteAddress(s.ctx, home.ID))

	_, err = s.storage.GetAddress(s.ctx, home.ID)
	s.ErrorIs(err, model.ErrAddressNotFound)

	list, err = s.storage.ListAddresses(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *StorageSuite) TestDeleteMissingAddressIsNoop() {
	s.NoError(s.storage.DeleteAddress(s.ctx, 404))
}

func (s *StorageSuite) TestListAddressesEmpty() {
	list, err := s.storage.ListAddresses(s.ctx, 1)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

// Payment tests

func (s *StorageSuite) TestPaymentBrandIsNotPersisted() {
	alice := s.createAccount("alice@example.com")

	payment := &model.Payment{
		AccountID:    alice.ID,
		Type:         model.CardTypeCredit,
		Number:       "4111111111111111",
		SecurityCode: "123",
		Brand:        model.BrandVisa,
	}
	s.Require().NoError(s.storage.CreatePayment(s.ctx, payment))

	retrieved, err := s.storage.GetPayment(s.ctx, payment.ID)
	s.Require().NoError(err)
	s.Equal("4111111111111111", retrieved.Number)
	s.Equal(model.BrandUnknown, retrieved.Brand)
}

func (s *StorageSuite) TestPaymentListAndDelete() {
	alice := s.createAccount("alice@example.com")

	p := &model.Payment{AccountID: alice.ID, Number: "5500000000000004"}
	s.Require().NoError(s.storage.CreatePayment(s.ctx, p))

	list, err := s.storage.ListPayments(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(s.storage.DeletePayment(s.ctx, p.ID))

	list, err = s.storage.ListPayments(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(list)
	s.False(s.mini.Exists(ownedIndexKey(entityPayment, alice.ID)))
}

// Catalog tests

func (s *StorageSuite) TestProductLifecycle() {
	margherita := &model.Product{Name: "Margherita", Price: 12.5}
	s.Require().NoError(s.storage.CreateProduct(s.ctx, margherita))
	s.Require().NoError(s.storage.CreateProduct(s.ctx, &model.Product{Name: "Pepperoni", Price: 14}))

	margherita.Price = 13
	s.Require().NoError(s.storage.UpdateProduct(s.ctx, margherita))

	retrieved, err := s.storage.GetProduct(s.ctx, margherita.ID)
	s.Require().NoError(err)
	s.InDelta(13.0, retrieved.Price, 1e-9)

	list, err := s.storage.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Margherita", list[0].Name)

	s.Require().NoError(s.storage.DeleteProduct(s.ctx, margherita.ID))
	_, err = s.storage.GetProduct(s.ctx, margherita.ID)
	s.ErrorIs(err, model.ErrProductNotFound)
}

func (s *StorageSuite) TestUpdateMissingProduct() {
	err := s.storage.UpdateProduct(s.ctx, &model.Product{ID: 77, Name: "Ghost"})
	s.ErrorIs(err, model.ErrProductNotFound)
	s.False(s.mini.Exists(entityKey(entityProduct, 77)))
}

func (s *StorageSuite) TestPromotionLifecycle() {
	promo := &model.Promotion{Name: "Two for one", Discount: 50, ProductID: 1, SizeID: 2}
	s.Require().NoError(s.storage.CreatePromotion(s.ctx, promo))

	promo.Discount = 40
	s.Require().NoError(s.storage.UpdatePromotion(s.ctx, promo))

	list, err := s.storage.ListPromotions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.InDelta(40.0, list[0].Discount, 1e-9)

	s.Require().NoError(s.storage.DeletePromotion(s.ctx, promo.ID))
	_, err = s.storage.GetPromotion(s.ctx, promo.ID)
	s.ErrorIs(err, model.ErrPromotionNotFound)
}

func (s *StorageSuite) TestRecordLifecycle() {
	large := &model.Record{Name: "Large", Type: model.RecordTypeSize, Price: 4}
	s.Require().NoError(s.storage.CreateRecord(s.ctx, large))

	err := s.storage.UpdateRecord(s.ctx, &model.Record{ID: 99})
	s.ErrorIs(err, model.ErrRecordNotFound)

	retrieved, err := s.storage.GetRecord(s.ctx, large.ID)
	s.Require().NoError(err)
	s.Equal(model.RecordTypeSize, retrieved.Type)

	s.Require().NoError(s.storage.DeleteRecord(s.ctx, large.ID))
	list, err := s.storage.ListRecords(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *StorageSuite) TestListSkipsVanishedEntities() {
	s.Require().NoError(s.storage.CreateProduct(s.ctx, &model.Product{Name: "A"}))
	s.Require().NoError(s.storage.CreateProduct(s.ctx, &model.Product{Name: "B"}))

	s.mini.Del(entityKey(entityProduct, 1))

	list, err := s.storage.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("B", list[0].Name)
}

func (s *StorageSuite) TestIDsAreSequentialPerEntity() {
	a := &model.Product{Name: "A"}
	b := &model.Product{Name: "B"}
	r := &model.Record{Name: "Small", Type: model.RecordTypeSize}
	s.Require().NoError(s.storage.CreateProduct(s.ctx, a))
	s.Require().NoError(s.storage.CreateProduct(s.ctx, b))
	s.Require().NoError(s.storage.CreateRecord(s.ctx, r))

	s.Equal(model.ProductID(1), a.ID)
	s.Equal(model.ProductID(2), b.ID)
	s.Equal(model.RecordID(1), r.ID)
}

func (s *StorageSuite) TestConnectionFailure() {
	s.mini.Close()

	_, err := s.storage.GetAccount(s.ctx, 1)
	s.Error(err)
	s.NotErrorIs(err, model.ErrAccountNotFound)
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url://"

	_, err := New(cfg)
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestNewConnects(t *testing.T) {
	mini := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	if store.Client() == nil {
		t.Fatal("expected client")
	}
}
