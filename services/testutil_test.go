package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"urbanserv/entity"
	"urbanserv/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A file-backed DB (not cache=shared memory) so that reads on a second
	// connection are not blocked by sqlite shared-cache table locks while a
	// transaction is open on the first.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Service{}, &entity.MenuItem{},
		&entity.CartItem{},
		&entity.Order{}, &entity.Payment{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	cart     *repository.CartRepository
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	catalog  *CatalogService

	user     entity.User
	menuDosa entity.MenuItem // 108.00
	svcClean entity.Service  // 450.00
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		cart:     repository.NewCartRepository(db),
		orders:   repository.NewOrderRepository(db),
		payments: repository.NewPaymentRepository(db),
		catalog:  NewCatalogService(repository.NewCatalogRepository(db), 0),
	}

	f.user = entity.User{
		Email: "asha@example.com", Password: "x", FullName: "Asha Rao",
		Phone: "9999900000", Address: "12 MG Road", Role: "customer",
	}
	require.NoError(t, db.Create(&f.user).Error)

	f.menuDosa = entity.MenuItem{Name: "Masala Dosa", Description: "With sambar", Price: 108.00, Status: "active"}
	require.NoError(t, db.Create(&f.menuDosa).Error)

	f.svcClean = entity.Service{Name: "Home Cleaning", Description: "Deep clean", Price: 450.00, Status: "active"}
	require.NoError(t, db.Create(&f.svcClean).Error)

	return f
}

func (f *fixture) checkout() *CheckoutService {
	return NewCheckoutService(f.db, f.users, f.cart, f.catalog, f.orders, f.payments)
}

func (f *fixture) addToCart(t *testing.T, itemType string, itemID uint, qty int) {
	t.Helper()
	require.NoError(t, f.db.Create(&entity.CartItem{
		UserID: f.user.ID, ItemType: itemType, ItemID: itemID, Quantity: qty,
	}).Error)
}

func (f *fixture) cartCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entity.CartItem{}).Where("user_id = ?", f.user.ID).Count(&n).Error)
	return n
}
