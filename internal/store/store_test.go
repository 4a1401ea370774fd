package store

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pedidos/internal/models"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedPlacedOrder writes a client, product and one placed order directly; the
// cascade tests only care about the rows, not how placement produced them.
func seedPlacedOrder(t *testing.T, db *gorm.DB) (models.Client, models.Product, models.Order) {
	t.Helper()
	client := models.Client{Name: "João Lima"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	product := models.Product{Name: "Agenda", UnitPrice: 25.00, Stock: 7}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("product: %v", err)
	}
	pid := product.ID
	order := models.Order{
		ClientID: client.ID,
		PlacedAt: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC),
		Total:    50.00,
		Items: []models.OrderItem{
			{ProductID: &pid, ProductName: product.Name, Quantity: 2, UnitPrice: 25.00},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("order: %v", err)
	}
	return client, product, order
}

func TestClientDeleteCascadesToOrders(t *testing.T) {
	db := setupStoreTestDB(t)
	client, _, _ := seedPlacedOrder(t, db)

	if err := NewClientStore(db).Delete(client.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for model, name := range map[any]string{
		&models.Client{}:    "clients",
		&models.Order{}:     "orders",
		&models.OrderItem{}: "order_items",
	} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Fatalf("%s = %d after cascade, want 0", name, n)
		}
	}
}

func TestProductDeleteKeepsItemSnapshots(t *testing.T) {
	db := setupStoreTestDB(t)
	_, product, order := seedPlacedOrder(t, db)

	if err := NewProductStore(db).Delete(product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 surviving the product delete", len(items))
	}
	it := items[0]
	if it.ProductID != nil {
		t.Fatalf("product ref = %v, want cleared", *it.ProductID)
	}
	if it.ProductName != "Agenda" || it.Quantity != 2 || it.UnitPrice != 25.00 {
		t.Fatalf("snapshot lost: %+v", it)
	}
}

func TestClientListSearchesNameAndEmail(t *testing.T) {
	db := setupStoreTestDB(t)
	s := NewClientStore(db)
	email := "ana@example.com"
	for _, c := range []models.Client{
		{Name: "Ana Paula", Email: &email},
		{Name: "Bruno Costa"},
	} {
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	byName, total, err := s.List("ana", 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(byName) != 1 || byName[0].Name != "Ana Paula" {
		t.Fatalf("unexpected result for name search: total=%d %+v", total, byName)
	}

	byEmail, total, err := s.List("example.com", 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(byEmail) != 1 {
		t.Fatalf("unexpected result for email search: total=%d %+v", total, byEmail)
	}
}

func TestOrderListJoinsClientNameNewestFirst(t *testing.T) {
	db := setupStoreTestDB(t)
	client, product, _ := seedPlacedOrder(t, db)
	pid := product.ID
	later := models.Order{
		ClientID: client.ID,
		PlacedAt: time.Date(2025, 2, 11, 9, 0, 0, 0, time.UTC),
		Total:    25.00,
		Items:    []models.OrderItem{{ProductID: &pid, ProductName: product.Name, Quantity: 1, UnitPrice: 25.00}},
	}
	if err := db.Create(&later).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, total, err := NewOrderStore(db).List(50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total=%d rows=%d, want 2/2", total, len(rows))
	}
	if rows[0].ID != later.ID {
		t.Fatalf("first row = order %d, want most recent %d", rows[0].ID, later.ID)
	}
	if rows[0].ClientName != "João Lima" {
		t.Fatalf("client name = %q", rows[0].ClientName)
	}
}
