// Package testdb provides the in-memory sqlite schema repository tests run
// against. The DDL mirrors the Postgres migration, including foreign key
// actions and CHECK constraints, so constraint behavior can be exercised
// without a database server.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/enums"
)

var schema = []string{
	`CREATE TABLE customers (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE UNIQUE INDEX uq_customers_email ON customers (email);`,
	`CREATE TABLE profiles (
  customer_id TEXT PRIMARY KEY REFERENCES customers (id) ON DELETE CASCADE,
  birth_date DATETIME,
  gender TEXT CHECK (gender IN ('male', 'female', 'other')),
  loyalty_points INTEGER NOT NULL DEFAULT 0 CHECK (loyalty_points >= 0),
  avatar_url TEXT,
  updated_at DATETIME
);`,
	`CREATE TABLE addresses (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
  label TEXT NOT NULL DEFAULT 'home',
  line1 TEXT NOT NULL,
  line2 TEXT,
  city TEXT NOT NULL,
  region TEXT,
  postal_code TEXT,
  country TEXT NOT NULL DEFAULT 'KE',
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  parent_id TEXT REFERENCES categories (id) ON DELETE SET NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE UNIQUE INDEX uq_categories_name ON categories (name);`,
	`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  weight NUMERIC NOT NULL DEFAULT 0 CHECK (weight >= 0),
  supplier_id TEXT REFERENCES suppliers (id) ON DELETE SET NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE UNIQUE INDEX uq_products_sku ON products (sku);`,
	`CREATE TABLE inventory_items (
  product_id TEXT PRIMARY KEY REFERENCES products (id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  reorder_level INTEGER NOT NULL DEFAULT 0 CHECK (reorder_level >= 0),
  last_restock_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE product_categories (
  product_id TEXT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES categories (id) ON DELETE CASCADE,
  created_at DATETIME,
  PRIMARY KEY (product_id, category_id)
);`,
	`CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers (id) ON DELETE RESTRICT,
  shipping_address_id TEXT REFERENCES addresses (id) ON DELETE SET NULL,
  billing_address_id TEXT REFERENCES addresses (id) ON DELETE SET NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled', 'refunded')),
  total_amount NUMERIC NOT NULL DEFAULT 0 CHECK (total_amount >= 0),
  placed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
  line_total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT ck_order_items_line_total CHECK (line_total = quantity * unit_price)
);`,
	`CREATE TABLE payments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
  method TEXT NOT NULL
    CHECK (method IN ('card', 'mpesa', 'bank_transfer', 'wallet', 'cash_on_delivery')),
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending', 'completed', 'failed', 'refunded')),
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  reference TEXT,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE reviews (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
  customer_id TEXT REFERENCES customers (id) ON DELETE SET NULL,
  rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
  comment TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  discount_type TEXT NOT NULL CHECK (discount_type IN ('percent', 'fixed')),
  discount_value NUMERIC NOT NULL CHECK (discount_value >= 0),
  expires_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE UNIQUE INDEX uq_coupons_code ON coupons (code);`,
	`CREATE TABLE order_coupons (
  order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
  coupon_id TEXT NOT NULL REFERENCES coupons (id) ON DELETE CASCADE,
  created_at DATETIME,
  PRIMARY KEY (order_id, coupon_id)
);`,
	`CREATE VIEW order_summaries AS
SELECT o.id AS order_id,
       o.customer_id,
       c.first_name || ' ' || c.last_name AS customer_name,
       o.placed_at,
       o.status,
       o.total_amount,
       COUNT(oi.id) AS item_count
FROM orders o
JOIN customers c ON c.id = o.customer_id
LEFT JOIN order_items oi ON oi.order_id = o.id
GROUP BY o.id;`,
}

// Open returns a fresh in-memory database with the full schema applied and
// foreign key enforcement switched on.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// one connection keeps the shared-cache memory db alive for the test
	sqlDB.SetMaxOpenConns(1)

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v\n%s", err, stmt)
		}
	}
	return conn
}

func MustCreateCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "Customer",
		Email:     email,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func MustCreateAddress(t *testing.T, db *gorm.DB, customerID uuid.UUID) *models.Address {
	t.Helper()
	address := &models.Address{
		ID:         uuid.New(),
		CustomerID: customerID,
		Label:      "home",
		Line1:      "12 Moi Avenue",
		City:       "Nairobi",
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	return address
}

func MustCreateProduct(t *testing.T, db *gorm.DB, sku string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		SKU:      sku,
		Name:     "Test Product",
		Price:    decimal.NewFromInt(1000),
		Weight:   decimal.NewFromFloat(0.5),
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	inventory := &models.Inventory{ProductID: product.ID, Quantity: 10}
	if err := db.Create(inventory).Error; err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	product.Inventory = inventory
	return product
}

func MustCreateOrder(t *testing.T, db *gorm.DB, customerID uuid.UUID) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		Status:      enums.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func MustCreateOrderItem(t *testing.T, db *gorm.DB, orderID, productID uuid.UUID, qty int, unitPrice decimal.Decimal) *models.OrderItem {
	t.Helper()
	item := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item: %v", err)
	}
	return item
}

func MustCreateCoupon(t *testing.T, db *gorm.DB, code string) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  enums.DiscountTypePercent,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	return coupon
}
