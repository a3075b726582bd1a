package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS customers",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_customers_email",
		"REFERENCES customers (id) ON DELETE CASCADE",
		"REFERENCES customers (id) ON DELETE RESTRICT",
		"REFERENCES customers (id) ON DELETE SET NULL",
		"REFERENCES products (id) ON DELETE RESTRICT",
		"REFERENCES addresses (id) ON DELETE SET NULL",
		"parent_id UUID REFERENCES categories (id) ON DELETE SET NULL",
		"CHECK (price >= 0)",
		"CHECK (weight >= 0)",
		"CHECK (quantity > 0)",
		"CHECK (rating >= 1 AND rating <= 5)",
		"CONSTRAINT ck_order_items_line_total CHECK (line_total = quantity * unit_price)",
		"PRIMARY KEY (product_id, category_id)",
		"PRIMARY KEY (order_id, coupon_id)",
		"CREATE OR REPLACE VIEW order_summaries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEnumChecksMatchContract(t *testing.T) {
	matches, _ := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if len(matches) == 0 {
		t.Fatal("no init schema migration file found")
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	enums := []string{
		"'male', 'female', 'other'",
		"'pending', 'processing', 'shipped', 'delivered', 'cancelled', 'refunded'",
		"'card', 'mpesa', 'bank_transfer', 'wallet', 'cash_on_delivery'",
		"'pending', 'completed', 'failed', 'refunded'",
		"'percent', 'fixed'",
	}
	for _, set := range enums {
		if !strings.Contains(content, set) {
			t.Errorf("missing enum value set %q", set)
		}
	}
}
