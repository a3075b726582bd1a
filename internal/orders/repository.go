package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukamart/dukamart-backend/internal/repo"
	"github.com/dukamart/dukamart-backend/pkg/db"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/enums"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
	"github.com/dukamart/dukamart-backend/pkg/validate"
)

// Repository persists orders with their lines, payments and coupon
// attachments.
//
// Items, payments and coupon attachments live and die with the order. Line
// totals are derived on every item write; editing a quantity or unit price
// goes through a load-mutate-save so the derivation always runs. The
// customer reference is hard (a missing customer is INVALID_REFERENCE, an
// order blocks its customer's delete); address references are soft.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateOrder inserts the order and its initial lines in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validate.Struct("order", input); err != nil {
		return nil, err
	}
	if input.TotalAmount.IsNegative() {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "order", Field: "total_amount", Rule: "must not be negative",
		})
	}

	order := &models.Order{
		ID:                uuid.New(),
		CustomerID:        input.CustomerID,
		ShippingAddressID: input.ShippingAddressID,
		BillingAddressID:  input.BillingAddressID,
		Status:            enums.OrderStatusPending,
		TotalAmount:       input.TotalAmount,
	}

	err := r.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return db.ClassifyWriteError(err, "order")
		}
		for _, line := range input.Items {
			item := &models.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := tx.Create(item).Error; err != nil {
				return db.ClassifyWriteError(err, "order_item")
			}
			order.Items = append(order.Items, *item)
		}
		for _, tender := range input.Payments {
			payment, err := paymentFromInput(order.ID, tender)
			if err != nil {
				return err
			}
			if err := tx.Create(payment).Error; err != nil {
				return db.ClassifyWriteError(err, "payment")
			}
			order.Payments = append(order.Payments, *payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder loads the order with its lines, payments and coupon attachments.
func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items").
		Preload("Payments").
		Preload("Coupons").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "order")
	}
	return &order, nil
}

// ListForCustomer returns a customer's orders, newest first.
func (r *Repository) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "order")
	}
	return orders, nil
}

// UpdateStatus moves the order to the given lifecycle status. Any known
// status is accepted; transition legality is not storage's concern.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "order", Field: "status", Rule: "unknown status",
		})
	}

	var order models.Order
	if err := r.DB(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "order")
	}
	order.Status = parsed
	if err := r.DB(ctx).Save(&order).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "order")
	}
	return &order, nil
}

// UpdateTotalAmount replaces the order's caller-supplied total.
func (r *Repository) UpdateTotalAmount(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*models.Order, error) {
	if total.IsNegative() {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "order", Field: "total_amount", Rule: "must not be negative",
		})
	}

	var order models.Order
	if err := r.DB(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, db.ClassifyReadError(err, "order")
	}
	order.TotalAmount = total
	if err := r.DB(ctx).Save(&order).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "order")
	}
	return &order, nil
}

// DeleteOrder removes the order and, through the schema, its lines,
// payments and coupon attachments.
func (r *Repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "order")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

// AddItem appends a line to an existing order.
func (r *Repository) AddItem(ctx context.Context, orderID uuid.UUID, input OrderItemInput) (*models.OrderItem, error) {
	if err := validate.Struct("order_item", input); err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
	}
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "order_item")
	}
	return item, nil
}

// UpdateItemQuantity changes a line's quantity; the line total is
// recomputed in the same save.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*models.OrderItem, error) {
	return r.updateItem(ctx, itemID, func(item *models.OrderItem) {
		item.Quantity = quantity
	})
}

// UpdateItemUnitPrice changes a line's unit price; the line total is
// recomputed in the same save.
func (r *Repository) UpdateItemUnitPrice(ctx context.Context, itemID uuid.UUID, unitPrice decimal.Decimal) (*models.OrderItem, error) {
	return r.updateItem(ctx, itemID, func(item *models.OrderItem) {
		item.UnitPrice = unitPrice
	})
}

func (r *Repository) updateItem(ctx context.Context, itemID uuid.UUID, mutate func(*models.OrderItem)) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return db.ClassifyReadError(err, "order_item")
		}
		mutate(&item)
		if err := tx.Save(&item).Error; err != nil {
			return db.ClassifyWriteError(err, "order_item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one line from an order.
func (r *Repository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	res := r.DB(ctx).Delete(&models.OrderItem{}, "id = ?", itemID)
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "order_item")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
	}
	return nil
}

// AddPayment records a tender against the order in pending state.
func (r *Repository) AddPayment(ctx context.Context, orderID uuid.UUID, input AddPaymentInput) (*models.Payment, error) {
	payment, err := paymentFromInput(orderID, input)
	if err != nil {
		return nil, err
	}
	if err := r.DB(ctx).Create(payment).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "payment")
	}
	return payment, nil
}

func paymentFromInput(orderID uuid.UUID, input AddPaymentInput) (*models.Payment, error) {
	if err := validate.Struct("payment", input); err != nil {
		return nil, err
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "payment", Field: "amount", Rule: "must not be negative",
		})
	}
	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "payment", Field: "method", Rule: "unknown method",
		})
	}

	return &models.Payment{
		ID:        uuid.New(),
		OrderID:   orderID,
		Method:    method,
		Status:    enums.PaymentStatusPending,
		Amount:    input.Amount,
		Reference: input.Reference,
	}, nil
}

// UpdatePaymentStatus moves a payment to the given status, stamping paid_at
// on completion.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status string) (*models.Payment, error) {
	parsed, err := enums.ParsePaymentStatus(status)
	if err != nil {
		return nil, pkgerrors.NewFieldViolation(pkgerrors.CodeValueOutOfRange, pkgerrors.FieldViolation{
			Entity: "payment", Field: "status", Rule: "unknown status",
		})
	}

	var payment models.Payment
	if err := r.DB(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		return nil, db.ClassifyReadError(err, "payment")
	}
	payment.Status = parsed
	if parsed == enums.PaymentStatusCompleted && payment.PaidAt == nil {
		now := time.Now().UTC()
		payment.PaidAt = &now
	}
	if err := r.DB(ctx).Save(&payment).Error; err != nil {
		return nil, db.ClassifyWriteError(err, "payment")
	}
	return &payment, nil
}

// AttachCoupon links a coupon to the order. Attaching the same coupon
// twice surfaces as DUPLICATE_KEY; a missing order or coupon as
// INVALID_REFERENCE.
func (r *Repository) AttachCoupon(ctx context.Context, orderID, couponID uuid.UUID) error {
	link := &models.OrderCoupon{OrderID: orderID, CouponID: couponID}
	if err := r.DB(ctx).Create(link).Error; err != nil {
		return db.ClassifyWriteError(err, "order_coupon")
	}
	return nil
}

// DetachCoupon removes the order-coupon link.
func (r *Repository) DetachCoupon(ctx context.Context, orderID, couponID uuid.UUID) error {
	res := r.DB(ctx).
		Where("order_id = ? AND coupon_id = ?", orderID, couponID).
		Delete(&models.OrderCoupon{})
	if res.Error != nil {
		return db.ClassifyDeleteError(res.Error, "order_coupon")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order coupon link not found")
	}
	return nil
}

// GetOrderSummary reads the aggregated projection of one order from the
// order_summaries view.
func (r *Repository) GetOrderSummary(ctx context.Context, orderID uuid.UUID) (*models.OrderSummary, error) {
	var summary models.OrderSummary
	err := r.DB(ctx).
		First(&summary, "order_id = ?", orderID).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "order_summary")
	}
	return &summary, nil
}

// ListSummariesForCustomer reads a customer's order projections, newest
// first.
func (r *Repository) ListSummariesForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := r.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, db.ClassifyReadError(err, "order_summary")
	}
	return summaries, nil
}
