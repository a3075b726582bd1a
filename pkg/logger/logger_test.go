package logger

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

func TestError_EmitsErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "logger-test", Output: &buf})

	cause := pkgerrors.New(pkgerrors.CodeDuplicateKey, "email already taken")
	wrapped := fmt.Errorf("creating customer: %w", cause)

	logg.Error(context.Background(), "create failed", wrapped)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"error_detail"`)
	assert.Contains(t, out, `"code":"DUPLICATE_KEY"`)
	assert.Contains(t, out, "creating customer: email already taken")
	assert.Contains(t, out, `"chain"`)
}

func TestError_NilErrorOmitsDetail(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "logger-test", Output: &buf})

	logg.Error(context.Background(), "plain failure", nil)

	out := buf.String()
	assert.Contains(t, out, "plain failure")
	assert.NotContains(t, out, "error_detail")
}

func TestContextFields_FlowThrough(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "logger-test", Output: &buf})

	ctx := logg.WithCustomerID(context.Background(), "cust-1")
	ctx = logg.WithOrderID(ctx, "ord-1")
	ctx = logg.WithProductID(ctx, "prod-1")
	logg.Info(ctx, "scoped entry")

	out := buf.String()
	assert.Contains(t, out, `"customer_id":"cust-1"`)
	assert.Contains(t, out, `"order_id":"ord-1"`)
	assert.Contains(t, out, `"product_id":"prod-1"`)
}
