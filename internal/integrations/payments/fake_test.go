package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestFakeGateway(t *testing.T) {
	gw := NewFakeGateway("http://localhost:8080/", logger.NewNop())
	ctx := context.Background()

	checkout, err := gw.CreateCheckout(ctx, CheckoutRequest{PendingID: "abc", Amount: 75, Currency: "ARS"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/payments/fake/abc", checkout.URL)

	payment, err := gw.GetPayment(ctx, checkout.ProviderRef)
	require.NoError(t, err)
	assert.Equal(t, "abc", payment.PendingID)
	assert.True(t, payment.Status.IsSuccessful())

	_, err = gw.CreateCheckout(ctx, CheckoutRequest{})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusRejected.IsFailed())
	assert.True(t, StatusCancelled.IsFailed())
	assert.False(t, StatusPending.IsFailed())
	assert.False(t, StatusInProcess.IsSuccessful())
}

func TestMercadoPagoGateway_InvalidReference(t *testing.T) {
	gw, err := NewMercadoPagoGateway("TEST-token", "http://localhost:8080", "http://localhost:8080/api/v1/payments/webhook", logger.NewNop())
	require.NoError(t, err)

	_, err = gw.GetPayment(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, ErrInvalidReference)
}
