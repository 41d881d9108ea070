package payments

import (
	"context"
	"fmt"
	"strings"
)

// FakeGateway провайдер для локальной разработки и демо
// Страница оплаты ведет на собственные эндпоинты сервиса /payments/fake/{pendingId},
// любой платеж считается оплаченным
type FakeGateway struct {
	publicBaseURL string
	log           Logger
}

// NewFakeGateway создает фейковый провайдер
func NewFakeGateway(publicBaseURL string, log Logger) *FakeGateway {
	return &FakeGateway{
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// CreateCheckout возвращает ссылку на фейковую страницу оплаты
func (g *FakeGateway) CreateCheckout(_ context.Context, req CheckoutRequest) (*Checkout, error) {
	if req.PendingID == "" {
		return nil, fmt.Errorf("%w: empty pending id", ErrInvalidReference)
	}

	g.log.Info("FakePayments: checkout for pending=%s amount=%.2f %s", req.PendingID, req.Amount, req.Currency)

	return &Checkout{
		ProviderRef: "fake-" + req.PendingID,
		URL:         fmt.Sprintf("%s/api/v1/payments/fake/%s", g.publicBaseURL, req.PendingID),
	}, nil
}

// GetPayment сообщает, что платеж оплачен. ref совпадает с ID ожидающей записи
func (g *FakeGateway) GetPayment(_ context.Context, ref string) (*Payment, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	return &Payment{
		Ref:       ref,
		PendingID: strings.TrimPrefix(ref, "fake-"),
		Status:    StatusApproved,
	}, nil
}
