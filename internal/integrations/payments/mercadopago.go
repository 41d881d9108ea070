package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPagoGateway создает checkout preference и читает статусы платежей MercadoPago
type MercadoPagoGateway struct {
	preferences     preference.Client
	payments        payment.Client
	publicBaseURL   string
	notificationURL string
	log             Logger
}

// NewMercadoPagoGateway создает клиент MercadoPago по access token
func NewMercadoPagoGateway(accessToken, publicBaseURL, notificationURL string, log Logger) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create mercadopago config: %v", ErrInternal, err)
	}

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		publicBaseURL:   strings.TrimRight(publicBaseURL, "/"),
		notificationURL: notificationURL,
		log:             log,
	}, nil
}

// CreateCheckout создает preference на сумму депозита
// external_reference = ID ожидающей записи, по нему уведомление находит запись
func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	returnURL := g.publicBaseURL + req.ReturnPath
	expiresAt := req.ExpiresAt

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.PendingID,
				Title:       req.Title,
				Description: req.Description,
				Quantity:    1,
				UnitPrice:   req.Amount,
				CurrencyID:  req.Currency,
			},
		},
		ExternalReference: req.PendingID,
		BackURLs: &preference.BackURLsRequest{
			Success: returnURL + "?status=success",
			Pending: returnURL + "?status=pending",
			Failure: returnURL + "?status=failure",
		},
		NotificationURL:  g.notificationURL,
		AutoReturn:       "approved",
		Expires:          true,
		ExpirationDateTo: &expiresAt,
	}

	resp, err := g.preferences.Create(ctx, request)
	if err != nil {
		g.log.Error("MercadoPago: failed to create preference for pending=%s: %v", req.PendingID, err)
		return nil, fmt.Errorf("%w: create preference: %v", ErrInternal, err)
	}
	if resp == nil || resp.InitPoint == "" {
		return nil, fmt.Errorf("%w: preference without init point", ErrInvalidResponse)
	}

	g.log.Info("MercadoPago: created preference id=%s for pending=%s", resp.ID, req.PendingID)

	return &Checkout{
		ProviderRef: resp.ID,
		URL:         resp.InitPoint,
	}, nil
}

// GetPayment читает платеж по ID из уведомления
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, ref string) (*Payment, error) {
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.log.Error("MercadoPago: failed to get payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get payment: %v", ErrInternal, err)
	}
	if resp == nil {
		return nil, ErrPaymentNotFound
	}
	if resp.ExternalReference == "" {
		return nil, fmt.Errorf("%w: payment id=%d has no external reference", ErrInvalidResponse, id)
	}

	return &Payment{
		Ref:       ref,
		PendingID: resp.ExternalReference,
		Status:    Status(resp.Status),
		Amount:    resp.TransactionAmount,
	}, nil
}
