package payments

import "time"

// Status статус платежа у провайдера
type Status string

const (
	StatusApproved  Status = "approved"
	StatusPending   Status = "pending"
	StatusInProcess Status = "in_process"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// IsSuccessful возвращает true для оплаченного платежа
func (s Status) IsSuccessful() bool {
	return s == StatusApproved
}

// IsFailed возвращает true, если платеж окончательно не прошел
func (s Status) IsFailed() bool {
	return s == StatusRejected || s == StatusCancelled
}

// CheckoutRequest данные для создания страницы оплаты депозита
type CheckoutRequest struct {
	PendingID   string // Используется как external_reference
	Title       string
	Amount      float64
	Currency    string
	ExpiresAt   time.Time
	ReturnPath  string // Путь фронтенда, куда вернуть клиента после оплаты
	Description string
}

// Checkout созданная страница оплаты
type Checkout struct {
	ProviderRef string // ID preference у провайдера
	URL         string
}

// Payment состояние платежа у провайдера
type Payment struct {
	Ref       string
	PendingID string // external_reference
	Status    Status
	Amount    float64
}
