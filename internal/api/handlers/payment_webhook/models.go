package payment_webhook

import (
	"encoding/json"
	"net/url"
	"strings"

	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
)

// topicPayment тип уведомления о платеже, остальные типы игнорируются
const topicPayment = "payment"

// Notification тело уведомления провайдера
// data.id приходит строкой или числом в зависимости от версии API
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// NotificationResponse HTTP response model
type NotificationResponse struct {
	PendingID string `json:"pendingId,omitempty"`
	Action    string `json:"action"`
}

// PaymentRef извлекает ID платежа из тела или query параметров (data.id, id)
// Возвращает пустую строку, если уведомление не о платеже
func (n *Notification) PaymentRef(query url.Values) string {
	topic := n.Type
	if topic == "" {
		topic = query.Get("type")
	}
	if topic == "" {
		topic = query.Get("topic")
	}
	if topic != "" && topic != topicPayment {
		return ""
	}

	if ref := rawID(n.Data.ID); ref != "" {
		return ref
	}
	if ref := query.Get("data.id"); ref != "" {
		return ref
	}
	return query.Get("id")
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// FromResult конвертирует результат use case в HTTP response
func FromResult(result *confirmDeposit.NotificationResult) *NotificationResponse {
	return &NotificationResponse{
		PendingID: result.PendingID,
		Action:    string(result.Action),
	}
}
