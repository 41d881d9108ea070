package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	keyPrefix        = "appointments:pending:"
	claimedKeyPrefix = "appointments:claimed:"
)

// claimedTTL сколько помним, что запись уже забрана.
// Провайдер повторяет уведомления несколько часов, дольше отметка не нужна
const claimedTTL = 6 * time.Hour

// claimScript забирает запись и в той же операции оставляет отметку о ней
var claimScript = redis.NewScript(`
local payload = redis.call('GET', KEYS[1])
if not payload then
	return false
end
redis.call('DEL', KEYS[1])
redis.call('SET', KEYS[2], '1', 'EX', ARGV[1])
return payload
`)

// minRestoreTTL минимальный срок жизни восстановленной записи,
// чтобы повторная обработка платежа успела ее прочитать
const minRestoreTTL = time.Minute

// Store хранилище записей, ожидающих оплаты депозита
// Каждая запись живет до ExpiresAt и удаляется Redis по TTL
type Store struct {
	client redis.Cmdable
}

// NewStore создает хранилище поверх клиента Redis
func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// Save сохраняет запись с TTL до ExpiresAt
func (s *Store) Save(ctx context.Context, p *domain.PendingBooking) error {
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	payload, err := json.Marshal(toRecord(p))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	ok, err := s.client.SetNX(ctx, key(p.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: Save id=%s: %v", ErrRedis, p.ID, err)
	}
	if !ok {
		return ErrAlreadyExists
	}

	return nil
}

// Get читает запись без удаления
func (s *Store) Get(ctx context.Context, id string) (*domain.PendingBooking, error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get id=%s: %v", ErrRedis, id, err)
	}

	return decode(payload)
}

// Claim атомарно забирает запись и оставляет отметку claimed на claimedTTL
// Из нескольких конкурентных вызовов для одного ID запись получит ровно один
func (s *Store) Claim(ctx context.Context, id string) (*domain.PendingBooking, error) {
	payload, err := claimScript.Run(ctx, s.client,
		[]string{key(id), claimedKey(id)}, int(claimedTTL/time.Second)).Text()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Claim id=%s: %v", ErrRedis, id, err)
	}

	return decode([]byte(payload))
}

// WasClaimed сообщает, забиралась ли запись недавно.
// Отличает повторное уведомление от записи, истекшей до оплаты
func (s *Store) WasClaimed(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, claimedKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: WasClaimed id=%s: %v", ErrRedis, id, err)
	}
	return n > 0, nil
}

// Restore возвращает забранную запись обратно, если обработка не удалась по инфраструктурной причине
func (s *Store) Restore(ctx context.Context, p *domain.PendingBooking) error {
	ttl := time.Until(p.ExpiresAt)
	if ttl < minRestoreTTL {
		ttl = minRestoreTTL
	}

	payload, err := json.Marshal(toRecord(p))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, key(p.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Restore id=%s: %v", ErrRedis, p.ID, err)
	}

	return nil
}

// Delete удаляет запись. Отсутствие записи не является ошибкой
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Delete id=%s: %v", ErrRedis, id, err)
	}
	return removed > 0, nil
}

func decode(payload []byte) (*domain.PendingBooking, error) {
	var r record
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	p, err := r.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return p, nil
}

func key(id string) string {
	return keyPrefix + id
}

func claimedKey(id string) string {
	return claimedKeyPrefix + id
}
