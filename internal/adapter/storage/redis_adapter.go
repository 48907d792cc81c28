package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

const (
	inventoryKeyPrefix = "inventory:"
	DefaultRedisLedger = "default"
)

// saveSnapshotScript replaces the stock hash, the order list and the
// saved-at marker in one step.
var saveSnapshotScript = redis.NewScript(`
local stock = KEYS[1]
local order = KEYS[2]
local savedAt = KEYS[3]

redis.call('DEL', stock, order)
for i = 2, #ARGV, 2 do
	redis.call('RPUSH', order, ARGV[i])
	redis.call('HSET', stock, ARGV[i], ARGV[i + 1])
end
redis.call('SET', savedAt, ARGV[1])

return (#ARGV - 1) / 2
`)

type RedisAdapter struct {
	client *redis.Client
	ledger string
}

func NewRedisAdapter(client *redis.Client, ledger string) *RedisAdapter {
	if ledger == "" {
		ledger = DefaultRedisLedger
	}
	return &RedisAdapter{client: client, ledger: ledger}
}

func (r *RedisAdapter) Location() string {
	return "redis://" + r.client.Options().Addr + "/" + r.keyPrefix()
}

func (r *RedisAdapter) SaveSnapshot(ctx context.Context, items []domain.Item) error {
	args := make([]interface{}, 0, 1+2*len(items))
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	for _, it := range items {
		args = append(args, it.Name, it.Quantity.String())
	}

	keys := []string{r.stockKey(), r.orderKey(), r.savedAtKey()}
	if err := saveSnapshotScript.Run(ctx, r.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *RedisAdapter) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var (
		savedAt *redis.StringCmd
		order   *redis.StringSliceCmd
		stock   *redis.MapStringStringCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		savedAt = pipe.Get(ctx, r.savedAtKey())
		order = pipe.LRange(ctx, r.orderKey(), 0, -1)
		stock = pipe.HGetAll(ctx, r.stockKey())
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if errors.Is(savedAt.Err(), redis.Nil) {
		return nil, fmt.Errorf("%s: %w", r.keyPrefix(), port.ErrSnapshotNotFound)
	}

	values := stock.Val()
	snap := &domain.Snapshot{}
	for _, name := range order.Val() {
		raw, ok := values[name]
		if !ok {
			snap.Skip(name, "", domain.ErrNonNumericQuantity)
			continue
		}
		qty, err := decimal.NewFromString(raw)
		if err != nil {
			snap.Skip(name, raw, domain.ErrNonNumericQuantity)
			continue
		}
		snap.Accept(name, qty)
	}
	return snap, nil
}

func (r *RedisAdapter) keyPrefix() string {
	return inventoryKeyPrefix + r.ledger
}

func (r *RedisAdapter) stockKey() string {
	return r.keyPrefix() + ":stock"
}

func (r *RedisAdapter) orderKey() string {
	return r.keyPrefix() + ":order"
}

func (r *RedisAdapter) savedAtKey() string {
	return r.keyPrefix() + ":saved_at"
}
