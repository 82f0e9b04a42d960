package discounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/internal/pricing"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/redis"
)

const cacheScope = "matrix"

// Provider resolves discount matrix snapshots for a customer group.
// Snapshots are cached in Redis so recomputes during draft editing do not
// hit the database on every keystroke.
type Provider interface {
	SnapshotForGroup(ctx context.Context, customerGroupID uuid.UUID) (pricing.Matrix, error)
	Invalidate(ctx context.Context, customerGroupID uuid.UUID) error
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope, id string) string
}

type matrixSnapshot struct {
	Entries  map[string]decimal.Decimal `json:"entries"`
	Fallback *decimal.Decimal           `json:"fallback,omitempty"`
}

type provider struct {
	repo  *Repository
	cache cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewProvider constructs a matrix provider. The cache is optional; without
// it every snapshot goes to the database.
func NewProvider(repo *Repository, cache cacheStore, ttl time.Duration, logg *logger.Logger) (Provider, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &provider{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

// SnapshotForGroup returns the matrix for the group, from cache when fresh.
// When the database is unreachable it returns a degraded zero matrix rather
// than failing the pricing pass.
func (p *provider) SnapshotForGroup(ctx context.Context, customerGroupID uuid.UUID) (pricing.Matrix, error) {
	if snap, ok := p.fromCache(ctx, customerGroupID); ok {
		return pricing.NewMatrix(snap.Entries, snap.Fallback), nil
	}

	snap, err := p.load(ctx, customerGroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Matrix{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer group not found")
		}
		p.logg.Error(ctx, "discount matrix unavailable, pricing degraded", err)
		return pricing.DegradedMatrix(), nil
	}

	p.toCache(ctx, customerGroupID, snap)
	return pricing.NewMatrix(snap.Entries, snap.Fallback), nil
}

// Invalidate drops the cached snapshot for the group.
func (p *provider) Invalidate(ctx context.Context, customerGroupID uuid.UUID) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Del(ctx, p.cache.CacheKey(cacheScope, customerGroupID.String()))
}

func (p *provider) load(ctx context.Context, customerGroupID uuid.UUID) (matrixSnapshot, error) {
	group, err := p.repo.FindGroupByID(ctx, customerGroupID)
	if err != nil {
		return matrixSnapshot{}, err
	}

	rows, err := p.repo.ListEntriesForGroup(ctx, customerGroupID)
	if err != nil {
		return matrixSnapshot{}, err
	}

	entries := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		entries[row.ProductDiscountGroup] = row.DiscountPercentage
	}
	return matrixSnapshot{Entries: entries, Fallback: group.DiscountPercentage}, nil
}

func (p *provider) fromCache(ctx context.Context, customerGroupID uuid.UUID) (matrixSnapshot, bool) {
	if p.cache == nil {
		return matrixSnapshot{}, false
	}

	raw, err := p.cache.Get(ctx, p.cache.CacheKey(cacheScope, customerGroupID.String()))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.logg.Warn(ctx, "matrix cache read failed: "+err.Error())
		}
		return matrixSnapshot{}, false
	}

	var snap matrixSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		p.logg.Warn(ctx, "matrix cache entry corrupt, dropping")
		return matrixSnapshot{}, false
	}
	return snap, true
}

func (p *provider) toCache(ctx context.Context, customerGroupID uuid.UUID, snap matrixSnapshot) {
	if p.cache == nil {
		return
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, p.cache.CacheKey(cacheScope, customerGroupID.String()), payload, p.ttl); err != nil {
		p.logg.Warn(ctx, "matrix cache write failed: "+err.Error())
	}
}
