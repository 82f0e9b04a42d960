package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/redis"
)

type fakeKeyer struct {
	values  map[string]string
	lastTTL time.Duration
}

func newFakeKeyer() *fakeKeyer {
	return &fakeKeyer{values: map[string]string{}}
}

func (f *fakeKeyer) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.lastTTL = ttl
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return nil
}

func (f *fakeKeyer) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeKeyer) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeKeyer) DraftKey(draftID string) string {
	return "test:draft:" + draftID
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	keyer := newFakeKeyer()
	store, err := NewRedisStore(keyer, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	draft := NewDraft()
	productID := uuid.New()
	_ = draft.AddLine(Line{
		ProductID:     productID,
		ProductName:   "Alpha Module",
		ProductSKU:    "SKU-100",
		UnitPrice:     decimal.NewFromInt(100),
		DiscountGroup: "standard",
		Quantity:      4,
	})
	draft.SetNotes("round trip")

	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("save: %v", err)
	}
	if keyer.lastTTL != time.Hour {
		t.Errorf("ttl: got %s, want 1h", keyer.lastTTL)
	}

	loaded, err := store.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ID != draft.ID || loaded.Notes != "round trip" {
		t.Fatalf("got %+v", loaded)
	}
	if len(loaded.Lines) != 1 || loaded.Lines[0].ProductID != productID || loaded.Lines[0].Quantity != 4 {
		t.Fatalf("lines: got %+v", loaded.Lines)
	}
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	store, err := NewRedisStore(newFakeKeyer(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Get(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	keyer := newFakeKeyer()
	store, err := NewRedisStore(keyer, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	draft := NewDraft()
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, draft.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected not-found after delete")
	}
}
