package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/pkg/errors"
)

func TestRecordStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	rec := &domain.CustomerRecord{Name: "小晶", IsStandardProduct: true}
	require.NoError(t, store.Add(ctx, rec))
	require.NotEqual(t, uuid.Nil, rec.ID)

	got, err := store.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "小晶", got.Name)

	// mutating the returned copy does not touch the store
	got.Name = "changed"
	again, _ := store.GetByID(ctx, rec.ID)
	assert.Equal(t, "小晶", again.Name)

	rec.ShippingDetails = &domain.ShippingDetails{RealName: "王小明", TotalPrice: 1200}
	require.NoError(t, store.Update(ctx, rec))

	rec.ShippingDetails.TotalPrice = 1
	var locked *errors.ErrOrderLocked
	require.ErrorAs(t, store.Update(ctx, rec), &locked)

	stored, _ := store.GetByID(ctx, rec.ID)
	assert.EqualValues(t, 1200, stored.ShippingDetails.TotalPrice)

	require.NoError(t, store.Delete(ctx, rec.ID))
	var notFound *errors.ErrNotFound
	_, err = store.GetByID(ctx, rec.ID)
	require.ErrorAs(t, err, &notFound)
	require.ErrorAs(t, store.Delete(ctx, rec.ID), &notFound)
}

func TestRecordStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, store.Add(ctx, &domain.CustomerRecord{Name: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "first", list[2].Name)
}

func TestRecordStoreUpdateMissing(t *testing.T) {
	var notFound *errors.ErrNotFound
	err := NewRecordStore().Update(context.Background(), &domain.CustomerRecord{ID: uuid.New()})
	assert.ErrorAs(t, err, &notFound)
}
