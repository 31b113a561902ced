package event

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_GiftAdded(t *testing.T) {
	raw := []byte(`{"type":"gift_added","gift":{"id":9,"title":"mug","price":300}}`)

	ev, ok := Decode(raw)
	require.True(t, ok)

	added, isAdd := ev.(GiftAdded)
	require.True(t, isAdd, "expected GiftAdded, got %T", ev)
	assert.Equal(t, int64(9), added.Gift.ID)
	assert.Equal(t, "mug", added.Gift.Title)
	assert.NotNil(t, added.Gift.Contributors, "gift must be normalized")
}

func TestDecode_ItemReserved(t *testing.T) {
	t.Run("with reserver identity", func(t *testing.T) {
		ev, ok := Decode([]byte(`{"type":"item_reserved","giftId":7,"userId":3,"userName":"Anya"}`))
		require.True(t, ok)

		reserved, isReserved := ev.(ItemReserved)
		require.True(t, isReserved)
		assert.Equal(t, int64(7), reserved.GiftID)
		require.NotNil(t, reserved.ReservedBy)
		assert.Equal(t, "Anya", reserved.ReservedBy.Name)
	})

	t.Run("without identity keeps nil reserver", func(t *testing.T) {
		ev, ok := Decode([]byte(`{"type":"item_reserved","giftId":7}`))
		require.True(t, ok)
		assert.Nil(t, ev.(ItemReserved).ReservedBy)
	})

	t.Run("missing gift id is dropped", func(t *testing.T) {
		_, ok := Decode([]byte(`{"type":"item_reserved","userId":3,"userName":"Anya"}`))
		assert.False(t, ok)
	})
}

func TestDecode_ContributionAdded(t *testing.T) {
	raw := []byte(`{"type":"contribution_added","giftId":5,"total":300,"amount":100,"userId":2,"userName":"Boris"}`)

	ev, ok := Decode(raw)
	require.True(t, ok)

	contrib, isContrib := ev.(ContributionAdded)
	require.True(t, isContrib)
	assert.Equal(t, int64(5), contrib.GiftID)
	assert.True(t, contrib.Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, contrib.Amount.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, contrib.Contributor)
	assert.Equal(t, int64(2), contrib.Contributor.ID)
}

func TestDecode_ContributionWithoutTotalIsDropped(t *testing.T) {
	_, ok := Decode([]byte(`{"type":"contribution_added","giftId":5,"amount":100}`))
	assert.False(t, ok)
}

func TestDecode_StatsChanged(t *testing.T) {
	ev, ok := Decode([]byte(`{"type":"stats_updated"}`))
	require.True(t, ok)
	assert.IsType(t, StatsChanged{}, ev)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{nope`},
		{"empty payload", ``},
		{"no type field", `{"giftId":1}`},
		{"unknown type", `{"type":"wishlist_renamed","title":"new"}`},
		{"gift_added without gift", `{"type":"gift_added"}`},
		{"gift_added with junk gift", `{"type":"gift_added","gift":"oops"}`},
		{"gift_added with zero id", `{"type":"gift_added","gift":{"title":"x"}}`},
		{"array payload", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Decode([]byte(tt.raw))
			assert.False(t, ok)
			assert.Nil(t, ev)
		})
	}
}
