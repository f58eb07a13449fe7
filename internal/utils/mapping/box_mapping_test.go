package mapping_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	"github.com/SscSPs/class_fund_app/internal/models"
	"github.com/SscSPs/class_fund_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelBox(t *testing.T) {
	withBalance := mapping.ToModelBox(domain.Box{ID: "1", Name: "Trip", Balance: domain.NewBalance(decimal.RequireFromString("12.5"))})
	require.NotNil(t, withBalance.Balance)
	assert.Equal(t, "12.5", withBalance.Balance.String())
	assert.Equal(t, models.BoxID("1"), withBalance.ID)

	withoutBalance := mapping.ToModelBox(domain.Box{ID: "2", Name: "Party"})
	assert.Nil(t, withoutBalance.Balance)
}

func TestToDomainBox(t *testing.T) {
	n := json.Number("7.25")
	box, err := mapping.ToDomainBox(models.Box{ID: "1", Name: "Trip", Balance: &n})
	require.NoError(t, err)
	assert.True(t, box.Balance.Valid)
	assert.Equal(t, "7.25", box.Balance.Decimal.String())

	bad := json.Number("not-a-number")
	_, err = mapping.ToDomainBox(models.Box{ID: "1", Name: "Trip", Balance: &bad})
	assert.Error(t, err)
}

func TestToDomainBoxSlice_KeepsOrder(t *testing.T) {
	boxes, err := mapping.ToDomainBoxSlice([]models.Box{{ID: "b"}, {ID: "a"}, {ID: "c"}})
	require.NoError(t, err)
	assert.Equal(t, "b", boxes[0].ID)
	assert.Equal(t, "a", boxes[1].ID)
	assert.Equal(t, "c", boxes[2].ID)
}
