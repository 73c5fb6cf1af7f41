package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/core/types"
	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/domain/invoice"
)

func TestExtractDBColumns(t *testing.T) {
	t.Run("flattens embedded catalog fields", func(t *testing.T) {
		cols := ExtractDBColumns[product.Product]()

		assert.Contains(t, cols, "id")
		assert.Contains(t, cols, "code")
		assert.Contains(t, cols, "name")
		assert.Contains(t, cols, "sku")
		assert.Contains(t, cols, "unit_price")
		assert.Contains(t, cols, "deletion_mark")
		assert.Contains(t, cols, "version")
	})

	t.Run("skips untagged and ignored fields", func(t *testing.T) {
		cols := ExtractDBColumns[invoice.Invoice]()

		assert.Contains(t, cols, "total")
		assert.Contains(t, cols, "due_date")
		assert.NotContains(t, cols, "payments")
		assert.NotContains(t, cols, "-")
	})
}

func TestStructToMap(t *testing.T) {
	p := product.NewProduct("P-001", "Coffee Beans 1kg", "COF-001", types.MustMoney("18.50"))

	m := StructToMap(p)
	require.NotNil(t, m)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "P-001", m["code"])
	assert.Equal(t, "Coffee Beans 1kg", m["name"])
	assert.Equal(t, "COF-001", m["sku"])
	assert.Equal(t, 1, m["version"])

	price, ok := m["unit_price"].(types.Money)
	require.True(t, ok)
	assert.True(t, price.Equal(types.MustMoney("18.50")))
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("hello"))
}
