package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesledger/internal/domain/catalog/product"
	"salesledger/internal/infrastructure/storage/postgres"
)

func newTestRepo() *BaseCatalogRepo[*product.Product] {
	return NewBaseCatalogRepo(
		nil, // SQL building never touches the database
		productTable,
		postgres.ExtractDBColumns[product.Product](),
		func() *product.Product { return &product.Product{} },
	)
}

func TestParseOrderBy(t *testing.T) {
	r := newTestRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"name", "name ASC", false},
		{"+code", "code ASC", false},
		{"-unit_price", "unit_price DESC", false},
		{"-", "", true},
		{"drop table", "", true},
		{"password", "", true},
	}

	for _, tt := range tests {
		got, err := r.parseOrderBy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBaseSelect_BuildsDollarPlaceholders(t *testing.T) {
	r := newTestRepo()

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"code": "P-001"}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM cat_products")
	assert.Contains(t, sql, "code = $1")
	assert.Contains(t, sql, "deletion_mark = $2")
	assert.Equal(t, []any{"P-001", false}, args)
}
