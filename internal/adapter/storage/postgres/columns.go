package postgres

import (
	"fmt"
	"strings"

	"alliance-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// resourceColumns lists the per-resource NUMERIC columns shared by the
// account and treasury tables, in canonical order.
var resourceColumns = func() string {
	names := make([]string, len(domain.AllResources))
	for i, r := range domain.AllResources {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}()

// column maps a resource to its column name. Only known resources are accepted
// since the name is interpolated into SQL.
func column(r domain.Resource) (string, error) {
	if !r.Valid() {
		return "", fmt.Errorf("unknown resource %q", r)
	}
	return string(r), nil
}

func scanBag(row pgx.Row) (domain.Bag, error) {
	vals := make([]decimal.Decimal, len(domain.AllResources))
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	amounts := make(map[domain.Resource]decimal.Decimal, len(vals))
	for i, r := range domain.AllResources {
		amounts[r] = vals[i]
	}
	return domain.NewBag(amounts), nil
}
