package postgres

import (
	"github.com/shopspring/decimal"
)

// decimalArg matches a query argument numerically, since decimal values built
// differently are not reflect.DeepEqual.
type decimalArg string

func (d decimalArg) Match(v interface{}) bool {
	got, ok := v.(decimal.Decimal)
	if !ok {
		return false
	}
	return got.Equal(decimal.RequireFromString(string(d)))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func resourceColumnNames() []string {
	return []string{"money", "food", "coal", "oil", "uranium", "lead", "iron", "bauxite", "gasoline", "munitions", "steel", "aluminum"}
}

// bagRow builds one row of resource columns; values are given in canonical order.
func bagRow(values ...string) []any {
	row := make([]any, 12)
	for i := range row {
		row[i] = decimal.Zero
		if i < len(values) {
			row[i] = dec(values[i])
		}
	}
	return row
}
