package pipeline

import (
	"strconv"
	"strings"
)

// quantityRule maps a raw quantity token to a stock count. Rules are checked
// in order before the plain integer parse.
type quantityRule struct {
	token string
	stock int
}

// Токены согласованы с выгрузкой поставщика; порядок и значения менять
// нельзя без согласования ("1" действительно означает ноль к продаже).
var quantityRules = []quantityRule{
	{token: ">10", stock: 100},
	{token: "1", stock: 0},
}

// NormalizeQuantity maps a raw remnant quantity token to a stock count.
func NormalizeQuantity(raw string) (int, error) {
	for _, rule := range quantityRules {
		if raw == rule.token {
			return rule.stock, nil
		}
	}
	stock, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FormatError{Kind: "quantity", Raw: raw, err: err}
	}
	return stock, nil
}

// NormalizePrice reduces a vendor price string ("5'990.00 руб.") to the digit
// string of its integral part ("5990"). A string with no digits before the
// decimal point is malformed.
func NormalizePrice(raw string) (string, error) {
	integral, _, _ := strings.Cut(raw, ".")
	var digits strings.Builder
	for _, r := range integral {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", &FormatError{Kind: "price", Raw: raw}
	}
	return digits.String(), nil
}
