package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var krw = message.NewPrinter(language.Korean)

// FormatPrice renders an amount the way the storefront shows it, e.g. "39,000원".
func FormatPrice(amount int64) string {
	return krw.Sprintf("%d원", amount)
}

// DiscountedPrice applies a percentage discount, rounding down.
func DiscountedPrice(price int64, rate int) int64 {
	if rate <= 0 {
		return price
	}
	if rate >= 100 {
		return 0
	}
	return price * int64(100-rate) / 100
}
