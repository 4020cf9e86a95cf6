// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/brightlocale/i18ntree/format/data"
	"github.com/brightlocale/i18ntree/localetag"
)

var errCurrencyCodeRequired = errors.New("format: currency placeholder: Currency code is required")

// FormatCurrency renders a monetary amount with its ISO 4217 symbol,
// placed and grouped according to ctx.Locale. The placeholder payload must
// carry a numeric "value" and a "currency" ISO code; a missing or blank
// code is rejected rather than guessed.
func FormatCurrency(ctx Context, value any) (string, error) {
	payload, ok := value.(map[string]any)
	if !ok {
		return "", errCurrencyCodeRequired
	}

	code, _ := payload["currency"].(string)
	if strings.TrimSpace(code) == "" {
		return "", errCurrencyCodeRequired
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("format: invalid currency code %q: %w", code, err)
	}

	amount, ok := asFloat(payload["value"])
	if !ok {
		return "", fmt.Errorf("format: currency placeholder requires a numeric value")
	}

	tag, err := language.Parse(ctx.Locale)
	if err != nil {
		tag = language.English
	}

	digits := currencyDefaultDigits(unit)
	if precision, ok := asInt(payload["precision"]); ok {
		digits = precision
	}

	// Round half away from zero before formatting; x/text rounds half to even.
	scale := math.Pow10(digits)
	amount = math.Round(amount*scale) / scale

	p := message.NewPrinter(tag)

	magnitude := p.Sprint(number.Decimal(amount, number.MaxFractionDigits(digits), number.MinFractionDigits(digits)))
	symbol := p.Sprint(currency.Symbol(unit))

	l := data.For(localetag.Base(ctx.Locale))
	if l.CurrencyPrefix {
		return symbol + magnitude, nil
	}

	return magnitude + " " + symbol, nil
}

// currencyDefaultDigits reports a currency's own default number of
// fractional digits (JPY 0, BHD 3, most others 2), read from x/text/currency's
// standard rounding table rather than a hand-rolled per-code list.
func currencyDefaultDigits(unit currency.Unit) int {
	return int(currency.Standard.Rounding(unit).Scale)
}
