package normalizer

import "github.com/shopspring/decimal"

const moneyPlaces = 2

// Все денежные суммы округляются до центов (half away from zero).
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

type totals struct {
	net, tax, gross decimal.Decimal
}

// fromNetGross округляет net и gross и выводит tax как их разность,
// поэтому net + tax == gross выполняется точно.
func fromNetGross(net, gross decimal.Decimal) totals {
	net = roundMoney(net)
	gross = roundMoney(gross)
	return totals{net: net, tax: gross.Sub(net), gross: gross}
}

func computeTotals(quantity, price, fee, taxRate float64) totals {
	gross := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(price)).
		Add(decimal.NewFromFloat(fee))
	gross = roundMoney(gross)

	divisor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(taxRate))
	if !divisor.IsPositive() {
		return fromNetGross(gross, gross)
	}
	net := gross.Div(divisor)
	return fromNetGross(net, gross)
}

func (t totals) floats() (net, tax, gross float64) {
	return t.net.InexactFloat64(), t.tax.InexactFloat64(), t.gross.InexactFloat64()
}
