package normalizer

import (
	"strings"

	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "EUR"

// NormalizeOrder приводит сырой JSON заказа к model.OrderRecord.
// Без shop_id дальше идти нельзя: по нему грузится конфигурация магазина.
func NormalizeOrder(raw map[string]any) (model.OrderRecord, error) {
	shopID, err := orderShopID(raw)
	if err != nil {
		return model.OrderRecord{}, err
	}

	quantity, _ := floatField(raw, "quantity_liters", "liters")
	price, _ := floatField(raw, "price_per_liter")
	fee, _ := floatField(raw, "delivery_fee")
	taxRate, err := orderTaxRate(raw)
	if err != nil {
		return model.OrderRecord{}, err
	}

	net, tax, gross := orderTotals(raw, quantity, price, fee, taxRate).floats()

	record := model.OrderRecord{
		ShopID:         shopID,
		ProductName:    orderProductName(raw),
		ProductType:    orderProductType(raw),
		QuantityLiters: quantity,
		PricePerLiter:  price,
		DeliveryFee:    roundMoney(decimal.NewFromFloat(fee)).InexactFloat64(),
		TaxRate:        taxRate,
		Currency:       orderCurrency(raw),
		TotalNet:       net,
		TotalTax:       tax,
		TotalGross:     gross,
	}

	return record, nil
}

func orderShopID(raw map[string]any) (string, error) {
	v, ok := lookup(raw, "shop_id")
	if !ok {
		return "", model.NewValidationError("shop_id", "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", model.NewValidationError("shop_id", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", model.NewValidationError("shop_id", "must not be empty")
	}
	return s, nil
}

// orderTaxRate: vat_rate, затем tax_rate. Значение > 1 - это проценты.
func orderTaxRate(raw map[string]any) (float64, error) {
	rate, ok := floatField(raw, "vat_rate", "tax_rate")
	if !ok {
		return 0, nil
	}
	if rate < 0 {
		return 0, model.NewValidationError("vat_rate", "must not be negative")
	}
	if rate > 1 {
		return decimal.NewFromFloat(rate).Div(decimal.NewFromInt(100)).InexactFloat64(), nil
	}
	return rate, nil
}

func orderTotals(raw map[string]any, quantity, price, fee, taxRate float64) totals {
	basePrice, hasBase := floatField(raw, "basePrice")
	totalAmount, hasAmount := floatField(raw, "totalAmount")
	if hasBase && hasAmount {
		return fromNetGross(decimal.NewFromFloat(basePrice), decimal.NewFromFloat(totalAmount))
	}

	net, hasNet := floatField(raw, "total_net")
	gross, hasGross := floatField(raw, "total_gross")
	if !hasNet || !hasGross {
		return computeTotals(quantity, price, fee, taxRate)
	}

	// Присланный total_tax сохраняется, если сходится с net и gross в пределах цента.
	t := fromNetGross(decimal.NewFromFloat(net), decimal.NewFromFloat(gross))
	if tax, ok := floatField(raw, "total_tax"); ok {
		supplied := roundMoney(decimal.NewFromFloat(tax))
		if t.net.Add(supplied).Sub(t.gross).Abs().LessThanOrEqual(reconcileTolerance) {
			t.tax = supplied
		}
	}
	return t
}

func orderCurrency(raw map[string]any) string {
	if c, ok := stringAt(raw, "shop", "currency"); ok {
		return strings.ToUpper(c)
	}
	if c, ok := stringAt(raw, "currency"); ok {
		return strings.ToUpper(c)
	}
	return DefaultCurrency
}

func orderProductName(raw map[string]any) string {
	name, _ := stringField(raw, "product_name", "product")
	return name
}

func orderProductType(raw map[string]any) model.ProductType {
	t, _ := stringField(raw, "product_type")
	if model.ProductType(strings.ToLower(t)) == model.ProductTypePremium {
		return model.ProductTypePremium
	}
	return model.ProductTypeStandard
}
