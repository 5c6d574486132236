package normalizer

import (
	"testing"

	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/stretchr/testify/assert"
)

func validOrder() model.OrderRecord {
	return model.OrderRecord{
		ShopID:         "s1",
		ProductName:    "Heizöl EL",
		ProductType:    model.ProductTypeStandard,
		QuantityLiters: 100,
		PricePerLiter:  1,
		DeliveryFee:    10,
		TaxRate:        0.19,
		Currency:       "EUR",
		TotalNet:       92.44,
		TotalTax:       17.56,
		TotalGross:     110,
	}
}

func TestValidateOrderData(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *model.OrderRecord)
		want   bool
	}{
		{name: "valid", modify: func(o *model.OrderRecord) {}, want: true},
		{name: "missing shop", modify: func(o *model.OrderRecord) { o.ShopID = "" }, want: false},
		{name: "zero quantity", modify: func(o *model.OrderRecord) { o.QuantityLiters = 0 }, want: false},
		{name: "zero price", modify: func(o *model.OrderRecord) { o.PricePerLiter = 0 }, want: false},
		{name: "negative fee", modify: func(o *model.OrderRecord) { o.DeliveryFee = -1 }, want: false},
		{name: "free delivery", modify: func(o *model.OrderRecord) { o.DeliveryFee = 0 }, want: true},
		{name: "tax rate as percent", modify: func(o *model.OrderRecord) { o.TaxRate = 19 }, want: false},
		{name: "unknown currency", modify: func(o *model.OrderRecord) { o.Currency = "XYZ1" }, want: false},
		{name: "unknown product type", modify: func(o *model.OrderRecord) { o.ProductType = "eco" }, want: false},
		{name: "within a cent", modify: func(o *model.OrderRecord) { o.TotalTax = 17.57 }, want: true},
		{name: "does not reconcile", modify: func(o *model.OrderRecord) { o.TotalTax = 18 }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.modify(&order)
			assert.Equal(t, tt.want, ValidateOrderData(order))
		})
	}
}

func TestValidateOrderData_DoesNotMutate(t *testing.T) {
	order := validOrder()
	order.TotalTax = 50

	ValidateOrderData(order)

	assert.Equal(t, 50.0, order.TotalTax)
}

func TestValidateShopConfig(t *testing.T) {
	valid := DefaultShopConfig("s1")
	assert.True(t, ValidateShopConfig(valid))

	noMethods := valid
	noMethods.PaymentMethods = nil
	assert.False(t, ValidateShopConfig(noMethods))

	foreignMethod := valid
	foreignMethod.PaymentMethods = []model.PaymentMethod{"paypal"}
	assert.False(t, ValidateShopConfig(foreignMethod))

	badLogo := valid
	badLogo.LogoURL = "logo.png"
	assert.False(t, ValidateShopConfig(badLogo))

	badLanguage := valid
	badLanguage.Language = "RU"
	assert.False(t, ValidateShopConfig(badLanguage))

	badMode := valid
	badMode.CheckoutMode = "express"
	assert.False(t, ValidateShopConfig(badMode))
}
