package normalizer

import (
	"github.com/go-playground/validator/v10"
	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var reconcileTolerance = decimal.RequireFromString("0.01")

// ValidateOrderData - структурная проверка уже нормализованного заказа.
func ValidateOrderData(record model.OrderRecord) bool {
	if err := validate.Struct(record); err != nil {
		return false
	}
	return reconciles(record)
}

func ValidateShopConfig(record model.ShopConfigRecord) bool {
	return validate.Struct(record) == nil
}

// reconciles: net + tax == gross с точностью до цента.
func reconciles(record model.OrderRecord) bool {
	sum := decimal.NewFromFloat(record.TotalNet).Add(decimal.NewFromFloat(record.TotalTax))
	return sum.Sub(decimal.NewFromFloat(record.TotalGross)).Abs().LessThanOrEqual(reconcileTolerance)
}
