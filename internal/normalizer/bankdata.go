package normalizer

import (
	"strings"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

// NormalizeBankData возвращает nil, если IBAN не прислан: без него реквизиты бесполезны.
func NormalizeBankData(raw map[string]any) *model.BankData {
	if raw == nil {
		return nil
	}

	iban, ok := stringField(raw, "iban", "IBAN")
	if !ok {
		return nil
	}

	holder, _ := stringField(raw, "account_holder", "accountHolder", "recipient")
	bic, _ := stringField(raw, "bic", "BIC", "swift")
	bankName, _ := stringField(raw, "bank_name", "bankName", "bank")

	return &model.BankData{
		AccountHolder: holder,
		IBAN:          strings.ToUpper(strings.Join(strings.Fields(iban), "")),
		BIC:           strings.ToUpper(bic),
		BankName:      bankName,
	}
}
