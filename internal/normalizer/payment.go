package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

// paymentAliases - подстроки, по которым значение из бэкенда относится к
// одному из двух способов оплаты. Порядок важен: первый совпавший побеждает.
var paymentAliases = []struct {
	method  model.PaymentMethod
	aliases []string
}{
	{
		method: model.PaymentMethodVorkasse,
		aliases: []string{
			"vorkasse", "vorauskasse", "prepayment", "pre-payment", "prepaid",
			"advance payment", "überweisung", "ueberweisung", "uberweisung",
			"bank_transfer", "bank transfer", "banktransfer", "bank-transfer", "transfer",
		},
	},
	{
		method: model.PaymentMethodRechnung,
		aliases: []string{
			"rechnung", "invoice", "on_account", "on account", "purchase_on_account",
			"pay_later", "pay later", "bill",
		},
	},
}

func DefaultPaymentMethods() []model.PaymentMethod {
	return []model.PaymentMethod{model.PaymentMethodVorkasse, model.PaymentMethodRechnung}
}

// MatchPaymentMethod сопоставляет одно значение с каноническим кодом.
func MatchPaymentMethod(value string) (model.PaymentMethod, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for _, entry := range paymentAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(v, alias) {
				return entry.method, true
			}
		}
	}
	return "", false
}

// methodExtractor - одно правило разбора поля payment_methods.
// ok=false означает, что форма значения правилу не подходит.
type methodExtractor func(v any) (candidates []string, ok bool)

var methodExtractors = []methodExtractor{
	stringListMethods,
	objectListMethods,
	jsonStringMethods,
	delimitedStringMethods,
	scalarMethods,
}

var methodObjectKeys = []string{"code", "id", "type", "name", "method"}

const methodDelimiters = ",;|/"

func normalizePaymentMethods(v any) []model.PaymentMethod {
	var candidates []string
	for _, extract := range methodExtractors {
		if c, ok := extract(v); ok {
			candidates = c
			break
		}
	}

	seen := make(map[model.PaymentMethod]bool, 2)
	methods := make([]model.PaymentMethod, 0, 2)
	for _, c := range candidates {
		m, ok := MatchPaymentMethod(c)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		methods = append(methods, m)
	}

	if len(methods) == 0 {
		return DefaultPaymentMethods()
	}
	return methods
}

func stringListMethods(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// objectListMethods также принимает смешанные массивы строк и объектов.
func objectListMethods(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch it := item.(type) {
		case string:
			out = append(out, it)
		case map[string]any:
			if s, ok := stringField(it, methodObjectKeys...); ok {
				out = append(out, s)
			}
		}
	}
	return out, true
}

func jsonStringMethods(v any) ([]string, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, `"`) {
		return nil, false
	}

	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, false
	}

	switch d := decoded.(type) {
	case string:
		return []string{d}, true
	case map[string]any:
		return objectListMethods([]any{d})
	}
	if c, ok := stringListMethods(decoded); ok {
		return c, true
	}
	return objectListMethods(decoded)
}

func delimitedStringMethods(v any) ([]string, bool) {
	s, ok := v.(string)
	if !ok || !strings.ContainsAny(s, methodDelimiters) {
		return nil, false
	}
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(methodDelimiters, r)
	}), true
}

func scalarMethods(v any) ([]string, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case string:
		return []string{s}, true
	case []any, map[string]any:
		return nil, false
	default:
		return []string{fmt.Sprint(s)}, true
	}
}
