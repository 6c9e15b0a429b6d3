package calculations

var registry = map[string]CalculationHandler{
	"calculate_tax":       &CalculateTaxHandler{},
	"effective_tax_rate":  &EffectiveTaxRateHandler{},
	"find_pre_tax_income": &FindPreTaxIncomeHandler{},
}

func Get(name string) (CalculationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
