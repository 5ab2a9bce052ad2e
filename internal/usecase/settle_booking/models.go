package settle_booking

// Request модель запроса на итоговый расчёт после оказания услуги
type Request struct {
	BookingID int64

	// FinalCostDollars итоговая стоимость услуги, заявленная провайдером
	FinalCostDollars float64

	ProviderNotes *string
}

// Response модель результата расчёта
type Response struct {
	// Success true, когда остаток списан или списывать было нечего
	Success bool

	// BalanceDollars остаток к списанию после скидки и вычета депозита
	BalanceDollars float64

	// PaymentIntentID идентификатор платежа остатка, пустой при
	// нулевом остатке
	PaymentIntentID string
}

// Config бизнес-параметры usecase
type Config struct {
	PlatformFeePercent float64
	Currency           string
}
