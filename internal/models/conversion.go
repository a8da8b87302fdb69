package models

type ConversionRecord struct {
	ID           string  `json:"id" validate:"required,max=64"`
	FromCurrency string  `json:"fromCurrency" validate:"required,len=3,alpha"`
	ToCurrency   string  `json:"toCurrency" validate:"required,len=3,alpha"`
	FromAmount   float64 `json:"fromAmount" validate:"gte=0"`
	ToAmount     float64 `json:"toAmount" validate:"gte=0"`
	Rate         float64 `json:"rate" validate:"gte=0"`
	Timestamp    int64   `json:"timestamp" validate:"gte=0"`
	IsFavorite   bool    `json:"isFavorite"`
}
