package utils

import (
	"github.com/shopspring/decimal"
)

// 金额统一用 decimal 计算后保留两位小数，避免浮点累加误差

// Round2 金额保留两位小数
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// LineTotal 计算行金额：数量 × 单价，保留两位小数
func LineTotal(quantity int, unitPrice float64) float64 {
	total := decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(unitPrice))
	f, _ := total.Round(2).Float64()
	return f
}

// SumAmounts 金额求和，保留两位小数
func SumAmounts(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// AddAmount 金额加法，保留两位小数
func AddAmount(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// SubAmount 金额减法，保留两位小数
func SubAmount(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// ApplyMarginPercent 按利润率计算利润额：base × percent/100，保留两位小数
func ApplyMarginPercent(base, percent float64) float64 {
	profit := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100))
	f, _ := profit.Round(2).Float64()
	return f
}
