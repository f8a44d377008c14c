package usecase

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"cryptofolio/internal/feature/analytics/domain/entity"
)

// カードの表示バリアント
const (
	VariantSuccess = "success"
	VariantPrimary = "primary"
	VariantDanger  = "danger"
)

// Cards はメトリクスを4枚の表示用カードに整形します。
// 金額はUSD表記、損益率は小数点以下2桁です。
func Cards(m entity.Metrics) []entity.Card {
	return []entity.Card{
		{Title: "Total Portfolio Value", Value: USD(m.TotalValue), Variant: VariantSuccess},
		{Title: "Total Invested", Value: USD(m.TotalInvested), Variant: VariantPrimary},
		{Title: "Gain/Loss", Value: USD(m.TotalGainLoss), Variant: signVariant(m.TotalGainLoss)},
		{Title: "Return %", Value: Percent(m.GainLossPercentage), Variant: signVariant(m.GainLossPercentage)},
	}
}

// USD は v をセント単位で四捨五入（0から遠い方へ）したドル表記にします。例: "$35,300.00"
// 負の値は記号の前に符号を付けます: "-$250.00"
func USD(v float64) string {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Percent は v を小数点以下2桁のパーセント表記にします。例: "17.67%"
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func signVariant(v float64) string {
	if v < 0 {
		return VariantDanger
	}
	return VariantSuccess
}
