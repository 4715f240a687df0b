package service

import (
	"funnel-storefront/internal/core/i18n"
	"funnel-storefront/internal/core/money"
	"funnel-storefront/internal/features/checkout/domain"
	funneldomain "funnel-storefront/internal/features/funnel/domain"
)

// buildSummary derives the localized price breakdown from the selected
// purchase option, or from the non-bundle product selection when the
// session carries no offer.
func buildSummary(session *domain.CheckoutSession, funnel *funneldomain.Funnel) *domain.OrderSummary {
	lang := session.Lang
	currency := funnel.Currency

	format := func(amount float64) string {
		return money.FormatCurrency(amount, currency, lang)
	}

	bundle := session.Bundle.GetState()
	if offer := bundle.SelectedOffer; offer != nil {
		summary := &domain.OrderSummary{
			Lines: []domain.SummaryLine{
				{Label: i18n.T("summary.price_per_item", lang), Amount: format(offer.PricePerItem)},
			},
			Total: format(offer.FinalTotal),
		}

		shipping := format(offer.ShippingPrice)
		if offer.ShippingPrice == 0 {
			shipping = i18n.T("summary.free", lang)
		}
		summary.Lines = append(summary.Lines, domain.SummaryLine{
			Label: i18n.T("summary.shipping", lang), Amount: shipping,
		})

		if offer.Discount > 0 {
			summary.Lines = append(summary.Lines, domain.SummaryLine{
				Label: i18n.T("summary.discount", lang), Amount: format(offer.Discount),
			})
		}

		summary.Lines = append(summary.Lines, domain.SummaryLine{
			Label: i18n.T("summary.total", lang), Amount: summary.Total,
		})
		return summary
	}

	state := session.Product.GetState()
	unit := funnel.Product.Price
	if funnel.Product.PriceAfterDiscount != nil {
		unit = *funnel.Product.PriceAfterDiscount
	}
	if state.PriceAfterDiscount != nil {
		unit = *state.PriceAfterDiscount
	} else if state.Price != nil {
		unit = *state.Price
	}
	total := unit * float64(state.Qty)

	return &domain.OrderSummary{
		Lines: []domain.SummaryLine{
			{Label: i18n.T("summary.price_per_item", lang), Amount: format(unit)},
			{Label: i18n.T("summary.total", lang), Amount: format(total)},
		},
		Total: format(total),
	}
}
