package handlers

import (
	"github.com/shopspring/decimal"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

func columnRef(t *table.Table, id table.ColumnID) *models.ColumnRef {
	if id == table.NoColumn || !t.Valid(id) {
		return nil
	}
	return &models.ColumnRef{Index: int(id), Label: t.Label(id)}
}

func columnRefs(t *table.Table, ids []table.ColumnID) []models.ColumnRef {
	out := make([]models.ColumnRef, 0, len(ids))
	for _, id := range ids {
		if ref := columnRef(t, id); ref != nil {
			out = append(out, *ref)
		}
	}
	return out
}

func mappingInfo(t *table.Table, m resolve.Mapping) models.MappingInfo {
	return models.MappingInfo{
		Name:       columnRef(t, m.Name),
		Cost:       columnRef(t, m.Cost),
		PromoCost:  columnRef(t, m.PromoCost),
		PromoPrice: columnRef(t, m.PromoPrice),
		Prices:     columnRefs(t, m.Prices),
	}
}

func toRecords(records []model.ProfitRecord, threshold float64) []models.Record {
	out := make([]models.Record, len(records))
	for i, r := range records {
		out[i] = toRecord(r, threshold)
	}
	return out
}

func toRecord(r model.ProfitRecord, threshold float64) models.Record {
	rec := models.Record{
		Row:                    r.Row,
		ProductName:            r.ProductName,
		PriceColumn:            r.PriceColumn,
		Source:                 string(r.Source),
		Class:                  string(profit.Classify(r, threshold)),
		Price:                  r.Price,
		Cost:                   r.Cost,
		PlatformFee:            r.PlatformFee,
		ProfitLocal:            r.ProfitLocal,
		ProfitConverted:        r.ProfitConverted,
		CommissionConverted:    r.CommissionConverted,
		ProfitLocalDisplay:     fixed2(r.ProfitLocal),
		ProfitConvertedDisplay: fixed2(r.ProfitConverted),
	}
	if r.HasMargin() {
		m := r.MarginPct
		rec.MarginPct = &m
		rec.MarginDisplay = fixed2(m)
	}
	return rec
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
