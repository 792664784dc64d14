package analysis

import (
	"math"
	"testing"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
)

func sampleRecords() []model.ProfitRecord {
	return []model.ProfitRecord{
		{ProductName: "A", Price: 30, ProfitConverted: 30, Source: model.SourceNormal},
		{ProductName: "B", Price: 25, ProfitConverted: 20, Source: model.SourcePromotion},
		{ProductName: "A", Price: 10, ProfitConverted: 10, Source: model.SourceNormal},
		{ProductName: "C", Price: 5, ProfitConverted: -10, Source: model.SourceNormal},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords(), 15)
	if s.Records != 4 || s.Products != 3 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.TotalProfit != 50 || s.MeanProfit != 12.5 || s.MinProfit != -10 || s.MaxProfit != 30 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.ByClass[profit.ClassLoss] != 1 || s.ByClass[profit.ClassPromotion] != 1 ||
		s.ByClass[profit.ClassHighProfit] != 1 || s.ByClass[profit.ClassNone] != 1 {
		t.Fatalf("unexpected class counts %v", s.ByClass)
	}
	if s.BySource[model.SourceNormal] != 3 || s.BySource[model.SourcePromotion] != 1 {
		t.Fatalf("unexpected source counts %v", s.BySource)
	}
	// sorted: -10, 10, 20, 30; median interpolates between 10 and 20.
	if math.Abs(s.P50Profit-15) > 1e-9 {
		t.Fatalf("expected median 15, got %v", s.P50Profit)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	if s.Records != 0 || s.TotalProfit != 0 || s.ByClass == nil {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}

func TestChartData(t *testing.T) {
	pts := ChartData(sampleRecords(), 2, 15)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0].ProductName != "A" || pts[0].ProfitConverted != 30 || pts[0].Options != 2 {
		t.Fatalf("unexpected first point %+v", pts[0])
	}
	if pts[1].ProductName != "B" || pts[1].Class != profit.ClassPromotion {
		t.Fatalf("unexpected second point %+v", pts[1])
	}

	all := ChartData(sampleRecords(), 0, 15)
	if len(all) != 3 || all[2].Class != profit.ClassLoss {
		t.Fatalf("unexpected full chart %+v", all)
	}
}

func TestChartDataKeepsBestOption(t *testing.T) {
	recs := []model.ProfitRecord{
		{ProductName: "A", ProfitConverted: 1},
		{ProductName: "A", ProfitConverted: 9},
	}
	pts := ChartData(recs, 0, 100)
	if len(pts) != 1 || pts[0].ProfitConverted != 9 || pts[0].Options != 2 {
		t.Fatalf("unexpected points %+v", pts)
	}
}
