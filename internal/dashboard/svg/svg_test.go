package svg

import (
	"strings"
	"testing"
)

func TestMultiLineProducesSVG(t *testing.T) {
	html, err := MultiLine(720, 300, []Series{
		{Name: "Electronics", Values: []float64{150, 0}},
		{Name: "Books", Values: []float64{0, 20}},
	}, []string{"2019-01", "2019-04"}, LineOpts{
		Title:       "Product Revenue Over Time",
		Description: "Monthly revenue per category",
		ShowDots:    true,
	})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if strings.Count(output, "<path") != 2 {
		t.Fatalf("expected one path per series")
	}
	if !strings.Contains(output, "Electronics") {
		t.Fatalf("expected legend label")
	}
}

func TestMultiLineRejectsMismatchedLabels(t *testing.T) {
	_, err := MultiLine(720, 300, []Series{{Name: "A", Values: []float64{1}}}, []string{"2019-01", "2019-02"}, LineOpts{})
	if err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(720, 300, []float64{150, 20}, []string{"Electronics", "Books"}, BarOpts{
		Title:       "Revenue by Product Category",
		Description: "Category totals",
	})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	output := string(html)
	if strings.Count(output, "<rect") != 2 {
		t.Fatalf("expected one rect per category")
	}
	if !strings.Contains(output, "Books") {
		t.Fatalf("expected category label")
	}
}

func TestPieProducesSVG(t *testing.T) {
	html, err := Pie(560, 300, []float64{150, 20}, []string{"Electronics", "Books"}, PieOpts{
		Title: "Revenue by Product Category",
	})
	if err != nil {
		t.Fatalf("pie renderer error: %v", err)
	}
	output := string(html)
	if strings.Count(output, "<path") != 2 {
		t.Fatalf("expected one slice per category")
	}
	if !strings.Contains(output, "(88.2%)") {
		t.Fatalf("expected share percentage in slice title: %s", output)
	}
}

func TestPieSingleSliceRendersFullCircle(t *testing.T) {
	html, err := Pie(560, 300, []float64{150}, []string{"Electronics"}, PieOpts{})
	if err != nil {
		t.Fatalf("pie renderer error: %v", err)
	}
	if !strings.Contains(string(html), "<circle") {
		t.Fatalf("expected full circle for single slice")
	}
}

func TestPieEmptyTotalRendersPlaceholder(t *testing.T) {
	html, err := Pie(560, 300, []float64{0, 0}, []string{"A", "B"}, PieOpts{})
	if err != nil {
		t.Fatalf("pie renderer error: %v", err)
	}
	if strings.Contains(string(html), "<path") {
		t.Fatalf("expected no slices for zero total")
	}
}

func TestUSMapCoversAllStates(t *testing.T) {
	if len(tileGrid) != 50 {
		t.Fatalf("expected 50 tiles, got %d", len(tileGrid))
	}
	html, err := USMap(720, 360, map[string]float64{"CA": 120, "TX": 50}, MapOpts{
		Title: "Revenue by State",
	})
	if err != nil {
		t.Fatalf("usmap renderer error: %v", err)
	}
	output := string(html)
	if strings.Count(output, "<rect") != 50 {
		t.Fatalf("expected one tile per state")
	}
	if !strings.Contains(output, "CA: 120") {
		t.Fatalf("expected revenue in tile title")
	}
}

func TestUSMapEmptyDataStillRendersGrid(t *testing.T) {
	html, err := USMap(720, 360, nil, MapOpts{})
	if err != nil {
		t.Fatalf("usmap renderer error: %v", err)
	}
	if strings.Count(string(html), "<rect") != 50 {
		t.Fatalf("expected all tiles in the empty map")
	}
}
