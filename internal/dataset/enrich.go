package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/retailpulse/retailpulse/internal/store"
)

// timestampLayouts are tried in order when parsing order timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Enrich joins the raw projections into the enriched order table, derives
// the calendar buckets, and pre-groups the aggregate table the chart filters
// operate over. Malformed records are dropped and counted, never fatal.
func Enrich(orders []store.OrderRecord, products []store.ProductRecord) *Dataset {
	var dropped DropCounts

	catalog := make(map[int64]Product, len(products))
	for _, rec := range products {
		p, ok := parseProduct(rec)
		if !ok {
			dropped.MalformedProducts++
			continue
		}
		catalog[p.ProductID] = p
	}

	enriched := make([]EnrichedOrder, 0, len(orders))
	type aggKey struct {
		state, quarter, month, category string
	}
	sums := make(map[aggKey]float64)

	for _, rec := range orders {
		ts, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			dropped.MalformedOrders++
			continue
		}
		productID, err := strconv.ParseInt(strings.TrimSpace(rec.ProductID), 10, 64)
		if err != nil {
			dropped.MalformedOrders++
			continue
		}

		order := EnrichedOrder{
			OrderID:       rec.OrderID,
			CustomerID:    rec.CustomerID,
			SellerID:      rec.SellerID,
			PaymentMethod: rec.PaymentMethod,
			ShippingState: rec.ShippingState,
			Timestamp:     ts,
			Year:          ts.Year(),
			Quarter:       quarterLabel(ts),
			Month:         ts.Format("2006-01"),
			ProductID:     productID,
		}

		if p, ok := catalog[productID]; ok {
			revenue := p.Price
			order.Category = p.Category
			order.Revenue = &revenue

			code, ok := NormalizeState(rec.ShippingState)
			if !ok {
				dropped.UnmappedStates++
			} else {
				key := aggKey{state: code, quarter: order.Quarter, month: order.Month, category: p.Category}
				sums[key] += revenue
			}
		}
		enriched = append(enriched, order)
	}

	aggregate := make([]AggregateRow, 0, len(sums))
	for key, revenue := range sums {
		aggregate = append(aggregate, AggregateRow{
			State:    key.state,
			Quarter:  key.quarter,
			Month:    key.month,
			Category: key.category,
			Revenue:  revenue,
		})
	}
	sort.Slice(aggregate, func(i, j int) bool {
		a, b := aggregate[i], aggregate[j]
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Quarter != b.Quarter {
			return a.Quarter < b.Quarter
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Category < b.Category
	})

	return newDataset(enriched, aggregate, dropped)
}

func parseProduct(rec store.ProductRecord) (Product, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(rec.ProductID), 10, 64)
	if err != nil {
		return Product{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rec.Price), 64)
	if err != nil {
		return Product{}, false
	}
	// Stock is carried for completeness; a missing value is not malformed.
	stock, _ := strconv.ParseInt(strings.TrimSpace(rec.Stock), 10, 64)
	return Product{
		ProductID: id,
		Category:  stripQuotes(rec.Category),
		Price:     price,
		Stock:     stock,
	}, true
}

// stripQuotes removes one leading and one trailing literal quote character.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, "'")
	return strings.TrimSuffix(s, "'")
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// quarterLabel formats a timestamp as "<year>Q<1-4>".
func quarterLabel(ts time.Time) string {
	quarter := (int(ts.Month())-1)/3 + 1
	return strconv.Itoa(ts.Year()) + "Q" + strconv.Itoa(quarter)
}
