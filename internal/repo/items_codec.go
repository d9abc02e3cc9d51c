package repo

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-food-backend/internal/domain"
)

// Item-aggregate wire encoding. The listing queries flatten an order's
// items into one delimited text column: records joined by ",", each record
// five ":"-joined fields in the fixed order
// product_id:product_name:quantity:price:cook_telegram.
//
// EncodeItems and DecodeItems are the single encode/decode pair for that
// format; the SQL side of the encoding is Dialect.ItemsAggExpr, which must
// emit the same layout. Product names containing the delimiters are a
// known limitation inherited from the format itself.
const (
	itemFieldSep  = ":"
	itemRecordSep = ","

	// minItemFields is the smallest record DecodeItems accepts; the
	// trailing cook_telegram field may be absent entirely.
	minItemFields = 4
)

// EncodeItems renders items in the aggregate wire format. An empty list
// encodes to "".
func EncodeItems(items []domain.OrderItem) string {
	if len(items) == 0 {
		return ""
	}
	recs := make([]string, 0, len(items))
	for _, it := range items {
		recs = append(recs, strings.Join([]string{
			it.ProductID,
			it.ProductName,
			strconv.Itoa(it.Quantity),
			strconv.FormatFloat(it.Price, 'f', -1, 64),
			it.CookTelegram,
		}, itemFieldSep))
	}
	return strings.Join(recs, itemRecordSep)
}

// DecodeItems parses the aggregate wire format back into items. A missing
// trailing field is treated as empty; a malformed record (fewer than four
// fields, or a non-numeric quantity/price) is skipped rather than
// reported. "" decodes to no items.
func DecodeItems(data string) []domain.OrderItem {
	if data == "" {
		return nil
	}
	var items []domain.OrderItem
	for _, rec := range strings.Split(data, itemRecordSep) {
		parts := strings.Split(rec, itemFieldSep)
		if len(parts) < minItemFields {
			continue
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		it := domain.OrderItem{
			ProductID:   parts[0],
			ProductName: parts[1],
			Quantity:    qty,
			Price:       price,
		}
		if len(parts) > minItemFields {
			it.CookTelegram = parts[4]
		}
		items = append(items, it)
	}
	return items
}
