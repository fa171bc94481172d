// Package catalog fetches the product and combo feeds. The feeds are
// spreadsheet-backed JSON endpoints whose rows arrive loosely typed (numbers
// and booleans as strings), so everything is coerced and normalized here;
// downstream code only ever sees model.CatalogItem.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"konaseema-kart/internal/model"

	"github.com/rs/zerolog"
)

// feedRow is one raw spreadsheet row. Column values can be strings,
// numbers or booleans depending on how the sheet was edited.
type feedRow map[string]any

// packColumns maps optional per-pack price columns to pack sizes.
var packColumns = map[string]model.PackSize{
	"price_200g":     model.Pack200g,
	"price_250g":     model.Pack250g,
	"price_500ml":    model.Pack500ml,
	"price_500g":     model.Pack500g,
	"price_1kg":      model.Pack1kg,
	"price_1l":       model.Pack1L,
	"price_assorted": model.PackAssorted,
}

// Client fetches and normalizes the catalogue feeds.
type Client struct {
	httpClient  *http.Client
	productsURL string
	combosURL   string
	logger      zerolog.Logger
}

// NewClient creates a feed client. combosURL may be empty when the store
// runs without combos.
func NewClient(productsURL, combosURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		productsURL: productsURL,
		combosURL:   combosURL,
		logger:      logger.With().Str("component", "catalog").Logger(),
	}
}

// Products returns the live products from the feed, normalized. Rows not
// marked live are dropped.
func (c *Client) Products(ctx context.Context) ([]model.CatalogItem, error) {
	rows, err := c.fetch(ctx, c.productsURL)
	if err != nil {
		return nil, fmt.Errorf("fetching products feed: %w", err)
	}

	items := make([]model.CatalogItem, 0, len(rows))
	for _, row := range rows {
		if !toBool(row["is_live"]) {
			continue
		}
		item := model.CatalogItem{
			Kind:       model.KindProduct,
			ID:         toString(row["product_id"]),
			Name:       toString(row["product_name"]),
			Category:   toString(row["category"]),
			Desc:       toString(row["description"]),
			Weight:     toString(row["weight"]),
			Price:      toNumber(row["price"]),
			OutOfStock: toBool(row["out_of_stock"]),
			Live:       true,
			Image:      toString(row["image_url"]),
		}
		if item.ID == "" {
			c.logger.Warn().Str("name", item.Name).Msg("skipping product row without id")
			continue
		}
		for col, pack := range packColumns {
			if v, ok := row[col]; ok {
				if n := toNumber(v); n > 0 {
					if item.Prices == nil {
						item.Prices = make(map[model.PackSize]float64)
					}
					item.Prices[pack] = n
				}
			}
		}
		items = append(items, item)
	}

	c.logger.Debug().Int("live", len(items)).Int("rows", len(rows)).Msg("products feed fetched")
	return items, nil
}

// Combos returns the live combos from the feed. Rows sharing a combo_id are
// grouped into one purchasable item whose constituents are descriptive only;
// combo-level fields are taken from the first row of the group. Group order
// follows first appearance in the feed.
func (c *Client) Combos(ctx context.Context) ([]model.CatalogItem, error) {
	if c.combosURL == "" {
		return nil, nil
	}
	rows, err := c.fetch(ctx, c.combosURL)
	if err != nil {
		return nil, fmt.Errorf("fetching combos feed: %w", err)
	}

	byID := make(map[string]*model.CatalogItem)
	order := make([]string, 0)
	for _, row := range rows {
		id := toString(row["combo_id"])
		if id == "" {
			continue
		}
		combo, ok := byID[id]
		if !ok {
			if !toBool(row["is_live"]) {
				continue
			}
			combo = &model.CatalogItem{
				Kind:       model.KindCombo,
				ID:         id,
				Name:       toString(row["combo_name"]),
				Category:   "Combos",
				Image:      toString(row["image_url"]),
				Price:      toNumber(row["combo_price"]),
				Weight:     toString(row["combo_weight"]),
				OutOfStock: toBool(row["out_of_stock"]),
				Live:       true,
			}
			byID[id] = combo
			order = append(order, id)
		}
		combo.Items = append(combo.Items, model.ComboConstituent{
			Name:   toString(row["item_name"]),
			Weight: toString(row["weight"]),
		})
	}

	combos := make([]model.CatalogItem, 0, len(order))
	for _, id := range order {
		combos = append(combos, *byID[id])
	}
	c.logger.Debug().Int("combos", len(combos)).Int("rows", len(rows)).Msg("combos feed fetched")
	return combos, nil
}

func (c *Client) fetch(ctx context.Context, feedURL string) ([]feedRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var rows []feedRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding feed body: %w", err)
	}
	return rows, nil
}

// toBool accepts the truthy spellings spreadsheet edits produce.
func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	s := strings.ToLower(strings.TrimSpace(toString(v)))
	return s == "true" || s == "yes" || s == "1"
}

// toNumber coerces a cell to a number, 0 when it cannot be parsed.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(toString(v)), 64)
	if err != nil {
		return 0
	}
	return f
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
