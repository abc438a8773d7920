package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/rickgao/grandexchange-data/internal/model"
)

// DefaultCatalogueBase is the item database catalogue endpoint.
const DefaultCatalogueBase = "https://secure.runescape.com/m=itemdb_rs/api/catalogue/items.json"

// CatalogueURL builds the URL of one catalogue page.
func CatalogueURL(base string, category int, alpha string, page int) string {
	query := url.Values{}
	query.Set("category", strconv.Itoa(category))
	query.Set("alpha", alpha)
	query.Set("page", strconv.Itoa(page))
	return base + "?" + query.Encode()
}

// GetCatalogue fetches one catalogue page and converts it to model records.
// Any failure aborts the whole page: the result is either complete or nil with a *FetchError.
func (c *Client) GetCatalogue(ctx context.Context, rawURL string) (*model.Catalogue, error) {
	c.logger.Info("fetching catalogue", "url", rawURL)

	resp, err := c.doWithRetry(ctx, rawURL)
	if err != nil {
		fe := &FetchError{Kind: KindTransport, URL: rawURL, Err: err}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			fe.StatusCode = apiErr.StatusCode
			fe.Header = apiErr.Header
			fe.Body = apiErr.Body
		}
		return nil, fe
	}

	cat, err := c.decodeCatalogue(resp.Body)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			fe = &FetchError{Kind: KindDecode, Err: err}
		}
		fe.URL = rawURL
		fe.StatusCode = resp.StatusCode
		fe.Header = resp.Header
		fe.Body = resp.Body
		return nil, fe
	}

	c.logger.Debug("catalogue fetched",
		"url", rawURL,
		"items", cat.Len(),
	)

	return cat, nil
}

// decodeCatalogue transcodes an ISO-8859-1 body and maps every item.
func (c *Client) decodeCatalogue(body []byte) (*model.Catalogue, error) {
	utf8Body, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("transcode body: %w", err)
	}

	var payload CatalogueResponse
	if err := json.Unmarshal(utf8Body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: items", errMissingField)
	}

	fetchedAt := c.now()
	items := *payload.Items
	cat := &model.Catalogue{
		Items:  make([]model.Item, 0, len(items)),
		Prices: make([]model.PriceSnapshot, 0, len(items)),
	}

	for i := range items {
		item, snapshot, err := items[i].ToModel(fetchedAt)
		if err != nil {
			return nil, err
		}
		cat.Items = append(cat.Items, item)
		cat.Prices = append(cat.Prices, snapshot)
	}

	if err := cat.Validate(); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: err}
	}

	return cat, nil
}
