// Package api provides the item database client used to fetch catalogue pages.
//
// Catalogue endpoint:
//   - https://secure.runescape.com/m=itemdb_rs/api/catalogue/items.json?category=0&alpha=a&page=1
//
// Responses are served as ISO-8859-1 and are transcoded to UTF-8 before JSON decoding.
// Guide prices use suffix notation ("1.2k", "3m") and are expanded by ParseSuffixed.
package api
