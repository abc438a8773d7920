package api

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/grandexchange-data/internal/model"
)

// suffixMultipliers maps magnitude letters to their scale.
var suffixMultipliers = map[byte]decimal.Decimal{
	'k': decimal.New(1, 3),
	'm': decimal.New(1, 6),
	'b': decimal.New(1, 9),
}

var separatorStripper = strings.NewReplacer(" ", "", ",", "")

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)

	errOutOfRange = errors.New("value out of int64 range")
)

// ParseSuffixed converts a count or price in suffix notation to an integer.
// "120" -> 120, "1,200" -> 1200, "1.5k" -> 1500, "- 2.1m" -> -2100000, "3B" -> 3000000000
// Fractional results are truncated toward zero; results outside int64 are an error.
func ParseSuffixed(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n, nil
	}

	cleaned := separatorStripper.Replace(trimmed)
	if cleaned == "" {
		return 0, &ParseError{Input: s}
	}

	last := cleaned[len(cleaned)-1]
	if last >= 'A' && last <= 'Z' {
		last += 'a' - 'A'
	}

	mult, ok := suffixMultipliers[last]
	if !ok {
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return 0, &ParseError{Input: s, Err: err}
		}
		return n, nil
	}

	num, err := decimal.NewFromString(cleaned[:len(cleaned)-1])
	if err != nil {
		return 0, &ParseError{Input: s, Err: err}
	}

	scaled := num.Mul(mult).Truncate(0)
	if scaled.GreaterThan(maxInt64) || scaled.LessThan(minInt64) {
		return 0, &ParseError{Input: s, Err: errOutOfRange}
	}

	return scaled.IntPart(), nil
}

// ParseMembers converts the members flag to a boolean.
// Accepts y/yes/t/true/on/1 and n/no/f/false/off/0, case-insensitive.
func ParseMembers(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid truth value %q", s)
	}
}

// errMissingField marks a required key absent from an item.
var errMissingField = errors.New("missing field")

// ToModel converts an APIItem to its Item and PriceSnapshot. fetchedAt supplies the
// snapshot date; the payload carries none.
func (a *APIItem) ToModel(fetchedAt time.Time) (model.Item, model.PriceSnapshot, error) {
	if err := a.checkRequired(); err != nil {
		return model.Item{}, model.PriceSnapshot{}, &FetchError{Kind: KindDecode, Err: err}
	}

	members, err := ParseMembers(string(*a.Members))
	if err != nil {
		return model.Item{}, model.PriceSnapshot{}, &FetchError{
			Kind: KindDecode,
			Err:  fmt.Errorf("item %d: members: %w", *a.ID, err),
		}
	}

	price, err := ParseSuffixed(string(*a.Current.Price))
	if err != nil {
		return model.Item{}, model.PriceSnapshot{}, &FetchError{
			Kind: KindParse,
			Err:  fmt.Errorf("item %d: current.price: %w", *a.ID, err),
		}
	}

	change, err := ParseSuffixed(string(*a.Today.Price))
	if err != nil {
		return model.Item{}, model.PriceSnapshot{}, &FetchError{
			Kind: KindParse,
			Err:  fmt.Errorf("item %d: today.price: %w", *a.ID, err),
		}
	}

	item := model.Item{
		ItemID:      *a.ID,
		Icon:        *a.Icon,
		Type:        *a.Type,
		Name:        *a.Name,
		Description: *a.Description,
		IsMembers:   members,
	}

	snapshot := model.PriceSnapshot{
		ItemID:      *a.ID,
		Date:        calendarDay(fetchedAt),
		Price:       price,
		Trend:       *a.Today.Trend,
		ChangeToday: change,
	}

	return item, snapshot, nil
}

func (a *APIItem) checkRequired() error {
	if a.ID == nil {
		return fmt.Errorf("%w: id", errMissingField)
	}

	missing := func(field string) error {
		return fmt.Errorf("item %d: %w: %s", *a.ID, errMissingField, field)
	}

	switch {
	case a.Icon == nil:
		return missing("icon")
	case a.Type == nil:
		return missing("type")
	case a.Name == nil:
		return missing("name")
	case a.Description == nil:
		return missing("description")
	case a.Members == nil:
		return missing("members")
	case a.Current == nil || a.Current.Price == nil:
		return missing("current.price")
	case a.Today == nil || a.Today.Trend == nil:
		return missing("today.trend")
	case a.Today.Price == nil:
		return missing("today.price")
	}
	return nil
}

// calendarDay truncates t to midnight in its own location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
