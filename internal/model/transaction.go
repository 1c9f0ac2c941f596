package model

import "time"

// DateLayout is the timestamp format stored with every transaction.
const DateLayout = "2006-01-02 15:04:05"

// Category is a spending category label.
type Category string

const (
	CategoryLoyer      Category = "loyer"
	CategoryNourriture Category = "nourriture"
	CategoryTransport  Category = "transport"
	CategoryLoisirs    Category = "loisirs"
	CategorySante      Category = "sante"
	CategoryEducation  Category = "education"
	CategoryShopping   Category = "shopping"
	CategoryAutres     Category = "autres"
)

// Categories is the fixed enumeration; a category's index is its encoding.
var Categories = []Category{
	CategoryLoyer,
	CategoryNourriture,
	CategoryTransport,
	CategoryLoisirs,
	CategorySante,
	CategoryEducation,
	CategoryShopping,
	CategoryAutres,
}

// EncodeCategory returns the category's index, or the index of autres when unknown.
func EncodeCategory(c Category) int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories) - 1
}

// IsKnownCategory reports whether c belongs to the fixed enumeration.
func IsKnownCategory(c Category) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Transaction is one immutable ledger entry. Negative amounts are expenses.
type Transaction struct {
	ID              int      `json:"id"`
	Amount          float64  `json:"amount"`
	Category        Category `json:"category"`
	CategoryEncoded int      `json:"category_encoded"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	DayOfWeek       int      `json:"day_of_week"` // 0 = Monday
	Month           int      `json:"month"`
	IsWeekend       bool     `json:"is_weekend"`
	Year            int      `json:"year"`
}

// NewTransaction builds a transaction stamped at now. Calendar fields are derived here
// once and never recomputed.
func NewTransaction(id int, amount float64, category Category, description string, now time.Time) Transaction {
	dow := Weekday(now)
	return Transaction{
		ID:              id,
		Amount:          amount,
		Category:        category,
		CategoryEncoded: EncodeCategory(category),
		Description:     description,
		Date:            now.Format(DateLayout),
		DayOfWeek:       dow,
		Month:           int(now.Month()),
		IsWeekend:       dow >= 5,
		Year:            now.Year(),
	}
}

// Time parses the stored date in loc. A zero time is returned when the date is malformed.
func (t Transaction) Time(loc *time.Location) time.Time {
	ts, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Weekday returns the Monday-based day index (Monday = 0, Sunday = 6).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
