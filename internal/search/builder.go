// Package search turns listing filters into a parameterized SQL statement.
package search

import (
	"strconv"
	"strings"
)

// baseQuery selects every property column with its average review rating.
// The LEFT JOIN keeps properties without reviews; their average is NULL.
const baseQuery = `SELECT properties.*, avg(property_reviews.rating) AS average_rating
FROM properties
LEFT JOIN property_reviews ON properties.id = property_reviews.property_id`

// QueryPlan pairs a statement template with its positional arguments.
// Placeholder $N in SQL refers to the Nth element of Params.
type QueryPlan struct {
	sql    string
	params []any
}

// SQL returns the statement template.
func (p QueryPlan) SQL() string {
	return p.sql
}

// Params returns a copy of the positional arguments in placeholder order.
func (p QueryPlan) Params() []any {
	return append([]any(nil), p.params...)
}

// paramList hands out placeholders in the order values are bound.
type paramList struct {
	values []any
}

func (l *paramList) bind(v any) string {
	l.values = append(l.values, v)
	return "$" + strconv.Itoa(len(l.values))
}

// Build assembles the property search statement for c.
func Build(c SearchCriteria) QueryPlan {
	var params paramList
	var wheres []string

	if c.City != nil {
		wheres = append(wheres, "properties.city LIKE "+params.bind("%"+*c.City+"%"))
	}
	if c.OwnerID != nil {
		wheres = append(wheres, "properties.owner_id = "+params.bind(*c.OwnerID))
	}
	if c.MinimumPricePerNight != nil {
		wheres = append(wheres, "properties.cost_per_night >= "+params.bind(*c.MinimumPricePerNight))
	}
	if c.MaximumPricePerNight != nil {
		wheres = append(wheres, "properties.cost_per_night <= "+params.bind(*c.MaximumPricePerNight))
	}

	var sql strings.Builder
	sql.WriteString(baseQuery)

	if len(wheres) > 0 {
		sql.WriteString("\nWHERE ")
		sql.WriteString(strings.Join(wheres, " AND "))
	}

	sql.WriteString("\nGROUP BY properties.id")

	// Rating filters the aggregate, so it can only go after grouping.
	if c.MinimumRating != nil {
		sql.WriteString("\nHAVING avg(property_reviews.rating) >= ")
		sql.WriteString(params.bind(*c.MinimumRating))
	}

	sql.WriteString("\nORDER BY properties.cost_per_night ASC")
	sql.WriteString("\nLIMIT ")
	sql.WriteString(params.bind(c.EffectiveLimit()))

	return QueryPlan{sql: sql.String(), params: params.values}
}
