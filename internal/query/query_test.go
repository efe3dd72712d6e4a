package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allowed = map[string]bool{
	"name":       true,
	"telephone":  true,
	"created_at": true,
}

func TestParse_Equality(t *testing.T) {
	opts := Parse(url.Values{"name": {"Aroma Spa"}}, allowed)

	assert.Equal(t, []Condition{{Column: "name", Op: "=", Value: "Aroma Spa"}}, opts.Conditions)
}

func TestParse_ComparisonOperators(t *testing.T) {
	tests := []struct {
		key string
		op  string
	}{
		{"created_at[gt]", ">"},
		{"created_at[gte]", ">="},
		{"created_at[lt]", "<"},
		{"created_at[lte]", "<="},
	}

	for _, tt := range tests {
		opts := Parse(url.Values{tt.key: {"2026-01-01"}}, allowed)
		assert.Len(t, opts.Conditions, 1, tt.key)
		assert.Equal(t, tt.op, opts.Conditions[0].Op, tt.key)
		assert.Equal(t, "created_at", opts.Conditions[0].Column, tt.key)
	}
}

func TestParse_InOperator(t *testing.T) {
	opts := Parse(url.Values{"name[in]": {"Aroma Spa,Lotus Massage"}}, allowed)

	assert.Len(t, opts.Conditions, 1)
	assert.Equal(t, "IN", opts.Conditions[0].Op)
	assert.Equal(t, []string{"Aroma Spa", "Lotus Massage"}, opts.Conditions[0].Value)
}

func TestParse_UnknownColumnsDropped(t *testing.T) {
	opts := Parse(url.Values{
		"password":   {"x"},
		"name[gte]":  {"A"},
		"secret[in]": {"a,b"},
	}, allowed)

	assert.Len(t, opts.Conditions, 1)
	assert.Equal(t, "name", opts.Conditions[0].Column)
}

func TestParse_UnknownOperatorIsEquality(t *testing.T) {
	opts := Parse(url.Values{"name[like]": {"Aroma"}}, allowed)

	assert.Equal(t, "=", opts.Conditions[0].Op)
}

func TestParse_SelectWhitelisted(t *testing.T) {
	opts := Parse(url.Values{"select": {"name,telephone,password"}}, allowed)

	assert.Equal(t, []string{"name", "telephone"}, opts.Select)
}

func TestParse_SortDirections(t *testing.T) {
	opts := Parse(url.Values{"sort": {"-created_at,name"}}, allowed)

	assert.Equal(t, []string{"created_at DESC", "name ASC"}, opts.Sort)
}

func TestParse_DefaultSortNewestFirst(t *testing.T) {
	opts := Parse(url.Values{}, allowed)

	assert.Equal(t, []string{"created_at DESC"}, opts.Sort)
}

func TestParse_Pagination(t *testing.T) {
	opts := Parse(url.Values{"page": {"3"}, "limit": {"10"}}, allowed)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 10, opts.Limit)
}

func TestParse_PaginationDefaultsAndBadValues(t *testing.T) {
	opts := Parse(url.Values{"page": {"0"}, "limit": {"nope"}}, allowed)

	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
}

func TestHasNextPrev(t *testing.T) {
	opts := Options{Page: 2, Limit: 25}

	assert.True(t, opts.HasPrev())
	assert.True(t, opts.HasNext(51))
	assert.False(t, opts.HasNext(50))

	first := Options{Page: 1, Limit: 25}
	assert.False(t, first.HasPrev())
}
