package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Listing query options parsed from the URL: field filters with comparison
// operators (name[gte]=..., id[in]=1,2), projection, multi-field sort and
// offset/limit pagination.

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

var reservedParams = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"in":  "IN",
}

type Condition struct {
	Column string
	Op     string
	Value  any
}

type Options struct {
	Conditions []Condition
	Select     []string
	Sort       []string
	Page       int
	Limit      int
}

// Parse builds Options from raw query values. allowed whitelists the
// filterable/sortable/selectable columns; anything else is dropped rather
// than rejected, matching lenient listing semantics.
func Parse(values url.Values, allowed map[string]bool) Options {
	opts := Options{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	for key, vals := range values {
		if len(vals) == 0 || reservedParams[key] {
			continue
		}
		column, op := splitOperator(key)
		if !allowed[column] {
			continue
		}

		raw := vals[0]
		if op == "IN" {
			opts.Conditions = append(opts.Conditions, Condition{
				Column: column,
				Op:     op,
				Value:  strings.Split(raw, ","),
			})
			continue
		}
		opts.Conditions = append(opts.Conditions, Condition{
			Column: column,
			Op:     op,
			Value:  raw,
		})
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			f = strings.TrimSpace(f)
			if allowed[f] {
				opts.Select = append(opts.Select, f)
			}
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			f = strings.TrimSpace(f)
			desc := strings.HasPrefix(f, "-")
			col := strings.TrimPrefix(f, "-")
			if !allowed[col] {
				continue
			}
			if desc {
				opts.Sort = append(opts.Sort, col+" DESC")
			} else {
				opts.Sort = append(opts.Sort, col+" ASC")
			}
		}
	}
	if len(opts.Sort) == 0 {
		opts.Sort = []string{"created_at DESC"}
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}

	return opts
}

// "name[gte]" -> ("name", ">="). A bare key means equality.
func splitOperator(key string) (string, string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "="
	}
	column := key[:open]
	opName := key[open+1 : len(key)-1]
	if sqlOp, ok := operators[opName]; ok {
		return column, sqlOp
	}
	return column, "="
}

// Apply attaches filters, projection, sort and pagination to a gorm query.
func (o Options) Apply(q *gorm.DB) *gorm.DB {
	for _, c := range o.Conditions {
		if c.Op == "IN" {
			q = q.Where(fmt.Sprintf("%s IN ?", c.Column), c.Value)
			continue
		}
		q = q.Where(fmt.Sprintf("%s %s ?", c.Column, c.Op), c.Value)
	}

	if len(o.Select) > 0 {
		q = q.Select(o.Select)
	}

	for _, s := range o.Sort {
		q = q.Order(s)
	}

	return q.Offset((o.Page - 1) * o.Limit).Limit(o.Limit)
}

// ApplyFilters attaches only the filter conditions; used for the total
// count a pagination descriptor needs.
func (o Options) ApplyFilters(q *gorm.DB) *gorm.DB {
	for _, c := range o.Conditions {
		if c.Op == "IN" {
			q = q.Where(fmt.Sprintf("%s IN ?", c.Column), c.Value)
			continue
		}
		q = q.Where(fmt.Sprintf("%s %s ?", c.Column, c.Op), c.Value)
	}
	return q
}

// HasNext reports whether another page exists past the current one.
func (o Options) HasNext(total int64) bool {
	return int64(o.Page*o.Limit) < total
}

func (o Options) HasPrev() bool {
	return o.Page > 1
}
