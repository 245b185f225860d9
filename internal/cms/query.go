package cms

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query builds the CMS bracket syntax for filters, field selection and
// nested population, e.g.
//
//	filters[email][$eq]=a@b.com
//	populate[account][fields][0]=documentId
//	populate[payments][populate][method][fields][0]=type
type Query struct {
	params map[string]string
}

func NewQuery() *Query {
	return &Query{params: map[string]string{}}
}

// FilterEq adds filters[field][$eq]=value.
func (q *Query) FilterEq(field, value string) *Query {
	q.params["filters["+field+"][$eq]"] = value
	return q
}

// Populate adds a relation to populate, described by a Relation tree.
func (q *Query) Populate(name string, rel Relation) *Query {
	rel.flatten("populate["+name+"]", q.params)
	return q
}

// Encode renders the query string with values URL-escaped, keys as-is
// (the CMS expects literal brackets in key names).
func (q *Query) Encode() string {
	if len(q.params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q.params))
	for k := range q.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.params[k]))
	}
	return sb.String()
}

// Relation selects fields of a populated relation and, optionally,
// relations nested beneath it.
type Relation struct {
	Fields   []string
	Populate map[string]Relation
}

func (r Relation) flatten(prefix string, out map[string]string) {
	for i, f := range r.Fields {
		out[prefix+"[fields]["+strconv.Itoa(i)+"]"] = f
	}
	if len(r.Fields) == 0 && len(r.Populate) == 0 {
		out[prefix] = "true"
	}
	for name, nested := range r.Populate {
		nested.flatten(prefix+"[populate]["+name+"]", out)
	}
}
