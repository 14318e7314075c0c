// Package elastic runs query batches against Elasticsearch with one _msearch round trip
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inputdash/internal/core/batch"
	"inputdash/internal/platform/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// DefaultTextField is the document field full text terms are matched against
const DefaultTextField = "description"

// groupAgg names the terms aggregation a grouped query decodes
const groupAgg = "group"

// Config configures the client
type Config struct {
	Addresses []string
	Username  string
	Password  string

	// TextField overrides DefaultTextField
	TextField string
	// MaxConcurrent caps the searches one msearch runs at once; 0 leaves the cluster default
	MaxConcurrent int
}

// Backend implements batch.Backend over an Elasticsearch cluster
type Backend struct {
	es            *elasticsearch.Client
	textField     string
	maxConcurrent int
}

var _ batch.Backend = (*Backend)(nil)

// Open builds a client for cfg. It does not contact the cluster.
func Open(cfg Config) (*Backend, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elastic: no addresses")
	}
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elastic: client: %w", err)
	}
	b := New(c, cfg.TextField)
	b.maxConcurrent = cfg.MaxConcurrent
	return b, nil
}

// New wraps an existing client
func New(c *elasticsearch.Client, textField string) *Backend {
	if textField == "" {
		textField = DefaultTextField
	}
	return &Backend{es: c, textField: textField}
}

// Ping checks the cluster answers
func (b *Backend) Ping(ctx context.Context) error {
	res, err := esapi.PingRequest{}.Do(ctx, b.es)
	if err != nil {
		return fmt.Errorf("elastic: ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elastic: ping: %s", res.Status())
	}
	return nil
}

// Run sends every query as one _msearch body and decodes the responses in order
func (b *Backend) Run(ctx context.Context, queries []batch.Query) ([]batch.Result, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, q := range queries {
		if err := enc.Encode(map[string]any{"index": q.Index}); err != nil {
			return nil, fmt.Errorf("elastic: encode header: %w", err)
		}
		if err := enc.Encode(b.body(q)); err != nil {
			return nil, fmt.Errorf("elastic: encode %s: %w", q.Name, err)
		}
	}

	logger.C(ctx).Trace().Int("queries", len(queries)).Msg("elastic msearch")

	req := esapi.MsearchRequest{Body: &buf}
	if b.maxConcurrent > 0 {
		n := b.maxConcurrent
		req.MaxConcurrentSearches = &n
	}
	res, err := req.Do(ctx, b.es)
	if err != nil {
		return nil, fmt.Errorf("elastic: msearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elastic: msearch: %s", res.String())
	}

	var out msearchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("elastic: decode: %w", err)
	}
	if len(out.Responses) != len(queries) {
		return nil, fmt.Errorf("elastic: %d responses for %d queries", len(out.Responses), len(queries))
	}

	results := make([]batch.Result, len(queries))
	for i, q := range queries {
		results[i] = decode(q, out.Responses[i])
	}
	return results, nil
}

func (b *Backend) body(q batch.Query) map[string]any {
	body := map[string]any{
		"query":            b.query(q),
		"track_total_hits": true,
		"_source":          false,
	}
	if q.GroupBy != nil {
		terms := map[string]any{
			"field": q.GroupBy.Field,
			"size":  q.Offset + q.Limit,
		}
		if o := groupOrder(q.GroupBy.Order); o != nil {
			terms["order"] = o
		}
		agg := map[string]any{"terms": terms}
		if q.Aggregate != nil {
			agg["aggs"] = map[string]any{
				"aggregate": map[string]any{
					strings.ToLower(q.Aggregate.Func): map[string]any{"field": q.Aggregate.Over},
				},
			}
		}
		body["size"] = 0
		body["aggs"] = map[string]any{groupAgg: agg}
		return body
	}
	body["from"] = q.Offset
	body["size"] = q.Limit
	if s := sortClauses(q.Sort); len(s) > 0 {
		body["sort"] = s
	}
	return body
}

func (b *Backend) query(q batch.Query) map[string]any {
	var filter []any
	for _, f := range q.Filters {
		if len(f.Values) == 1 {
			filter = append(filter, map[string]any{"term": map[string]any{f.Field: f.Values[0]}})
			continue
		}
		filter = append(filter, map[string]any{"terms": map[string]any{f.Field: f.Values}})
	}
	for _, r := range q.Ranges {
		filter = append(filter, map[string]any{
			"range": map[string]any{r.Field: map[string]any{"gte": r.Lo, "lte": r.Hi}},
		})
	}

	boolq := map[string]any{}
	if len(filter) > 0 {
		boolq["filter"] = filter
	}
	if m := b.match(q.Mode, strings.TrimSpace(q.Term)); m != nil {
		boolq["must"] = m
	}
	if len(boolq) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{"bool": boolq}
}

func (b *Backend) match(mode batch.MatchMode, term string) map[string]any {
	if term == "" {
		return nil
	}
	switch mode {
	case batch.MatchAny:
		return map[string]any{"match": map[string]any{b.textField: map[string]any{"query": term, "operator": "or"}}}
	case batch.MatchPhrase:
		return map[string]any{"match_phrase": map[string]any{b.textField: term}}
	case batch.MatchBoolean:
		return map[string]any{"simple_query_string": map[string]any{
			"query":            term,
			"fields":           []string{b.textField},
			"default_operator": "and",
		}}
	case batch.MatchExtended:
		return map[string]any{"query_string": map[string]any{
			"query":            term,
			"default_field":    b.textField,
			"default_operator": "AND",
		}}
	default:
		return map[string]any{"match": map[string]any{b.textField: map[string]any{"query": term, "operator": "and"}}}
	}
}

// groupOrder maps "@count DESC" style expressions onto a terms order
func groupOrder(expr string) map[string]string {
	f := strings.Fields(expr)
	if len(f) == 0 {
		return nil
	}
	dir := "desc"
	if len(f) > 1 && strings.EqualFold(f[1], "asc") {
		dir = "asc"
	}
	switch strings.ToLower(f[0]) {
	case "@count":
		return map[string]string{"_count": dir}
	case "@group":
		return map[string]string{"_key": dir}
	default:
		return map[string]string{f[0]: dir}
	}
}

// sortClauses turns "created DESC, @weight DESC" into sort clauses
func sortClauses(expr string) []map[string]string {
	var out []map[string]string
	for _, part := range strings.Split(expr, ",") {
		f := strings.Fields(part)
		if len(f) == 0 {
			continue
		}
		dir := "asc"
		if len(f) > 1 && strings.EqualFold(f[1], "desc") {
			dir = "desc"
		}
		field := f[0]
		switch strings.ToLower(field) {
		case "@weight", "@relevance":
			field = "_score"
		case "@id":
			field = "_doc"
		}
		out = append(out, map[string]string{field: dir})
	}
	return out
}

type msearchResponse struct {
	Responses []response `json:"responses"`
}

type response struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]struct {
		Buckets []bucket `json:"buckets"`
	} `json:"aggregations"`
	Error *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

type bucket struct {
	Key       json.RawMessage `json:"key"`
	DocCount  int64           `json:"doc_count"`
	Aggregate *struct {
		Value *float64 `json:"value"`
	} `json:"aggregate"`
}

func decode(q batch.Query, r response) batch.Result {
	if r.Error != nil {
		msg := r.Error.Reason
		if msg == "" {
			msg = r.Error.Type
		}
		return batch.Result{Error: msg}
	}
	if q.GroupBy != nil {
		return decodeGroups(q, r)
	}

	res := batch.Result{Matches: make([]batch.Match, 0, len(r.Hits.Hits)), TotalFound: r.Hits.Total.Value}
	for _, h := range r.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			return batch.Result{Error: fmt.Sprintf("document id %q is not numeric", h.ID)}
		}
		res.Matches = append(res.Matches, batch.Match{ID: id})
	}
	return res
}

func decodeGroups(q batch.Query, r response) batch.Result {
	buckets := r.Aggregations[groupAgg].Buckets
	total := int64(len(buckets))
	if q.Offset < len(buckets) {
		buckets = buckets[q.Offset:]
	} else {
		buckets = nil
	}
	if len(buckets) > q.Limit {
		buckets = buckets[:q.Limit]
	}

	res := batch.Result{Matches: make([]batch.Match, 0, len(buckets)), TotalFound: total}
	for _, bk := range buckets {
		key, err := bucketKey(bk.Key)
		if err != nil {
			return batch.Result{Error: fmt.Sprintf("group %s: %v", q.GroupBy.Field, err)}
		}
		m := batch.Match{Attrs: map[string]int64{q.GroupBy.Field: key, "count": bk.DocCount}}
		if bk.Aggregate != nil && bk.Aggregate.Value != nil {
			m.Aggregate = *bk.Aggregate.Value
		}
		res.Matches = append(res.Matches, m)
	}
	return res
}

// bucketKey reads an integer key; keyword fields send it quoted, doubles with a fraction
func bucketKey(raw json.RawMessage) (int64, error) {
	s := strings.Trim(string(raw), `"`)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("key %s is not numeric", raw)
	}
	return int64(f), nil
}
