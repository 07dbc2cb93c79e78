package gmail

import "context"

// MailSearchClient is the narrow provider surface the search loop needs.
// Search runs one query to completion: it lists matches for the criteria
// (honoring Limit as a per-call results cap) and resolves each match's
// metadata before returning.
type MailSearchClient interface {
	Search(ctx context.Context, c SearchCriteria) ([]MessageSummary, error)
}

// DefaultBatchLimit caps how many results a single batch requests when
// the criteria carry no limit of their own. Matches the provider's
// maximum list page size.
const DefaultBatchLimit = 500

// Searcher runs a criteria record across a partitioned date range.
type Searcher struct {
	client MailSearchClient
}

// NewSearcher returns a Searcher backed by the given client.
func NewSearcher(client MailSearchClient) *Searcher {
	return &Searcher{client: client}
}

// Search partitions the criteria's date range with spec, runs one
// provider search per interval in order, and concatenates the results.
// Batches are strictly sequential. Every batch runs to completion before
// the overall limit truncates the concatenated sequence; the limit also
// soft-caps each individual batch call. Any batch failure aborts the
// whole search with no partial results.
//
// Criteria without both date bounds skip partitioning and run as a
// single search.
func (s *Searcher) Search(ctx context.Context, c SearchCriteria, spec BatchSpec) ([]MessageSummary, error) {
	if !c.HasRange() {
		results, err := s.runBatch(ctx, c)
		if err != nil {
			return nil, err
		}
		return truncate(results, c.Limit), nil
	}

	intervals, err := Partition(spec, c.Start, c.End)
	if err != nil {
		return nil, err
	}

	var all []MessageSummary
	for _, iv := range intervals {
		results, err := s.runBatch(ctx, c.WithRange(iv))
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}

	return truncate(all, c.Limit), nil
}

// runBatch executes one provider search with the per-call cap applied.
func (s *Searcher) runBatch(ctx context.Context, c SearchCriteria) ([]MessageSummary, error) {
	c.Limit = batchCap(c.Limit)

	results, err := s.client.Search(ctx, c)
	if err != nil {
		return nil, &RemoteSearchError{Query: BuildQuery(c), Err: err}
	}
	return results, nil
}

// batchCap returns the max-results parameter for one batch call: the
// overall limit or the provider default, whichever is smaller.
func batchCap(limit int) int {
	if limit > 0 && limit < DefaultBatchLimit {
		return limit
	}
	return DefaultBatchLimit
}

func truncate(results []MessageSummary, limit int) []MessageSummary {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
