// Package httputil fetches remote datasets over HTTP.
//
// [Client] wraps an [http.Client] with a [cache.Cache] and retries:
//
//   - Responses are cached under [cache.Keyer.HTTPKey] ("http:dataset:<url>")
//     for [cache.TTLHTTP].
//   - Network errors and 5xx responses are retried with exponential backoff
//     (see [cache.RetryPolicy]).
//   - 404 maps to [cache.ErrNotFound]; other non-2xx statuses fail without
//     retry.
//
// Usage:
//
//	c := httputil.NewClient(fileCache, map[string]string{"Accept": "text/csv"})
//	body, err := c.Fetch(ctx, "https://example.com/share.csv", false)
//
// Bodies larger than [MaxBodySize] are rejected.
package httputil
