// Package speedport reads DSL line status from a Telekom Speedport router.
//
// The router publishes its status page data unauthenticated at
// /data/Status.json as a flat JSON array of items:
//
//	[{"vartype":"value","varid":"dsl_downstream","varvalue":"50000"}, ...]
//
// Client.Fetch performs one GET against that endpoint and normalises the
// handful of items this project cares about into a Snapshot. Parse holds
// the pure transformation and can be used on its own.
//
// # Error Handling
//
// Every failure to obtain a usable item list (transport error, timeout,
// non-2xx status, malformed or non-array JSON) wraps ErrFetchFailed.
// Individual values never cause an error: unparsable numbers become 0 and
// anything that is not exactly "online" is false.
package speedport
