package speedport

import "errors"

// ErrFetchFailed indicates the router status could not be retrieved or decoded.
//
//	if errors.Is(err, speedport.ErrFetchFailed) {
//	    // fall back to an empty snapshot
//	}
var ErrFetchFailed = errors.New("speedport: fetch failed")
