// Package discogs implements a minimal Discogs API client covering the
// endpoints the lookup pipeline needs: release and master fetches plus
// barcode search. The client handles token auth, rate limiting and 429
// retry backoff; callers receive (nil, nil) for not-found resources.
package discogs
