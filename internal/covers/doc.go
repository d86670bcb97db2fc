// Package covers resolves cover-image URLs for books through an ordered
// fallback chain: a durable local cache, deterministic construction from a
// valid ISBN, then a remote title/author search against the metadata provider.
//
// Resolution is best effort. Every failure mode yields an empty URL; nothing
// propagates to callers. Definitive failures (no images for a known-good
// response) are memoized as negative entries so the provider is not asked
// again; transient failures (timeout, network, rate limiting) are not cached
// and the next call retries. Concurrent resolutions for the same key are
// coalesced so the provider sees at most one in-flight request per key.
package covers
