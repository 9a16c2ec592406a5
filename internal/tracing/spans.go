package tracing

// Span attribute keys.
const (
	// Profile attributes
	AttrProfileGUID  = "profile.guid"
	AttrProfileField = "profile.field"
	AttrFieldCount   = "profile.field_count"
	AttrResultCount  = "profile.result_count"

	// Choice set attributes
	AttrSetName  = "choices.set"
	AttrLookupBy = "choices.lookup_by"
	AttrRaw      = "choices.raw"
	AttrValue    = "choices.value"

	// Cache attributes
	AttrCacheHit = "cache.hit"

	// Error attributes
	AttrErrorType = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixService = "service.profile."
	SpanPrefixRepo    = "repo.profile."
)

// Event names for span events.
const (
	EventValueResolved = "choices.resolved"
	EventValidated     = "profile.validated"
	EventCacheLoaded   = "cache.loaded"
	EventCacheEvicted  = "cache.evicted"
)
