package cache

import "fmt"

// Key namespaces in the durable store. Everything under one of these prefixes
// is a cache record owned by this engine; the store may also hold unrelated
// application keys the sweeper must leave alone.
const (
	PrefixCalendar = "cal:"
	PrefixHoliday  = "holiday-cache:"
	PrefixImage    = "img-cache:"

	// VersionMarkerKey stores the deployed app release. It lives under the
	// calendar prefix but is not a cache record and is never swept.
	VersionMarkerKey = "cal:ver"

	// ImageCacheVersion is embedded in every image-cache key. Bumping it is
	// the supported way to invalidate the whole family after a payload-shape
	// change; old-version entries become unreachable and are reclaimed by
	// the sweeper as they individually expire.
	ImageCacheVersion = "v1"
)

// Prefixes lists every namespace the sweeper recognizes.
var Prefixes = []string{PrefixCalendar, PrefixHoliday, PrefixImage}

// ImageKey builds the durable key for a signed-URL entry. The same bucket and
// path always produce the same key within one ImageCacheVersion.
func ImageKey(bucket, path string) string {
	return fmt.Sprintf("%s%s:%s:%s", PrefixImage, ImageCacheVersion, bucket, path)
}

// HolidayKey builds the durable key for one month of holiday data,
// zero-padded so lexical and chronological order agree.
func HolidayKey(year, month int) string {
	return fmt.Sprintf("%s%04d-%02d", PrefixHoliday, year, month)
}
