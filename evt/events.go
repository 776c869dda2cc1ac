package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// ApplicationStarted fires on application start. Parameter: version, build time
	ApplicationStarted = "application:started"

	// SuffixListRefreshed fires after a rule set was compiled and published. Parameter: source, rule count
	SuffixListRefreshed = "suffixlist:refreshed"

	// SuffixListDownloadFailed fires if a download attempt of the suffix list fails. Parameter: link
	SuffixListDownloadFailed = "suffixlist:downloadFailed"

	// ExtractResultCacheHit fires if an extract result was found in the cache. Parameter: hostname
	ExtractResultCacheHit = "extract:cacheHit"

	// ExtractResultCacheMiss fires if an extract result was not found in the cache. Parameter: hostname
	ExtractResultCacheMiss = "extract:cacheMiss"
)

// nolint
var evtBus = EventBus.New()

func Bus() EventBus.Bus {
	return evtBus
}
