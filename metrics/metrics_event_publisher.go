package metrics

import (
	"fmt"
	"time"

	"github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/util"

	"github.com/prometheus/client_golang/prometheus"
)

// registerEventListeners registers all metric handlers by the event bus
func registerEventListeners() {
	registerApplicationEventListeners()
	registerSuffixListEventListeners()
	registerExtractEventListeners()
}

func registerApplicationEventListeners() {
	v := versionNumberGauge()
	RegisterMetric(v)

	subscribe(evt.ApplicationStarted, func(version, buildTime string) {
		v.WithLabelValues(version, buildTime).Set(1)
	})
}

func versionNumberGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tldsplit_build_info",
			Help: "Version number and build info",
		}, []string{"version", "build_time"},
	)
}

func registerSuffixListEventListeners() {
	ruleCount := ruleCountGauge()
	lastRefresh := lastRefreshGauge()
	failedDownloadCount := failedDownloadCounter()

	RegisterMetric(ruleCount)
	RegisterMetric(lastRefresh)
	RegisterMetric(failedDownloadCount)

	subscribe(evt.SuffixListRefreshed, func(source string, cnt int) {
		lastRefresh.Set(float64(time.Now().Unix()))
		ruleCount.WithLabelValues(source).Set(float64(cnt))
	})

	subscribe(evt.SuffixListDownloadFailed, func(_ string) {
		failedDownloadCount.Inc()
	})
}

func ruleCountGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tldsplit_suffix_rules",
			Help: "Number of compiled suffix rules",
		}, []string{"source"},
	)
}

func lastRefreshGauge() prometheus.Gauge {
	return prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tldsplit_last_suffix_list_refresh",
			Help: "Timestamp of last suffix list refresh",
		},
	)
}

func failedDownloadCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tldsplit_failed_download_count",
		Help: "Failed download counter",
	})
}

func registerExtractEventListeners() {
	hitCount := cacheHitCounter()
	missCount := cacheMissCounter()

	RegisterMetric(hitCount)
	RegisterMetric(missCount)

	subscribe(evt.ExtractResultCacheHit, func(_ string) {
		hitCount.Inc()
	})

	subscribe(evt.ExtractResultCacheMiss, func(_ string) {
		missCount.Inc()
	})
}

func cacheHitCounter() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tldsplit_extract_cache_hit_count",
			Help: "Extract result cache hit counter",
		},
	)
}

func cacheMissCounter() prometheus.Counter {
	return prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tldsplit_extract_cache_miss_count",
			Help: "Extract result cache miss counter",
		},
	)
}

func subscribe(topic string, fn interface{}) {
	util.FatalOnError(fmt.Sprintf("can't subscribe topic '%s'", topic), evt.Bus().Subscribe(topic, fn))
}
