package api

import (
	"encoding/json"
	"net/http"

	"github.com/tldsplit/tldsplit/extract"
	"github.com/tldsplit/tldsplit/log"
	"github.com/tldsplit/tldsplit/util"

	"github.com/go-chi/chi/v5"
)

const (
	contentTypeHeader = "content-type"
	jsonContentType   = "application/json"
)

// ListRefresher interface to control the list refresh
type ListRefresher interface {
	Refresh() error
}

// ExtractEndpoint endpoint for extract queries
type ExtractEndpoint struct {
	extractor *extract.Extractor
}

// ListRefreshEndpoint endpoint for list refresh
type ListRefreshEndpoint struct {
	refresher ListRefresher
}

// RegisterEndpoints registers the HTTP endpoints on the router
func RegisterEndpoints(router chi.Router, extractor *extract.Extractor, refresher ListRefresher) {
	e := &ExtractEndpoint{extractor}
	router.Get(PathExtract, e.apiExtract)

	l := &ListRefreshEndpoint{refresher}
	router.Post(PathListRefresh, l.apiListRefresh)
}

// apiExtract splits the hostname from the `host` query parameter
func (e *ExtractEndpoint) apiExtract(rw http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("host")

	host := util.Normalize(raw)
	if host == "" || (!util.IsIP(host) && !util.ValidDomainName(host)) {
		http.Error(rw, "invalid host parameter", http.StatusBadRequest)

		return
	}

	res := e.extractor.Extract(host)

	result := ExtractResult{
		Hostname:         host,
		Subdomain:        res.Subdomain,
		Domain:           res.Domain,
		Suffix:           res.Suffix,
		RegisteredDomain: res.RegisteredDomain(),
		Listed:           res.Match.Listed,
		Wildcard:         res.Match.Wildcard,
		Exception:        res.Match.Exception,
	}

	if res.Match.Listed {
		result.Source = res.Match.Source.String()
	}

	rw.Header().Set(contentTypeHeader, jsonContentType)

	if err := json.NewEncoder(rw).Encode(result); err != nil {
		log.Log().Error("can't write response: ", log.EscapeInput(err.Error()))
	}
}

// apiListRefresh triggers the refresh of the suffix list
func (l *ListRefreshEndpoint) apiListRefresh(rw http.ResponseWriter, _ *http.Request) {
	if err := l.refresher.Refresh(); err != nil {
		log.Log().Error("refresh failed: ", log.EscapeInput(err.Error()))
		http.Error(rw, "refresh failed", http.StatusInternalServerError)

		return
	}

	rw.Header().Set(contentTypeHeader, jsonContentType)

	_, err := rw.Write([]byte("{}"))
	if err != nil {
		log.Log().Error("can't send an empty answer: ", log.EscapeInput(err.Error()))
	}
}
