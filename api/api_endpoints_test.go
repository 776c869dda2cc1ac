package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/tldsplit/tldsplit/extract"
	"github.com/tldsplit/tldsplit/psl"
	"github.com/tldsplit/tldsplit/trie"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type refresherMock struct {
	calls int
	err   error
}

func (r *refresherMock) Refresh() error {
	r.calls++

	return r.err
}

func newTestExtractor(ruleLines string) *extract.Extractor {
	rules, err := psl.Parse(context.Background(), strings.NewReader(ruleLines))
	Expect(err).Should(Succeed())

	compiled, err := trie.Build(rules)
	Expect(err).Should(Succeed())

	return extract.New(compiled)
}

var _ = Describe("API endpoints", func() {
	var (
		router    chi.Router
		refresher *refresherMock
	)

	BeforeEach(func() {
		router = chi.NewRouter()
		refresher = &refresherMock{}

		extractor := newTestExtractor("com\nuk\nco.uk")
		RegisterEndpoints(router, extractor, refresher)
	})

	Describe("extract endpoint", func() {
		get := func(host string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, PathExtract+"?host="+host, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			return rec
		}

		When("a listed hostname is queried", func() {
			It("should return the split result", func() {
				rec := get("www.example.co.uk")

				Expect(rec).Should(HaveHTTPStatus(http.StatusOK))
				Expect(rec.Header().Get(contentTypeHeader)).Should(Equal(jsonContentType))

				var res ExtractResult
				Expect(json.NewDecoder(rec.Body).Decode(&res)).Should(Succeed())
				Expect(res.Hostname).Should(Equal("www.example.co.uk"))
				Expect(res.Subdomain).Should(Equal("www"))
				Expect(res.Domain).Should(Equal("example"))
				Expect(res.Suffix).Should(Equal("co.uk"))
				Expect(res.RegisteredDomain).Should(Equal("example.co.uk"))
				Expect(res.Listed).Should(BeTrue())
				Expect(res.Source).Should(Equal("icann"))
			})
		})

		When("an unlisted hostname is queried", func() {
			It("should fall back to the last label as suffix", func() {
				rec := get("example.test")

				Expect(rec).Should(HaveHTTPStatus(http.StatusOK))

				var res ExtractResult
				Expect(json.NewDecoder(rec.Body).Decode(&res)).Should(Succeed())
				Expect(res.Suffix).Should(Equal("test"))
				Expect(res.Domain).Should(Equal("example"))
				Expect(res.Listed).Should(BeFalse())
				Expect(res.Source).Should(BeEmpty())
			})
		})

		When("an IP address is queried", func() {
			It("should return it as bare domain", func() {
				rec := get("192.168.178.1")

				Expect(rec).Should(HaveHTTPStatus(http.StatusOK))

				var res ExtractResult
				Expect(json.NewDecoder(rec.Body).Decode(&res)).Should(Succeed())
				Expect(res.Domain).Should(Equal("192.168.178.1"))
				Expect(res.Suffix).Should(BeEmpty())
				Expect(res.RegisteredDomain).Should(BeEmpty())
			})
		})

		When("the host parameter is missing", func() {
			It("should return bad request", func() {
				rec := get("")

				Expect(rec).Should(HaveHTTPStatus(http.StatusBadRequest))
			})
		})

		When("the host parameter is not a valid hostname", func() {
			It("should return bad request", func() {
				rec := get("..")

				Expect(rec).Should(HaveHTTPStatus(http.StatusBadRequest))
			})
		})
	})

	Describe("list refresh endpoint", func() {
		post := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, PathListRefresh, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			return rec
		}

		When("refresh succeeds", func() {
			It("should answer with an empty object", func() {
				rec := post()

				Expect(rec).Should(HaveHTTPStatus(http.StatusOK))
				Expect(rec.Body.String()).Should(Equal("{}"))
				Expect(refresher.calls).Should(Equal(1))
			})
		})

		When("refresh fails", func() {
			BeforeEach(func() {
				refresher.err = errors.New("source unreachable")
			})

			It("should answer with internal server error", func() {
				rec := post()

				Expect(rec).Should(HaveHTTPStatus(http.StatusInternalServerError))
				Expect(refresher.calls).Should(Equal(1))
			})
		})

		When("wrong method is used", func() {
			It("should answer with method not allowed", func() {
				req := httptest.NewRequest(http.MethodGet, PathListRefresh, nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec).Should(HaveHTTPStatus(http.StatusMethodNotAllowed))
			})
		})
	})
})
