package lists

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/tldsplit/tldsplit/config"
	. "github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/extract"
	. "github.com/tldsplit/tldsplit/helpertest"
	"github.com/tldsplit/tldsplit/trie"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testRules = `// ===BEGIN ICANN DOMAINS===
uk
co.uk
// ===END ICANN DOMAINS===
`

func newTestExtractor() *extract.Extractor {
	empty, err := trie.Build(nil)
	Expect(err).Should(Succeed())

	return extract.New(empty)
}

var _ = Describe("SuffixList", func() {
	var (
		sut       *SuffixList
		extractor *extract.Extractor
		slCfg     config.SuffixListConfig
		err       error

		refreshedEvtChannel chan string
	)

	BeforeEach(func() {
		extractor = newTestExtractor()

		slCfg = config.SuffixListConfig{
			Downloads: config.DownloadsConfig{
				Timeout:  config.Duration(time.Second),
				Attempts: 1,
				Cooldown: config.Duration(time.Millisecond),
			},
		}

		refreshedEvtChannel = make(chan string, 5)
		fn := func(source string, cnt int) {
			refreshedEvtChannel <- source
		}
		Expect(Bus().Subscribe(SuffixListRefreshed, fn)).Should(Succeed())
		DeferCleanup(func() {
			Expect(Bus().Unsubscribe(SuffixListRefreshed, fn)).Should(Succeed())
		})
	})

	AfterEach(func() {
		if sut != nil {
			sut.Close()
		}
	})

	When("the source is inline text", func() {
		BeforeEach(func() {
			slCfg.Source = config.TextBytesSource("com", "co.uk")

			sut, err = NewSuffixList(slCfg, nil, extractor)
		})

		It("should compile and publish the rules", func() {
			Expect(err).Should(Succeed())
			Expect(extractor.RuleCount()).Should(Equal(2))
			Expect(extractor.Extract("example.co.uk").Suffix).Should(Equal("co.uk"))
			Expect(refreshedEvtChannel).Should(HaveLen(1))
		})
	})

	When("the source is a file", func() {
		BeforeEach(func() {
			f := TempFile(testRules)
			slCfg.Source = config.NewBytesSource(f.Name())

			sut, err = NewSuffixList(slCfg, nil, extractor)
		})

		It("should compile and publish the rules", func() {
			Expect(err).Should(Succeed())
			Expect(extractor.RuleCount()).Should(Equal(2))
		})
	})

	When("the source is an HTTP server", func() {
		BeforeEach(func() {
			server := TestServer(testRules)
			slCfg.Source = config.NewBytesSource(server.URL)

			sut, err = NewSuffixList(slCfg, NewDownloader(slCfg.Downloads, nil), extractor)
		})

		It("should download, compile and publish the rules", func() {
			Expect(err).Should(Succeed())
			Expect(extractor.RuleCount()).Should(Equal(2))
		})
	})

	When("a cache file is configured", func() {
		var cacheFile string

		BeforeEach(func() {
			cacheFile = filepath.Join(GinkgoT().TempDir(), "rules.dat")
			slCfg.CacheFile = cacheFile
			slCfg.Source = config.TextBytesSource("com")

			sut, err = NewSuffixList(slCfg, nil, extractor)
		})

		It("should keep a copy of the raw list", func() {
			Expect(err).Should(Succeed())

			data, readErr := os.ReadFile(cacheFile)
			Expect(readErr).Should(Succeed())
			Expect(string(data)).Should(Equal("com\n"))
		})
	})

	When("the source is unreachable and a cache file exists", func() {
		BeforeEach(func() {
			cacheFile := filepath.Join(GinkgoT().TempDir(), "rules.dat")
			Expect(os.WriteFile(cacheFile, []byte(testRules), 0o600)).Should(Succeed())

			slCfg.Source = config.NewBytesSource("http://127.0.0.1:0/list.dat")
			slCfg.CacheFile = cacheFile

			sut, err = NewSuffixList(slCfg, NewDownloader(slCfg.Downloads, nil), extractor)
		})

		It("should fall back to the cache file", func() {
			Expect(err).Should(Succeed())
			Expect(extractor.RuleCount()).Should(Equal(2))
		})
	})

	When("the source is unreachable and no cache file exists", func() {
		BeforeEach(func() {
			slCfg.Source = config.NewBytesSource("http://127.0.0.1:0/list.dat")

			sut, err = NewSuffixList(slCfg, NewDownloader(slCfg.Downloads, nil), extractor)
		})

		It("should fail", func() {
			Expect(err).ShouldNot(Succeed())
			Expect(sut).Should(BeNil())

			sut = nil
		})
	})

	When("a refresh fails", func() {
		var (
			requests uint64
			server   *httptest.Server
		)

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				if atomic.AddUint64(&requests, 1) == 1 {
					_, _ = rw.Write([]byte(testRules))

					return
				}

				rw.WriteHeader(http.StatusInternalServerError)
			}))
			DeferCleanup(server.Close)

			slCfg.Source = config.NewBytesSource(server.URL)

			sut, err = NewSuffixList(slCfg, NewDownloader(slCfg.Downloads, nil), extractor)
			Expect(err).Should(Succeed())
		})

		It("should keep the previously published trie", func() {
			Expect(sut.Refresh()).ShouldNot(Succeed())

			Expect(extractor.RuleCount()).Should(Equal(2))
			Expect(extractor.Extract("example.co.uk").Suffix).Should(Equal("co.uk"))
		})
	})

	When("the refreshed rule set is corrupt", func() {
		BeforeEach(func() {
			slCfg.Source = config.TextBytesSource("foo.ck", "!foo.ck")

			sut, err = NewSuffixList(slCfg, nil, extractor)
		})

		It("should fail instead of publishing", func() {
			Expect(err).ShouldNot(Succeed())
			Expect(sut).Should(BeNil())
			Expect(extractor.RuleCount()).Should(BeZero())

			sut = nil
		})
	})
})
