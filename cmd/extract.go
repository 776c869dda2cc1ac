package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tldsplit/tldsplit/api"
	"github.com/tldsplit/tldsplit/extract"
	"github.com/tldsplit/tldsplit/lists"
	"github.com/tldsplit/tldsplit/trie"
	"github.com/tldsplit/tldsplit/util"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	jsonOutput      bool
	privateSuffixes bool
)

func newExtractCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "extract HOST...",
		Args:  cobra.MinimumNArgs(1),
		Short: "split the given URLs or hostnames",
		Run:   extractHosts,
	}

	c.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	c.Flags().BoolVar(&privateSuffixes, "private", false, "include private suffix rules")

	return c
}

func extractHosts(_ *cobra.Command, args []string) {
	slCfg := cfg.SuffixList
	slCfg.RefreshPeriod = 0 // one-shot run

	if privateSuffixes {
		slCfg.IncludePrivate = true
	}

	extractor := newExtractor(slCfg.IncludePrivate, slCfg.CacheSize)

	downloader := lists.NewDownloader(slCfg.Downloads, nil)

	suffixList, err := lists.NewSuffixList(slCfg, downloader, extractor)
	util.FatalOnError("can't load suffix list: ", err)

	defer suffixList.Close()

	for _, arg := range args {
		printResult(arg, extractor.Extract(arg))
	}
}

func newExtractor(includePrivate bool, cacheSize int) *extract.Extractor {
	// start from an empty trie, the suffix list swaps in the real one
	empty, _ := trie.Build(nil)

	return extract.New(empty,
		extract.WithPrivateSuffixes(includePrivate),
		extract.WithCacheSize(cacheSize))
}

func printResult(raw string, res extract.Result) {
	if !jsonOutput {
		fmt.Printf("%s: subdomain=%q domain=%q suffix=%q\n", raw, res.Subdomain, res.Domain, res.Suffix)

		return
	}

	result := api.ExtractResult{
		Hostname:         res.Hostname(),
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

	enc := json.NewEncoder(os.Stdout)
	util.LogOnError("can't encode result: ", enc.Encode(result))
}
