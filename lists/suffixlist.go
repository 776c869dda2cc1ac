package lists

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tldsplit/tldsplit/config"
	"github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/extract"
	"github.com/tldsplit/tldsplit/log"
	"github.com/tldsplit/tldsplit/psl"
	"github.com/tldsplit/tldsplit/trie"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

const cacheFileMode = 0o600

// SuffixList loads rule text from its source, compiles it and publishes
// the result to the extractor.
//
// A refresh builds the replacement trie completely before swapping it
// in; on any failure the previously published trie stays active. The
// raw text of the last successful load is kept in a cache file (if
// configured) and serves as startup fallback.
type SuffixList struct {
	cfg       config.SuffixListConfig
	opener    SourceOpener
	extractor *extract.Extractor

	closeOnce sync.Once
	closeCh   chan struct{}
}

func logger() *logrus.Entry {
	return log.PrefixedLog("suffix_list")
}

// NewSuffixList performs the initial load and starts the periodic
// refresh. Without a loadable source or cache file it fails, so the
// caller never serves from an unpopulated trie.
func NewSuffixList(cfg config.SuffixListConfig, downloader FileDownloader,
	extractor *extract.Extractor,
) (*SuffixList, error) {
	opener, err := NewSourceOpener(cfg.Source, downloader)
	if err != nil {
		return nil, err
	}

	s := &SuffixList{
		cfg:       cfg,
		opener:    opener,
		extractor: extractor,
		closeCh:   make(chan struct{}),
	}

	if err := s.Refresh(); err != nil {
		logger().WithField("source", opener.String()).
			Warnf("initial load failed, falling back to cache file: %s", err)

		if cacheErr := s.loadCacheFile(); cacheErr != nil {
			return nil, multierror.Append(err, cacheErr)
		}
	}

	if cfg.RefreshPeriod.IsAboveZero() {
		go s.periodicUpdate()
	}

	return s, nil
}

// Refresh loads the source, compiles it and publishes the new trie.
// The previously published trie stays active if anything fails.
func (s *SuffixList) Refresh() error {
	reader, err := s.opener.Open()
	if err != nil {
		return fmt.Errorf("can't open suffix list source: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("can't read suffix list source: %w", err)
	}

	if err := s.publish(bytes.NewReader(raw), s.opener.String()); err != nil {
		return err
	}

	if s.cfg.CacheFile != "" {
		if err := os.WriteFile(s.cfg.CacheFile, raw, cacheFileMode); err != nil {
			logger().Warnf("can't write cache file: %s", err)
		}
	}

	return nil
}

// publish parses and compiles rule text and swaps the result in.
func (s *SuffixList) publish(reader io.Reader, source string) error {
	rules, err := psl.Parse(context.Background(), reader)
	if err != nil {
		return fmt.Errorf("can't parse suffix list: %w", err)
	}

	compiled, err := trie.Build(rules)
	if err != nil {
		return fmt.Errorf("can't compile suffix list: %w", err)
	}

	s.extractor.Swap(compiled)

	evt.Bus().Publish(evt.SuffixListRefreshed, source, compiled.Size())

	logger().WithFields(logrus.Fields{
		"source":      source,
		"total_count": compiled.Size(),
	}).Info("suffix list import finished")

	return nil
}

func (s *SuffixList) loadCacheFile() error {
	if s.cfg.CacheFile == "" {
		return errors.New("no cache file configured")
	}

	f, err := os.Open(s.cfg.CacheFile)
	if err != nil {
		return fmt.Errorf("can't open cache file: %w", err)
	}
	defer f.Close()

	return s.publish(f, fmt.Sprintf("file://%s", s.cfg.CacheFile))
}

// periodicUpdate triggers periodic refresh of the rule set
func (s *SuffixList) periodicUpdate() {
	period := s.cfg.RefreshPeriod.ToDuration()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger().Infof("refreshing suffix list, next refresh in %s", s.cfg.RefreshPeriod)

			if err := s.Refresh(); err != nil {
				logger().Warnf("refresh failed, keeping rules from last successful import: %s", err)
			}

		case <-s.closeCh:
			return
		}
	}
}

// Close stops the periodic refresh.
func (s *SuffixList) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}
