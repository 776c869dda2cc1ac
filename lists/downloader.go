// Package lists loads the raw suffix rule text from its configured
// source and keeps the compiled trie fresh.
package lists

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/tldsplit/tldsplit/config"
	"github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/log"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
)

// TransientError represents a temporary error like timeout, network errors...
type TransientError struct {
	inner error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("temporary error occurred: %v", e.inner)
}

func (e *TransientError) Unwrap() error {
	return e.inner
}

// FileDownloader is able to download some text file
type FileDownloader interface {
	DownloadFile(link string) (io.ReadCloser, error)
}

// HTTPDownloader downloads files via HTTP protocol
type HTTPDownloader struct {
	cfg           config.DownloadsConfig
	httpTransport *http.Transport
}

func NewDownloader(cfg config.DownloadsConfig, transport *http.Transport) *HTTPDownloader {
	if transport == nil {
		transport = &http.Transport{}
	}

	return &HTTPDownloader{
		cfg:           cfg,
		httpTransport: transport,
	}
}

func (d *HTTPDownloader) logger() *logrus.Entry {
	return log.PrefixedLog("downloader")
}

func (d *HTTPDownloader) DownloadFile(link string) (io.ReadCloser, error) {
	client := http.Client{
		Timeout:   d.cfg.Timeout.ToDuration(),
		Transport: d.httpTransport,
	}

	d.logger().WithField("link", link).Info("starting download")

	var body io.ReadCloser

	err := retry.Do(
		func() error {
			resp, httpErr := client.Get(link)
			if httpErr == nil {
				if resp.StatusCode == http.StatusOK {
					body = resp.Body

					return nil
				}

				_ = resp.Body.Close()

				return fmt.Errorf("got status code %d", resp.StatusCode)
			}

			var netErr net.Error
			if errors.As(httpErr, &netErr) && netErr.Timeout() {
				return &TransientError{inner: netErr}
			}

			return httpErr
		},
		retry.Attempts(d.cfg.Attempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(d.cfg.Cooldown.ToDuration()),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			var transientErr *TransientError

			var dnsErr *net.DNSError

			logger := d.logger().WithField("link", link).WithField("attempt",
				fmt.Sprintf("%d/%d", n+1, d.cfg.Attempts))

			switch {
			case errors.As(err, &transientErr):
				logger.Warnf("Temporary network err / Timeout occurred: %s", transientErr)
			case errors.As(err, &dnsErr):
				logger.Warnf("Name resolution err: %s", dnsErr.Err)
			default:
				logger.Warnf("Can't download file: %s", err)
			}

			evt.Bus().Publish(evt.SuffixListDownloadFailed, link)
		}))

	return body, err
}
