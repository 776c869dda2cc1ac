// Package helpertest contains helpers shared between package tests.
package helpertest

import (
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/tldsplit/tldsplit/log"

	"github.com/onsi/ginkgo/v2"
)

// TempFile creates temp file with passed data
func TempFile(data string) *os.File {
	f, err := os.CreateTemp("", "tldsplit")
	if err != nil {
		log.Log().Fatal(err)
	}

	_, err = f.WriteString(data)
	if err != nil {
		log.Log().Fatal(err)
	}

	ginkgo.DeferCleanup(func() {
		_ = os.Remove(f.Name())
	})

	return f
}

// TestServer creates temp http server with passed data
func TestServer(data string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		_, err := rw.Write([]byte(data))
		if err != nil {
			log.Log().Fatal("can't write to buffer:", err)
		}
	}))

	ginkgo.DeferCleanup(srv.Close)

	return srv
}
