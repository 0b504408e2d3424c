// Standalone mock application for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver 20s
//
// Then in another terminal:
//
//	go run ./cmd/waitforapp -a http://localhost:9999/health -v -r 2 -t 60
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

func main() {
	warmup := 15 * time.Second
	if len(os.Args) > 1 {
		d, err := time.ParseDuration(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid warmup duration %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		warmup = d
	}

	fmt.Println("Mock application starting on :9999")
	fmt.Printf("/health answers 503 for %s, then 200\n", warmup)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	readyAt := time.Now().Add(warmup)
	var requests atomic.Int64

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if time.Now().Before(readyAt) {
			slog.Info("request", "n", n, "status", http.StatusServiceUnavailable)
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		slog.Info("request", "n", n, "status", http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
