package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avstrong/hotelserver/internal/client"
	"github.com/avstrong/hotelserver/internal/logger"
)

func defaultReceiptPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "booking.txt"
	}

	return filepath.Join(home, "booking.txt")
}

func main() {
	addr := flag.String("addr", "127.0.0.1:2807", "hotel server address")
	receipt := flag.String("receipt", defaultReceiptPath(), "where to save booking receipts")
	quiet := flag.Duration("quiet", 100*time.Millisecond, "server silence that ends a page") //nolint:gomnd
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	l := logger.New(log.New(os.Stderr, "", log.LstdFlags)).WithLevel(logger.LevelWarn)

	c := client.New(client.Config{
		L:           l,
		Addr:        *addr,
		ReceiptPath: *receipt,
		Quiet:       *quiet,
		DialTimeout: 5 * time.Second, //nolint:gomnd
	}, os.Stdin, os.Stdout)

	if err := c.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)

		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
