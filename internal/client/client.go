package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/avstrong/hotelserver/internal/logger"
)

const (
	receiptMarker = "Booking Receipt"
	disconnected  = "Disconnected"
	readChunk     = 8192
)

var ErrUnreachable = errors.New("unable to connect to the server, either a wrong address was passed or the server is down")

type Config struct {
	L           *logger.Logger
	Addr        string
	ReceiptPath string
	// Quiet is how long the server must stay silent for a page to be complete.
	Quiet       time.Duration
	DialTimeout time.Duration
}

// Client relays pages from the server to out and keyboard lines from in
// back to the server.
type Client struct {
	conf Config
	in   *bufio.Scanner
	out  io.Writer
}

func New(conf Config, in io.Reader, out io.Writer) *Client {
	return &Client{conf: conf, in: bufio.NewScanner(in), out: out}
}

func (c *Client) Run(ctx context.Context) error {
	//nolint:exhaustruct
	dialer := net.Dialer{Timeout: c.conf.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", c.conf.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	return c.Serve(conn)
}

// Serve runs the page loop on an established connection until the server
// disconnects, the connection fails or the keyboard input ends.
func (c *Client) Serve(conn net.Conn) error {
	defer fmt.Fprintln(c.out, "Disconnected from the server")

	for {
		page, closed, err := c.readPage(conn)
		if err != nil {
			return err
		}

		if done := c.show(page); done || closed {
			return nil
		}

		if !c.in.Scan() {
			return c.in.Err()
		}

		if _, err := fmt.Fprintf(conn, "%s\n", c.in.Text()); err != nil {
			return fmt.Errorf("send line: %w", err)
		}
	}
}

// readPage blocks for the first chunk and then keeps reading until the
// server has been quiet for conf.Quiet.
func (c *Client) readPage(conn net.Conn) (string, bool, error) {
	var page strings.Builder

	buf := make([]byte, readChunk)

	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return "", false, fmt.Errorf("reset read deadline: %w", err)
	}

	for {
		n, err := conn.Read(buf)
		page.Write(buf[:n])

		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			return page.String(), false, nil
		case errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed):
			return page.String(), true, nil
		default:
			return page.String(), true, fmt.Errorf("read page: %w", err)
		}

		if err := conn.SetReadDeadline(time.Now().Add(c.conf.Quiet)); err != nil {
			return "", false, fmt.Errorf("set read deadline: %w", err)
		}
	}
}

// show prints the page and reports whether the server said goodbye.
func (c *Client) show(page string) bool {
	body := strings.TrimSpace(page)

	if strings.EqualFold(body, disconnected) {
		return true
	}

	if rest, ok := strings.CutSuffix(body, "\n"+disconnected); ok {
		fmt.Fprintln(c.out, rest)

		return true
	}

	if idx := strings.Index(page, receiptMarker); idx > 0 {
		fmt.Fprintln(c.out, page[:idx])
		c.saveReceipt(page[idx:])

		return false
	}

	fmt.Fprintln(c.out, page)

	return false
}

func (c *Client) saveReceipt(receipt string) {
	if err := atomic.WriteFile(c.conf.ReceiptPath, strings.NewReader(receipt)); err != nil {
		c.conf.L.LogErrorf("Could not save booking receipt: %v", err.Error())
		fmt.Fprintln(c.out, "The booking receipt could not be saved.")

		return
	}

	fmt.Fprintf(c.out, "The booking receipt has been downloaded to %s and saved as %q\n",
		filepath.Dir(c.conf.ReceiptPath), filepath.Base(c.conf.ReceiptPath))
}
