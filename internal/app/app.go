package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/config"
	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/idgen/simple"
	"github.com/avstrong/hotelserver/internal/logger"
	"github.com/avstrong/hotelserver/internal/migration"
	"github.com/avstrong/hotelserver/internal/queue"
	"github.com/avstrong/hotelserver/internal/storage/file"
	"github.com/avstrong/hotelserver/internal/storage/memory"
	"github.com/avstrong/hotelserver/internal/transport/tcp"
	"github.com/avstrong/hotelserver/internal/transport/web"
)

const adminReadHeaderTimeout = 20 * time.Second

type storage interface {
	Load(ctx context.Context) ([]hotel.Record, error)
	Save(ctx context.Context, hotels []hotel.Record) error
}

func Run(l *logger.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	return run(ctx, l, conf)
}

func newStorage(l *logger.Logger, conf *config.Config) storage {
	if conf.Storage == config.StorageMemory {
		l.LogWarnf("Using in-memory storage, bookings are lost on exit")

		return memory.New(memory.Config{L: l.WithPrefix("memory")})
	}

	l.LogInfo("Using data file %s", conf.DataFile)

	return file.New(file.Config{
		L:                l.WithPrefix("file"),
		Path:             conf.DataFile,
		PersistCustomers: conf.PersistCustomers,
	})
}

// closeStorage releases stores that hold resources beyond the data file.
func closeStorage(l *logger.Logger, store storage) {
	closer, ok := store.(io.Closer)
	if !ok {
		return
	}

	if err := closer.Close(); err != nil {
		l.LogErrorf("Failed to close storage: %v", err.Error())
	}
}

func run(ctx context.Context, l *logger.Logger, conf *config.Config) error {
	store := newStorage(l, conf)
	defer closeStorage(l, store)

	registry, err := booking.Open(ctx, l, store, migration.Seed)
	if err != nil {
		return fmt.Errorf("open hotel registry: %w", err)
	}

	publisher := queue.New(conf.EventsURL, conf.EventsQueue, l.WithPrefix("events"))
	if publisher.Enabled() {
		l.LogInfo("Publishing booking events to queue %s", conf.EventsQueue)
	}

	bookManager := booking.New(l, registry, store, publisher)

	tcpSrv, err := tcp.New(tcp.Conf{
		L:              l,
		Host:           conf.Host,
		Port:           conf.Port,
		MaxConnections: conf.MaxConnections,
	}, bookManager, simple.New("conn"))
	if err != nil {
		return fmt.Errorf("init tcp server: %w", err)
	}

	var adminHost, adminPort string

	if conf.AdminAddr != "" {
		if adminHost, adminPort, err = net.SplitHostPort(conf.AdminAddr); err != nil {
			return fmt.Errorf("parse admin address: %w", err)
		}
	}

	if err := tcpSrv.Listen(); err != nil {
		return fmt.Errorf("start tcp server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := tcpSrv.Serve(gctx); !errors.Is(err, tcp.ErrServerClosed) {
			return fmt.Errorf("run tcp server: %w", err)
		}

		return nil
	})

	var adminSrv *web.Server

	if conf.AdminAddr != "" {
		adminSrv = web.New(gctx, web.Conf{
			L:                 l.WithPrefix("admin"),
			ServerLogger:      log.Default(),
			Host:              adminHost,
			Port:              adminPort,
			ReadHeaderTimeout: adminReadHeaderTimeout,
			LivenessEndpoint:  "/liveness",
		}, registry)

		g.Go(func() error {
			l.LogInfo("Admin endpoint is running on %v", conf.AdminAddr)

			if err := adminSrv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("run admin server: %w", err)
			}

			return nil
		})
	}

	//nolint:contextcheck
	g.Go(func() error {
		<-gctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
		defer cancel()

		if err := tcpSrv.Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop tcp server: %v", err.Error())
		}

		if adminSrv != nil {
			if err := adminSrv.Srv().Shutdown(ctx); err != nil {
				l.LogErrorf("Failed to stop admin server: %v", err.Error())
			}
		}

		return nil
	})

	l.LogInfo("Application is running on %v...", tcpSrv.Addr())

	err = g.Wait()

	l.LogInfo("Application stopped gracefully")

	return err
}
