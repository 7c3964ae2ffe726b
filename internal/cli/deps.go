package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blockassist/internal/calibration"
	"blockassist/internal/capture"
	"blockassist/internal/config"
	"blockassist/internal/extract"
	"blockassist/internal/locator"
	"blockassist/internal/overlay"
	"blockassist/internal/pipeline"
	"blockassist/internal/vision"
)

const connectTimeout = 5 * time.Second

func noop() {}

// openStore builds the configured calibration store. The returned func
// releases any connection.
func (c *CLI) openStore(ctx context.Context) (calibration.Store, func(), error) {
	sc := c.Config.Store
	switch sc.Backend {
	case config.BackendMemory:
		return calibration.NewMemoryStore(), noop, nil

	case config.BackendFile:
		path := sc.Path
		if path == "" {
			path = calibration.DefaultPath()
		}
		c.Logger.Debug("calibration store", "backend", sc.Backend, "path", path)
		return calibration.NewFileStore(path), noop, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: sc.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", sc.RedisAddr, err)
		}
		c.Logger.Debug("calibration store", "backend", sc.Backend, "addr", sc.RedisAddr)
		return calibration.NewRedisStore(client, sc.RedisKey), func() { client.Close() }, nil

	case config.BackendMongo:
		if sc.MongoURI == "" {
			return nil, nil, errors.New("store.mongo_uri is required for the mongo backend")
		}
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := mongo.Connect(connCtx, options.Client().ApplyURI(sc.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := client.Ping(connCtx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to reach mongo: %w", err)
		}
		coll := client.Database(sc.MongoDatabase).Collection(sc.MongoCollection)
		c.Logger.Debug("calibration store", "backend", sc.Backend, "collection", sc.MongoDatabase+"."+sc.MongoCollection)
		closeFn := func() { client.Disconnect(context.Background()) }
		return calibration.NewMongoStore(coll, calibration.DefaultMongoID), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", sc.Backend)
}

// openSource builds the configured capture source. With watch set, file
// sources only deliver screenshots that changed since the previous capture.
func (c *CLI) openSource(watch bool) (capture.Source, func(), error) {
	cc := c.Config.Capture
	switch cc.Source {
	case config.SourceFile:
		if cc.Path == "" {
			return nil, nil, errors.New("capture.path is required for the file source")
		}
		if watch {
			return capture.NewChanged(cc.Path), noop, nil
		}
		return capture.ForPath(cc.Path), noop, nil

	case config.SourceDevice:
		device := cc.Path
		if device == "" {
			device = strconv.Itoa(cc.DeviceID)
		}
		src, err := vision.OpenDevice(device)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown capture source %q", cc.Source)
}

// newDriver wires a driver from the configuration. Source may be nil for
// commands that bring their own screenshot.
func (c *CLI) newDriver(src capture.Source, store calibration.Store, sink overlay.Sink) *pipeline.Driver {
	return &pipeline.Driver{
		Source:   src,
		Store:    store,
		Reader:   extract.New(c.Config.ExtractorParams()),
		Locator:  locator.New(c.Config.LocatorParams()),
		Sink:     sink,
		Logger:   c.Logger,
		Pieces:   c.Config.Solver.Pieces,
		Interval: c.Config.Interval(),
	}
}
