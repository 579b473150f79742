// Package bus publishes events over NATS, through JetStream when a stream is configured
package bus

import (
	"context"
	"errors"
	"fmt"

	"gracewell/internal/platform/logger"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Config configures the connection and the optional stream
type Config struct {
	URL       string
	Name      string
	JetStream bool
	Stream    string
	Subjects  []string
}

// NATS is a publishing connection
type NATS struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Open connects and, with JetStream on, ensures the stream exists
func Open(ctx context.Context, cfg Config, log logger.Logger) (*NATS, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats url is required")
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	n := &NATS{nc: nc}
	if !cfg.JetStream {
		return n, nil
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if _, err := js.CreateOrUpdateStream(ctx, StreamConfig(cfg)); err != nil {
		nc.Close()
		return nil, fmt.Errorf("stream %s: %w", cfg.Stream, err)
	}
	n.js = js
	log.Info().Str("stream", cfg.Stream).Strs("subjects", cfg.Subjects).Msg("jetstream ready")
	return n, nil
}

// StreamConfig is the stream definition Open applies
func StreamConfig(cfg Config) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: cfg.Subjects,
		Storage:  jetstream.FileStorage,
	}
}

// Publish sends data to subject; with JetStream it waits for the stream ack
func (n *NATS) Publish(ctx context.Context, subject string, data []byte) error {
	if n.js != nil {
		if _, err := n.js.Publish(ctx, subject, data); err != nil {
			return fmt.Errorf("publish %s: %w", subject, err)
		}
		return nil
	}
	if err := n.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Ping round trips to the server
func (n *NATS) Ping(ctx context.Context) error { return n.nc.FlushWithContext(ctx) }

// Close drains pending publishes and closes
func (n *NATS) Close() error {
	if n == nil || n.nc == nil {
		return nil
	}
	return n.nc.Drain()
}
