package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/beamcast/playout/channel"
	"github.com/beamcast/playout/consumer"
	"github.com/beamcast/playout/control"
	"github.com/beamcast/playout/media"
	"github.com/beamcast/playout/playlist"
	"github.com/beamcast/playout/producer"
)

var version = "dev"

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	controlAddr := envOr("CONTROL_ADDR", ":5250")
	formatName := envOr("FORMAT", "720p5000")
	channelCount, err := strconv.Atoi(envOr("CHANNELS", "2"))
	if err != nil || channelCount < 1 {
		slog.Error("bad CHANNELS value", "value", os.Getenv("CHANNELS"))
		os.Exit(1)
	}
	outputDir := os.Getenv("OUTPUT_DIR")
	playlistPath := os.Getenv("PLAYLIST")

	desc, err := media.FormatByName(formatName)
	if err != nil {
		slog.Error("bad FORMAT value", "error", err)
		os.Exit(1)
	}

	slog.Info("playout starting",
		"version", version,
		"control", controlAddr,
		"format", desc.Name,
		"channels", channelCount,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	registry := producer.NewRegistry()
	registry.RegisterBuiltins()

	group := channel.NewGroup()
	var consumers []consumer.Consumer
	for num := 1; num <= channelCount; num++ {
		ch := channel.New(num, desc, nil)
		if outputDir != "" {
			path := filepath.Join(outputDir, fmt.Sprintf("channel-%d.plo", num))
			out, err := consumer.NewFile(path)
			if err != nil {
				slog.Error("failed to open channel output", "channel", num, "error", err)
				os.Exit(1)
			}
			consumers = append(consumers, out)
			ch.AddConsumer(out)
		}
		group.Add(ch)
	}

	if playlistPath != "" {
		head, err := playlist.LoadFile(playlistPath, registry)
		if err != nil {
			slog.Error("failed to load playlist", "path", playlistPath, "error", err)
			os.Exit(1)
		}
		ch, _ := group.Get(1)
		if err := ch.Load(0, head); err != nil {
			slog.Error("failed to load playlist producer", "error", err)
			os.Exit(1)
		}
		if err := ch.Play(0, nil); err != nil {
			slog.Error("failed to start playlist", "error", err)
			os.Exit(1)
		}
		slog.Info("playlist on air", "path", playlistPath, "channel", 1)
	}

	ctrl := control.NewServer(controlAddr, group, registry, nil)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return group.Run(ctx)
	})
	g.Go(func() error {
		return ctrl.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	for _, c := range consumers {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close consumer", "error", err)
		}
	}
	slog.Info("stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
