package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/valyala/fastrand"

	"github.com/aradilov/circbuf"
	"github.com/aradilov/circbuf/internal/config"
	"github.com/aradilov/circbuf/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	def := config.Default()

	fs := flag.NewFlagSet("circbuf-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	capacity := fs.Int("capacity", def.Capacity, "Buffer capacity")
	count := fs.Int("count", def.Count, "Number of integers to push")
	random := fs.Bool("random", def.Random, "Push random integers instead of 0..count-1")
	debug := fs.Bool("debug", def.Debug, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// explicit flags win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Capacity = *capacity
		case "count":
			cfg.Count = *count
		case "random":
			cfg.Random = *random
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(stderr, cfg.Debug)

	buf, err := circbuf.New[int](cfg.Capacity)
	if err != nil {
		return err
	}
	defer buf.Release()

	// unbound until the buffer is filled
	var it circbuf.Iterator[int]

	for i := 0; i < cfg.Count; i++ {
		v := i
		if cfg.Random {
			v = int(fastrand.Uint32n(1 << 16))
		}
		if err := buf.PushBack(v); err != nil {
			logger.Warn("push rejected", "pushed", i, "capacity", buf.Cap())
			return fmt.Errorf("push %d of %d: %w", i+1, cfg.Count, err)
		}
	}
	logger.Debug("buffer filled", "len", buf.Len(), "cap", buf.Cap(), "full", buf.Full())

	w := bufio.NewWriter(stdout)
	begin := buf.Begin()
	for it = buf.End(); !it.Equal(begin); {
		it.Dec()
		p, err := it.Deref()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, *p)
	}
	logger.Info("traversed buffer", "elements", buf.Len())

	return w.Flush()
}
