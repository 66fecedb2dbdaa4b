package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"

	"github.com/gorgonia/katachi"
	"github.com/gorgonia/katachi/encoding/gif"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	metricsAddr string
	galleryCell int
	flagConf    = katachi.DefaultConfig()
)

var mineCmd = &cobra.Command{
	Use:   "mine [DIR]",
	Short: "Mine the records of DIR and write the report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  mine,
}

func init() {
	f := mineCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML configuration file. Flags override it")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics and pprof on this address while mining")
	f.IntVar(&galleryCell, "gallery-cell", 32, "size in pixels of a board point in the gallery")

	f.StringVar(&flagConf.Glob, "glob", flagConf.Glob, "file name pattern of the records")
	f.BoolVarP(&flagConf.Recursive, "recursive", "r", flagConf.Recursive, "look for records in subdirectories too")
	f.IntVarP(&flagConf.Workers, "workers", "j", flagConf.Workers, "records processed at once")
	f.IntVar(&flagConf.BoardSize, "board-size", flagConf.BoardSize, "board size of the records; other sizes are skipped")
	f.IntVarP(&flagConf.Top, "top", "n", flagConf.Top, "number of patterns to report")
	f.StringVarP(&flagConf.Report, "out", "o", flagConf.Report, "report file")
	f.StringVar(&flagConf.Histogram, "histogram", flagConf.Histogram, "moves per game histogram (PNG). Empty to skip")
	f.IntVar(&flagConf.Bins, "bins", flagConf.Bins, "bins of the histogram")
	f.StringVar(&flagConf.Gallery, "gallery", flagConf.Gallery, "animated GIF of the reported patterns")
	f.StringVar(&flagConf.Graph, "graph", flagConf.Graph, "co-occurrence graph of the reported patterns (DOT)")
	f.StringVar(&flagConf.Stats, "stats", flagConf.Stats, "moves of every mined record (CSV)")
	f.BoolVar(&flagConf.SkipDuplicates, "skip-duplicates", flagConf.SkipDuplicates, "do not mine a game that repeats an earlier one")
	f.BoolVarP(&flagConf.Verbose, "verbose", "v", flagConf.Verbose, "log every record")
}

// config loads the configuration file, if any, and applies the flags that were set on top of it.
func config(cmd *cobra.Command, args []string) (katachi.Config, error) {
	conf := flagConf
	if configPath != "" {
		var err error
		if conf, err = katachi.LoadConfig(configPath); err != nil {
			return conf, err
		}
		flags := cmd.Flags()
		set := func(name string, fn func()) {
			if flags.Changed(name) {
				fn()
			}
		}
		set("glob", func() { conf.Glob = flagConf.Glob })
		set("recursive", func() { conf.Recursive = flagConf.Recursive })
		set("workers", func() { conf.Workers = flagConf.Workers })
		set("board-size", func() { conf.BoardSize = flagConf.BoardSize })
		set("top", func() { conf.Top = flagConf.Top })
		set("out", func() { conf.Report = flagConf.Report })
		set("histogram", func() { conf.Histogram = flagConf.Histogram })
		set("bins", func() { conf.Bins = flagConf.Bins })
		set("gallery", func() { conf.Gallery = flagConf.Gallery })
		set("graph", func() { conf.Graph = flagConf.Graph })
		set("stats", func() { conf.Stats = flagConf.Stats })
		set("skip-duplicates", func() { conf.SkipDuplicates = flagConf.SkipDuplicates })
		set("verbose", func() { conf.Verbose = flagConf.Verbose })
	}
	if len(args) > 0 {
		conf.InputDir = args[0]
	}
	if !conf.IsValid() {
		return conf, errors.Errorf("Invalid configuration %+v", conf)
	}
	return conf, nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	log.Printf("Serving metrics on http://%s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}

func mine(cmd *cobra.Command, args []string) error {
	conf, err := config(cmd, args)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if metricsAddr != "" {
		go serveMetrics(metricsAddr, reg)
	}

	m, err := katachi.New(conf, katachi.WithRegisterer(reg), katachi.WithLogger(log.New(os.Stderr, "", log.Ltime)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := m.Run(ctx)
	if err != nil {
		return err
	}

	var encs []katachi.OutputEncoder
	if conf.Gallery != "" {
		f, err := os.Create(conf.Gallery)
		if err != nil {
			return errors.Wrapf(err, "Unable to create gallery %q", conf.Gallery)
		}
		defer f.Close()
		encs = append(encs, gif.NewGifEncoder(f, galleryCell))
	}
	if conf.Verbose {
		encs = append(encs, newLogEncoder(os.Stderr))
	}
	return m.Publish(res, encs...)
}
