package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/siegeai/siegeschema/adapter/builtin"
	"github.com/siegeai/siegeschema/infer"
	"github.com/siegeai/siegeschema/metrics"
	"github.com/siegeai/siegeschema/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schema inference over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)
			inferrer := metrics.Instrument(infer.WithLogging(infer.NewEngine(), a.logger), m)

			s := server.New(server.Options{
				Inferrer:     inferrer,
				Adapters:     builtin.Registry(),
				Gatherer:     reg,
				Logger:       a.logger,
				MaxBodyBytes: a.cfg.MaxBodyBytes,
			})
			return s.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default SIEGE_ADDR or :8080)")
	return cmd
}

func newAdaptersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List native schema adapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := builtin.Registry()
			for _, name := range reg.Names() {
				ad, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(a.stdout, "%s\t%s\n", ad.Name(), ad.FileExt()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
