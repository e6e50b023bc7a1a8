package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dhamidi/cook/collection"
	"github.com/dhamidi/cook/config"
	"github.com/dhamidi/cook/ui"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a directory of recipes over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			c := collection.New(dir, cfg.Extensions)
			if err := c.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			if watch {
				w := collection.NewWatcher(c, interval)
				w.OnChange = func(changes []collection.Change) {
					for _, ch := range changes {
						if ch.Removed {
							log.Infof("removed %s", ch.Path)
						} else {
							log.Infof("loaded %s", ch.Path)
						}
					}
				}
				w.Start()
				defer w.Stop()
			}

			server, err := ui.NewServer(c)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Serving %d recipes at http://%s\n", len(c.Names()), displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload recipes when files change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "how often to look for changes with --watch")

	return cmd
}
