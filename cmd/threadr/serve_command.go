package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"thirdcoast.systems/threadr/internal/pipeline"
	"thirdcoast.systems/threadr/internal/server"
	"thirdcoast.systems/threadr/pkg/render"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	var meta render.Meta

	cmd := &cobra.Command{
		Use:   "serve <comments-file>",
		Short: "Render a comment export once and serve it over HTTP for preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			popts, err := cc.pipelineOptions()
			if err != nil {
				return err
			}
			popts.Format = pipeline.DetectFormat(args[0])

			res, err := pipeline.LoadFile(args[0], meta, popts)
			if err != nil {
				return err
			}
			if res.HTML, err = render.Render(ctx, res.Forest, res.Meta, popts.Render); err != nil {
				return err
			}

			e := server.NewWebserver(res)
			addr := ":" + strconv.Itoa(cc.cfg.ServePort)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = e.Shutdown(shutdownCtx)
			}()

			slog.Info("Listening", "addr", addr)
			if err := e.Start(addr); err != nil {
				// Echo returns an error on Shutdown; treat it as normal if context is done.
				if errors.Is(err, http.ErrServerClosed) || ctx.Err() != nil {
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meta.VideoID, "video-id", "", "YouTube video id used in comment links")
	cmd.Flags().StringVar(&meta.Title, "title", "", "video title for the page header")
	cmd.Flags().Int("port", 8080, "listen port")
	bindFlags(cmd.Flags(), map[string]string{"port": "THREADR_SERVE_PORT"})

	return cmd
}
