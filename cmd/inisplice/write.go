// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourbase/inisplice/ini"
	"github.com/yourbase/inisplice/inisocket"
	"zombiezen.com/go/log"
)

func newSetCommand(g *globalConfig) *cobra.Command {
	var dryRun bool
	c := &cobra.Command{
		Use:   "set [options] FILE SECTION KEY VALUE [KEY VALUE [...]]",
		Short: "Set the value of a key",
		Long: "Replace the value of the first entry named KEY in SECTION, " +
			"adding the entry (and the section) if needed. Everything else " +
			"in FILE is left byte for byte as it was.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 || len(args)%2 != 0 {
				return errors.New("want FILE SECTION followed by KEY VALUE pairs")
			}
			return nil
		},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := open(ctx, cmd, g, args[0])
			if err != nil {
				return err
			}
			var pairs []ini.KeyValue
			for i := 2; i < len(args); i += 2 {
				if args[i] == "" {
					return errors.New("set: empty key")
				}
				pairs = append(pairs, ini.KeyValue{Key: args[i], Value: args[i+1]})
			}
			doc.WriteKeysValues(sectionArg(args[1]), pairs...)
			if dryRun || doc.Path == "" {
				_, err := doc.WriteTo(cmd.OutOrStdout())
				return err
			}
			return doc.Save(ctx)
		},
	}
	c.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the edited file instead of saving it")
	return c
}

func newServeCommand(g *globalConfig) *cobra.Command {
	var (
		addr     string
		autoSave bool
	)
	c := &cobra.Command{
		Use:   "serve [options] FILE",
		Short: "Serve a file for remote editing over WebSocket",
		Long: "Accept WebSocket connections on --addr. Each text message is a " +
			`JSON request such as {"op":"get","section":"server","key":"host"} ` +
			"and is answered with a JSON response.",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := open(ctx, cmd, g, args[0])
			if err != nil {
				return err
			}
			l, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on ws://%s/\n", args[0], l.Addr())
			return serve(ctx, l, &inisocket.Handler{Doc: doc, AutoSave: autoSave})
		},
	}
	c.Flags().StringVar(&addr, "addr", envString("addr", "localhost:8080"), "`address` to listen on")
	c.Flags().BoolVar(&autoSave, "autosave", envBool("autosave"), "save FILE after every change")
	return c
}

// serve runs an HTTP server on l until ctx is Done.
func serve(ctx context.Context, l net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Infof(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
