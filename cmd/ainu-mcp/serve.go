//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"github.com/spf13/cobra"

	"github.com/aynumosir/ainu-mcp-go/app"
)

func newServeCmd(flags *rootFlags, opts []app.Option) *cobra.Command {
	var transport, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP on stdio or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			a, err := app.Initialize(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&transport, "transport", "t", "", "transport to serve (stdio or http)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address of the http transport")
	return cmd
}
