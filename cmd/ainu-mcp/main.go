//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Command ainu-mcp serves Japanese and Ainu translation to agents over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aynumosir/ainu-mcp-go/app"
	"github.com/aynumosir/ainu-mcp-go/config"
	"github.com/aynumosir/ainu-mcp-go/server"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. opts are passed to app.Initialize.
func newRootCmd(opts ...app.Option) *cobra.Command {
	flags := &rootFlags{}
	serve := newServeCmd(flags, opts)

	root := &cobra.Command{
		Use:   "ainu-mcp",
		Short: "Japanese and Ainu translation MCP server",
		Long: `ainu-mcp exposes the ainu_translate tool and the ainu_conversation prompt
over the Model Context Protocol.

Without a subcommand it serves MCP on stdio.`,
		Version:       server.DefaultVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error, fatal)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newTranslateCmd(flags, opts))
	root.AddCommand(newPromptCmd())
	root.AddCommand(newToolsCmd())
	return root
}

// loadConfig reads the config file and applies the global flags.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}
