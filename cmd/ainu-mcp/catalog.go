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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aynumosir/ainu-mcp-go/prompt"
	"github.com/aynumosir/ainu-mcp-go/translate"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [NAME]",
		Short: "Print a prompt, ainu_conversation by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := prompt.ConversationName
			if len(args) == 1 {
				name = args[0]
			}
			res, err := prompt.Default().Get(name)
			if err != nil {
				return err
			}
			for _, m := range res.Messages {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), m.Content.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the MCP tool declarations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The declaration does not depend on the gateway.
			def := translate.NewTool(nil)
			tools := []any{def.Schema.MCPTool(def.Name, def.Description)}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tools)
		},
	}
}
