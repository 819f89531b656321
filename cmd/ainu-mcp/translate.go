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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aynumosir/ainu-mcp-go/app"
	"github.com/aynumosir/ainu-mcp-go/translate"
)

func newTranslateCmd(flags *rootFlags, opts []app.Option) *cobra.Command {
	var source, target, dialect, pronoun string
	cmd := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate text once and print the result",
		Example: `  ainu-mcp translate --source Japanese --target Ainu ありがとう
  ainu-mcp translate --source Ainu --target Japanese --dialect 千歳 iyairaikere`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			a, err := app.Initialize(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}
			defer a.Close()

			raw := map[string]any{
				translate.ParamSource: source,
				translate.ParamTarget: target,
				translate.ParamText:   strings.Join(args, " "),
			}
			if dialect != "" {
				raw[translate.ParamDialect] = dialect
			}
			if pronoun != "" {
				raw[translate.ParamPronoun] = pronoun
			}
			env := a.Registry().Dispatch(cmd.Context(), translate.ToolName, raw)
			if env.IsError {
				return errors.New(env.Text())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), env.Text())
			return err
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", string(translate.Japanese), "language to translate from (Japanese or Ainu)")
	cmd.Flags().StringVarP(&target, "target", "t", string(translate.Ainu), "language to translate to (Japanese or Ainu)")
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "", "Ainu dialect (default 沙流)")
	cmd.Flags().StringVarP(&pronoun, "pronoun", "p", "", "pronoun register, first or fourth (default first)")
	return cmd
}
