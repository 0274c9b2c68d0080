package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/configuror/cmd"
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:         "gen-doc",
	Short:       "Generate reference documentation for the CLI",
	Hidden:      true,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipSettings: "true"},
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
		}
		if err := paths.EnsureDir(genDocDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		var err error
		switch genDocFormat {
		case "markdown", "md":
			err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler)
		case "man":
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "CONFIGUROR",
				Section: "1",
				Source:  "configuror " + cmd.Info().Version,
			}, genDocDir)
		default:
			return errors.NewUserError(errors.Newf("unknown documentation format %q", genDocFormat), "Valid formats: markdown, man")
		}
		if err != nil {
			return errors.Wrapf(err, "generating %s", genDocFormat)
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "documentation format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender adds front matter: configuror_namespace.md gets the title
// "configuror namespace".
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/reference/" + strings.ToLower(base) + "/"
}
