package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/fieldharvest/internal/fieldspec"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the built-in sample field configuration as YAML",
	Long:  "Prints the assessment-report sample field config, useful as a starting point for a custom --fields file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(fieldspec.Sample())
		if err != nil {
			return eris.Wrap(err, "fields: marshal sample config")
		}
		cmd.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
