package cli

import (
	"fmt"
	"strconv"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cobra"

	"github.com/qtmops/coco-cloner/internal/pkg/idgenerator"
	"github.com/qtmops/coco-cloner/internal/pkg/interaction"
	"github.com/qtmops/coco-cloner/internal/pkg/json"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
	"github.com/qtmops/coco-cloner/internal/pkg/remap"
)

const transformShortDescription = `Remap the source configuration offline`
const transformLongDescription = `Command "transform"

Read the source configuration from a JSON file, remap the
module IDs for the given target phase and write the minimal
configuration payload to a file or to the standard output.

No API calls are made, the command works offline.
`

func transformCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: transformShortDescription,
		Long:  transformLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Target phase ID
			phaseId, _ := cmd.Flags().GetInt("phase")
			if phaseId <= 0 {
				if value, ok := root.prompt.Ask(&interaction.Question{
					Label:     "Target phase ID",
					Validator: interaction.IntegerRequired,
				}); ok {
					phaseId, _ = strconv.Atoi(value)
				}
			}
			if phaseId <= 0 {
				return fmt.Errorf(`please specify the target phase ID, use the "--phase" flag`)
			}

			// Read the source configuration
			doc := orderedmap.New()
			if err := json.ReadFile(root.workingDir, root.options.SourceFile, doc, "source configuration"); err != nil {
				return err
			}

			// Remap
			payload, err := remap.NewRemapper(idgenerator.NewEphemeralIds()).Remap(doc, model.PhaseId(phaseId))
			if err != nil {
				return err
			}

			// Write to a file or to the stdout
			if output, _ := cmd.Flags().GetString("output"); output != "" {
				if err := json.WriteFile(root.workingDir, output, payload, "output"); err != nil {
					return err
				}
				root.logger.Infof(`The minimal configuration was written to "%s".`, output)
				return nil
			}
			encoded, err := json.EncodeString(payload, true)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return err
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("source", "s", "existingCoCoServerResponse.json", "path to the source configuration JSON")
	cmd.Flags().Int("phase", 0, "target phase ID")
	cmd.Flags().StringP("output", "o", "", "write the payload to a JSON file instead of stdout")
	return cmd
}
