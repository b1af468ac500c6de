package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qtmops/coco-cloner/internal/pkg/json"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
	"github.com/qtmops/coco-cloner/internal/pkg/options"
	"github.com/qtmops/coco-cloner/internal/pkg/remote"
)

const phasesShortDescription = `List collection phases of the project`
const phasesLongDescription = `Command "phases"

List the collection phases of the project workflows.
Phases that do not have a collection configuration yet
are eligible as clone targets.
`

func phasesCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phases",
		Short: phasesShortDescription,
		Long:  phasesLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := root.options
			if err := root.ValidateOptions(options.FieldEnvironment, options.FieldProjectId, options.FieldAuthToken); err != nil {
				return err
			}

			api, err := root.GetQtmApi()
			if err != nil {
				return err
			}

			phases, err := api.PhasesWithConfigurations(model.ProjectId(o.ProjectId))
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			if !all {
				phases = remote.EligiblePhases(phases)
			}

			if len(phases) == 0 {
				root.logger.Infof("No phases found in the project %d.", o.ProjectId)
				return nil
			}

			root.logger.Infof("Collection phases of the project %d:", o.ProjectId)
			printPhases(root.logger, phases)

			// Optionally store the listing
			if output, _ := cmd.Flags().GetString("output"); output != "" {
				if err := json.WriteFile(root.workingDir, output, phases, "phases"); err != nil {
					return err
				}
				root.logger.Infof(`The listing was written to "%s".`, output)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().Bool("all", false, "include phases that already have a configuration")
	cmd.Flags().StringP("output", "o", "", "write the listing to a JSON file")
	return cmd
}

func printPhases(logger *zap.SugaredLogger, phases []*model.PhaseWithConfiguration) {
	for i, phase := range phases {
		state := color.GreenString("eligible")
		if phase.HasConfiguration() {
			state = color.YellowString("configuration %s", phase.CollectionConfigurationId)
		}
		logger.Infof("  %d. %s [%s] - %s", i+1, phase.Name, phase.PhaseType, state)
	}
}
