package cli

import (
	"fmt"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cobra"

	"github.com/qtmops/coco-cloner/internal/pkg/idgenerator"
	"github.com/qtmops/coco-cloner/internal/pkg/interaction"
	"github.com/qtmops/coco-cloner/internal/pkg/json"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
	"github.com/qtmops/coco-cloner/internal/pkg/options"
	"github.com/qtmops/coco-cloner/internal/pkg/remap"
	"github.com/qtmops/coco-cloner/internal/pkg/remote"
)

const cloneShortDescription = `Clone the source configuration into a phase`
const cloneLongDescription = `Command "clone"

Read the source configuration from a JSON file, remap the
module IDs for the selected target phase and create a new
collection configuration in the project.

The target phase must not have a configuration yet, run the
"phases" command to list the eligible phases.
`

func cloneCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone",
		Short: cloneShortDescription,
		Long:  cloneLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := root.options
			if err := root.ValidateOptions(options.FieldEnvironment, options.FieldProjectId, options.FieldAuthToken); err != nil {
				return err
			}

			api, err := root.GetQtmApi()
			if err != nil {
				return err
			}

			// List the eligible phases
			projectId := model.ProjectId(o.ProjectId)
			phases, err := api.PhasesWithConfigurations(projectId)
			if err != nil {
				return err
			}
			eligible := remote.EligiblePhases(phases)
			if len(eligible) == 0 {
				return fmt.Errorf("no eligible phases found in the project %d", o.ProjectId)
			}
			root.logger.Info("Eligible phases:")
			printPhases(root.logger, eligible)

			// Select the target phase
			target, err := selectTargetPhase(root, cmd, eligible)
			if err != nil {
				return err
			}

			// Confirm
			projectName, err := api.ProjectName(projectId)
			if err != nil || projectName == "" {
				projectName = fmt.Sprintf("project %d", o.ProjectId)
			}
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				confirmed := root.prompt.Confirm(&interaction.Confirm{
					Label:   fmt.Sprintf(`Clone the source configuration into the "%s" phase of "%s"?`, target.Name, projectName),
					Default: true,
				})
				if !confirmed {
					root.logger.Info("Aborted.")
					return nil
				}
			}

			// Read the source configuration
			doc := orderedmap.New()
			if err := json.ReadFile(root.workingDir, o.SourceFile, doc, "source configuration"); err != nil {
				return err
			}

			// Remap and create
			payload, err := remap.NewRemapper(idgenerator.NewEphemeralIds()).Remap(doc, target.Id)
			if err != nil {
				return err
			}
			response, err := api.CreateCollectionConfiguration(payload)
			if err != nil {
				return err
			}

			// Store the server response
			if saveTo, _ := cmd.Flags().GetString("save-response"); saveTo != "" {
				if err := json.WriteFile(root.workingDir, saveTo, response, "response"); err != nil {
					return err
				}
				root.logger.Infof(`The server response was written to "%s".`, saveTo)
			}

			root.logger.Infof(`Created a collection configuration for the "%s" phase.`, target.Name)
			if id, found := response.Get("id"); found {
				root.logger.Infof("New configuration ID: %v", id)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("source", "s", "existingCoCoServerResponse.json", "path to the source configuration JSON")
	cmd.Flags().Int("phase", 0, "target phase ID, skips the selection")
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	cmd.Flags().String("save-response", "response.json", "write the server response to a JSON file")
	return cmd
}

// selectTargetPhase from the "--phase" flag or interactively.
func selectTargetPhase(root *rootCommand, cmd *cobra.Command, eligible []*model.PhaseWithConfiguration) (*model.PhaseWithConfiguration, error) {
	if phaseId, _ := cmd.Flags().GetInt("phase"); phaseId > 0 {
		for _, phase := range eligible {
			if int(phase.Id) == phaseId {
				return phase, nil
			}
		}
		return nil, fmt.Errorf(`the phase "%d" is not eligible for cloning`, phaseId)
	}

	phaseOptions := make([]string, 0, len(eligible))
	for _, phase := range eligible {
		phaseOptions = append(phaseOptions, fmt.Sprintf("%s [%s]", phase.Name, phase.PhaseType))
	}
	index, ok := root.prompt.SelectIndex(&interaction.SelectIndex{
		Label:   "Select the target phase",
		Options: phaseOptions,
	})
	if !ok {
		return nil, fmt.Errorf(`please specify the target phase, use the "--phase" flag`)
	}
	return eligible[index], nil
}
