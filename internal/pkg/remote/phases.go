package remote

import (
	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

// PhasesWithConfigurations lists all collection phases of the project and
// attaches the ID of the existing collection configuration, nil if the phase
// has none. If the configuration index cannot be fetched, the phases are
// returned without configuration IDs.
func (a *QtmApi) PhasesWithConfigurations(projectId model.ProjectId) ([]*model.PhaseWithConfiguration, error) {
	workflows, err := a.Workflows(projectId)
	if err != nil {
		return nil, err
	}

	targetTypes := model.CollectionPhaseTypes()
	matched := make([]*model.PhaseWithConfiguration, 0)
	for _, workflow := range workflows {
		for _, phase := range workflow.Phases {
			if !targetTypes[phase.Type.Name] {
				continue
			}
			matched = append(matched, &model.PhaseWithConfiguration{
				Id:        phase.Id,
				Name:      phase.Name,
				PhaseType: phase.Type.Name,
			})
		}
	}

	configurations, err := a.CollectionConfigurations(projectId)
	if err != nil {
		// Return at least the phases we found
		return matched, nil
	}

	for _, phase := range matched {
		if configuration, found := configurations[phase.Id.String()]; found {
			id := configuration.Id
			phase.CollectionConfigurationId = &id
		}
	}
	return matched, nil
}

// EligiblePhases filters to phases that have no collection configuration yet.
func EligiblePhases(phases []*model.PhaseWithConfiguration) []*model.PhaseWithConfiguration {
	out := make([]*model.PhaseWithConfiguration, 0)
	for _, phase := range phases {
		if !phase.HasConfiguration() {
			out = append(out, phase)
		}
	}
	return out
}
