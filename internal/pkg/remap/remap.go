// Package remap duplicates a collection configuration under a new workflow
// phase. Each module gets a fresh ephemeral 6-digit ID, parent references and
// module references inside rule conditions are re-linked to the new IDs.
//
// The transform is two-pass: the complete oldId -> ephemeralId map is built
// first, then the modules are rewritten, so the output does not depend on the
// order of parent and child modules in the input.
//
// Fallback policy: an unresolvable reference (unknown parentModuleId, unknown
// module in a rule parameter) keeps its original value.
package remap

import (
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/qtmops/coco-cloner/internal/pkg/idgenerator"
	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

// DefaultProjectId is embedded in every output module, the backend requires it.
const DefaultProjectId = model.ProjectId(23)

const (
	modulesKey      = "modules"
	nestedConfigKey = "phaseCollectionConfigurations"
)

type Remapper struct {
	ids       *idgenerator.EphemeralIds
	projectId model.ProjectId
}

func NewRemapper(ids *idgenerator.EphemeralIds) *Remapper {
	return &Remapper{ids: ids, projectId: DefaultProjectId}
}

// Remap builds the minimal configuration payload from the source document.
// Supported source shapes: a top-level "modules" array, or the first element
// of "phaseCollectionConfigurations" holding its own "modules" array.
// The only hard failure is *MalformedInputError, all other anomalies resolve
// via defaults.
func (r *Remapper) Remap(doc *orderedmap.OrderedMap, targetPhaseId model.PhaseId) (*orderedmap.OrderedMap, error) {
	modules, err := locateModules(doc)
	if err != nil {
		return nil, err
	}

	// Build old -> new ephemeral ID map for all modules first.
	ids := make(map[model.ModuleId]model.ModuleId)
	for _, item := range modules {
		module, ok := item.(*orderedmap.OrderedMap)
		if !ok {
			continue
		}
		if oldId, found := moduleId(module); found {
			ids[oldId] = r.ids.EphemeralId()
		}
	}

	// Transform modules in the original order.
	out := make([]interface{}, 0, len(modules))
	for _, item := range modules {
		module, ok := item.(*orderedmap.OrderedMap)
		if !ok {
			continue
		}
		oldId, found := moduleId(module)
		if !found {
			// Modules without an ID are dropped
			continue
		}
		out = append(out, r.transformModule(module, ids[oldId], targetPhaseId, ids))
	}

	return orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "workflowPhaseId", Value: int(targetPhaseId)},
		{Key: "isLocationCollectionConfiguration", Value: false},
		{Key: modulesKey, Value: out},
	}), nil
}

// locateModules detects the source shape and extracts the module list.
func locateModules(doc *orderedmap.OrderedMap) ([]interface{}, error) {
	if raw, found := doc.Get(modulesKey); found {
		modules, ok := raw.([]interface{})
		if !ok {
			return nil, &MalformedInputError{Key: modulesKey, Reason: "must be an array"}
		}
		return modules, nil
	}

	if raw, found := doc.Get(nestedConfigKey); found {
		configs, ok := raw.([]interface{})
		if !ok {
			return nil, &MalformedInputError{Key: nestedConfigKey, Reason: "must be an array"}
		}
		if len(configs) == 0 {
			return nil, &MalformedInputError{Key: nestedConfigKey, Reason: "is empty"}
		}

		// Only the first configuration is used, siblings are discarded.
		first, ok := configs[0].(*orderedmap.OrderedMap)
		if !ok {
			return nil, &MalformedInputError{Key: nestedConfigKey, Reason: "must contain objects"}
		}
		modules, ok := first.GetOrNil(modulesKey).([]interface{})
		if !ok {
			return nil, &MalformedInputError{Key: modulesKey, Reason: "not found in the first configuration"}
		}
		return modules, nil
	}

	return nil, &MalformedInputError{Key: modulesKey, Reason: "not found"}
}

func (r *Remapper) transformModule(module *orderedmap.OrderedMap, ephemeralId model.ModuleId, targetPhaseId model.PhaseId, ids map[model.ModuleId]model.ModuleId) *orderedmap.OrderedMap {
	moduleType := "Text"
	if value, err := cast.ToStringE(module.GetOrNil("type")); err == nil && value != "" {
		moduleType = value
	}

	ordinal := 0
	if value, err := cast.ToIntE(module.GetOrNil("ordinal")); err == nil {
		ordinal = value
	}

	return orderedmap.FromPairs([]orderedmap.Pair{
		{Key: "id", Value: int(ephemeralId)},
		{Key: "moduleId", Value: int(ephemeralId)},
		{Key: "projectId", Value: int(r.projectId)},
		{Key: "type", Value: moduleType},
		{Key: "ordinal", Value: ordinal},
		{Key: "meta", Value: transformMeta(module.GetOrNil("meta"), ids)},
		{Key: "rules", Value: transformRules(module.GetOrNil("rules"), targetPhaseId, ids)},
	})
}

// transformMeta copies the meta object and rewrites "parentModuleId".
// An unknown parent keeps the original value.
func transformMeta(raw interface{}, ids map[model.ModuleId]model.ModuleId) *orderedmap.OrderedMap {
	meta, ok := raw.(*orderedmap.OrderedMap)
	if !ok {
		meta = orderedmap.New()
	} else {
		meta = meta.Clone()
	}

	parent := meta.GetOrNil("parentModuleId")
	if parent == nil {
		meta.Set("parentModuleId", nil)
		return meta
	}

	if oldId, err := cast.ToIntE(parent); err == nil {
		if newId, found := ids[model.ModuleId(oldId)]; found {
			meta.Set("parentModuleId", int(newId))
			return meta
		}
	}
	meta.Set("parentModuleId", parent)
	return meta
}

// transformRules copies the rules array, rewriting module references inside
// "conditions[].parameters[]". Items of an unexpected type pass through.
func transformRules(raw interface{}, targetPhaseId model.PhaseId, ids map[model.ModuleId]model.ModuleId) []interface{} {
	rules, ok := raw.([]interface{})
	if !ok {
		return []interface{}{}
	}

	out := make([]interface{}, 0, len(rules))
	for _, item := range rules {
		rule, ok := item.(*orderedmap.OrderedMap)
		if !ok {
			out = append(out, item)
			continue
		}

		rule = rule.Clone()
		if conditions, ok := rule.GetOrNil("conditions").([]interface{}); ok {
			rule.Set("conditions", transformConditions(conditions, targetPhaseId, ids))
		}
		out = append(out, rule)
	}
	return out
}

func transformConditions(conditions []interface{}, targetPhaseId model.PhaseId, ids map[model.ModuleId]model.ModuleId) []interface{} {
	out := make([]interface{}, 0, len(conditions))
	for _, item := range conditions {
		condition, ok := item.(*orderedmap.OrderedMap)
		if !ok {
			out = append(out, item)
			continue
		}

		condition = condition.Clone()
		if parameters, ok := condition.GetOrNil("parameters").([]interface{}); ok {
			newParams := make([]interface{}, 0, len(parameters))
			for _, param := range parameters {
				if str, ok := param.(string); ok {
					newParams = append(newParams, rewriteParameter(str, targetPhaseId, ids))
				} else {
					newParams = append(newParams, param)
				}
			}
			condition.Set("parameters", newParams)
		}
		out = append(out, condition)
	}
	return out
}

// moduleId reads the original module ID, a missing or non-numeric value means
// the module has no ID and is excluded from the transform.
func moduleId(module *orderedmap.OrderedMap) (model.ModuleId, bool) {
	raw := module.GetOrNil("moduleId")
	if raw == nil {
		return 0, false
	}
	value, err := cast.ToIntE(raw)
	if err != nil {
		return 0, false
	}
	return model.ModuleId(value), true
}
