package remap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

const parameterPrefix = "module"

// rewriteParameter rewrites a rule parameter of the form
// "module|<oldPhaseId>.<oldModuleId>" to "module|<targetPhaseId>.<ephemeralId>".
// The old phase token is discarded. A module ID not present in the map keeps
// its original value. A value that does not match the form is returned
// unchanged, parsing never fails.
func rewriteParameter(value string, targetPhaseId model.PhaseId, ids map[model.ModuleId]model.ModuleId) string {
	prefix, remainder, found := strings.Cut(value, "|")
	if !found || prefix != parameterPrefix {
		return value
	}

	// remainder is "<oldPhaseId>.<oldModuleId>"
	_, moduleToken, found := strings.Cut(remainder, ".")
	if !found {
		return value
	}

	oldId, err := strconv.Atoi(moduleToken)
	if err != nil {
		// Not an integer, skip transform
		return value
	}

	newId := model.ModuleId(oldId)
	if mapped, found := ids[newId]; found {
		newId = mapped
	}

	return fmt.Sprintf("%s|%d.%d", parameterPrefix, targetPhaseId, newId)
}
