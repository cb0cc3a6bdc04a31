package engine

import (
	"fmt"
	"strings"

	"github.com/gallerykit/gallery-engine/internal/errors"
	"github.com/gallerykit/gallery-engine/model"
)

// maxConditionDepth bounds condition-tree recursion. Authored trees are
// shallow; anything deeper indicates corrupted input and fails with a
// StructureError instead of overflowing the stack.
const maxConditionDepth = 32

// evaluateGroup recursively evaluates a condition tree against the context.
// AND short-circuits on the first false child, OR on the first true child,
// and NOT inverts its single child.
func evaluateGroup(group model.ConditionGroup, ctx *model.EvaluationContext) (bool, error) {
	return evaluateGroupAt(group, ctx, 0)
}

func evaluateGroupAt(group model.ConditionGroup, ctx *model.EvaluationContext, depth int) (bool, error) {
	if depth > maxConditionDepth {
		return false, errors.NewStructureError(fmt.Sprintf("depth %d", depth), "condition tree exceeds maximum nesting depth")
	}

	if group.IsLeaf() {
		return matchCondition(*group.Condition, ctx), nil
	}

	switch strings.ToLower(group.Operator) {
	case model.GroupOperatorAnd:
		for _, child := range group.Conditions {
			matched, err := evaluateGroupAt(child, ctx, depth+1)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		// Empty AND is vacuously true.
		return true, nil
	case model.GroupOperatorOr:
		for _, child := range group.Conditions {
			matched, err := evaluateGroupAt(child, ctx, depth+1)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		// Empty OR is vacuously false.
		return false, nil
	case model.GroupOperatorNot:
		if len(group.Conditions) != 1 {
			return false, errors.NewStructureError(fmt.Sprintf("depth %d", depth),
				fmt.Sprintf("NOT group must have exactly one child, got %d", len(group.Conditions)))
		}
		matched, err := evaluateGroupAt(group.Conditions[0], ctx, depth+1)
		if err != nil {
			return false, err
		}
		return !matched, nil
	default:
		return false, errors.NewStructureError(fmt.Sprintf("depth %d", depth),
			fmt.Sprintf("unknown group operator '%s'", group.Operator))
	}
}
