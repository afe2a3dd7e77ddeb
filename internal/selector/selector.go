package selector

import (
	"errors"
	"fmt"

	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/models"
)

var ErrOutOfRange = errors.New("selector index out of range")

// Resolve returns the token the lighting service uses to address the target
func Resolve(target models.Target, lights []models.Light, tags []models.TagGroup) (string, error) {
	switch target.Type {
	case models.TargetAll:
		return constants.SelectorAll, nil

	case models.TargetLight:
		if target.Index < 0 || target.Index >= len(lights) {
			return "", fmt.Errorf("light %d of %d: %w", target.Index, len(lights), ErrOutOfRange)
		}
		return lights[target.Index].ID, nil

	case models.TargetTag:
		if target.Index < 0 || target.Index >= len(tags) {
			return "", fmt.Errorf("tag %d of %d: %w", target.Index, len(tags), ErrOutOfRange)
		}
		return constants.SelectorTagPrefix + tags[target.Index].Label, nil
	}

	return "", fmt.Errorf("unknown target type %q", target.Type)
}
