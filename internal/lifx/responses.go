package lifx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wheelibin/lumen/internal/models"
)

// LightsResponse is what the lights endpoints return: either a single light
// or a list of lights, exactly one of the two is set
type LightsResponse struct {
	Single *models.Light
	List   []models.Light
}

// IsList reports whether the service answered with a list
func (r LightsResponse) IsList() bool {
	return r.Single == nil
}

// All returns the lights of the response regardless of its shape
func (r LightsResponse) All() []models.Light {
	if r.Single != nil {
		return []models.Light{*r.Single}
	}
	return r.List
}

func (r *LightsResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body: %w", ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '{':
		light := models.Light{}
		if err := json.Unmarshal(trimmed, &light); err != nil {
			return fmt.Errorf("%v: %w", err, ErrMalformedResponse)
		}
		if err := validate(light); err != nil {
			return err
		}
		*r = LightsResponse{Single: &light}

	case '[':
		lights := []models.Light{}
		if err := json.Unmarshal(trimmed, &lights); err != nil {
			return fmt.Errorf("%v: %w", err, ErrMalformedResponse)
		}
		for _, light := range lights {
			if err := validate(light); err != nil {
				return err
			}
		}
		*r = LightsResponse{List: lights}

	default:
		return fmt.Errorf("expected a light or a list of lights: %w", ErrMalformedResponse)
	}

	return nil
}

func validate(light models.Light) error {
	if light.ID == "" {
		return fmt.Errorf("light without id: %w", ErrMalformedResponse)
	}
	return nil
}
