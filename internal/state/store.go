package state

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/wheelibin/lumen/internal/color"
	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/models"
)

var ErrUnknownLight = errors.New("light not in cached collection")

// Store holds the cached lights and the tag groups derived from them.
//
// Light positions are stable between full replacements, outbound messages
// address lights by index. Tag groups are derived once and kept until
// InvalidateTags is called.
type Store struct {
	mu          sync.RWMutex
	lights      []models.Light
	tags        []models.TagGroup
	tagsDerived bool
}

func NewStore() *Store {
	return &Store{}
}

// Lights returns a copy of the cached lights
func (s *Store) Lights() []models.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Light(nil), s.lights...)
}

// Tags returns a copy of the cached tag groups
func (s *Store) Tags() []models.TagGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TagGroup(nil), s.tags...)
}

// ReplaceAll replaces the light collection, tags are derived only on the first
// replacement after creation or InvalidateTags, even when none are found.
// Reports whether tags were derived.
func (s *Store) ReplaceAll(lights []models.Light) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lights = append([]models.Light(nil), lights...)

	if s.tagsDerived {
		return false
	}
	s.tags = DeriveTags(s.lights)
	s.tagsDerived = true
	return true
}

// MergeOne replaces the cached light with the same id in place and returns its index
func (s *Store) MergeOne(light models.Light) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(light)
}

// MergeTagGroup merges every light returned for a tag group. The indexes of
// the merged lights are returned in response order; unknown ids are skipped
// and reported in the error.
func (s *Store) MergeTagGroup(lights []models.Light) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := []int{}
	var errs []error
	for _, light := range lights {
		i, err := s.merge(light)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		indexes = append(indexes, i)
	}

	return indexes, errors.Join(errs...)
}

// InvalidateTags clears the tag cache so the next full replacement derives them again
func (s *Store) InvalidateTags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = nil
	s.tagsDerived = false
}

func (s *Store) merge(light models.Light) (int, error) {
	_, i, found := lo.FindIndexOf(s.lights, func(l models.Light) bool { return l.ID == light.ID })
	if !found {
		return -1, fmt.Errorf("merging light (%s): %w", light.ID, ErrUnknownLight)
	}
	s.lights[i] = light
	return i, nil
}

// DeriveTags builds the tag groups in first seen order, skipping reserved tags
func DeriveTags(lights []models.Light) []models.TagGroup {
	tags := []models.TagGroup{}
	seen := map[string]bool{}

	for _, light := range lights {
		for _, tag := range light.Tags {
			if seen[tag] || strings.HasPrefix(tag, constants.ReservedTagPrefix) {
				continue
			}
			seen[tag] = true
			tags = append(tags, models.TagGroup{
				Label:               tag,
				RepresentativeColor: color.ForLight(light),
			})
		}
	}

	return tags
}
