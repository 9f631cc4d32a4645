package selection

import (
	"math"
	"sort"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// exhaustiveLimit caps the candidate count for full subset enumeration;
// beyond it the selector switches to greedy seeding plus 2-opt swaps.
const exhaustiveLimit = 12

// chooseLow picks the low-priority subset that maximizes the aggregate
// score within the residual capacity left after guaranteed cargo.
func (s *Selector) chooseLow(
	flight *planning.Flight,
	low []*Candidate,
	usedWeight, usedVolume float64,
) []*Candidate {
	if len(low) == 0 {
		return nil
	}
	if len(low) <= exhaustiveLimit {
		return s.exhaustive(flight, low, usedWeight, usedVolume)
	}
	return s.greedyTwoOpt(flight, low, usedWeight, usedVolume)
}

// subsetScore is the aggregate value of boarding a low-priority subset.
// The utilization term peaks when the tighter capacity axis lands
// between 60 and 90 percent and falls off linearly outside that band,
// discouraging both under-fill and bin fragmentation.
func (s *Selector) subsetScore(
	flight *planning.Flight,
	subset []*Candidate,
	usedWeight, usedVolume float64,
) float64 {
	densitySum := 0.0
	prioritySum := 0.0
	dwellSum := 0.0
	for _, candidate := range subset {
		densitySum += candidate.RevenueDensity
		prioritySum += candidate.Cargo.Priority.Weight()
		dwellSum += candidate.DwellHours
	}

	weightUtil := (usedWeight + sumWeight(subset)) / flight.WeightCapacityKg
	volumeUtil := (usedVolume + sumVolume(subset)) / flight.VolumeCapacityM3
	tighter := math.Max(weightUtil, volumeUtil)

	return s.weights.Density*densitySum +
		s.weights.Priority*prioritySum +
		s.weights.Utilization*utilizationBand(tighter) -
		s.weights.Dwell*dwellSum
}

// utilizationBand scores a utilization fraction: 1.0 inside [0.6, 0.9],
// linear falloff to 0 at empty and at full.
func utilizationBand(util float64) float64 {
	switch {
	case util >= 0.6 && util <= 0.9:
		return 1.0
	case util < 0.6:
		return util / 0.6
	default:
		return math.Max(0, (1.0-util)/0.1)
	}
}

func (s *Selector) fits(
	flight *planning.Flight,
	subset []*Candidate,
	usedWeight, usedVolume float64,
) bool {
	return usedWeight+sumWeight(subset) <= flight.WeightCapacityKg &&
		usedVolume+sumVolume(subset) <= flight.VolumeCapacityM3
}

// exhaustive enumerates every subset by bitmask. Candidates arrive in
// ascending cargo-id order, so equal-score ties resolve to the lowest
// mask and the result is deterministic.
func (s *Selector) exhaustive(
	flight *planning.Flight,
	low []*Candidate,
	usedWeight, usedVolume float64,
) []*Candidate {
	var best []*Candidate
	bestScore := s.subsetScore(flight, nil, usedWeight, usedVolume)

	subset := make([]*Candidate, 0, len(low))
	for mask := 1; mask < 1<<len(low); mask++ {
		subset = subset[:0]
		for i, candidate := range low {
			if mask&(1<<i) != 0 {
				subset = append(subset, candidate)
			}
		}
		if !s.fits(flight, subset, usedWeight, usedVolume) {
			continue
		}
		if score := s.subsetScore(flight, subset, usedWeight, usedVolume); score > bestScore {
			bestScore = score
			best = append(best[:0], subset...)
		}
	}
	return best
}

// greedyTwoOpt seeds the subset greedily by revenue density and then
// applies pairwise swaps between selected and unselected cargo until no
// swap improves the score.
func (s *Selector) greedyTwoOpt(
	flight *planning.Flight,
	low []*Candidate,
	usedWeight, usedVolume float64,
) []*Candidate {
	byDensity := make([]*Candidate, len(low))
	copy(byDensity, low)
	sort.Slice(byDensity, func(i, j int) bool {
		if byDensity[i].RevenueDensity != byDensity[j].RevenueDensity {
			return byDensity[i].RevenueDensity > byDensity[j].RevenueDensity
		}
		return byDensity[i].Cargo.ID < byDensity[j].Cargo.ID
	})

	selected := make([]*Candidate, 0, len(byDensity))
	for _, candidate := range byDensity {
		trial := append(selected, candidate)
		if s.fits(flight, trial, usedWeight, usedVolume) {
			selected = trial
		}
	}

	score := s.subsetScore(flight, selected, usedWeight, usedVolume)
	improved := true
	for improved {
		improved = false
		for i := 0; i < len(selected) && !improved; i++ {
			for _, candidate := range byDensity {
				if containsCandidate(selected, candidate) {
					continue
				}
				trial := make([]*Candidate, 0, len(selected))
				trial = append(trial, selected[:i]...)
				trial = append(trial, selected[i+1:]...)
				trial = append(trial, candidate)
				if !s.fits(flight, trial, usedWeight, usedVolume) {
					continue
				}
				if trialScore := s.subsetScore(flight, trial, usedWeight, usedVolume); trialScore > score {
					selected = trial
					score = trialScore
					improved = true
					break
				}
			}
		}
	}

	// Canonical boarding order regardless of search path.
	sortByID(selected)
	return selected
}
