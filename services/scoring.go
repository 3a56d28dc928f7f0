package services

import (
	"math"
	"strings"

	"casino-collector/models"
)

// Completeness weights. They sum to exactly 100: the baseline covers the
// two required fields, the description adds 5, and each of the seven data
// categories adds 12 when populated. Presence is all that counts — one
// license scores the same as ten, and a partially filled SecurityInfo
// still counts as present.
const (
	weightBaseline    = 11.0
	weightDescription = 5.0
	weightCategory    = 12.0
)

// CompletenessScore computes the 0-100 data-completeness score for one
// record. It is a pure function of field population: same input, same
// score, regardless of entry content. The result is rounded to one
// decimal place.
func CompletenessScore(c *models.CasinoData) float64 {
	score := weightBaseline

	if strings.TrimSpace(c.Description) != "" {
		score += weightDescription
	}
	if len(c.Licenses) > 0 {
		score += weightCategory
	}
	if len(c.RTPInfo) > 0 {
		score += weightCategory
	}
	if len(c.Fairness) > 0 {
		score += weightCategory
	}
	if len(c.Providers) > 0 {
		score += weightCategory
	}
	if c.Security != nil {
		score += weightCategory
	}
	if len(c.WithdrawalMethods) > 0 {
		score += weightCategory
	}
	if len(c.Reviews) > 0 {
		score += weightCategory
	}

	return math.Round(score*10) / 10
}

// Finalize stamps the record with its current completeness score. This is
// the only sanctioned mutation after construction; callers treat the
// record as read-only afterwards.
func Finalize(c *models.CasinoData) {
	c.DataCompletenessScore = CompletenessScore(c)
}
