package services

import (
	"testing"
	"time"

	"casino-collector/models"
	"casino-collector/utils"
)

func casinoWith(name string, providers []string, jurisdictions []string, ratings []float64) *models.CasinoData {
	c := &models.CasinoData{
		Name:     name,
		URL:      "https://" + name + ".example.com",
		Licenses: []models.License{},
		Reviews:  []models.Review{},
	}
	for _, p := range providers {
		c.Providers = append(c.Providers, models.Provider{Name: p})
	}
	for _, j := range jurisdictions {
		c.Licenses = append(c.Licenses, models.License{Authority: j + " Authority", Jurisdiction: j})
	}
	for _, r := range ratings {
		c.Reviews = append(c.Reviews, models.Review{Source: "X", Rating: r})
	}
	return c
}

func TestGenerateTwoRecordScenario(t *testing.T) {
	a := casinoWith("a", []string{"NetEnt"}, []string{"Malta"}, []float64{4.0})
	b := casinoWith("b", nil, nil, nil)

	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate([]*models.CasinoData{a, b})

	if r.TotalCasinos != 2 {
		t.Errorf("TotalCasinos: got %d, want 2", r.TotalCasinos)
	}
	if r.TotalLicenses != 1 {
		t.Errorf("TotalLicenses: got %d, want 1", r.TotalLicenses)
	}
	if r.DistinctProviders != 1 {
		t.Errorf("DistinctProviders: got %d, want 1", r.DistinctProviders)
	}
	// The review-less record contributes 0, so (4.0+0)/2.
	if r.AverageRating != 2.0 {
		t.Errorf("AverageRating: got %.2f, want 2.0", r.AverageRating)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil)

	if r.TotalCasinos != 0 || r.TotalLicenses != 0 || r.DistinctProviders != 0 {
		t.Error("empty input should yield zero counts")
	}
	if r.AverageRating != 0 || r.AverageRTP != 0 || r.AverageCompleteness != 0 {
		t.Error("empty input should yield zero averages")
	}
	if len(r.TopProviders) != 0 || len(r.TopJurisdictions) != 0 || len(r.RecentCollections) != 0 {
		t.Error("empty input should yield empty rankings")
	}
}

func TestAverageRTPZeroFill(t *testing.T) {
	a := casinoWith("a", nil, nil, nil)
	a.RTPInfo = []models.RTPEntry{{RTPPercentage: 96.0}, {RTPPercentage: 94.0}}
	b := casinoWith("b", nil, nil, nil)

	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate([]*models.CasinoData{a, b})

	// a averages 95, b contributes 0: (95+0)/2.
	if r.AverageRTP != 47.5 {
		t.Errorf("AverageRTP: got %.2f, want 47.5", r.AverageRTP)
	}
}

func TestTopProvidersRanking(t *testing.T) {
	casinos := []*models.CasinoData{
		casinoWith("a", []string{"NetEnt", "Microgaming"}, nil, nil),
		casinoWith("b", []string{"NetEnt", "Microgaming"}, nil, nil),
		casinoWith("c", []string{"NetEnt"}, nil, nil),
	}

	top := TopProviders(casinos, 2)
	if len(top) != 2 {
		t.Fatalf("len: got %d, want 2", len(top))
	}
	if top[0].Name != "NetEnt" || top[0].Count != 3 {
		t.Errorf("top[0]: got %q/%d, want NetEnt/3", top[0].Name, top[0].Count)
	}
	if top[1].Name != "Microgaming" || top[1].Count != 2 {
		t.Errorf("top[1]: got %q/%d, want Microgaming/2", top[1].Name, top[1].Count)
	}
}

func TestTopProvidersCasinoLevelMembership(t *testing.T) {
	// A casino listing the same provider twice still counts once.
	c := casinoWith("a", []string{"NetEnt", "NetEnt"}, nil, nil)

	top := TopProviders([]*models.CasinoData{c}, 5)
	if len(top) != 1 || top[0].Count != 1 {
		t.Errorf("duplicate provider within one casino should count once, got %+v", top)
	}
}

func TestTopProvidersTieBreakFirstSeen(t *testing.T) {
	casinos := []*models.CasinoData{
		casinoWith("a", []string{"Playtech", "Yggdrasil"}, nil, nil),
		casinoWith("b", []string{"Yggdrasil", "Playtech"}, nil, nil),
	}

	top := TopProviders(casinos, 5)
	if len(top) != 2 {
		t.Fatalf("len: got %d, want 2", len(top))
	}
	if top[0].Name != "Playtech" {
		t.Errorf("tie should break by first-seen order, got %q first", top[0].Name)
	}
}

func TestTopProvidersCaseSensitive(t *testing.T) {
	casinos := []*models.CasinoData{
		casinoWith("a", []string{"NetEnt"}, nil, nil),
		casinoWith("b", []string{"netent"}, nil, nil),
	}

	top := TopProviders(casinos, 5)
	if len(top) != 2 {
		t.Errorf("provider dedup must be case-sensitive, got %+v", top)
	}
}

func TestTopJurisdictionsLicenseLevel(t *testing.T) {
	// Two licenses in the same jurisdiction count twice.
	casinos := []*models.CasinoData{
		casinoWith("a", nil, []string{"Malta", "Malta"}, nil),
		casinoWith("b", nil, []string{"Curacao"}, nil),
	}

	top := TopJurisdictions(casinos, 5)
	if len(top) != 2 {
		t.Fatalf("len: got %d, want 2", len(top))
	}
	if top[0].Name != "Malta" || top[0].Count != 2 {
		t.Errorf("top[0]: got %q/%d, want Malta/2", top[0].Name, top[0].Count)
	}
}

func TestTopNNeverExceedsN(t *testing.T) {
	casinos := []*models.CasinoData{
		casinoWith("a", []string{"P1", "P2", "P3", "P4"}, nil, nil),
	}
	if got := len(TopProviders(casinos, 2)); got > 2 {
		t.Errorf("TopProviders(2) returned %d entries", got)
	}
	if got := len(TopProviders(casinos, 0)); got != 0 {
		t.Errorf("TopProviders(0) returned %d entries", got)
	}
}

func TestTopCountsNonIncreasing(t *testing.T) {
	casinos := []*models.CasinoData{
		casinoWith("a", []string{"P1", "P2"}, nil, nil),
		casinoWith("b", []string{"P1", "P3"}, nil, nil),
		casinoWith("c", []string{"P1", "P2"}, nil, nil),
	}
	top := TopProviders(casinos, 10)
	for i := 1; i < len(top); i++ {
		if top[i].Count > top[i-1].Count {
			t.Errorf("counts must be non-increasing: %+v", top)
		}
	}
}

func TestRecentCollections(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := casinoWith("a", nil, nil, nil)
	a.CollectionDate = base
	b := casinoWith("b", nil, nil, nil)
	b.CollectionDate = base.Add(2 * time.Hour)
	c := casinoWith("c", nil, nil, nil)
	c.CollectionDate = base.Add(time.Hour)

	recent := RecentCollections([]*models.CasinoData{a, b, c}, 2)
	if len(recent) != 2 {
		t.Fatalf("len: got %d, want 2", len(recent))
	}
	if recent[0].Name != "b" || recent[1].Name != "c" {
		t.Errorf("order: got [%s %s], want [b c]", recent[0].Name, recent[1].Name)
	}
}

func TestRecentCollectionsStableTies(t *testing.T) {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := casinoWith("a", nil, nil, nil)
	a.CollectionDate = ts
	b := casinoWith("b", nil, nil, nil)
	b.CollectionDate = ts

	input := []*models.CasinoData{a, b}
	recent := RecentCollections(input, 5)
	if recent[0].Name != "a" || recent[1].Name != "b" {
		t.Errorf("equal timestamps should keep original order, got [%s %s]", recent[0].Name, recent[1].Name)
	}
	if input[0].Name != "a" {
		t.Error("RecentCollections must not reorder its input")
	}
}

func TestAverageCompleteness(t *testing.T) {
	a := casinoWith("a", nil, nil, nil)
	a.DataCompletenessScore = 80
	b := casinoWith("b", nil, nil, nil)
	b.DataCompletenessScore = 40

	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate([]*models.CasinoData{a, b})
	if r.AverageCompleteness != 60 {
		t.Errorf("AverageCompleteness: got %.1f, want 60", r.AverageCompleteness)
	}
}
