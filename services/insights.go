package services

import (
	"fmt"
	"sort"
	"strings"

	"casino-collector/models"
	"casino-collector/utils"
)

// NameCount pairs a provider or jurisdiction name with its occurrence
// count in a ranked listing.
type NameCount struct {
	Name  string
	Count int
}

// InsightReport holds the aggregate statistics computed over a casino
// collection.
type InsightReport struct {
	TotalCasinos        int
	TotalLicenses       int
	DistinctProviders   int
	AverageRating       float64
	AverageRTP          float64
	AverageCompleteness float64
	TopProviders        []NameCount
	TopJurisdictions    []NameCount
	RecentCollections   []*models.CasinoData
}

// InsightService derives aggregate views from a validated casino
// collection. Every method treats its input as read-only, handles the
// empty collection, and never fails.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the full report over the collection. Averages follow
// the zero-fill policy: a casino with no reviews (or no RTP entries)
// contributes 0 to the fleet mean rather than being excluded — the
// denominator is always the total casino count.
func (s *InsightService) Generate(casinos []*models.CasinoData) *InsightReport {
	report := &InsightReport{
		TopProviders:      []NameCount{},
		TopJurisdictions:  []NameCount{},
		RecentCollections: []*models.CasinoData{},
	}

	if len(casinos) == 0 {
		return report
	}

	report.TotalCasinos = len(casinos)

	var ratingSum, rtpSum, completenessSum float64
	seen := make(map[string]struct{})

	for _, c := range casinos {
		report.TotalLicenses += len(c.Licenses)
		for _, p := range c.Providers {
			if _, ok := seen[p.Name]; !ok {
				seen[p.Name] = struct{}{}
				report.DistinctProviders++
			}
		}
		ratingSum += c.AverageReviewRating()
		rtpSum += c.AverageRTP()
		completenessSum += c.DataCompletenessScore
	}

	n := float64(len(casinos))
	report.AverageRating = ratingSum / n
	report.AverageRTP = rtpSum / n
	report.AverageCompleteness = completenessSum / n

	report.TopProviders = TopProviders(casinos, 5)
	report.TopJurisdictions = TopJurisdictions(casinos, 5)
	report.RecentCollections = RecentCollections(casinos, 5)

	return report
}

// TopProviders ranks provider names by how many casinos list them (one
// count per casino, no matter how many games the provider supplies).
// Ordering is by count descending with ties broken by first appearance
// in the input; at most n entries are returned.
func TopProviders(casinos []*models.CasinoData, n int) []NameCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range casinos {
		inCasino := make(map[string]struct{})
		for _, p := range c.Providers {
			if _, dup := inCasino[p.Name]; dup {
				continue
			}
			inCasino[p.Name] = struct{}{}
			if _, ok := counts[p.Name]; !ok {
				order = append(order, p.Name)
			}
			counts[p.Name]++
		}
	}

	return rankNames(counts, order, n)
}

// TopJurisdictions ranks license jurisdictions by license-level count: a
// casino holding two licenses in the same jurisdiction counts twice.
// Ordering matches TopProviders.
func TopJurisdictions(casinos []*models.CasinoData, n int) []NameCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range casinos {
		for _, lic := range c.Licenses {
			if _, ok := counts[lic.Jurisdiction]; !ok {
				order = append(order, lic.Jurisdiction)
			}
			counts[lic.Jurisdiction]++
		}
	}

	return rankNames(counts, order, n)
}

func rankNames(counts map[string]int, order []string, n int) []NameCount {
	ranked := make([]NameCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, NameCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RecentCollections returns the n most recently collected records,
// newest first. Equal timestamps keep their original relative order.
// The input slice is not modified.
func RecentCollections(casinos []*models.CasinoData, n int) []*models.CasinoData {
	sorted := make([]*models.CasinoData, len(casinos))
	copy(sorted, casinos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CollectionDate.After(sorted[j].CollectionDate)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Print renders the report to the terminal.
func (s *InsightService) Print(r *InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎰 CASINO COLLECTION INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Casinos analyzed     : \033[1m%d\033[0m\n", r.TotalCasinos)
	fmt.Printf("  Licenses found       : \033[1m%d\033[0m\n", r.TotalLicenses)
	fmt.Printf("  Distinct providers   : \033[1m%d\033[0m\n", r.DistinctProviders)
	fmt.Printf("  Average completeness : \033[1;32m%.1f%%\033[0m\n", r.AverageCompleteness)
	fmt.Printf("  Average rating       : \033[1;32m%.2f ★\033[0m\n", r.AverageRating)
	fmt.Printf("  Average RTP          : \033[1;32m%.2f%%\033[0m\n", r.AverageRTP)
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Providers (by casino count)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopProviders) == 0 {
		fmt.Printf("  No provider data\n")
	} else {
		for i, p := range r.TopProviders {
			bar := strings.Repeat("█", p.Count)
			fmt.Printf("  \033[1m%d.\033[0m %-24s %s (%d)\n", i+1, truncate(p.Name, 22), bar, p.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Jurisdictions (by license count)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopJurisdictions) == 0 {
		fmt.Printf("  No license data\n")
	} else {
		for i, j := range r.TopJurisdictions {
			bar := strings.Repeat("█", j.Count)
			fmt.Printf("  \033[1m%d.\033[0m %-24s %s (%d)\n", i+1, truncate(j.Name, 22), bar, j.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Most Recent Collections\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RecentCollections) == 0 {
		fmt.Printf("  No records\n")
	} else {
		for _, c := range r.RecentCollections {
			fmt.Printf("  %-32s %s  \033[1;32m%.1f%%\033[0m\n",
				truncate(c.Name, 30),
				c.CollectionDate.Format("2006-01-02 15:04"),
				c.DataCompletenessScore)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
