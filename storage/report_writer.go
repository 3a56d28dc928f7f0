package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"casino-collector/models"
	"casino-collector/services"
)

// ReportWriter generates the human-readable summary report for a casino
// collection.
type ReportWriter struct {
	outputDir string
}

// NewReportWriter creates the output directory if needed.
func NewReportWriter(outputDir string) (*ReportWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}
	return &ReportWriter{outputDir: outputDir}, nil
}

// Write renders the summary for the collection to filename (timestamped
// default when empty) and returns the full path.
func (r *ReportWriter) Write(casinos []*models.CasinoData, report *services.InsightReport, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("casino_summary_%s.txt", time.Now().Format("20060102_150405"))
	}
	path := filepath.Join(r.outputDir, filename)

	var b strings.Builder
	wide := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	fmt.Fprintf(&b, "%s\nCASINO INTELLIGENCE COLLECTOR - SUMMARY REPORT\n%s\n\n", wide, wide)
	fmt.Fprintf(&b, "Report Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Casinos Analyzed: %d\n\n", report.TotalCasinos)

	fmt.Fprintf(&b, "%s\nOVERALL STATISTICS\n%s\n", thin, thin)
	fmt.Fprintf(&b, "Average Data Completeness: %.1f%%\n", report.AverageCompleteness)
	fmt.Fprintf(&b, "Total Licenses Found: %d\n", report.TotalLicenses)
	fmt.Fprintf(&b, "Distinct Providers: %d\n", report.DistinctProviders)
	fmt.Fprintf(&b, "Average Rating: %.2f/5.0\n", report.AverageRating)
	fmt.Fprintf(&b, "Average RTP: %.2f%%\n", report.AverageRTP)

	var withSSL, with2FA int
	for _, c := range casinos {
		if c.Security != nil && c.Security.SSLCertificate {
			withSSL++
		}
		if c.Security != nil && c.Security.TwoFactorAuth {
			with2FA++
		}
	}
	fmt.Fprintf(&b, "Casinos with SSL: %d/%d\n", withSSL, len(casinos))
	fmt.Fprintf(&b, "Casinos with 2FA: %d/%d\n\n", with2FA, len(casinos))

	fmt.Fprintf(&b, "%s\nTOP PROVIDERS\n%s\n", thin, thin)
	if len(report.TopProviders) == 0 {
		b.WriteString("No provider data\n")
	}
	for i, p := range report.TopProviders {
		fmt.Fprintf(&b, "%d. %s (%d casinos)\n", i+1, p.Name, p.Count)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\nTOP JURISDICTIONS\n%s\n", thin, thin)
	if len(report.TopJurisdictions) == 0 {
		b.WriteString("No license data\n")
	}
	for i, j := range report.TopJurisdictions {
		fmt.Fprintf(&b, "%d. %s (%d licenses)\n", i+1, j.Name, j.Count)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\nINDIVIDUAL CASINO DETAILS\n%s\n\n", thin, thin)
	for _, c := range casinos {
		fmt.Fprintf(&b, "Casino: %s\n", c.Name)
		fmt.Fprintf(&b, "URL: %s\n", c.URL)
		fmt.Fprintf(&b, "Completeness: %.1f%%\n", c.DataCompletenessScore)
		fmt.Fprintf(&b, "Licenses: %d\n", len(c.Licenses))
		fmt.Fprintf(&b, "Providers: %d\n", len(c.Providers))
		fmt.Fprintf(&b, "Withdrawal Methods: %d\n", len(c.WithdrawalMethods))
		fmt.Fprintf(&b, "Reviews: %d\n\n", len(c.Reviews))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("report: write %q: %w", path, err)
	}
	return path, nil
}
