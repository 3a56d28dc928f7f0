package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"casino-collector/models"
)

// Heuristic keyword tables. Extraction is best-effort pattern matching
// over visible page text; a category that matches nothing simply stays
// empty and lowers the completeness score.
var (
	licenseAuthorities = []struct {
		keywords     []string
		authority    string
		jurisdiction string
	}{
		{[]string{"malta gaming", "mga"}, "Malta Gaming Authority", "Malta"},
		{[]string{"uk gambling commission", "ukgc"}, "UK Gambling Commission", "United Kingdom"},
		{[]string{"curacao", "curaçao"}, "Curacao eGaming", "Curacao"},
		{[]string{"gibraltar"}, "Gibraltar Regulatory Authority", "Gibraltar"},
		{[]string{"kahnawake"}, "Kahnawake Gaming Commission", "Kahnawake"},
		{[]string{"spelinspektionen", "swedish gambling"}, "Spelinspektionen", "Sweden"},
	}

	testingAgencies = []string{
		"eCOGRA", "iTech Labs", "GLI", "Gaming Laboratories",
		"BMM Testlabs", "TST", "Technical Systems Testing",
	}

	knownProviders = []string{
		"NetEnt", "Microgaming", "Playtech", "Evolution Gaming",
		"Pragmatic Play", "Play'n GO", "Yggdrasil", "Betsoft",
		"IGT", "Novomatic", "EGT", "Quickspin", "Red Tiger",
	}

	withdrawalMethods = []string{
		"Visa", "Mastercard", "PayPal", "Skrill", "Neteller",
		"Bank Transfer", "Bitcoin", "Cryptocurrency", "ecoPayz",
		"Paysafecard", "Trustly", "Zimpler",
	}

	responsibleGamblingTools = []string{
		"self-exclusion", "deposit limit", "time limit",
		"reality check", "cool-off", "self-assessment",
	}

	percentRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	ratingRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d(?:\.\d+)?)\s*(?:out of|/)\s*5`),
		regexp.MustCompile(`(?i)(\d(?:\.\d+)?)\s*stars?`),
	}
)

// ExtractCasino builds an unscored CasinoData record from a parsed page.
// The caller validates and scores the result.
func ExtractCasino(doc *goquery.Document, pageURL string) (*models.CasinoData, error) {
	text := doc.Text()
	lower := strings.ToLower(text)

	casino, err := models.NewCasinoData(extractName(doc, pageURL), pageURL)
	if err != nil {
		return nil, err
	}

	casino.Description = extractDescription(doc)
	casino.Licenses = extractLicenses(lower)
	casino.RTPInfo = extractRTP(text, lower)
	casino.Fairness = extractFairness(lower)
	casino.Providers = extractProviders(lower)
	casino.Security = extractSecurity(pageURL, lower)
	casino.WithdrawalMethods = extractWithdrawals(lower)
	casino.Reviews = extractReviews(text)

	return casino, nil
}

// extractName takes the page title up to the first separator, falling
// back to a title-cased domain name.
func extractName(doc *goquery.Document, pageURL string) string {
	title := normalizeText(doc.Find("title").First().Text())
	if title != "" {
		for _, sep := range []string{"|", "-", "–"} {
			if idx := strings.Index(title, sep); idx > 0 {
				title = title[:idx]
				break
			}
		}
		return strings.TrimSpace(title)
	}

	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Host, "www.")
		host = strings.TrimSuffix(host, ".com")
		return titleCase(host)
	}
	return pageURL
}

func extractDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc := normalizeText(content); desc != "" {
			return desc
		}
	}

	var desc string
	doc.Find("main p, div.content p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		desc = normalizeText(sel.Text())
		return desc == ""
	})
	return truncateRunes(desc, 500)
}

// truncateRunes caps s at max bytes without splitting a multibyte rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func extractLicenses(lower string) []models.License {
	licenses := []models.License{}
	for _, entry := range licenseAuthorities {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				licenses = append(licenses, models.License{
					Authority:    entry.authority,
					Jurisdiction: entry.jurisdiction,
				})
				break
			}
		}
	}
	return licenses
}

// extractRTP collects percentages mentioned near "rtp" wording and keeps
// those in the plausible 80-100 range.
func extractRTP(text, lower string) []models.RTPEntry {
	entries := []models.RTPEntry{}
	if !strings.Contains(lower, "rtp") && !strings.Contains(lower, "return to player") {
		return entries
	}

	for _, match := range percentRegexp.FindAllStringSubmatch(text, 20) {
		v, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if v >= 80 && v <= 100 {
			entries = append(entries, models.RTPEntry{
				RTPPercentage: v,
				GameCategory:  "General",
			})
		}
		if len(entries) >= 5 {
			break
		}
	}
	return entries
}

func extractFairness(lower string) []models.FairnessCert {
	certs := []models.FairnessCert{}
	for _, agency := range testingAgencies {
		if strings.Contains(lower, strings.ToLower(agency)) {
			certs = append(certs, models.FairnessCert{
				TestingAgency: agency,
				Certified:     true,
			})
		}
	}
	return certs
}

func extractProviders(lower string) []models.Provider {
	providers := []models.Provider{}
	for _, name := range knownProviders {
		if strings.Contains(lower, strings.ToLower(name)) {
			providers = append(providers, models.Provider{
				Name:         name,
				PopularGames: []string{},
			})
		}
	}
	return providers
}

func extractSecurity(pageURL, lower string) *models.SecurityInfo {
	sec := &models.SecurityInfo{
		SSLCertificate:           strings.HasPrefix(pageURL, "https://"),
		ResponsibleGamblingTools: []string{},
		DataProtectionCompliance: []string{},
	}

	switch {
	case strings.Contains(lower, "256-bit"):
		sec.EncryptionType = "256-bit SSL"
	case strings.Contains(lower, "128-bit"):
		sec.EncryptionType = "128-bit SSL"
	case strings.Contains(lower, "ssl"):
		sec.EncryptionType = "SSL/TLS"
	}

	if strings.Contains(lower, "two-factor") || strings.Contains(lower, "2fa") {
		sec.TwoFactorAuth = true
	}
	for _, tool := range responsibleGamblingTools {
		if strings.Contains(lower, tool) {
			sec.ResponsibleGamblingTools = append(sec.ResponsibleGamblingTools, titleCase(tool))
		}
	}
	if strings.Contains(lower, "gdpr") {
		sec.DataProtectionCompliance = append(sec.DataProtectionCompliance, "GDPR")
	}

	if !sec.SSLCertificate {
		return nil
	}
	return sec
}

func extractWithdrawals(lower string) []models.WithdrawalMethod {
	methods := []models.WithdrawalMethod{}
	for _, name := range withdrawalMethods {
		if strings.Contains(lower, strings.ToLower(name)) {
			methods = append(methods, models.WithdrawalMethod{
				Method:         name,
				ProcessingTime: "Varies",
			})
		}
	}
	return methods
}

func extractReviews(text string) []models.Review {
	reviews := []models.Review{}
	now := time.Now().UTC()

	for _, re := range ratingRegexps {
		for _, match := range re.FindAllStringSubmatch(text, 3) {
			v, err := strconv.ParseFloat(match[1], 64)
			if err != nil || v < 0 || v > 5 {
				continue
			}
			reviews = append(reviews, models.Review{
				Source:          "Website",
				Rating:          v,
				PositiveAspects: []string{},
				NegativeAspects: []string{},
				ReviewDate:      &now,
			})
		}
	}
	return reviews
}

// normalizeText strips leading/trailing whitespace and collapses internal
// whitespace.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
