package main

import (
	"time"

	"casino-collector/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// sampleCasinos returns a small fleet of hand-written records covering
// the full data model, used by the demo command to exercise the pipeline
// without network access.
func sampleCasinos() []*models.CasinoData {
	now := time.Now().UTC()

	grand := &models.CasinoData{
		Name:        "Grand Fortune Casino",
		URL:         "https://grand-fortune.example.com",
		Description: "Established online casino with a large slots catalogue.",
		Licenses: []models.License{
			{
				Authority:     "Malta Gaming Authority",
				LicenseNumber: "MGA/B2C/123/2020",
				Jurisdiction:  "Malta",
				Verified:      true,
			},
			{
				Authority:    "UK Gambling Commission",
				Jurisdiction: "United Kingdom",
				Verified:     true,
			},
		},
		RTPInfo: []models.RTPEntry{
			{GameName: "Starburst", RTPPercentage: 96.1, GameCategory: "Slots", Provider: "NetEnt"},
			{GameName: "Book of Dead", RTPPercentage: 94.25, GameCategory: "Slots", Provider: "Play'n GO"},
		},
		Fairness: []models.FairnessCert{
			{TestingAgency: "eCOGRA", Certification: "Safe & Fair", Certified: true, LastAuditDate: timePtr(now.AddDate(0, -3, 0))},
		},
		Providers: []models.Provider{
			{Name: "NetEnt", GamesCount: intPtr(200), PopularGames: []string{"Starburst", "Gonzo's Quest"}},
			{Name: "Microgaming", GamesCount: intPtr(350), PopularGames: []string{"Mega Moolah"}},
			{Name: "Play'n GO", PopularGames: []string{}},
		},
		Security: &models.SecurityInfo{
			SSLCertificate:           true,
			EncryptionType:           "256-bit SSL",
			TwoFactorAuth:            true,
			ResponsibleGamblingTools: []string{"Self-Exclusion", "Deposit Limit"},
			DataProtectionCompliance: []string{"GDPR"},
		},
		WithdrawalMethods: []models.WithdrawalMethod{
			{Method: "Visa", MinAmount: floatPtr(10), MaxAmount: floatPtr(5000), ProcessingTime: "1-3 days", Fees: "Free"},
			{Method: "Skrill", MinAmount: floatPtr(5), MaxAmount: floatPtr(10000), ProcessingTime: "Instant", Fees: "Free"},
		},
		Reviews: []models.Review{
			{Source: "TrustReviews", Rating: 4.5, ReviewCount: intPtr(1200), PositiveAspects: []string{"fast payouts"}, NegativeAspects: []string{"slow support"}, ReviewDate: timePtr(now.AddDate(0, -1, 0))},
			{Source: "CasinoGuide", Rating: 4.0, PositiveAspects: []string{}, NegativeAspects: []string{}},
		},
		CollectionDate: now,
	}

	luckySpin := &models.CasinoData{
		Name:        "Lucky Spin Palace",
		URL:         "https://lucky-spin.example.com",
		Description: "Crypto-friendly casino with live dealer tables.",
		Licenses: []models.License{
			{Authority: "Curacao eGaming", Jurisdiction: "Curacao"},
		},
		RTPInfo: []models.RTPEntry{
			{GameName: "Blackjack Classic", RTPPercentage: 99.5, GameCategory: "Table Games", Provider: "Evolution Gaming"},
		},
		Fairness:  []models.FairnessCert{},
		Providers: []models.Provider{
			{Name: "NetEnt", PopularGames: []string{}},
			{Name: "Evolution Gaming", PopularGames: []string{"Lightning Roulette"}},
		},
		Security: &models.SecurityInfo{
			SSLCertificate:           true,
			ResponsibleGamblingTools: []string{},
			DataProtectionCompliance: []string{},
		},
		WithdrawalMethods: []models.WithdrawalMethod{
			{Method: "Bitcoin", ProcessingTime: "Instant"},
		},
		Reviews: []models.Review{
			{Source: "Website", Rating: 3.8, PositiveAspects: []string{}, NegativeAspects: []string{}},
		},
		CollectionDate: now.Add(-30 * time.Minute),
	}

	nightOwl := &models.CasinoData{
		Name:              "Night Owl Casino",
		URL:               "https://night-owl.example.com",
		Licenses:          []models.License{{Authority: "Malta Gaming Authority", Jurisdiction: "Malta"}},
		RTPInfo:           []models.RTPEntry{},
		Fairness:          []models.FairnessCert{},
		Providers:         []models.Provider{{Name: "NetEnt", PopularGames: []string{}}},
		WithdrawalMethods: []models.WithdrawalMethod{},
		Reviews:           []models.Review{},
		CollectionDate:    now.Add(-time.Hour),
	}

	return []*models.CasinoData{grand, luckySpin, nightOwl}
}
