package models

import (
	"strings"
	"time"
)

// License holds a single licensing claim found for a casino.
type License struct {
	Authority        string     `json:"authority"`
	LicenseNumber    string     `json:"license_number,omitempty"`
	Jurisdiction     string     `json:"jurisdiction"`
	Verified         bool       `json:"verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
}

// RTPEntry is a return-to-player figure for one game (or a site-wide value).
type RTPEntry struct {
	GameName      string  `json:"game_name,omitempty"`
	RTPPercentage float64 `json:"rtp_percentage"`
	GameCategory  string  `json:"game_category,omitempty"`
	Provider      string  `json:"provider,omitempty"`
}

// FairnessCert records an independent testing-agency certification.
type FairnessCert struct {
	TestingAgency string     `json:"testing_agency"`
	Certification string     `json:"certification,omitempty"`
	Certified     bool       `json:"certified"`
	LastAuditDate *time.Time `json:"last_audit_date,omitempty"`
}

// Provider is a game provider listed by a casino. Name is the identity
// used for deduplication across casinos (exact, case-sensitive match).
type Provider struct {
	Name         string   `json:"name"`
	GamesCount   *int     `json:"games_count,omitempty"`
	PopularGames []string `json:"popular_games"`
}

// SecurityInfo describes the security posture advertised by a casino.
type SecurityInfo struct {
	SSLCertificate           bool     `json:"ssl_certificate"`
	EncryptionType           string   `json:"encryption_type,omitempty"`
	TwoFactorAuth            bool     `json:"two_factor_auth"`
	ResponsibleGamblingTools []string `json:"responsible_gambling_tools"`
	DataProtectionCompliance []string `json:"data_protection_compliance"`
}

// WithdrawalMethod describes one payout option and its limits.
type WithdrawalMethod struct {
	Method         string   `json:"method"`
	MinAmount      *float64 `json:"min_amount,omitempty"`
	MaxAmount      *float64 `json:"max_amount,omitempty"`
	ProcessingTime string   `json:"processing_time,omitempty"`
	Fees           string   `json:"fees,omitempty"`
}

// Review is an aggregated rating from one review source.
type Review struct {
	Source          string     `json:"source"`
	Rating          float64    `json:"rating"`
	ReviewCount     *int       `json:"review_count,omitempty"`
	PositiveAspects []string   `json:"positive_aspects"`
	NegativeAspects []string   `json:"negative_aspects"`
	ReviewDate      *time.Time `json:"review_date,omitempty"`
}

// CasinoData is the complete record collected for one casino. It is
// constructed once per scraped or loaded casino, scored at finalization,
// and treated as read-only by everything downstream.
type CasinoData struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`

	Licenses          []License          `json:"licenses"`
	RTPInfo           []RTPEntry         `json:"rtp_info"`
	Fairness          []FairnessCert     `json:"fairness"`
	Providers         []Provider         `json:"providers"`
	Security          *SecurityInfo      `json:"security"`
	WithdrawalMethods []WithdrawalMethod `json:"withdrawal_methods"`
	Reviews           []Review           `json:"reviews"`

	CollectionDate        time.Time `json:"collection_date"`
	DataCompletenessScore float64   `json:"data_completeness_score"`
}

// NewCasinoData builds a record with both required fields set and every
// list field initialized to an empty slice so the JSON shape stays stable
// ([] rather than null). CollectionDate defaults to the creation instant.
func NewCasinoData(name, url string) (*CasinoData, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" {
		return nil, &ValidationError{Field: "name", Constraint: "must be non-empty"}
	}
	if url == "" {
		return nil, &ValidationError{Field: "url", Constraint: "must be non-empty"}
	}
	return &CasinoData{
		Name:              name,
		URL:               url,
		Licenses:          []License{},
		RTPInfo:           []RTPEntry{},
		Fairness:          []FairnessCert{},
		Providers:         []Provider{},
		WithdrawalMethods: []WithdrawalMethod{},
		Reviews:           []Review{},
		CollectionDate:    time.Now().UTC(),
	}, nil
}

// Validate checks every field invariant. A violating record is never
// handed to the aggregation layer; the first violation found is returned.
func (c *CasinoData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Constraint: "must be non-empty"}
	}
	if strings.TrimSpace(c.URL) == "" {
		return &ValidationError{Field: "url", Constraint: "must be non-empty"}
	}
	for _, rtp := range c.RTPInfo {
		if rtp.RTPPercentage < 0 || rtp.RTPPercentage > 100 {
			return &ValidationError{Field: "rtp_percentage", Constraint: "must be between 0 and 100"}
		}
	}
	for _, p := range c.Providers {
		if p.GamesCount != nil && *p.GamesCount < 0 {
			return &ValidationError{Field: "games_count", Constraint: "must be non-negative"}
		}
	}
	for _, w := range c.WithdrawalMethods {
		if w.MinAmount != nil && *w.MinAmount < 0 {
			return &ValidationError{Field: "min_amount", Constraint: "must be non-negative"}
		}
		if w.MinAmount != nil && w.MaxAmount != nil && *w.MaxAmount < *w.MinAmount {
			return &ValidationError{Field: "max_amount", Constraint: "must be >= min_amount"}
		}
	}
	for _, r := range c.Reviews {
		if r.Rating < 0 || r.Rating > 5 {
			return &ValidationError{Field: "rating", Constraint: "must be between 0 and 5"}
		}
		if r.ReviewCount != nil && *r.ReviewCount < 0 {
			return &ValidationError{Field: "review_count", Constraint: "must be non-negative"}
		}
	}
	return nil
}

// Normalize fills in the pieces a record loaded from external input may
// lack: a zero CollectionDate becomes the current instant and nil list
// fields become empty slices.
func (c *CasinoData) Normalize() {
	if c.CollectionDate.IsZero() {
		c.CollectionDate = time.Now().UTC()
	}
	if c.Licenses == nil {
		c.Licenses = []License{}
	}
	if c.RTPInfo == nil {
		c.RTPInfo = []RTPEntry{}
	}
	if c.Fairness == nil {
		c.Fairness = []FairnessCert{}
	}
	if c.Providers == nil {
		c.Providers = []Provider{}
	}
	if c.WithdrawalMethods == nil {
		c.WithdrawalMethods = []WithdrawalMethod{}
	}
	if c.Reviews == nil {
		c.Reviews = []Review{}
	}
}

// AverageReviewRating returns the mean rating over this record's reviews,
// or 0 when it has none.
func (c *CasinoData) AverageReviewRating() float64 {
	if len(c.Reviews) == 0 {
		return 0
	}
	var total float64
	for _, r := range c.Reviews {
		total += r.Rating
	}
	return total / float64(len(c.Reviews))
}

// AverageRTP returns the mean rtp_percentage over this record's RTP
// entries, or 0 when it has none.
func (c *CasinoData) AverageRTP() float64 {
	if len(c.RTPInfo) == 0 {
		return 0
	}
	var total float64
	for _, rtp := range c.RTPInfo {
		total += rtp.RTPPercentage
	}
	return total / float64(len(c.RTPInfo))
}
