package services

import (
	"strconv"
	"strings"
	"time"

	"casino-collector/models"
)

// listSeparator joins text-list fields into a single cell.
const listSeparator = ", "

// flatColumns is the fixed header for tabular export. Scalar fields map
// 1:1; each list field contributes one primary_* column per sub-field
// (taken from the first entry) plus a companion count column. Missing
// optional values render as "" so every row has the same shape.
var flatColumns = []string{
	"name",
	"url",
	"description",
	"collection_date",
	"data_completeness_score",

	"license_count",
	"primary_license_authority",
	"primary_license_number",
	"primary_license_jurisdiction",
	"primary_license_verified",
	"primary_license_verification_date",

	"rtp_count",
	"primary_rtp_game_name",
	"primary_rtp_percentage",
	"primary_rtp_game_category",
	"primary_rtp_provider",

	"fairness_count",
	"primary_fairness_agency",
	"primary_fairness_certification",
	"primary_fairness_certified",
	"primary_fairness_last_audit_date",

	"provider_count",
	"primary_provider_name",
	"primary_provider_games_count",
	"primary_provider_popular_games",

	"has_security",
	"ssl_certificate",
	"encryption_type",
	"two_factor_auth",
	"responsible_gambling_tools",
	"data_protection_compliance",

	"withdrawal_method_count",
	"primary_withdrawal_method",
	"primary_withdrawal_min_amount",
	"primary_withdrawal_max_amount",
	"primary_withdrawal_processing_time",
	"primary_withdrawal_fees",

	"review_count",
	"primary_review_source",
	"primary_review_rating",
	"primary_review_review_count",
	"primary_review_positive_aspects",
	"primary_review_negative_aspects",
	"primary_review_date",
}

// FlattenHeader returns a copy of the export column names, in order.
func FlattenHeader() []string {
	header := make([]string, len(flatColumns))
	copy(header, flatColumns)
	return header
}

// Flatten projects one record into a single row matching FlattenHeader.
// It is deterministic: the same record always yields the same row.
func Flatten(c *models.CasinoData) []string {
	row := make([]string, 0, len(flatColumns))

	row = append(row,
		c.Name,
		c.URL,
		c.Description,
		formatTime(c.CollectionDate),
		strconv.FormatFloat(c.DataCompletenessScore, 'f', 1, 64),
	)

	// Licenses
	row = append(row, strconv.Itoa(len(c.Licenses)))
	if len(c.Licenses) > 0 {
		lic := c.Licenses[0]
		row = append(row,
			lic.Authority,
			lic.LicenseNumber,
			lic.Jurisdiction,
			strconv.FormatBool(lic.Verified),
			formatOptTime(lic.VerificationDate),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}

	// RTP
	row = append(row, strconv.Itoa(len(c.RTPInfo)))
	if len(c.RTPInfo) > 0 {
		rtp := c.RTPInfo[0]
		row = append(row,
			rtp.GameName,
			formatFloat(rtp.RTPPercentage),
			rtp.GameCategory,
			rtp.Provider,
		)
	} else {
		row = append(row, "", "", "", "")
	}

	// Fairness
	row = append(row, strconv.Itoa(len(c.Fairness)))
	if len(c.Fairness) > 0 {
		cert := c.Fairness[0]
		row = append(row,
			cert.TestingAgency,
			cert.Certification,
			strconv.FormatBool(cert.Certified),
			formatOptTime(cert.LastAuditDate),
		)
	} else {
		row = append(row, "", "", "", "")
	}

	// Providers
	row = append(row, strconv.Itoa(len(c.Providers)))
	if len(c.Providers) > 0 {
		p := c.Providers[0]
		row = append(row,
			p.Name,
			formatOptInt(p.GamesCount),
			strings.Join(p.PopularGames, listSeparator),
		)
	} else {
		row = append(row, "", "", "")
	}

	// Security
	if c.Security != nil {
		row = append(row,
			"true",
			strconv.FormatBool(c.Security.SSLCertificate),
			c.Security.EncryptionType,
			strconv.FormatBool(c.Security.TwoFactorAuth),
			strings.Join(c.Security.ResponsibleGamblingTools, listSeparator),
			strings.Join(c.Security.DataProtectionCompliance, listSeparator),
		)
	} else {
		row = append(row, "false", "", "", "", "", "")
	}

	// Withdrawal methods
	row = append(row, strconv.Itoa(len(c.WithdrawalMethods)))
	if len(c.WithdrawalMethods) > 0 {
		w := c.WithdrawalMethods[0]
		row = append(row,
			w.Method,
			formatOptFloat(w.MinAmount),
			formatOptFloat(w.MaxAmount),
			w.ProcessingTime,
			w.Fees,
		)
	} else {
		row = append(row, "", "", "", "", "")
	}

	// Reviews
	row = append(row, strconv.Itoa(len(c.Reviews)))
	if len(c.Reviews) > 0 {
		rev := c.Reviews[0]
		row = append(row,
			rev.Source,
			formatFloat(rev.Rating),
			formatOptInt(rev.ReviewCount),
			strings.Join(rev.PositiveAspects, listSeparator),
			strings.Join(rev.NegativeAspects, listSeparator),
			formatOptTime(rev.ReviewDate),
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
