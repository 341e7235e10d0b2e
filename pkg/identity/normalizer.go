// Package identity canonicalizes and hashes personally identifiable fields
// before they are sent to the attribution API.
package identity

import (
	"lead-gateway/pkg/models"
	"lead-gateway/pkg/utils"
)

// CountryCode is prefixed to the local-format phone number.
const CountryCode = "+90"

// NormalizePhone returns the phone in international form
func NormalizePhone(phone string) string {
	return CountryCode + phone
}

// HashPhone returns the SHA-256 hex digest of the normalized phone
func HashPhone(phone string) string {
	return utils.HashString(NormalizePhone(phone))
}

// HashNationalID returns the SHA-256 hex digest of the raw national ID
func HashNationalID(nationalID string) string {
	return utils.HashString(nationalID)
}

// Normalize fills the hashed fields of a lead. The national ID is only
// hashed when includeNationalID is set.
func Normalize(req models.SubmissionRequest, includeNationalID bool) models.NormalizedLead {
	lead := models.NormalizedLead{HashedPhone: HashPhone(req.Phone)}
	if includeNationalID {
		lead.HashedNationalID = HashNationalID(req.NationalID)
	}
	return lead
}
