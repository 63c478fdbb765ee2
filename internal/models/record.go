package models

import "time"

// Completion status values derived from transcript presence.
const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

// DataVersion is the on-disk record schema version.
const DataVersion = "1.0"

// EncryptedCandidateInfo holds the candidate fields as persisted: the four
// identifying fields are sealed independently, the rest stay queryable
// without decryption.
type EncryptedCandidateInfo struct {
	FullNameEncrypted string `json:"full_name_encrypted,omitempty"`
	EmailEncrypted    string `json:"email_encrypted,omitempty"`
	PhoneEncrypted    string `json:"phone_encrypted,omitempty"`
	LocationEncrypted string `json:"current_location_encrypted,omitempty"`

	YearsExperience  string   `json:"years_experience"`
	DesiredPositions []string `json:"desired_positions"`
	TechStack        []string `json:"tech_stack"`
}

// PrivacyHashes are truncated one-way digests enabling identity correlation
// ("has this email been seen before") without exposing plaintext. They are
// unsalted, so identical inputs always hash identically; never use them for
// security decisions.
type PrivacyHashes struct {
	EmailHash string `json:"email_hash,omitempty"`
	PhoneHash string `json:"phone_hash,omitempty"`
}

// RecordMetadata is non-identifying bookkeeping stored alongside the record.
type RecordMetadata struct {
	CompletionStatus string `json:"completion_status"`
}

// StoredRecord is the persisted form of one candidate session. Encrypted
// fields are only ever read back through the vault's decrypt path; the
// repositories treat them as opaque strings.
type StoredRecord struct {
	SessionID        string                 `json:"session_id"`
	Timestamp        time.Time              `json:"timestamp"`
	DataVersion      string                 `json:"data_version"`
	PrivacyCompliant bool                   `json:"privacy_compliant"`
	CandidateInfo    EncryptedCandidateInfo `json:"candidate_info"`
	PrivacyHashes    PrivacyHashes          `json:"privacy_hashes"`
	Metadata         RecordMetadata         `json:"metadata"`

	// TranscriptEncrypted is the sealed JSON-encoded []Message, if the
	// session handed one over.
	TranscriptEncrypted string `json:"conversation_history_encrypted,omitempty"`
}

// LoadedRecord is a StoredRecord after decryption: the reconstructed
// candidate snapshot plus record metadata. DegradedFields lists the fields
// whose envelopes could not be opened and therefore still carry raw
// ciphertext; callers must surface this, never trust it as plaintext.
type LoadedRecord struct {
	SessionID        string
	Timestamp        time.Time
	Candidate        CandidateRecord
	Transcript       []Message
	CompletionStatus string
	DegradedFields   []string
}

// Degraded reports whether any field failed decryption.
func (r *LoadedRecord) Degraded() bool {
	return len(r.DegradedFields) > 0
}
