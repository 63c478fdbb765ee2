// Package vault implements the privacy store: encrypted-at-rest candidate
// records, identity hashing, audit logging, GDPR export/erasure and the
// retention sweep. It owns the encryption key (via the injected Sealer) and
// operates over repository interfaces, so the file and Postgres backends are
// interchangeable underneath it.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/talentscout/candidatevault/internal/common"
	"github.com/talentscout/candidatevault/internal/cryptox"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
	"github.com/talentscout/candidatevault/internal/repository/audit"
	"github.com/talentscout/candidatevault/internal/repository/exports"
	"github.com/talentscout/candidatevault/internal/repository/records"
	"github.com/talentscout/candidatevault/internal/repository/repomanager"
)

// Archiver is the optional offsite delivery collaborator: it receives export
// artifacts and hands back presigned download URLs.
type Archiver interface {
	Upload(ctx context.Context, key string, body []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// Service is the privacy store. All operations are synchronous; same-session
// save/export/delete calls are serialized by a per-session lock.
type Service struct {
	records records.Repository
	audit   audit.Repository
	exports exports.Repository

	sealer    cryptox.Sealer
	encrypted bool

	clock         Clock
	logger        logging.Logger
	locks         *sessionLocks
	archiver      Archiver
	retentionDays int
}

// New wires a Service over the given backend. archiver may be nil, in which
// case exports stay local-only. encrypted reflects whether sealer actually
// encrypts; it drives the compliance flags on records and reports.
func New(repos repomanager.Manager, sealer cryptox.Sealer, encrypted bool, clock Clock, archiver Archiver, retentionDays int, logger logging.Logger) *Service {
	return &Service{
		records:       repos.Records(),
		audit:         repos.Audit(),
		exports:       repos.Exports(),
		sealer:        sealer,
		encrypted:     encrypted,
		clock:         clock,
		logger:        logger.With("module", "vault"),
		locks:         newSessionLocks(),
		archiver:      archiver,
		retentionDays: retentionDays,
	}
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Save builds and persists the StoredRecord for the session: the four
// identifying fields sealed independently, email/phone hashed, the transcript
// (if any) sealed as one blob. Re-saving the same session overwrites the
// prior record but keeps its original creation timestamp.
func (s *Service) Save(ctx context.Context, sessionID string, candidate *models.CandidateRecord, transcript []models.Message) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	timestamp := s.clock.Now()
	if prior, err := s.records.Get(ctx, sessionID); err == nil {
		timestamp = prior.Timestamp
	}

	record := &models.StoredRecord{
		SessionID:        sessionID,
		Timestamp:        timestamp,
		DataVersion:      models.DataVersion,
		PrivacyCompliant: s.encrypted,
		CandidateInfo: models.EncryptedCandidateInfo{
			YearsExperience:  candidate.YearsExperience,
			DesiredPositions: candidate.DesiredPositions,
			TechStack:        candidate.TechStack,
		},
		PrivacyHashes: models.PrivacyHashes{
			EmailHash: cryptox.HashEmail(candidate.Email),
			PhoneHash: cryptox.HashPhone(candidate.Phone),
		},
		Metadata: models.RecordMetadata{CompletionStatus: models.StatusIncomplete},
	}

	record.CandidateInfo.FullNameEncrypted = s.sealField(ctx, sessionID, "full_name", candidate.FullName)
	record.CandidateInfo.EmailEncrypted = s.sealField(ctx, sessionID, "email", candidate.Email)
	record.CandidateInfo.PhoneEncrypted = s.sealField(ctx, sessionID, "phone", candidate.Phone)
	record.CandidateInfo.LocationEncrypted = s.sealField(ctx, sessionID, "current_location", candidate.CurrentLocation)

	if len(transcript) > 0 {
		raw, err := json.Marshal(transcript)
		if err != nil {
			return fmt.Errorf("encode transcript: %w", err)
		}
		sealed, degraded := s.sealer.SealBytes(raw)
		if degraded {
			s.logger.Warn(ctx, "transcript stored without encryption", "session_id", sessionID)
		}
		record.TranscriptEncrypted = sealed
		record.Metadata.CompletionStatus = models.StatusComplete
	}

	if err := s.records.Save(ctx, record); err != nil {
		return err
	}

	s.logAudit(ctx, models.ActivitySave, sessionID, map[string]any{
		"has_personal_info": candidate.HasPersonalInfo(),
		"has_contact_info":  candidate.HasContactInfo(),
		"tech_stack_count":  len(candidate.TechStack),
	})
	return nil
}

func (s *Service) sealField(ctx context.Context, sessionID, field, value string) string {
	sealed, degraded := s.sealer.SealField(value)
	if degraded {
		s.logger.Warn(ctx, "field stored without encryption", "session_id", sessionID, "field", field)
	}
	return sealed
}

// Load returns the fully reconstructed record for the session, or
// common.ErrorNotFound. Envelopes that fail to open degrade to their raw
// content and are reported in DegradedFields rather than aborting the load.
func (s *Service) Load(ctx context.Context, sessionID string) (*models.LoadedRecord, error) {
	record, err := s.records.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	loaded := &models.LoadedRecord{
		SessionID:        record.SessionID,
		Timestamp:        record.Timestamp,
		CompletionStatus: record.Metadata.CompletionStatus,
		Candidate: models.CandidateRecord{
			YearsExperience:  record.CandidateInfo.YearsExperience,
			DesiredPositions: record.CandidateInfo.DesiredPositions,
			TechStack:        record.CandidateInfo.TechStack,
		},
	}

	openField := func(field, envelope string) string {
		value, degraded := s.sealer.OpenField(envelope)
		if degraded {
			loaded.DegradedFields = append(loaded.DegradedFields, field)
		}
		return value
	}
	loaded.Candidate.FullName = openField("full_name", record.CandidateInfo.FullNameEncrypted)
	loaded.Candidate.Email = openField("email", record.CandidateInfo.EmailEncrypted)
	loaded.Candidate.Phone = openField("phone", record.CandidateInfo.PhoneEncrypted)
	loaded.Candidate.CurrentLocation = openField("current_location", record.CandidateInfo.LocationEncrypted)

	if record.TranscriptEncrypted != "" {
		raw, degraded := s.sealer.OpenBytes(record.TranscriptEncrypted)
		if degraded {
			loaded.DegradedFields = append(loaded.DegradedFields, "transcript")
		} else if err := json.Unmarshal(raw, &loaded.Transcript); err != nil {
			loaded.DegradedFields = append(loaded.DegradedFields, "transcript")
		}
	}

	if loaded.Degraded() {
		s.logger.Warn(ctx, "decryption degraded, raw envelopes returned",
			"session_id", sessionID, "fields", loaded.DegradedFields)
	}

	s.logAudit(ctx, models.ActivityLoad, sessionID, nil)
	return loaded, nil
}

// Export writes a GDPR data-portability bundle for the session and returns
// its location. Each call produces a distinct artifact; when an archiver is
// configured the bundle is also uploaded and a presigned download URL
// attached (best effort — the local artifact alone is a successful export).
func (s *Service) Export(ctx context.Context, sessionID string) (*models.ExportResult, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	loaded, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	bundle := &models.ExportBundle{
		ExportInfo: models.ExportInfo{
			ExportedAt:    s.clock.Now(),
			SessionID:     sessionID,
			Format:        "json",
			GDPRCompliant: s.encrypted,
		},
		PersonalInformation: models.PersonalInformation{
			FullName:         loaded.Candidate.FullName,
			Email:            loaded.Candidate.Email,
			Phone:            loaded.Candidate.Phone,
			CurrentLocation:  loaded.Candidate.CurrentLocation,
			YearsExperience:  loaded.Candidate.YearsExperience,
			DesiredPositions: loaded.Candidate.DesiredPositions,
			TechStack:        loaded.Candidate.TechStack,
		},
		ConversationSummary: models.ConversationSummary{
			TotalMessages:    len(loaded.Transcript),
			CompletionStatus: loaded.CompletionStatus,
		},
		PrivacyNotice: models.DefaultPrivacyNotice(s.retentionDays),
	}

	path, err := s.exports.Write(ctx, bundle)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, models.ActivityExport, sessionID, map[string]any{"format": "json"})

	result := &models.ExportResult{Path: path}
	if s.archiver != nil {
		s.archiveBundle(ctx, bundle, path, result)
	}
	return result, nil
}

func (s *Service) archiveBundle(ctx context.Context, bundle *models.ExportBundle, path string, result *models.ExportResult) {
	body, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		s.logger.Error(ctx, "archive encode failed", "session_id", bundle.ExportInfo.SessionID, "error", err.Error())
		return
	}
	key := "exports/" + filepath.Base(path)
	if err := s.archiver.Upload(ctx, key, body); err != nil {
		s.logger.Warn(ctx, "export archive upload failed", "key", key, "error", err.Error())
		return
	}
	result.ArchiveKey = key
	url, err := s.archiver.PresignGet(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "export presign failed", "key", key, "error", err.Error())
		return
	}
	result.PresignedURL = url
}

// Delete irreversibly erases the session: the DELETE audit entry is appended
// first so the trail survives a partial failure, then the record is removed,
// then every export bundle for the session (best effort). A session that was
// never saved returns common.ErrorNotFound and leaves no audit entry.
func (s *Service) Delete(ctx context.Context, sessionID, reason string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if _, err := s.records.Get(ctx, sessionID); err != nil {
		return err
	}

	s.logAudit(ctx, models.ActivityDelete, sessionID, map[string]any{"reason": reason})

	if err := s.records.Delete(ctx, sessionID); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	removed, err := s.exports.DeleteForSession(ctx, sessionID)
	if err != nil {
		s.logger.Warn(ctx, "export cleanup incomplete", "session_id", sessionID, "error", err.Error())
	} else if removed > 0 {
		s.logger.Debug(ctx, "removed export artifacts", "session_id", sessionID, "count", removed)
	}
	return nil
}

// Sweep removes every record strictly older than now − retentionDays, each
// preceded by an AUTO_DELETE audit entry, and independently removes export
// bundles older than the same cutoff by file modification time. Corrupt
// records were already skipped by the repository enumeration; a record whose
// removal fails is logged and not counted. Returns the removed-record count.
func (s *Service) Sweep(ctx context.Context, retentionDays int) (int, error) {
	now := s.clock.Now()
	cutoff := now.AddDate(0, 0, -retentionDays)

	list, err := s.records.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, record := range list {
		if !record.Timestamp.Before(cutoff) {
			continue
		}
		if s.sweepRecord(ctx, record, now, retentionDays) {
			deleted++
		}
	}

	if _, err := s.exports.SweepOlderThan(ctx, cutoff); err != nil {
		s.logger.Warn(ctx, "export sweep incomplete", "error", err.Error())
	}
	return deleted, nil
}

func (s *Service) sweepRecord(ctx context.Context, record *models.StoredRecord, now time.Time, retentionDays int) bool {
	unlock := s.locks.lock(record.SessionID)
	defer unlock()

	ageDays := int(now.Sub(record.Timestamp).Hours() / 24)
	s.logAudit(ctx, models.ActivityAutoDelete, record.SessionID, map[string]any{
		"retention_days": retentionDays,
		"file_age_days":  ageDays,
	})
	if err := s.records.Delete(ctx, record.SessionID); err != nil {
		s.logger.Warn(ctx, "failed to remove expired record", "session_id", record.SessionID, "error", err.Error())
		return false
	}
	return true
}

// FindByEmail returns the session ids whose stored email hash matches the
// given address — coarse correlation only, nothing is decrypted.
func (s *Service) FindByEmail(ctx context.Context, email string) ([]string, error) {
	hash := cryptox.HashEmail(email)
	if hash == "" {
		return nil, nil
	}
	list, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, record := range list {
		if record.PrivacyHashes.EmailHash == hash {
			ids = append(ids, record.SessionID)
		}
	}
	return ids, nil
}

// logAudit appends best-effort: a failed append is an operator-visible error
// but never fails the data operation it describes.
func (s *Service) logAudit(ctx context.Context, activity models.Activity, sessionID string, metadata map[string]any) {
	entry := models.AuditEntry{
		Timestamp: s.clock.Now(),
		Activity:  activity,
		SessionID: sessionID,
		Metadata:  metadata,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Error(ctx, "audit append failed", "activity", string(activity), "session_id", sessionID, "error", err.Error())
	}
}
