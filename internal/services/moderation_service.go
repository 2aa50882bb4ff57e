package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrInvalidReportContent = errors.New("invalid content_type: must be note, review, doubt, or answer")
	ErrReportReasonRequired = errors.New("reason is required")
	ErrInvalidReportStatus  = errors.New("invalid status: must be reviewed, actioned, or dismissed")
)

// ContentRejectedError marks text the moderation filter refused. Handlers map
// it to a client error; anything else coming out of a write path is a server
// fault.
type ContentRejectedError struct {
	Reason  string
	Message string
}

func (e *ContentRejectedError) Error() string { return e.Message }

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ModerationService filters user-generated text and manages content reports.
type ModerationService struct {
	db                  *gorm.DB
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	compiled            bool
	mu                  sync.RWMutex
}

func NewModerationService(db *gorm.DB) *ModerationService {
	s := &ModerationService{db: db}
	s.compilePatterns()
	return s
}

func (s *ModerationService) compilePatterns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.compiled {
		return
	}

	s.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			s.bannedWordRegexps = append(s.bannedWordRegexps, re)
		}
	}

	s.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	s.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	s.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	s.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
	s.compiled = true
}

func (s *ModerationService) FilterContent(text string) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range s.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if s.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if s.emailPattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if s.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if s.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

// Check wraps FilterContent for write paths: nil when the text passes, a
// *ContentRejectedError carrying the user-facing message when it does not.
func (s *ModerationService) Check(text string) error {
	if ok, reason := s.FilterContent(text); !ok {
		return &ContentRejectedError{Reason: reason, Message: s.GetRejectionMessage(reason)}
	}
	return nil
}

func (s *ModerationService) GetRejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "Your text contains inappropriate language.",
		"url_not_allowed":          "URLs and web links are not allowed.",
		"contact_info_not_allowed": "Contact information is not allowed.",
		"spam_detected":            "Your text appears to be spam.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your text does not meet our content guidelines."
}

func (s *ModerationService) CreateReport(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	validTypes := map[string]bool{"note": true, "review": true, "doubt": true, "answer": true}
	if !validTypes[req.ContentType] {
		return nil, ErrInvalidReportContent
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReportReasonRequired
	}

	report := models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.Reason,
		Status:      "pending",
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ActionReport(reportID uuid.UUID, req *dto.ActionReportRequest) error {
	validStatuses := map[string]bool{"reviewed": true, "actioned": true, "dismissed": true}
	if !validStatuses[req.Status] {
		return ErrInvalidReportStatus
	}

	result := s.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
