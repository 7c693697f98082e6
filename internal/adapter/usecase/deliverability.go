package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"mesa-campaigns/internal/core/domain"
)

var spamKeywords = []string{
	"free", "urgent", "act now", "limited time", "click here",
	"buy now", "guarantee", "winner", "congratulations", "prize",
}

var optOutKeywords = []string{"unsubscribe", "opt-out", "opt out", "remove"}

const readyToSend = "Email is ready to send!"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	spamPassThreshold     = 20
	minValidationRate     = 90.0
	cleanListRate         = 95.0
	maxSubjectLength      = 50
	maxExclamationMarks   = 3
	maxLinks              = 3
	capitalizationCeiling = 0.5
)

// DeliverabilityGate produces an advisory deliverability verdict for a
// variant. Its result is stored and reported but never blocks dispatch.
type DeliverabilityGate struct{}

// NewDeliverabilityGate returns a gate using the fixed rule set.
func NewDeliverabilityGate() *DeliverabilityGate {
	return &DeliverabilityGate{}
}

// Check scores content for spam signals, checks opt-out and sender
// identification and validates the group's addresses.
func (g *DeliverabilityGate) Check(content domain.Content, group []domain.Recipient) domain.CheckResult {
	spam := g.checkSpam(content)
	compliance := g.checkCompliance(content)
	validation := g.validateRecipients(group)

	issues := make([]string, 0, len(spam.Issues)+len(compliance.Issues))
	issues = append(issues, spam.Issues...)
	issues = append(issues, compliance.Issues...)

	return domain.CheckResult{
		Passed:          spam.Passed && compliance.Compliant && validation.ValidationRate > minValidationRate,
		Score:           spam.Score,
		Warnings:        spam.Warnings,
		Issues:          issues,
		Spam:            spam,
		Compliance:      compliance,
		Validation:      validation,
		Recommendations: recommend(spam, compliance, validation),
	}
}

func (g *DeliverabilityGate) checkSpam(c domain.Content) domain.SpamCheck {
	subject := strings.ToLower(c.Subject)
	body := strings.ToLower(c.Body)
	text := subject + " " + body

	score := 0
	warnings := []string{}
	issues := []string{}

	var found []string
	for _, kw := range spamKeywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		score += 5 * len(found)
		warnings = append(warnings, "Spam keywords detected: "+strings.Join(found, ", "))
	}

	if capsRatio(c.Subject) > capitalizationCeiling {
		score += 10
		issues = append(issues, "Excessive capitalization in subject")
	}

	if strings.Count(subject, "!")+strings.Count(body, "!") > maxExclamationMarks {
		score += 5
		issues = append(issues, "Too many exclamation marks")
	}

	if len([]rune(c.Subject)) > maxSubjectLength {
		score += 3
		warnings = append(warnings, fmt.Sprintf("Subject line is too long (recommended: <%d characters)", maxSubjectLength))
	}

	if strings.Count(body, "http://")+strings.Count(body, "https://") > maxLinks {
		score += 5
		warnings = append(warnings, "Too many links in email body")
	}

	return domain.SpamCheck{
		Score:     score,
		RiskLevel: domain.RiskFor(score),
		Warnings:  warnings,
		Issues:    issues,
		Passed:    score < spamPassThreshold,
	}
}

// capsRatio is the share of upper-case runes in s.
func capsRatio(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}

func (g *DeliverabilityGate) checkCompliance(c domain.Content) domain.ComplianceCheck {
	text := strings.ToLower(c.Body + " " + c.Footer)
	issues := []string{}
	compliant := true

	optOut := false
	for _, kw := range optOutKeywords {
		if strings.Contains(text, kw) {
			optOut = true
			break
		}
	}
	if !optOut {
		issues = append(issues, "Missing unsubscribe link/option")
		compliant = false
	}

	senderInfo := c.Footer != ""
	if !senderInfo {
		issues = append(issues, "Missing sender information in footer")
		compliant = false
	}

	subjectClear := !strings.HasPrefix(c.Subject, "Re:") && !strings.HasPrefix(c.Subject, "Fwd:")
	if !subjectClear {
		issues = append(issues, "Subject line may be misleading (starts with Re: or Fwd:)")
	}

	return domain.ComplianceCheck{
		Compliant:          compliant,
		Issues:             issues,
		UnsubscribePresent: optOut,
		SenderInfoPresent:  senderInfo,
		SubjectClear:       subjectClear,
	}
}

func (g *DeliverabilityGate) validateRecipients(group []domain.Recipient) domain.RecipientValidation {
	v := domain.RecipientValidation{Total: len(group)}
	for _, r := range group {
		if validEmail(r.Email) {
			v.Valid++
			continue
		}
		v.Invalid++
		v.InvalidEmails = append(v.InvalidEmails, r.Email)
	}
	if v.Total > 0 {
		v.ValidationRate = float64(v.Valid) / float64(v.Total) * 100
	}
	return v
}

func validEmail(addr string) bool {
	if !emailPattern.MatchString(addr) {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

func recommend(spam domain.SpamCheck, compliance domain.ComplianceCheck, validation domain.RecipientValidation) []string {
	var recs []string
	if !spam.Passed {
		recs = append(recs, "Reduce spam keywords and improve content quality")
	}
	if spam.Score > 10 {
		recs = append(recs, "Consider simplifying subject line and reducing promotional language")
	}
	if !compliance.Compliant {
		recs = append(recs, "Add unsubscribe link and ensure sender information is present")
	}
	if validation.ValidationRate < cleanListRate {
		recs = append(recs, "Review and clean invalid email addresses")
	}
	if len(recs) == 0 {
		recs = append(recs, readyToSend)
	}
	return recs
}
