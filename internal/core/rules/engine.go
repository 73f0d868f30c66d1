package rules

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

const countPlaceholder = "{count}"

// Engine evaluates a document attribute bag against the rule registry.
// It is stateless per call and never returns an error: broken predicates
// become hard failures, not aborted validations.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

func NewEngine(registry *Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{registry: registry, logger: logger}
}

// Validate runs the two-tier evaluation. General rules run first; a hard
// failure among them short-circuits with stop_processing=true and the
// type-specific tier never runs. Type-specific hard failures mark the
// document Fail but do not halt upstream processing.
func (e *Engine) Validate(doc domain.Attributes) domain.ValidationResult {
	var (
		hardFailures []domain.Finding
		softWarnings []domain.Finding
		passed       []string
	)

	general := e.registry.General()
	for _, rule := range general {
		e.evaluate(rule, doc, "general", &passed, &hardFailures, &softWarnings)
	}

	if len(hardFailures) > 0 {
		e.logger.Warn("general hard failures, validation stopped",
			"failures", len(hardFailures))
		return buildResult(domain.VerdictFail, hardFailures, softWarnings, passed, len(general), true)
	}

	docType := domain.DocumentType(doc.String(domain.AttrDocumentType))
	typeRules := e.registry.ForType(docType)
	for _, rule := range typeRules {
		e.evaluate(rule, doc, "document_specific", &passed, &hardFailures, &softWarnings)
	}

	total := len(general) + len(typeRules)
	status := domain.VerdictPass
	switch {
	case len(hardFailures) > 0:
		status = domain.VerdictFail
	case len(softWarnings) > 0:
		status = domain.VerdictPassWarnings
	}

	return buildResult(status, hardFailures, softWarnings, passed, total, false)
}

// evaluate checks one rule and files the outcome. A panicking predicate is
// recovered and converted into a hard failure with a diagnostic reason so a
// single broken rule cannot prevent reporting on the rest.
func (e *Engine) evaluate(
	rule Rule,
	doc domain.Attributes,
	category string,
	passed *[]string,
	hardFailures, softWarnings *[]domain.Finding,
) {
	ok, reason, faulted := checkRule(rule, doc)
	if ok {
		*passed = append(*passed, rule.ID)
		return
	}

	finding := domain.Finding{
		RuleID:   rule.ID,
		Name:     rule.Name,
		Reason:   reason,
		Category: category,
	}
	if rule.Category != "" {
		finding.Category = rule.Category
	}

	// A faulted predicate always files as a hard failure.
	severity := rule.Severity
	if faulted {
		severity = domain.SeverityHard
	}

	if severity == domain.SeverityHard {
		*hardFailures = append(*hardFailures, finding)
		e.logger.Warn("rule failed", "rule_id", rule.ID, "severity", "hard", "reason", reason)
	} else {
		*softWarnings = append(*softWarnings, finding)
		e.logger.Info("rule warning", "rule_id", rule.ID, "reason", reason)
	}
}

func checkRule(rule Rule, doc domain.Attributes) (passed bool, reason string, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			passed = false
			reason = fmt.Sprintf("rule check failed: %v", r)
			faulted = true
		}
	}()

	if rule.Check(doc) {
		return true, "", false
	}

	reason = rule.FailReason
	if strings.Contains(reason, countPlaceholder) {
		count := doc.Int(domain.AttrSignatureCount)
		reason = strings.ReplaceAll(reason, countPlaceholder, strconv.Itoa(count))
	}
	return false, reason, false
}

func buildResult(
	status string,
	hardFailures, softWarnings []domain.Finding,
	passed []string,
	totalRules int,
	stopProcessing bool,
) domain.ValidationResult {
	score := 0.0
	if totalRules > 0 {
		score = math.Round(float64(len(passed))/float64(totalRules)*100) / 100
	}

	if hardFailures == nil {
		hardFailures = []domain.Finding{}
	}
	if softWarnings == nil {
		softWarnings = []domain.Finding{}
	}
	if passed == nil {
		passed = []string{}
	}

	return domain.ValidationResult{
		Status:            status,
		HardFailures:      hardFailures,
		SoftWarnings:      softWarnings,
		PassedRules:       passed,
		TotalRulesChecked: totalRules,
		Score:             score,
		BillingReady:      status == domain.VerdictPass,
		NeedsManualReview: len(hardFailures) > 0 || len(softWarnings) > 0,
		StopProcessing:    stopProcessing,
		Summary:           domain.Summarize(status, len(hardFailures), len(softWarnings)),
	}
}
