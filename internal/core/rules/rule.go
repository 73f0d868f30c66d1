// Package rules implements the two-tier rule validation engine: an ordered
// general rule set evaluated for every document, then a per-type rule set.
// Rules are declarative data records held in an immutable registry built once
// at startup; the evaluation algorithm never branches on document type.
package rules

import (
	"fmt"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// Predicate checks one document attribute bag. True means the rule passed.
type Predicate func(domain.Attributes) bool

// Rule is a single validation rule. FailReason may contain the {count}
// placeholder, which resolves to the document's signature count.
type Rule struct {
	ID         string
	Name       string
	Check      Predicate
	FailReason string
	Severity   domain.Severity
	Category   string
}

// Registry holds the general rule list and the per-type rule tables. It is
// read-only after construction; adding a document type is a data change.
type Registry struct {
	general []Rule
	byType  map[domain.DocumentType][]Rule
}

// NewRegistry validates and freezes the rule tables. Malformed rules are
// programming errors and fail loudly here rather than per-document.
func NewRegistry(general []Rule, byType map[domain.DocumentType][]Rule) (*Registry, error) {
	seen := make(map[string]struct{})

	validate := func(scope string, rs []Rule) error {
		for _, r := range rs {
			if r.ID == "" {
				return domain.WrapError(domain.ErrInvalidConfig, "rule registry",
					fmt.Errorf("%s: rule with empty id (%q)", scope, r.Name))
			}
			if _, dup := seen[r.ID]; dup {
				return domain.WrapError(domain.ErrInvalidConfig, "rule registry",
					fmt.Errorf("%s: duplicate rule id %s", scope, r.ID))
			}
			seen[r.ID] = struct{}{}
			if r.Check == nil {
				return domain.WrapError(domain.ErrInvalidConfig, "rule registry",
					fmt.Errorf("%s: rule %s has nil predicate", scope, r.ID))
			}
			if r.Severity != domain.SeverityHard && r.Severity != domain.SeveritySoft {
				return domain.WrapError(domain.ErrInvalidConfig, "rule registry",
					fmt.Errorf("%s: rule %s has severity %q", scope, r.ID, r.Severity))
			}
		}
		return nil
	}

	if err := validate("general", general); err != nil {
		return nil, err
	}
	for docType, rs := range byType {
		if err := validate(string(docType), rs); err != nil {
			return nil, err
		}
	}

	return &Registry{general: general, byType: byType}, nil
}

// General returns the ordered general rule list.
func (r *Registry) General() []Rule {
	return r.general
}

// ForType returns the rule list for a document type. Types without specific
// rules (including Unknown) get an empty list.
func (r *Registry) ForType(docType domain.DocumentType) []Rule {
	return r.byType[docType]
}
