// Package chain reconciles due dates and dependency links across the
// fixed VS/VL task pipeline and computes lock state for its members.
// This is not a general dependency graph: the pipeline is a small,
// hard-coded rule table keyed by role, re-evaluated whenever the root
// task's due date or the project's start date changes.
package chain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/janmersch/phasegate/internal/domain"
)

// fallback selects what happens to a role's dependency link when its
// natural predecessor is absent from the project. The asymmetry between
// clear and keep mirrors the observed rule table; it is encoded
// explicitly so a product decision can flip a single value.
type fallback int

const (
	fallbackClear fallback = iota
	fallbackKeep
)

type rule struct {
	Role      domain.ChainRole
	Offset    int // business days after the root due date
	DependsOn domain.ChainRole
	Fallback  fallback
}

// ruleTable lists every chain role in patch-emission order:
// root-dependents first, parallel time-gated roles after.
var ruleTable = []rule{
	{Role: domain.RoleKickoff, Offset: 0},
	{Role: domain.RoleTemplate, Offset: 2, DependsOn: domain.RoleKickoff},
	{Role: domain.RolePricing, Offset: 3},
	{Role: domain.RoleAssets, Offset: 3},
	{Role: domain.RoleLayout, Offset: 4, DependsOn: domain.RoleKickoff},
	{Role: domain.RoleContent, Offset: 4, DependsOn: domain.RoleLayout},
	{Role: domain.RoleReview, Offset: 5, DependsOn: domain.RoleContent, Fallback: fallbackKeep},
	{Role: domain.RoleApproval, Offset: 6, DependsOn: domain.RoleReview},
	{Role: domain.RoleHandover, Offset: 6, DependsOn: domain.RoleReview},
	{Role: domain.RoleArchive, Offset: 6},
}

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeTitle folds a user-editable title to a role-matchable key:
// lower-cased, diacritics stripped, runs of non-alphanumerics collapsed
// to single spaces.
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(title))
	if err != nil {
		folded = strings.ToLower(title)
	}
	var b strings.Builder
	lastSpace := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// RoleForTitle matches a normalized title against the fixed role keys.
// A title matches a role when any of its words equals the role key.
// Adjacent word pairs are also tried joined, so hyphenated spellings of
// compound keys ("Kick-Off", "Hand-over") still resolve.
func RoleForTitle(title string) domain.ChainRole {
	words := strings.Fields(NormalizeTitle(title))
	keys := make([]string, len(words), len(words)*2)
	copy(keys, words)
	for i := 0; i+1 < len(words); i++ {
		keys = append(keys, words[i]+words[i+1])
	}
	for _, r := range ruleTable {
		for _, k := range keys {
			if k == string(r.Role) {
				return r.Role
			}
		}
	}
	return domain.RoleNone
}

// ResolveRole returns the task's chain role. The explicit Role field
// wins; title matching remains as the backfill heuristic for tasks
// created before the field existed.
func ResolveRole(t *domain.Task) domain.ChainRole {
	if t.Role != domain.RoleNone {
		return t.Role
	}
	return RoleForTitle(t.Title)
}

// indexByRole maps the first task found for each chain role. Duplicate
// role matches are ignored in table order.
func indexByRole(tasks []*domain.Task) map[domain.ChainRole]*domain.Task {
	byRole := make(map[domain.ChainRole]*domain.Task, len(ruleTable))
	for _, t := range tasks {
		role := ResolveRole(t)
		if role == domain.RoleNone {
			continue
		}
		if _, exists := byRole[role]; !exists {
			byRole[role] = t
		}
	}
	return byRole
}
