package analysis

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Check names, in the fixed order the verifier runs them.
const (
	CheckChatCountConsistency  = "Chat count consistency"
	CheckChatUserReferences    = "Chat user references valid"
	CheckFeedbackUserRefs      = "Feedback user references valid"
	CheckFeedbackClassCounts   = "Feedback count consistency"
	CheckChatPrimaryKeysUnique = "Chat primary keys unique"
)

// CheckResult is the outcome of a single consistency check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Verifier runs referential and count-consistency checks across the raw
// tables and against the analyzer's own derived counts.
//
// Checks run independently in a fixed order; no failure short-circuits the
// rest, and the verifier itself never fails the run. A check that cannot be
// evaluated (missing table, engine error mid-check) is omitted from the
// result list rather than reported as failed.
//
// Checks that re-extract records for their own counting do so with a
// throwaway accumulator: a run's Diagnostics reflects each row exactly
// once, no matter how many checks re-scan a table.
type Verifier struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewVerifier creates a Verifier. log may be nil for silent operation.
func NewVerifier(database *sql.DB, log *zap.SugaredLogger) *Verifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Verifier{db: database, log: log}
}

// Run executes all checks and returns their results in fixed order.
func (v *Verifier) Run() []CheckResult {
	checks := []func() (CheckResult, bool){
		v.checkChatCountConsistency,
		v.checkChatUserReferences,
		v.checkFeedbackUserReferences,
		v.checkFeedbackClassCounts,
		v.checkChatPrimaryKeysUnique,
	}

	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		result, evaluable := check()
		if !evaluable {
			continue
		}
		if result.Passed {
			v.log.Debugw("Check passed", "check", result.Name)
		} else {
			v.log.Warnw("Check failed", "check", result.Name, "error", result.Detail)
		}
		results = append(results, result)
	}
	return results
}

// checkChatCountConsistency verifies the sum of per-user chat counts (the
// aggregator's own grouping) equals the table's total row count.
func (v *Verifier) checkChatCountConsistency() (CheckResult, bool) {
	extractor := NewExtractor(v.db, v.log, nil)
	chats, err := extractor.Chats()
	if err != nil {
		return v.unevaluable(CheckChatCountConsistency, err)
	}

	var total int
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM chat`).Scan(&total); err != nil {
		return v.unevaluable(CheckChatCountConsistency, err)
	}

	sum := 0
	for _, count := range ChatsPerUser(chats) {
		sum += count
	}

	if sum != total {
		return CheckResult{
			Name:   CheckChatCountConsistency,
			Detail: fmt.Sprintf("per-user chat counts sum to %d, table has %d rows", sum, total),
		}, true
	}
	return passed(CheckChatCountConsistency), true
}

// checkChatUserReferences verifies every chat's user_id resolves.
func (v *Verifier) checkChatUserReferences() (CheckResult, bool) {
	var orphans int
	err := v.db.QueryRow(`
		SELECT COUNT(*) FROM chat
		WHERE user_id NOT IN (SELECT id FROM user)
	`).Scan(&orphans)
	if err != nil {
		return v.unevaluable(CheckChatUserReferences, err)
	}

	if orphans > 0 {
		return CheckResult{
			Name:   CheckChatUserReferences,
			Detail: fmt.Sprintf("%d chats reference non-existent users", orphans),
		}, true
	}
	return passed(CheckChatUserReferences), true
}

// checkFeedbackUserReferences verifies every feedback's user_id resolves.
// Skipped entirely when the feedback table does not exist.
func (v *Verifier) checkFeedbackUserReferences() (CheckResult, bool) {
	if !v.hasTable("feedback") {
		return CheckResult{}, false
	}

	var orphans int
	err := v.db.QueryRow(`
		SELECT COUNT(*) FROM feedback
		WHERE user_id NOT IN (SELECT id FROM user)
	`).Scan(&orphans)
	if err != nil {
		return v.unevaluable(CheckFeedbackUserRefs, err)
	}

	if orphans > 0 {
		return CheckResult{
			Name:   CheckFeedbackUserRefs,
			Detail: fmt.Sprintf("%d feedback rows reference non-existent users", orphans),
		}, true
	}
	return passed(CheckFeedbackUserRefs), true
}

// checkFeedbackClassCounts verifies classified feedback rows (including
// parse failures, which classify Unrecognized) sum to the table's row count.
func (v *Verifier) checkFeedbackClassCounts() (CheckResult, bool) {
	if !v.hasTable("feedback") {
		return CheckResult{}, false
	}

	extractor := NewExtractor(v.db, v.log, nil)
	feedback, err := extractor.Feedback()
	if err != nil {
		return v.unevaluable(CheckFeedbackClassCounts, err)
	}

	var total int
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return v.unevaluable(CheckFeedbackClassCounts, err)
	}

	counts := ClassCounts(feedback)
	classified := counts[RatingPositive] + counts[RatingNegative] +
		counts[RatingNeutral] + counts[RatingUnrecognized]

	if classified != total {
		return CheckResult{
			Name: CheckFeedbackClassCounts,
			Detail: fmt.Sprintf(
				"classified %d rows (%d positive, %d negative, %d neutral, %d unrecognized), table has %d rows",
				classified, counts[RatingPositive], counts[RatingNegative],
				counts[RatingNeutral], counts[RatingUnrecognized], total),
		}, true
	}
	return passed(CheckFeedbackClassCounts), true
}

// checkChatPrimaryKeysUnique verifies chat ids are unique.
func (v *Verifier) checkChatPrimaryKeysUnique() (CheckResult, bool) {
	var duplicates int
	err := v.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT id FROM chat GROUP BY id HAVING COUNT(*) > 1
		)
	`).Scan(&duplicates)
	if err != nil {
		return v.unevaluable(CheckChatPrimaryKeysUnique, err)
	}

	if duplicates > 0 {
		return CheckResult{
			Name:   CheckChatPrimaryKeysUnique,
			Detail: fmt.Sprintf("%d chat ids appear more than once", duplicates),
		}, true
	}
	return passed(CheckChatPrimaryKeysUnique), true
}

func (v *Verifier) hasTable(name string) bool {
	var count int
	err := v.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?
	`, name).Scan(&count)
	return err == nil && count > 0
}

func (v *Verifier) unevaluable(name string, err error) (CheckResult, bool) {
	v.log.Warnw("Check could not be evaluated", "check", name, "error", err.Error())
	return CheckResult{}, false
}

func passed(name string) CheckResult {
	return CheckResult{Name: name, Passed: true, Detail: "OK"}
}
