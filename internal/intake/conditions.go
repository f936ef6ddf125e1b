package intake

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	dErrors "advisor/pkg/domain-errors"
)

// ConditionID identifies a medical condition from the closed intake catalog.
// Invariant: the value must be one of the catalog entries.
//
// Usage: construct via ParseConditionID at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ConditionID string

// ConditionOther collects anything the catalog does not name; legacy records
// with free-form medication lists migrate into it.
const ConditionOther ConditionID = "other"

//go:embed conditions.yaml
var conditionsYAML []byte

type catalogEntry struct {
	ID    ConditionID `yaml:"id"`
	Label string      `yaml:"label"`
}

type catalogFile struct {
	Conditions []catalogEntry `yaml:"conditions"`
}

// catalogOrder is the single source of truth for valid condition IDs and for
// the order conditions are iterated (request building, reports, migration).
var (
	catalogOrder  []ConditionID
	catalogLabels map[ConditionID]string
)

func init() {
	var file catalogFile
	if err := yaml.Unmarshal(conditionsYAML, &file); err != nil {
		panic(fmt.Sprintf("intake: embedded condition catalog is invalid: %v", err))
	}
	catalogLabels = make(map[ConditionID]string, len(file.Conditions))
	for _, entry := range file.Conditions {
		catalogOrder = append(catalogOrder, entry.ID)
		catalogLabels[entry.ID] = entry.Label
	}
}

// ParseConditionID constructs a ConditionID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or not in the
// catalog; no other errors are expected.
func ParseConditionID(s string) (ConditionID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "condition id cannot be empty")
	}
	id := ConditionID(s)
	if !id.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown condition id: %s", s)
	}
	return id, nil
}

// IsValid checks if the condition ID is one of the catalog entries.
func (c ConditionID) IsValid() bool {
	_, ok := catalogLabels[c]
	return ok
}

// Label returns the human-readable label for the condition.
func (c ConditionID) Label() string {
	return catalogLabels[c]
}

func (c ConditionID) String() string {
	return string(c)
}

// ConditionCatalog returns all condition IDs in catalog order.
func ConditionCatalog() []ConditionID {
	return append([]ConditionID(nil), catalogOrder...)
}

// FindConditionByLabel resolves a human-readable label (case-insensitively)
// back to its catalog ID. Used when lifting legacy records that stored
// labels instead of IDs.
func FindConditionByLabel(label string) (ConditionID, bool) {
	for id, l := range catalogLabels {
		if strings.EqualFold(l, label) {
			return id, true
		}
	}
	return "", false
}
