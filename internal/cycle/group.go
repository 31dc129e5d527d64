package cycle

import (
	"fmt"
	"regexp"
	"strings"
)

// installmentSuffixRe matches the display suffix " (k/n)" appended to
// installment descriptions.
var installmentSuffixRe = regexp.MustCompile(` \(\d+/\d+\)$`)

// StripInstallmentSuffix recovers the base description from a display
// description like "Notebook (2/10)". Descriptions are stored without the
// suffix; this exists for data imported from older exports where the suffix
// was baked into the text.
func StripInstallmentSuffix(description string) string {
	return installmentSuffixRe.ReplaceAllString(description, "")
}

// DisplayDescription renders the stored base description with its
// installment position, e.g. "Notebook (2/10)". Single-payment and recurring
// entries render unchanged.
func DisplayDescription(base string, current, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s (%d/%d)", base, current, total)
}

// GroupKey identifies a logical purchase by value equality. It is the legacy
// fallback for rows created before PurchaseGroupID existed.
//
// Two unrelated purchases with the same description, amount and type collide
// under this key; that is why PurchaseGroupID is authoritative whenever it is
// set. See TestGroupKeyCollision.
type GroupKey struct {
	Description string
	Amount      int64
	Type        string
}

// EscapeLikePattern escapes the LIKE metacharacters %, _ and the escape
// character itself, so a description can be used as a literal prefix in a
// LIKE filter.
func EscapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
