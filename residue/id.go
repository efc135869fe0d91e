// Package residue models residue identity and coordinate records: ID,
// Residue coordinate records, region masks, and the StrucsContext that
// groups them per structure.
package residue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cath-tools/strucore/errs"
)

// ID identifies a single residue: a chain label, an integer residue
// number, and an optional single-letter insert code.
//
// Two ResidueIds sharing chain+number must carry distinct insert codes;
// that invariant is enforced by callers building a residue list (see
// List.ValidateDistinctInsertCodes), not by ID itself.
type ID struct {
	Chain      string
	Number     int32
	InsertCode rune // 0 means "no insert code"
}

// HasInsertCode reports whether id carries an explicit insert code.
func (id ID) HasInsertCode() bool { return id.InsertCode != 0 }

// String renders id in the "A:123" / "A:123B" canonical form.
func (id ID) String() string {
	if id.HasInsertCode() {
		return fmt.Sprintf("%s:%d%c", id.Chain, id.Number, id.InsertCode)
	}
	return fmt.Sprintf("%s:%d", id.Chain, id.Number)
}

// Compare implements a total order over IDs: by chain, then number, then
// insert code with no-insert-code ordered before any explicit letter. It
// returns a negative number, zero, or a positive number as id < other,
// id == other, or id > other.
func (id ID) Compare(other ID) int {
	if c := strings.Compare(id.Chain, other.Chain); c != 0 {
		return c
	}
	if id.Number != other.Number {
		if id.Number < other.Number {
			return -1
		}
		return 1
	}
	switch {
	case id.InsertCode == other.InsertCode:
		return 0
	case id.InsertCode == 0:
		return -1
	case other.InsertCode == 0:
		return 1
	case id.InsertCode < other.InsertCode:
		return -1
	default:
		return 1
	}
}

// Less reports id < other under Compare's total order.
func (id ID) Less(other ID) bool { return id.Compare(other) < 0 }

var (
	// reColon matches "A:123" or "A:123B".
	reColon = regexp.MustCompile(`^([A-Za-z0-9]+):(-?\d+)([A-Za-z]?)$`)
	// reSlash matches "A/123-B" or "A/123".
	reSlash = regexp.MustCompile(`^([A-Za-z0-9]+)/(-?\d+)(?:-([A-Za-z]))?$`)
)

// ParseID parses the three supported forms: "A:123", "A:123B", "A/123-B".
// Any other shape is a KindParse error.
func ParseID(s string) (ID, error) {
	if m := reColon.FindStringSubmatch(s); m != nil {
		return buildID(m[1], m[2], m[3], s)
	}
	if m := reSlash.FindStringSubmatch(s); m != nil {
		return buildID(m[1], m[2], m[3], s)
	}
	return ID{}, errs.New(errs.KindParse, "residue.ParseID", fmt.Errorf("unrecognised residue id %q", s))
}

func buildID(chain, numStr, insert, original string) (ID, error) {
	n, err := strconv.ParseInt(numStr, 10, 32)
	if err != nil {
		return ID{}, errs.New(errs.KindParse, "residue.ParseID", fmt.Errorf("bad residue number in %q: %w", original, err))
	}
	var ins rune
	if insert != "" {
		ins = []rune(insert)[0]
	}
	return ID{Chain: chain, Number: int32(n), InsertCode: ins}, nil
}
