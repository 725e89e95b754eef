// Package importer turns platform earnings statements into revenue records.
package importer

import (
	"errors"

	"github.com/newgestao/drivercontrol/internal/revenue"
)

var ErrUnresolvedPlatforms = errors.New("statement references unknown platforms")

// Preview is a parsed statement grouped into one revenue per day and
// platform. Unresolved lists platform labels that matched neither a
// platform name nor a learned alias; those lines are left out of Revenues.
type Preview struct {
	Profile    string
	Charset    string
	Lines      int
	Revenues   []revenue.CreateParams
	Unresolved []string
}

type Outcome struct {
	Preview *Preview
	Result  *revenue.ImportResult
}
