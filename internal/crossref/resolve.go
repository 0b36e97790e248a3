package crossref

import (
	"context"
	"fmt"

	"github.com/bibweb/citationweb/internal/identity"
)

// Options is the acceptance policy for search results.
type Options struct {
	// RequireScore makes a score-less result a hard error instead of an
	// accepted match.
	RequireScore bool

	// MinScore rejects results scored below it (treated as not found).
	MinScore float64

	// ExpectedYear, when set, rejects results from a different year.
	ExpectedYear string
}

// Resolve searches for the DOI of a free-text citation and applies the
// acceptance policy. A miss is the empty string with a nil error; errors are
// reserved for misconfiguration and transport failures. The returned DOI is
// normalized to its bare form (no resolver-URL wrapper).
//
// Results are best-effort: the service is non-deterministic and callers must
// not assume repeatability.
func Resolve(ctx context.Context, svc Service, query string, opts Options) (string, error) {
	res, err := svc.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("searching for DOI: %w", err)
	}
	if res == nil {
		return "", nil
	}

	if res.Score == nil {
		if opts.RequireScore {
			return "", ErrScoreRequired
		}
	} else if *res.Score < opts.MinScore {
		return "", nil
	}

	if opts.ExpectedYear != "" && res.Year.String() != opts.ExpectedYear {
		return "", nil
	}

	return identity.NormalizeDOI(res.DOI), nil
}
