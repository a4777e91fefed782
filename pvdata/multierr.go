package pvdata

import "go.uber.org/multierr"

// multierrAppend aggregates builder-time problems (duplicate field
// names, duplicate variant tags, ...) the way forestrie-go-merklelog
// and signadot-tony-format aggregate independent setup errors: a
// TypeDef with several unrelated mistakes reports all of them from a
// single Finalize() call instead of only the first one encountered.
func multierrAppend(errs error, err error) error {
	return multierr.Append(errs, err)
}
