package configs

import "github.com/reusee/dscope"

// Module carries no providers; a Loader is provided by the application's config module.
type Module struct {
	dscope.Module
}
