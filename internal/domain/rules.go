package domain

import "regexp"

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	keyPattern  = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
)

// Default protected allow-lists. They are copied into immutable guard sets at
// construction time; configuration may replace them.
var (
	DefaultProtectedPageKeys           = []string{"home", "about-us", "business-models"}
	DefaultProtectedBusinessModelCodes = []string{"elite_on_demand"}
	DefaultProtectedLegalPageTypes     = []string{"legal", "privacy", "cookies", "terms"}
	DefaultProtectedSpecialtySlugs     = []string{}
)
