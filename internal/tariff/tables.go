package tariff

import _ "embed"

// Tariff tables as published by the provider, one per pricing tier. They are
// build-time assets: a parse failure is a defect in the checked-in data, not a
// runtime condition.
var (
	//go:embed tables/basic.tsv
	basicTable []byte

	//go:embed tables/active.tsv
	activeTable []byte

	//go:embed tables/business.tsv
	businessTable []byte
)
