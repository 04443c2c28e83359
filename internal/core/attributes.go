package core

// Attributes set on the nodes of the document tree.
// External style rules and the edit button rely on them.
const (
	AttrAnchorID   = "data-sprout-id"
	AttrType       = "data-sprout-type"
	AttrRaw        = "data-sprout-raw"
	AttrProcessed  = "data-sprout-processed"
	AttrState      = "data-sprout-state"
	AttrStale      = "data-sprout-stale"
	AttrSection    = "data-sprout-section"
	AttrCollapsed  = "data-sprout-collapsed"
	AttrSuppressed = "data-sprout-suppressed"
	AttrRun        = "data-sprout-run"
	AttrRunIndex   = "data-sprout-run-index"
	AttrRunSize    = "data-sprout-run-size"
	AttrSplit      = "data-sprout-split"
	AttrDisplay    = "data-display"
	AttrHidden     = "hidden"
)

// Classes set on rendered cards
const (
	ClassCard         = "sprout-card"
	ClassPrefix       = "sprout-"
	ClassPresetPrefix = "sprout-preset-"
)

// RefreshEvent is dispatched on a node when the display settings changed.
const RefreshEvent = "sprout:refresh"
