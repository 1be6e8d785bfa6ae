package metrics

// Attribute keys attached to recorded instruments.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrFeed      = "feed"
	AttrOperation = "operation"
	AttrAction    = "action"
	AttrJob       = "job"
	AttrOutcome   = "outcome"
)
