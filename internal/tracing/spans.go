package tracing

// Span names.
const (
	SpanApply         = "theme.apply"
	SpanApplyFallback = "theme.apply.fallback"
	SpanSaveArtifact  = "theme.save_artifact"
	SpanImport        = "theme.import"
)

// Span attribute keys.
const (
	AttrApplyID     = "theme.apply.id"
	AttrRequestKind = "theme.request.kind"
	AttrPreset      = "theme.preset"
	AttrArtifact    = "theme.artifact"
	AttrMode        = "theme.mode"
	AttrVarCount    = "theme.variables.count"
	AttrKnobCount   = "theme.knobs.preserved"

	AttrErrorMessage = "error.message"
)

// Span event names.
const (
	EventPreserved = "knobs.preserved"
	EventReset     = "variables.reset"
	EventResolved  = "variables.resolved"
	EventAdjusted  = "variables.adjusted"
	EventCommitted = "variables.committed"
	EventShadows   = "shadows.recomputed"
)
