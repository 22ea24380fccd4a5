package log

// Field names
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldMode      = "mode"
	FieldLimit     = "limit"
	FieldUnit      = "unit"
	FieldEntryID   = "entry_id"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldEntries   = "entries"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldAddr      = "addr"
)

// Components
const (
	ComponentApp    = "app"
	ComponentCLI    = "cli"
	ComponentConfig = "config"
	ComponentLedger = "ledger"
	ComponentDaemon = "daemon"
	ComponentTUI    = "tui"
)
