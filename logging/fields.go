package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldMatchID    = "match_id"
	FieldSport      = "sport"
	FieldAction     = "action"
	FieldPeriod     = "period"
	FieldStatus     = "status"
	FieldChannel    = "channel_id"
	FieldUser       = "user"
	FieldCommand    = "command"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldBackend    = "backend"
)
