package log

// Field names.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldCollection = "collection"
	FieldBackend    = "backend"
	FieldRecordID   = "record_id"
	FieldUserID     = "user_id"
	FieldCount      = "count"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldAddr       = "addr"
)

// Components.
const (
	ComponentApp     = "app"
	ComponentGateway = "gateway"
	ComponentStore   = "store"
	ComponentREST    = "rest"
	ComponentEvents  = "events"
	ComponentDaemon  = "daemon"
	ComponentHTTP    = "http"
)

// Operations.
const (
	OpList    = "list"
	OpCreate  = "create"
	OpProbe   = "probe"
	OpMigrate = "migrate"
	OpPoll    = "poll"
	OpPublish = "publish"
	OpConsume = "consume"
	OpSignIn  = "sign_in"
)

// Error types.
const (
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeAuth          = "auth_error"
	ErrorTypeValidation    = "validation_error"
)

// Fields builds attribute lists for structured log calls.
type Fields map[string]any

// NewFields returns an empty field set.
func NewFields() Fields {
	return make(Fields)
}

// WithOperation sets the operation name.
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithCollection sets the collection name.
func (f Fields) WithCollection(name string) Fields {
	f[FieldCollection] = name
	return f
}

// WithError records err and its category. A nil err is ignored.
func (f Fields) WithError(err error, errType string) Fields {
	if err != nil {
		f[FieldError] = err.Error()
		if errType != "" {
			f[FieldErrorType] = errType
		}
	}
	return f
}

// Args flattens the fields into slog key/value pairs.
func (f Fields) Args() []any {
	args := make([]any, 0, len(f)*2)
	for k, v := range f {
		args = append(args, k, v)
	}
	return args
}
