package errors

// ErrorCode identifies an application error category in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL ErrorCode = iota + 1000
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN
	ErrorCode_INVALID_PAYLOAD

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED

	// Meetings
	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_ENDED
	ErrorCode_MEETING_INVALID_STATE
	ErrorCode_PARTICIPANT_NOT_FOUND

	// Agents / tasks
	ErrorCode_AGENT_NOT_FOUND
	ErrorCode_TASK_NOT_FOUND

	// AI pipelines
	ErrorCode_AI_PLAN_GENERATION_FAILED
	ErrorCode_AI_SERVICE_UNAVAILABLE
	ErrorCode_AI_QUOTA_EXCEEDED

	// Speech
	ErrorCode_SPEECH_SESSION_NOT_FOUND
	ErrorCode_SPEECH_SYNTHESIS_FAILED

	// Integrations
	ErrorCode_INTEGRATION_LIVEKIT_FAILED
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED

	// Database
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                 "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ENDED:             "MEETING_ENDED",
	ErrorCode_MEETING_INVALID_STATE:     "MEETING_INVALID_STATE",
	ErrorCode_PARTICIPANT_NOT_FOUND:     "PARTICIPANT_NOT_FOUND",
	ErrorCode_AGENT_NOT_FOUND:           "AGENT_NOT_FOUND",
	ErrorCode_TASK_NOT_FOUND:            "TASK_NOT_FOUND",
	ErrorCode_AI_PLAN_GENERATION_FAILED: "AI_PLAN_GENERATION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:    "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:         "AI_QUOTA_EXCEEDED",
	ErrorCode_SPEECH_SESSION_NOT_FOUND:  "SPEECH_SESSION_NOT_FOUND",
	ErrorCode_SPEECH_SYNTHESIS_FAILED:   "SPEECH_SYNTHESIS_FAILED",
	ErrorCode_INTEGRATION_LIVEKIT_FAILED: "INTEGRATION_LIVEKIT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
