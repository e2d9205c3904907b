package ports

// CrashRecorder persists an unrecovered fault to the diagnostics sink.
type CrashRecorder interface {
	Record(where string, recovered any, stack []byte) error
}
