package diag

// Severity ranks diagnostics. The order matters: suppression and exit
// codes compare against SevError, and the migration rule downgrades a
// failure from SevError to SevWarning without touching its code.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
