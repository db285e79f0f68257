package codec

// Errors
var (
	ErrMalformedInput     = &CodecError{"malformed input"}
	ErrChecksumMismatch   = &CodecError{"checksum mismatch"}
	ErrUnsupportedVersion = &CodecError{"unsupported format version"}
	ErrUnknownFormat      = &CodecError{"unknown format"}
)

// CodecError represents a record codec error
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}
