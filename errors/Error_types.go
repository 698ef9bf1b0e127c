package errors

var (
	ErrUnknown           = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument   = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrThresholdExceeded = New(ERR_THRESHOLD_EXCEEDED, "threshold exceeded")
	ErrProcessing        = New(ERR_PROCESSING, "error processing")
	ErrConfiguration     = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled   = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrStorage           = New(ERR_STORAGE, "storage error")
	ErrTxInvalid         = New(ERR_TX_INVALID, "tx invalid")
	ErrBlockInvalid      = New(ERR_BLOCK_INVALID, "block invalid")
)

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}

func NewThresholdExceededError(message string, params ...interface{}) error {
	return New(ERR_THRESHOLD_EXCEEDED, message, params...)
}

func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}

func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}

func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}

// NewStorageError covers file system failures on the mempool directory and output file.
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE, message, params...)
}

func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}

func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
