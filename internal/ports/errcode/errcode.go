package errcode

type Code string

const (
	ChainRead    Code = "CHAIN_READ_FAILED"
	InvalidQuote Code = "INVALID_QUOTE"
	Timeout      Code = "TIMEOUT"

	Internal Code = "INTERNAL_ERROR"
)
