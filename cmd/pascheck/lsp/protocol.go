package lsp

// LSP protocol constants.
const (
	// JSONRPCVersion is the JSON-RPC protocol version.
	JSONRPCVersion = "2.0"

	// SeverityError marks an error diagnostic.
	SeverityError   = 1
	SeverityWarning = 2
	SeverityInfo    = 3
	SeverityHint    = 4

	// TextDocumentSyncFull indicates full document sync mode.
	TextDocumentSyncFull = 1

	ErrorInvalidRequest  = -32600
	ErrorMethodNotFound  = -32601
	ErrorInvalidParams   = -32602
	ErrorServerNotInited = -32002
)

// LSP method names.
const (
	MethodInitialize         = "initialize"
	MethodInitialized        = "initialized"
	MethodShutdown           = "shutdown"
	MethodExit               = "exit"
	MethodDidOpen            = "textDocument/didOpen"
	MethodDidChange          = "textDocument/didChange"
	MethodDidClose           = "textDocument/didClose"
	MethodDocumentSymbol     = "textDocument/documentSymbol"
	MethodPublishDiagnostics = "textDocument/publishDiagnostics"
)

// Symbol kinds used by textDocument/documentSymbol.
const (
	SymbolKindClass    = 5
	SymbolKindVariable = 13
	SymbolKindConstant = 14
)

// LSP header constants.
const (
	ContentLengthHeader = "Content-Length"
	HeaderDelimiter     = "\r\n\r\n"
	LineDelimiter       = "\r\n"
)

// DiagnosticSource tags every published diagnostic.
const DiagnosticSource = "pascheck"
